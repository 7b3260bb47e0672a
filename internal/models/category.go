package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category representa una categoría del catálogo
type Category struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" binding:"required,min=2"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// CategoryUpdate representa los campos actualizables de una categoría
type CategoryUpdate struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=2"`
	Description *string `json:"description,omitempty"`
}
