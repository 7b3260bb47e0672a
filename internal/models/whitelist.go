package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Estados de una whitelist
const (
	WhitelistStatusActive   = "active"
	WhitelistStatusInactive = "inactive"
)

// Whitelist es una lista de deseos con nombre propio: referencia a un
// usuario y a una secuencia de productos. A diferencia de User.Wishlist,
// la secuencia de productos admite duplicados.
type Whitelist struct {
	ID         primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	UserID     primitive.ObjectID   `json:"user_id" bson:"user"`
	ProductIDs []primitive.ObjectID `json:"product_ids" bson:"products"`
	Status     string               `json:"status" bson:"status"`
	CreatedAt  time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at" bson:"updated_at"`

	// User y Products se llenan al poblar las referencias. Un usuario
	// inexistente queda ausente; los productos inexistentes se omiten.
	User     *User     `json:"user,omitempty" bson:"-"`
	Products []Product `json:"products,omitempty" bson:"-"`
}

// WhitelistCreate representa el cuerpo de creación de una whitelist
type WhitelistCreate struct {
	UserID     string   `json:"user_id" binding:"required"`
	ProductIDs []string `json:"product_ids"`
	Status     string   `json:"status" binding:"omitempty,oneof=active inactive"`
}

// WhitelistUpdate representa los campos actualizables de una whitelist
type WhitelistUpdate struct {
	UserID     *string  `json:"user_id,omitempty"`
	ProductIDs []string `json:"product_ids,omitempty"`
	Status     *string  `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
}
