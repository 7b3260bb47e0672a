package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles de usuario
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa un usuario registrado. La wishlist guarda referencias a
// productos sin duplicados; el password siempre viaja hasheado y nunca se
// serializa en las respuestas.
type User struct {
	ID               primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name             string               `json:"name" bson:"name"`
	Email            string               `json:"email" bson:"email"`
	Password         string               `json:"-" bson:"password"`
	Wishlist         []primitive.ObjectID `json:"wishlist" bson:"wishlist"`
	Role             string               `json:"role" bson:"role"`
	RegistrationDate time.Time            `json:"registration_date" bson:"registration_date"`
	CreatedAt        time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at" bson:"updated_at"`
}

// UserCreate representa el cuerpo de registro de un usuario
type UserCreate struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UserUpdate representa los campos actualizables de un usuario
type UserUpdate struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8"`
	Role     *string `json:"role,omitempty" binding:"omitempty,oneof=admin user"`
}
