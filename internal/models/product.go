package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product representa un producto del catálogo. El campo category guarda
// solo la referencia (ObjectID); se resuelve al momento de leer.
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64            `json:"price" bson:"price"`
	ImageURL    string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	CategoryID  primitive.ObjectID `json:"category_id" bson:"category"`
	Stock       int                `json:"stock" bson:"stock"`
	IsAvailable bool               `json:"is_available" bson:"is_available"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`

	// Category se llena al poblar la referencia; queda en null si la
	// categoría referida ya no existe.
	Category *Category `json:"category,omitempty" bson:"-"`
}

// ProductCreate representa el cuerpo de creación de un producto
type ProductCreate struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"min=0"`
	ImageURL    string  `json:"image_url"`
	CategoryID  string  `json:"category_id" binding:"required"`
	Stock       int     `json:"stock" binding:"omitempty,min=0"`
}

// ProductUpdate representa los campos actualizables de un producto.
// is_available no se acepta del cliente: se deriva del stock.
type ProductUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	ImageURL    *string  `json:"image_url,omitempty"`
	CategoryID  *string  `json:"category_id,omitempty"`
	Stock       *int     `json:"stock,omitempty" binding:"omitempty,min=0"`
}

// StockAdjustment es el cuerpo del ajuste de inventario
type StockAdjustment struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// ApplyStockDelta aplica un delta al stock actual. El resultado nunca baja
// de cero y la disponibilidad se deriva siempre del stock resultante.
func ApplyStockDelta(current, delta int) (stock int, available bool) {
	stock = current + delta
	if stock < 0 {
		stock = 0
	}
	return stock, stock > 0
}
