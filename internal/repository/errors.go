package repository

import "errors"

// Errores que el repositorio expone a la capa de transporte. Una
// referencia colgante nunca produce error: se resuelve como ausencia.
var (
	ErrInvalidID         = errors.New("invalid id")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrWhitelistNotFound = errors.New("whitelist not found")
	ErrEmailTaken        = errors.New("email already registered")
)
