package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"tienda-api/internal/models"
)

// UserRepository define el acceso a datos que necesita el handler
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindAll(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id string, update *models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id string) (*models.User, error)
	AddToWishlist(ctx context.Context, userID, productID string) (*models.User, error)
	RemoveFromWishlist(ctx context.Context, userID, productID string) (*models.User, error)
	GetWishlist(ctx context.Context, userID string) ([]models.Product, error)
}

type UserHandler struct {
	repo UserRepository
}

func NewUserHandler(repo UserRepository) *UserHandler {
	return &UserHandler{repo: repo}
}

// CreateUser registra un nuevo usuario; el password se guarda hasheado
func (h *UserHandler) CreateUser(c *gin.Context) {
	var create models.UserCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(create.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err, "failed to hash password")
		return
	}

	user := models.User{
		Name:     create.Name,
		Email:    create.Email,
		Password: string(hashed),
	}
	if err := h.repo.Create(c.Request.Context(), &user); err != nil {
		respondError(c, err, "failed to create user")
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetUsers lista todos los usuarios
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUserByID obtiene un usuario por ID
func (h *UserHandler) GetUserByID(c *gin.Context) {
	user, err := h.repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to get user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser actualiza parcialmente un usuario; si viene password se
// vuelve a hashear antes de persistir
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var update models.UserUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if update.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, err, "failed to hash password")
			return
		}
		hashedStr := string(hashed)
		update.Password = &hashedStr
	}

	user, err := h.repo.Update(c.Request.Context(), c.Param("id"), &update)
	if err != nil {
		respondError(c, err, "failed to update user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser elimina un usuario
func (h *UserHandler) DeleteUser(c *gin.Context) {
	user, err := h.repo.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to delete user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetWishlist devuelve la wishlist del usuario con los productos
// resueltos; las referencias colgantes se omiten
func (h *UserHandler) GetWishlist(c *gin.Context) {
	products, err := h.repo.GetWishlist(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to get wishlist")
		return
	}
	c.JSON(http.StatusOK, products)
}

// AddToWishlist agrega un producto a la wishlist; si ya estaba es un no-op
func (h *UserHandler) AddToWishlist(c *gin.Context) {
	user, err := h.repo.AddToWishlist(c.Request.Context(), c.Param("id"), c.Param("productId"))
	if err != nil {
		respondError(c, err, "failed to add to wishlist")
		return
	}
	c.JSON(http.StatusOK, user)
}

// RemoveFromWishlist quita un producto de la wishlist; no falla si el
// producto no estaba
func (h *UserHandler) RemoveFromWishlist(c *gin.Context) {
	user, err := h.repo.RemoveFromWishlist(c.Request.Context(), c.Param("id"), c.Param("productId"))
	if err != nil {
		respondError(c, err, "failed to remove from wishlist")
		return
	}
	c.JSON(http.StatusOK, user)
}
