package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"tienda-api/internal/models"
)

// CategoryRepository define el acceso a datos que necesita el handler
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindAll(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id string) (*models.Category, error)
	Update(ctx context.Context, id string, update *models.CategoryUpdate) (*models.Category, error)
	Delete(ctx context.Context, id string) (*models.Category, error)
}

type CategoryHandler struct {
	repo CategoryRepository
}

func NewCategoryHandler(repo CategoryRepository) *CategoryHandler {
	return &CategoryHandler{repo: repo}
}

// CreateCategory crea una nueva categoría
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.repo.Create(c.Request.Context(), &category); err != nil {
		respondError(c, err, "failed to create category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

// GetCategories lista todas las categorías
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategoryByID obtiene una categoría por ID
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	category, err := h.repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to get category")
		return
	}
	c.JSON(http.StatusOK, category)
}

// UpdateCategory actualiza parcialmente una categoría
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var update models.CategoryUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.repo.Update(c.Request.Context(), c.Param("id"), &update)
	if err != nil {
		respondError(c, err, "failed to update category")
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory elimina una categoría
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	category, err := h.repo.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to delete category")
		return
	}
	c.JSON(http.StatusOK, category)
}
