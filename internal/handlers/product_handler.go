package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"tienda-api/internal/models"
)

// ProductRepository define el acceso a datos que necesita el handler
type ProductRepository interface {
	Create(ctx context.Context, create *models.ProductCreate) (*models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	FindByCategory(ctx context.Context, categoryID string) ([]models.Product, error)
	Update(ctx context.Context, id string, update *models.ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, id string) (*models.Product, error)
	AdjustStock(ctx context.Context, id string, delta int) (*models.Product, error)
}

type ProductHandler struct {
	repo ProductRepository
}

func NewProductHandler(repo ProductRepository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

// CreateProduct crea un nuevo producto
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var create models.ProductCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.repo.Create(c.Request.Context(), &create)
	if err != nil {
		respondError(c, err, "failed to create product")
		return
	}
	c.JSON(http.StatusCreated, product)
}

// GetProducts lista todos los productos con su categoría resuelta
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list products")
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProductByID obtiene un producto por ID
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	product, err := h.repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to get product")
		return
	}
	c.JSON(http.StatusOK, product)
}

// GetProductsByCategory lista los productos de una categoría
func (h *ProductHandler) GetProductsByCategory(c *gin.Context) {
	products, err := h.repo.FindByCategory(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		respondError(c, err, "failed to list products by category")
		return
	}
	c.JSON(http.StatusOK, products)
}

// UpdateProduct actualiza parcialmente un producto
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var update models.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.repo.Update(c.Request.Context(), c.Param("id"), &update)
	if err != nil {
		respondError(c, err, "failed to update product")
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct elimina un producto
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	product, err := h.repo.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to delete product")
		return
	}
	c.JSON(http.StatusOK, product)
}

// AdjustStock ajusta el inventario de un producto con un delta que puede
// ser negativo; el stock resultante nunca baja de cero
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	var adjustment models.StockAdjustment
	if err := c.ShouldBindJSON(&adjustment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.repo.AdjustStock(c.Request.Context(), c.Param("id"), *adjustment.Quantity)
	if err != nil {
		respondError(c, err, "failed to adjust stock")
		return
	}
	c.JSON(http.StatusOK, product)
}
