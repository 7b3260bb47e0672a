package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tienda-api/internal/models"
)

// WhitelistRepository define el acceso a datos que necesita el handler
type WhitelistRepository interface {
	Create(ctx context.Context, create *models.WhitelistCreate) (*models.Whitelist, error)
	FindAll(ctx context.Context) ([]models.Whitelist, error)
	FindByID(ctx context.Context, id string) (*models.Whitelist, error)
	FindByUser(ctx context.Context, userID string) ([]models.Whitelist, error)
	FindByProduct(ctx context.Context, productID string) ([]models.Whitelist, error)
	FindByStatus(ctx context.Context, status string) ([]models.Whitelist, error)
	FindByDateRange(ctx context.Context, startDate, endDate time.Time) ([]models.Whitelist, error)
	Update(ctx context.Context, id string, update *models.WhitelistUpdate) (*models.Whitelist, error)
	Delete(ctx context.Context, id string) (*models.Whitelist, error)
	AddProduct(ctx context.Context, id, productID string) (*models.Whitelist, error)
	RemoveProduct(ctx context.Context, id, productID string) (*models.Whitelist, error)
}

type WhitelistHandler struct {
	repo WhitelistRepository
}

func NewWhitelistHandler(repo WhitelistRepository) *WhitelistHandler {
	return &WhitelistHandler{repo: repo}
}

// CreateWhitelist crea una nueva whitelist
func (h *WhitelistHandler) CreateWhitelist(c *gin.Context) {
	var create models.WhitelistCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	whitelist, err := h.repo.Create(c.Request.Context(), &create)
	if err != nil {
		respondError(c, err, "failed to create whitelist")
		return
	}
	c.JSON(http.StatusCreated, whitelist)
}

// GetWhitelists lista todas las whitelists con referencias resueltas
func (h *WhitelistHandler) GetWhitelists(c *gin.Context) {
	whitelists, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list whitelists")
		return
	}
	c.JSON(http.StatusOK, whitelists)
}

// GetWhitelistByID obtiene una whitelist por ID
func (h *WhitelistHandler) GetWhitelistByID(c *gin.Context) {
	whitelist, err := h.repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to get whitelist")
		return
	}
	c.JSON(http.StatusOK, whitelist)
}

// GetByUser lista las whitelists de un usuario
func (h *WhitelistHandler) GetByUser(c *gin.Context) {
	whitelists, err := h.repo.FindByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err, "failed to list whitelists by user")
		return
	}
	c.JSON(http.StatusOK, whitelists)
}

// GetByProduct lista las whitelists que contienen un producto
func (h *WhitelistHandler) GetByProduct(c *gin.Context) {
	whitelists, err := h.repo.FindByProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondError(c, err, "failed to list whitelists by product")
		return
	}
	c.JSON(http.StatusOK, whitelists)
}

// GetByStatus lista las whitelists con un estado exacto
func (h *WhitelistHandler) GetByStatus(c *gin.Context) {
	status := c.Param("status")
	if status != models.WhitelistStatusActive && status != models.WhitelistStatusInactive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be active or inactive"})
		return
	}

	whitelists, err := h.repo.FindByStatus(c.Request.Context(), status)
	if err != nil {
		respondError(c, err, "failed to list whitelists by status")
		return
	}
	c.JSON(http.StatusOK, whitelists)
}

// GetByDateRange lista las whitelists creadas dentro del rango
// [startDate, endDate], inclusivo en ambos extremos
func (h *WhitelistHandler) GetByDateRange(c *gin.Context) {
	startDate, err := parseDate(c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate"})
		return
	}
	endDate, err := parseDate(c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate"})
		return
	}

	whitelists, err := h.repo.FindByDateRange(c.Request.Context(), startDate, endDate)
	if err != nil {
		respondError(c, err, "failed to list whitelists by date range")
		return
	}
	c.JSON(http.StatusOK, whitelists)
}

// UpdateWhitelist actualiza parcialmente una whitelist
func (h *WhitelistHandler) UpdateWhitelist(c *gin.Context) {
	var update models.WhitelistUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	whitelist, err := h.repo.Update(c.Request.Context(), c.Param("id"), &update)
	if err != nil {
		respondError(c, err, "failed to update whitelist")
		return
	}
	c.JSON(http.StatusOK, whitelist)
}

// DeleteWhitelist elimina una whitelist
func (h *WhitelistHandler) DeleteWhitelist(c *gin.Context) {
	whitelist, err := h.repo.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to delete whitelist")
		return
	}
	c.JSON(http.StatusOK, whitelist)
}

// AddProduct agrega un producto a la whitelist; se permiten duplicados
func (h *WhitelistHandler) AddProduct(c *gin.Context) {
	whitelist, err := h.repo.AddProduct(c.Request.Context(), c.Param("id"), c.Param("productId"))
	if err != nil {
		respondError(c, err, "failed to add product to whitelist")
		return
	}
	c.JSON(http.StatusOK, whitelist)
}

// RemoveProduct quita todas las apariciones de un producto; no falla si
// el producto no estaba
func (h *WhitelistHandler) RemoveProduct(c *gin.Context) {
	whitelist, err := h.repo.RemoveProduct(c.Request.Context(), c.Param("id"), c.Param("productId"))
	if err != nil {
		respondError(c, err, "failed to remove product from whitelist")
		return
	}
	c.JSON(http.StatusOK, whitelist)
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
