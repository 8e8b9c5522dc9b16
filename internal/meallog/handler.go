package meallog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nutriscan/internal/product"
	"nutriscan/internal/profile"
)

type Handler struct {
	service  *Service
	products product.Repository
	profiles *profile.Service
}

func NewHandler(service *Service, products product.Repository, profiles *profile.Service) *Handler {
	return &Handler{service: service, products: products, profiles: profiles}
}

// Add logs a previously scanned product by its (possibly synthetic) barcode.
func (h *Handler) Add(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		Barcode       string  `json:"barcode"`
		QuantityGrams float64 `json:"quantity_grams"`
		MealPeriod    string  `json:"meal_period"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Barcode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "barcode is required"})
		return
	}

	p, err := h.products.FindByBarcode(c.Request.Context(), req.Barcode)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found, scan it first"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.service.Add(c.Request.Context(), userID, p, req.QuantityGrams, req.MealPeriod)
	if err != nil {
		if errors.Is(err, ErrInvalidEntry) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity_grams must be positive and meal_period one of breakfast/lunch/dinner/snack"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *Handler) Summary(c *gin.Context) {
	userID := c.GetString("userID")

	prof := h.profiles.Load(c.Request.Context(), userID)

	summary, err := h.service.TodaySummary(c.Request.Context(), userID, prof.Plan)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}
