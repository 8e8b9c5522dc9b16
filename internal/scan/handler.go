package scan

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nutriscan/internal/product"
	"nutriscan/internal/vision"
)

// 8 MB is plenty for a phone photo re-encoded as JPEG.
const maxImageBytes = 8 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ScanBarcode(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		Barcode string `json:"barcode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Barcode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "barcode is required"})
		return
	}

	result, err := h.service.ScanBarcode(c.Request.Context(), req.Barcode, userID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) ScanImage(c *gin.Context) {
	userID := c.GetString("userID")

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo is required"})
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil || len(imageData) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read photo"})
		return
	}

	result, err := h.service.ScanImage(c.Request.Context(), imageData, userID)
	if err != nil {
		var extErr *vision.ExtractionError
		if errors.As(err, &extErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": extErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	products := h.service.Search(c.Request.Context(), query, page)
	c.JSON(http.StatusOK, gin.H{"products": products})
}
