package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Get(c *gin.Context) {
	userID := c.GetString("userID")

	p := h.service.Load(c.Request.Context(), userID)
	c.JSON(http.StatusOK, p)
}

func (h *Handler) Put(c *gin.Context) {
	userID := c.GetString("userID")

	var p Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile payload"})
		return
	}

	if err := h.service.Save(c.Request.Context(), userID, &p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile saved"})
}
