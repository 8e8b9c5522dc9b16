package history

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	aggregator *Aggregator
}

func NewHandler(aggregator *Aggregator) *Handler {
	return &Handler{aggregator: aggregator}
}

func (h *Handler) Get(c *gin.Context) {
	userID := c.GetString("userID")

	entries := h.aggregator.GetHistory(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
