package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roulette-backend/internal/models"
	"roulette-backend/internal/services"
)

type GameHandler struct {
	engine *services.RouletteEngine
}

func NewGameHandler(engine *services.RouletteEngine) *GameHandler {
	return &GameHandler{engine: engine}
}

func (h *GameHandler) Spin(c *gin.Context) {
	var req models.SpinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"code":    CodeValidation,
			"details": err.Error(),
		})
		return
	}

	result, err := h.engine.Spin(c.Request.Context(), req.UserID, req.Bet())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetWheel describes the active wheel so clients can render it.
func (h *GameHandler) GetWheel(c *gin.Context) {
	wheel := h.engine.Wheel()

	slots := make([]gin.H, 0, len(wheel.Colors()))
	for _, color := range wheel.Colors() {
		slots = append(slots, gin.H{
			"color":       color,
			"probability": wheel.Probability(color),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"slotCount": wheel.SlotCount(),
		"colors":    slots,
	})
}
