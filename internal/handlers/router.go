package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roulette-backend/internal/middleware"
	"roulette-backend/internal/services"
)

type RouterDeps struct {
	Ledger services.Ledger
	Engine *services.RouletteEngine
	Hub    *WebSocketHub

	// Limiter is optional. When nil, spins are not rate limited.
	Limiter        middleware.RateLimiter
	RateLimitSpins int
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(), middleware.CORS())

	userHandler := NewUserHandler(deps.Ledger)
	gameHandler := NewGameHandler(deps.Engine)
	wsHandler := NewWebSocketHandler(deps.Ledger, deps.Hub)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/users/wallet/:address", userHandler.ConnectWallet)

		user := api.Group("/user/:id")
		{
			user.GET("/balance", userHandler.GetBalance)
			user.GET("/transactions", userHandler.GetTransactions)
			user.GET("/ws", wsHandler.HandleWebSocket)
		}

		api.GET("/wheel", gameHandler.GetWheel)

		spin := []gin.HandlerFunc{gameHandler.Spin}
		if deps.Limiter != nil && deps.RateLimitSpins > 0 {
			limit := middleware.RateLimit(deps.Limiter, "spin", deps.RateLimitSpins, services.DefaultRateLimitWindow)
			spin = append([]gin.HandlerFunc{limit}, spin...)
		}
		api.POST("/spin", spin...)
	}

	return router
}
