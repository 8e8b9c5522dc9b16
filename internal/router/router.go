package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"nutriscan/internal/auth"
	"nutriscan/internal/history"
	"nutriscan/internal/meallog"
	"nutriscan/internal/middleware"
	"nutriscan/internal/profile"
	"nutriscan/internal/scan"
)

type Handlers struct {
	Auth    *auth.Handler
	Scan    *scan.Handler
	History *history.Handler
	MealLog *meallog.Handler
	Profile *profile.Handler
}

func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/scan/barcode", h.Scan.ScanBarcode)
		protected.POST("/scan/image", h.Scan.ScanImage)
		protected.GET("/products/search", h.Scan.Search)

		protected.GET("/history", h.History.Get)

		protected.POST("/log", h.MealLog.Add)
		protected.GET("/log/summary", h.MealLog.Summary)

		protected.GET("/profile", h.Profile.Get)
		protected.PUT("/profile", h.Profile.Put)
	}

	return r
}
