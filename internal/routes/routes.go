package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"apicrete/internal/handlers"
	"apicrete/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	registerHandler *handlers.RegisterHandler,
	verifyHandler *handlers.VerifyHandler,
	authHandler *handlers.AuthHandler,
) *gin.Engine {

	// ---- public
	r.POST("/register", registerHandler.Register)
	r.POST("/verify-otp", verifyHandler.VerifyOTP)
	r.POST("/login", authHandler.Login)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ---- protected
	r.Use(middleware.AuthMiddleware())
	r.GET("/me", authHandler.Me)

	return r
}
