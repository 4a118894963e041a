package app

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"apicrete/internal/config"
	"apicrete/internal/handlers"
	"apicrete/internal/middleware"
	"apicrete/internal/repositories"
	"apicrete/internal/routes"
	"apicrete/internal/services"
	"apicrete/internal/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "apicrete/docs"
)

func Run() {
	cfg := config.LoadConfig()
	middleware.SetJWTKey(cfg.Auth.JWTSecret)

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	verifRepo := repositories.NewEmailVerificationRepository(db)
	infoRepo := repositories.NewUserInfoRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	geoClient := utils.NewGeoIPClient(cfg.GeoIP.BaseURL, time.Duration(cfg.GeoIP.Timeout))

	registrationService := services.NewRegistrationService(
		userRepo, verifRepo, infoRepo, emailService, authService, geoClient,
	)
	verificationService := services.NewVerificationService(
		userRepo, verifRepo, emailService, time.Duration(cfg.Verification.CodeTTL),
	)

	// === Handlers ===
	registerHandler := handlers.NewRegisterHandler(registrationService)
	verifyHandler := handlers.NewVerifyHandler(verificationService)
	authHandler := handlers.NewAuthHandler(userRepo, authService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, registerHandler, verifyHandler, authHandler)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Ошибка запуска сервера: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
