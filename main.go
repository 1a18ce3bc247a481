package main

import (
	"log"

	"storefront/config"
	_ "storefront/docs"
	"storefront/database"
	"storefront/middleware"
	"storefront/routes"

	"github.com/gin-gonic/gin"
)

//go:generate swag init -g main.go -o docs --outputTypes go

// @title Storefront API
// @version 1.0
// @description Catalog, reviews, orders and accounts for the storefront.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {

	config.LoadConfig()

	if config.AppConfig.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	config.ConnectDB()
	defer config.CloseDB()

	if err := database.Migrate(config.AppConfig.DSN()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	config.InitRedis()
	defer config.CloseRedis()

	router := gin.Default()
	router.Use(middleware.RequestID())
	router.Use(middleware.CORSMiddleware(config.AppConfig.OriginURL))

	deps := routes.DepsFromConfig(config.AppConfig, config.DB, config.RedisClient)
	routes.SetupRoutes(router, routes.NewHandlers(deps))

	port := ":" + config.AppConfig.Port
	log.Printf("Server starting on port %s", port)
	log.Printf("Environment: %s", config.AppConfig.AppEnv)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)

	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
