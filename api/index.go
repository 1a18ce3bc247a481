package api

import (
	"log"
	"net/http"
	"sync"

	"storefront/config"
	"storefront/database"
	"storefront/middleware"
	"storefront/routes"

	"github.com/gin-gonic/gin"
)

var (
	router *gin.Engine
	once   sync.Once
)

// initApp builds the router once per function instance. Migrations run here
// too since there is no separate startup phase.
func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		config.LoadConfig()
		config.ConnectDB()
		if err := database.Migrate(config.AppConfig.DSN()); err != nil {
			log.Printf("Migration failed: %v", err)
		}
		config.InitRedis()

		router = gin.New()
		router.Use(gin.Recovery())
		router.Use(middleware.RequestID())
		router.Use(middleware.CORSMiddleware(config.AppConfig.OriginURL))

		deps := routes.DepsFromConfig(config.AppConfig, config.DB, config.RedisClient)
		// No local uploads directory in the function bundle.
		deps.AssetPath = ""
		routes.SetupRoutes(router, routes.NewHandlers(deps))
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	router.ServeHTTP(w, r)
}
