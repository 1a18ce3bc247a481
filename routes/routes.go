package routes

import (
	"log"
	"net/http"
	"strings"

	"storefront/config"
	"storefront/controllers"
	"storefront/handler"
	"storefront/libs"
	"storefront/middleware"
	"storefront/repositories"
	"storefront/services"
	"storefront/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Stores struct {
	Products repositories.ProductStore
	Reviews  repositories.ReviewStore
	Orders   repositories.OrderStore
	Users    repositories.UserStore
}

// Deps is everything the handlers need. Cache, Images and Notifier may be
// nil.
type Deps struct {
	Stores   Stores
	Cache    services.CatalogCache
	Images   services.ImageResolver
	Notifier services.Notifier
	Hasher   services.CredentialHasher
	Tokens   *utils.TokenIssuer

	// AssetPath is served from AssetDir when both are set.
	AssetPath string
	AssetDir  string
}

type Handlers struct {
	Auth          *controllers.AuthController
	Profile       *controllers.ProfileController
	Product       *controllers.ProductController
	ProductDetail *controllers.ProductDetailController
	Review        *controllers.ReviewController
	Order         *controllers.OrderController
	History       *controllers.HistoryController

	tokens    middleware.TokenValidator
	assetPath string
	assetDir  string
}

// DepsFromConfig builds the production dependency set on top of a pool and
// an optional Redis client.
func DepsFromConfig(cfg *config.Config, db repositories.DBTX, rdb *redis.Client) Deps {
	deps := Deps{
		Stores: Stores{
			Products: repositories.NewProductRepository(db),
			Reviews:  repositories.NewReviewRepository(db),
			Orders:   repositories.NewOrderRepository(db),
			Users:    repositories.NewUserRepository(db),
		},
		Cache:  services.NewRedisCache(rdb, cfg.CacheTTL),
		Hasher: utils.NewArgon2Hasher(),
		Tokens: utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry),
	}

	cld, err := libs.NewCloudinary(cfg.CloudinaryURL, cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		log.Printf("Cloudinary disabled: %v", err)
	}
	deps.Images = libs.NewImageResolver(cld, cfg.AssetBaseURL)

	if cfg.SMTPHost != "" {
		deps.Notifier = libs.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	} else {
		log.Println("SMTP not configured, order confirmations disabled")
	}

	if strings.HasPrefix(cfg.AssetBaseURL, "/") {
		deps.AssetPath = cfg.AssetBaseURL
		deps.AssetDir = "./uploads"
	}
	return deps
}

func NewHandlers(d Deps) Handlers {
	cache := d.Cache
	if cache == nil {
		cache = services.NewRedisCache(nil, 0)
	}

	productSvc := services.NewProductService(d.Stores.Products, d.Stores.Reviews, cache, d.Images)
	reviewSvc := services.NewReviewService(d.Stores.Reviews, cache)
	orderSvc := services.NewOrderService(d.Stores.Products, d.Stores.Orders, d.Notifier)
	authSvc := services.NewAuthService(d.Stores.Users, d.Hasher, d.Tokens)

	return Handlers{
		Auth:          controllers.NewAuthController(authSvc),
		Profile:       controllers.NewProfileController(authSvc),
		Product:       controllers.NewProductController(productSvc),
		ProductDetail: controllers.NewProductDetailController(productSvc),
		Review:        controllers.NewReviewController(reviewSvc),
		Order:         controllers.NewOrderController(orderSvc),
		History:       controllers.NewHistoryController(orderSvc),
		tokens:        d.Tokens,
		assetPath:     d.AssetPath,
		assetDir:      d.AssetDir,
	}
}

func SetupRoutes(router *gin.Engine, h Handlers) {
	router.GET("/", handler.Index(router, "/swagger/index.html"))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	router.POST("/register", h.Auth.Register)
	router.POST("/login", h.Auth.Login)
	router.GET("/shop", h.Product.ListProducts)
	router.GET("/product/:id", h.Product.GetProduct)
	router.GET("/product/:id/detail", h.ProductDetail.GetProductDetail)
	router.GET("/reviews/:productId", h.Review.ListReviews)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware(h.tokens))
	{
		auth.GET("/me", h.Profile.GetProfile)
		auth.POST("/addreview", h.Review.AddReview)
		auth.POST("/order", h.Order.CreateOrder)
		auth.GET("/orders", h.History.GetHistory)
	}

	if h.assetPath != "" && h.assetDir != "" {
		router.Static(h.assetPath, h.assetDir)
	}
}
