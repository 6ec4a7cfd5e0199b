package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"wardrobe-api/internal/application/services"
	"wardrobe-api/internal/infrastructure/config"
	"wardrobe-api/internal/infrastructure/logger"
	"wardrobe-api/internal/presentation/handlers"
	"wardrobe-api/internal/presentation/middleware"
)

// Router assembles the gin engine, middleware chain and endpoints.
type Router struct {
	engine         *gin.Engine
	config         *config.Config
	logger         logger.Logger
	serviceFactory *services.ServiceFactory
	db             *gorm.DB
}

// NewRouter creates the router.
func NewRouter(
	cfg *config.Config,
	log logger.Logger,
	serviceFactory *services.ServiceFactory,
	db *gorm.DB,
) *Router {
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	return &Router{
		engine:         gin.New(),
		config:         cfg,
		logger:         log,
		serviceFactory: serviceFactory,
		db:             db,
	}
}

// SetupRoutes registers middleware and endpoints.
func (r *Router) SetupRoutes() {
	authMiddleware := middleware.NewAuthMiddleware(
		r.serviceFactory.JWTService(),
		r.serviceFactory.UserRepository(),
		r.logger,
	)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(&r.config.RateLimit, r.logger)

	r.engine.Use(middleware.RecoveryMiddleware(r.logger))
	r.engine.Use(middleware.RequestIDMiddleware())
	r.engine.Use(middleware.LoggingMiddleware(r.logger))
	r.engine.Use(middleware.CORSMiddleware())
	r.engine.Use(middleware.SecurityMiddleware())
	r.engine.Use(middleware.TimeoutMiddleware(30 * time.Second))
	r.engine.Use(rateLimitMiddleware.Handler())

	healthHandler := handlers.NewHealthHandler(r.db, r.logger)
	authHandler := handlers.NewAuthHandler(r.serviceFactory.AuthService(), r.logger)
	itemHandler := handlers.NewItemHandler(r.serviceFactory.ItemService(), r.config.Image, r.logger)
	outfitHandler := handlers.NewOutfitHandler(
		r.serviceFactory.OutfitService(),
		r.serviceFactory.SuggestionService(),
		r.logger,
	)
	auditHandler := handlers.NewAuditHandler(r.serviceFactory.AuditService(), r.logger)

	r.engine.GET(r.config.Monitoring.HealthCheckPath, healthHandler.Health)

	// Locally stored images are served directly; the S3 store serves its
	// own URLs.
	if r.config.Storage.Local.BaseDir != "" {
		r.engine.Static("/uploads", r.config.Storage.Local.BaseDir)
	}

	v1 := r.engine.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/profile", authMiddleware.RequireAuth(), authHandler.Profile)
	}

	items := v1.Group("/items", authMiddleware.RequireAuth())
	{
		items.POST("", itemHandler.Upload)
		items.GET("", itemHandler.List)
		items.GET("/:id", itemHandler.Get)
		items.PUT("/:id", itemHandler.Update)
		items.DELETE("/:id", itemHandler.Delete)
		items.POST("/:id/worn", itemHandler.MarkWorn)
		items.POST("/:id/laundry", itemHandler.MarkLaundry)
		items.POST("/:id/clean", itemHandler.MarkClean)
		items.POST("/:id/away", itemHandler.MarkAway)
		items.POST("/:id/favorite", itemHandler.Favorite)
		items.POST("/:id/unfavorite", itemHandler.Unfavorite)
		items.GET("/:id/history", itemHandler.History)
	}

	outfits := v1.Group("/outfits", authMiddleware.RequireAuth())
	{
		outfits.POST("", outfitHandler.Create)
		outfits.GET("", outfitHandler.List)
		outfits.GET("/:id", outfitHandler.Get)
		outfits.PUT("/:id", outfitHandler.Update)
		outfits.DELETE("/:id", outfitHandler.Delete)
		outfits.POST("/suggestions", outfitHandler.Suggest)
	}

	audit := v1.Group("/audit", authMiddleware.RequireAuth())
	{
		audit.GET("/me", auditHandler.ListMine)
		audit.GET("", authMiddleware.RequireAdmin(), auditHandler.ListAll)
	}
}

// Engine exposes the configured gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
