package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"flipvault-web/clients"
	"flipvault-web/config"
	"flipvault-web/database"
	"flipvault-web/handlers"
	"flipvault-web/logger"
	"flipvault-web/middleware"
	"flipvault-web/plancache"
	"flipvault-web/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zl.Sync()

	store, err := buildStore(cfg)
	if err != nil {
		zl.Fatal("failed to initialize session store", zap.Error(err))
	}

	backend := clients.NewBackend(cfg.Backend, zl)
	plans := plancache.NewFactory(store, backend, zl)
	h := handlers.New(cfg, backend, plans, zl)

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// Public routes
	r.GET("/", h.Landing)
	r.GET("/pricing", h.Pricing)
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/login", h.Login)
	r.POST("/register", h.Register)
	r.POST("/admin-login", h.AdminLogin)
	r.GET("/products", h.GetProducts)
	r.GET("/search/", h.SearchProducts)
	r.POST("/api/calculate_fee", h.CalculateFee)

	// Authenticated routes
	api := r.Group("/api")
	api.Use(middleware.SessionAuth(cfg.Auth.JWTSecret, plans))
	{
		api.POST("/logout", h.Logout)
		api.GET("/dashboard", h.Dashboard)
		api.GET("/check-subscription", h.CheckSubscription)
		api.GET("/settings", h.GetSettings)
		api.PUT("/settings", h.UpdateSettings)
		api.POST("/create-checkout-session", h.CreateCheckoutSession)
		api.POST("/cancel-subscription", h.CancelSubscription)

		// Paid-only routes sit behind the plan guard.
		paid := api.Group("")
		paid.Use(middleware.RequirePaidPlan(plans))
		{
			paid.GET("/products", h.GetProducts)
			paid.GET("/products/:id", h.GetProduct)
		}

		// Admin panel
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/users", h.GetAllUsers)
			admin.DELETE("/users/:id", h.DeleteUser)
			admin.PUT("/users/:id/plan", h.UpdateUserPlan)
			admin.POST("/products", h.CreateProduct)
			admin.DELETE("/products/:id/delete", h.DeleteProduct)
			admin.POST("/products/scrape", h.ScrapeProducts)
			admin.POST("/products/scrape/:id", h.ScrapeProduct)
			admin.GET("/export", h.ExportUsers)
		}
	}

	zl.Info("starting server", zap.String("addr", cfg.App.ListenAddr))
	if err := r.Run(cfg.App.ListenAddr); err != nil {
		zl.Fatal("server exited", zap.Error(err))
	}
}

func buildStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Store.Driver {
	case "redis":
		return storage.NewRedis(cfg.Store.Redis), nil
	case "memory":
		return storage.NewMemory(), nil
	default:
		db, err := database.Connect(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		return storage.NewSQLite(db)
	}
}
