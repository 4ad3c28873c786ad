package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	crmapp "github.com/clinic/backend/internal/application/crm"
	"github.com/clinic/backend/internal/infrastructure/cache"
	"github.com/clinic/backend/internal/infrastructure/config"
	"github.com/clinic/backend/internal/infrastructure/logger"
	"github.com/clinic/backend/internal/infrastructure/persistence"
	"github.com/clinic/backend/internal/interfaces/http/handler"
	"github.com/clinic/backend/internal/interfaces/http/middleware"
	"github.com/clinic/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting clinic CRM backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database migrations completed")

	// Initialize repositories
	bookingRepo := persistence.NewGormBookingRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	followUpRepo := persistence.NewGormFollowUpRepository(db.DB)

	// Marketing stats cache is optional. Without Redis the stats are
	// recomputed from the booking snapshot on every request.
	var statsCache crmapp.StatsCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisStatsCache(cfg.Redis,
			cache.WithStatsTTL(cfg.Cache.StatsTTL),
			cache.WithStatsLogger(log),
		)
		if err != nil {
			log.Warn("Redis unavailable, marketing stats will not be cached", zap.Error(err))
		} else {
			defer redisCache.Close()
			statsCache = redisCache
			log.Info("Marketing stats cache enabled",
				zap.String("addr", cfg.Redis.Addr()),
				zap.Duration("ttl", cfg.Cache.StatsTTL),
			)
		}
	}

	// Initialize application services
	syncService := crmapp.NewSyncService(bookingRepo, customerRepo, followUpRepo, statsCache, log)
	bookingService := crmapp.NewBookingService(bookingRepo, syncService)
	customerService := crmapp.NewCustomerService(customerRepo)
	followUpService := crmapp.NewFollowUpService(followUpRepo)
	marketingService := crmapp.NewMarketingService(bookingRepo, statsCache, log)

	// Initialize handlers
	bookingHandler := handler.NewBookingHandler(bookingService)
	customerHandler := handler.NewCustomerHandler(customerService)
	followUpHandler := handler.NewFollowUpHandler(followUpService)
	marketingHandler := handler.NewMarketingHandler(marketingService, syncService)
	systemHandler := handler.NewSystemHandler()

	// Setup Gin
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	engine.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"error":  "database unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	// Register routes
	crmGroup := router.NewDomainGroup("crm", "/crm").
		POST("/bookings", bookingHandler.Create).
		GET("/bookings", bookingHandler.List).
		GET("/bookings/:id", bookingHandler.GetByID).
		PUT("/bookings/:id/status", bookingHandler.UpdateStatus).
		PUT("/bookings/:id/stage", bookingHandler.AdvanceStage).
		GET("/customers", customerHandler.List).
		GET("/customers/:id", customerHandler.GetByID).
		GET("/customers/:id/follow-ups", followUpHandler.ListByCustomer).
		GET("/customers/phone/:phone", customerHandler.GetByPhone).
		PUT("/customers/:id/grade", customerHandler.UpdateGrade).
		POST("/customers/:id/tags", customerHandler.AddTag).
		DELETE("/customers/:id/tags/:tag", customerHandler.RemoveTag).
		POST("/customers/:id/memos", customerHandler.AddMemo).
		DELETE("/customers/:id/memos/:memo_id", customerHandler.DeleteMemo).
		GET("/follow-ups", followUpHandler.List).
		GET("/follow-ups/pending", followUpHandler.ListPending).
		GET("/follow-ups/due", followUpHandler.ListDue).
		GET("/follow-ups/:id", followUpHandler.GetByID).
		PUT("/follow-ups/:id/status", followUpHandler.UpdateStatus).
		GET("/marketing/stats", marketingHandler.Stats).
		POST("/sync", marketingHandler.Resync)

	systemGroup := router.NewDomainGroup("system", "/system").
		GET("/info", systemHandler.GetSystemInfo).
		GET("/ping", systemHandler.Ping)

	r := router.NewRouter(engine)
	r.Register(crmGroup).Register(systemGroup)
	r.Setup()

	// Setup HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
