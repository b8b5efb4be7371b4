package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitfantasy/nimo-orders/internal/config"
	"github.com/bitfantasy/nimo-orders/internal/handler"
	"github.com/bitfantasy/nimo-orders/internal/middleware"
	"github.com/bitfantasy/nimo-orders/internal/repository"
	"github.com/bitfantasy/nimo-orders/internal/service"
	"github.com/bitfantasy/nimo-orders/internal/store"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting nimo-orders service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("data_dir", cfg.Data.Dir),
	)

	// 初始化表存储
	st, err := store.Open(cfg.Data.Dir)
	if err != nil {
		zapLogger.Fatal("Failed to open data dir", zap.Error(err))
	}

	// 初始化依赖
	repos := repository.NewRepositories(st, cfg.Catalog.ValidUnits)
	services := service.NewServices(repos)
	handlers := handler.NewHandlers(repos, services)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// 健康检查
	router.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "nimo-orders"})
	})
	router.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "nimo-orders"})
	})

	// 版本信息
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":    "nimo-orders",
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// API
	api := router.Group("/api")
	if cfg.Auth.Secret != "" {
		api.Use(middleware.JWTAuth(cfg.Auth.Secret))
	}
	{
		pricelists := api.Group("/pricelists")
		{
			pricelists.GET("", handlers.PriceList.List)
			pricelists.POST("", handlers.PriceList.Create)
			pricelists.PUT("/:id", handlers.PriceList.Update)
			pricelists.DELETE("/:id", handlers.PriceList.Delete)
			pricelists.POST("/:id/copy", handlers.PriceList.Copy)
		}

		products := api.Group("/products")
		{
			products.GET("", handlers.Product.List)
			products.POST("", handlers.Product.Create)
			products.PUT("/:id", handlers.Product.Update)
			products.DELETE("/:id", handlers.Product.Delete)
		}

		customers := api.Group("/customers")
		{
			customers.GET("", handlers.Customer.List)
			customers.POST("", handlers.Customer.Create)
			customers.PUT("/:id", handlers.Customer.Update)
			customers.DELETE("/:id", handlers.Customer.Delete)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", handlers.Order.List)
			orders.POST("", handlers.Order.Create)
			orders.PUT("/:id", handlers.Order.Update)
			orders.DELETE("/:id", handlers.Order.Delete)
			orders.GET("/search", handlers.Order.Search)
			orders.GET("/export/csv", handlers.Order.ExportCSV)
			orders.GET("/export/excel", handlers.Order.ExportExcel)
			orders.POST("/import", handlers.Order.Import)
		}

		api.GET("/data/export", handlers.Order.ExportAll)
	}

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	return zapCfg.Build()
}
