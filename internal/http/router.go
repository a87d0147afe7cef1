package httpapi

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/storepulse/backend/internal/config"
	"github.com/storepulse/backend/internal/http/handlers"
	"github.com/storepulse/backend/internal/http/middleware"
	"github.com/storepulse/backend/internal/service"
	"github.com/storepulse/backend/internal/telemetry"

	_ "github.com/storepulse/backend/docs"
)

type Services struct {
	DB        handlers.Pinger
	Sales     *service.SalesService
	Dashboard *service.DashboardService
	Reports   *service.ReportService
}

func Router(cfg config.Config, svc Services, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-Id"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" || cfg.CORSAllowed == "" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = strings.Split(cfg.CORSAllowed, ",")
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		DB:             svc.DB,
		Sales:          svc.Sales,
		Dashboard:      svc.Dashboard,
		Reports:        svc.Reports,
		Validator:      validator.New(),
		Logger:         logger,
		MaxUploadBytes: cfg.MaxUploadSizeMB << 20,
	}

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(telemetry.Handler()))

	api := r.Group("/api/v1")
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		stores := api.Group("/stores/:storeId")
		stores.POST("/sales/upload", h.UploadSales)
		stores.GET("/sales", h.SalesList)
		stores.GET("/dashboard", h.GetDashboard)
		stores.POST("/reports/generate", h.GenerateReport)
		stores.GET("/reports", h.ReportsList)
		stores.GET("/reports/:reportId", h.ReportDetails)
		stores.GET("/reports/:reportId/pdf", h.ReportPDF)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
