package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	analyticsUC "millrace/internal/application/analytics/usecases"
	pipelineUC "millrace/internal/application/pipeline/usecases"
	"millrace/internal/infrastructure/cache"
	"millrace/internal/infrastructure/config"
	"millrace/internal/infrastructure/repository"
	"millrace/internal/interfaces/http/handlers"
	"millrace/internal/interfaces/http/middleware"
	"millrace/internal/shared/db"
	"millrace/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	engine           *gin.Engine
	uploadHandler    *handlers.UploadHandler
	analyticsHandler *handlers.AnalyticsHandler
	qualityHandler   *handlers.QualityHandler
	dashboardCache   *cache.DashboardCache
}

// NewRouter wires repositories, use cases, and handlers onto a gin engine.
func NewRouter(database *gorm.DB, cfg *config.Config) (*Router, error) {
	log := logger.NewLogger()

	dashboardCache, err := cache.NewDashboardCache(
		&cfg.Redis,
		time.Duration(cfg.Pipeline.CacheTTLSeconds)*time.Second,
		log.With("component", "cache.dashboard"),
	)
	if err != nil {
		return nil, err
	}

	rawRepo := repository.NewRawTransactionRepository(database, log.With("component", "repository.raw"))
	txnRepo := repository.NewTransactionRepository(database, log.With("component", "repository.transaction"))
	summaryRepo := repository.NewSummaryRepository(database, log.With("component", "repository.summary"))
	featureRepo := repository.NewFeatureRepository(database, log.With("component", "repository.feature"))
	qualityRepo := repository.NewQualityRepository(database, log.With("component", "repository.quality"))
	txManager := db.NewTransactionManager(database)

	processUpload := pipelineUC.NewProcessUploadUseCase(
		pipelineUC.NewParseUploadUseCase(log.With("component", "pipeline.parse")),
		pipelineUC.NewIngestRowsUseCase(rawRepo, log.With("component", "pipeline.ingest")),
		pipelineUC.NewCleanRowsUseCase(txnRepo, log.With("component", "pipeline.clean")),
		pipelineUC.NewAggregateTransactionsUseCase(txnRepo, summaryRepo, txManager, log.With("component", "pipeline.aggregate")),
		pipelineUC.NewGenerateFeaturesUseCase(txnRepo, featureRepo, log.With("component", "pipeline.features")),
		pipelineUC.NewRecordQualityUseCase(qualityRepo, log.With("component", "pipeline.quality")),
		dashboardCache,
		log.With("component", "pipeline"),
	)

	uploadHandler := handlers.NewUploadHandler(
		processUpload,
		cfg.Pipeline.MaxUploadBytes,
		log.With("component", "handler.upload"),
	)

	analyticsHandler := handlers.NewAnalyticsHandler(
		analyticsUC.NewGetKPIsUseCase(txnRepo, dashboardCache, log.With("component", "analytics.kpis")),
		analyticsUC.NewGetDatasetStatsUseCase(rawRepo, txnRepo, featureRepo, log.With("component", "analytics.stats")),
		analyticsUC.NewGetDailyRevenueUseCase(summaryRepo, dashboardCache, log.With("component", "analytics.daily_revenue")),
		analyticsUC.NewGetDailySalesUseCase(summaryRepo, log.With("component", "analytics.daily_sales")),
		analyticsUC.NewGetTopCustomersUseCase(summaryRepo, log.With("component", "analytics.top_customers")),
		analyticsUC.NewListCustomerSummariesUseCase(summaryRepo, log.With("component", "analytics.customer_summaries")),
		log.With("component", "handler.analytics"),
	)

	qualityHandler := handlers.NewQualityHandler(
		pipelineUC.NewGetQualityReportUseCase(qualityRepo, log.With("component", "pipeline.quality_report")),
		pipelineUC.NewGetAggregateQualityUseCase(qualityRepo, log.With("component", "pipeline.quality_aggregate")),
		log.With("component", "handler.quality"),
	)

	router := &Router{
		uploadHandler:    uploadHandler,
		analyticsHandler: analyticsHandler,
		qualityHandler:   qualityHandler,
		dashboardCache:   dashboardCache,
	}
	router.setupEngine(cfg)
	return router, nil
}

func (r *Router) setupEngine(cfg *config.Config) {
	gin.SetMode(cfg.Server.Mode)

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.CustomLogger(logger.NewLogger().With("component", "http")))
	engine.Use(middleware.ErrorHandler())
	engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	engine.GET("/health", handlers.Health)

	api := engine.Group("/api")
	{
		api.POST("/upload", r.uploadHandler.Upload)

		analytics := api.Group("/analytics")
		{
			analytics.GET("/kpis", r.analyticsHandler.GetKPIs)
			analytics.GET("/dataset-stats", r.analyticsHandler.GetDatasetStats)
			analytics.GET("/daily-revenue", r.analyticsHandler.GetDailyRevenue)
			analytics.GET("/daily-sales", r.analyticsHandler.GetDailySales)
			analytics.GET("/top-customers", r.analyticsHandler.GetTopCustomers)
			analytics.GET("/customer-summaries", r.analyticsHandler.ListCustomerSummaries)
			analytics.GET("/data-quality", r.qualityHandler.GetLatest)
			analytics.GET("/data-quality/aggregate", r.qualityHandler.GetAggregate)
		}
	}

	r.engine = engine
}

// Engine exposes the underlying gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server on the given address.
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}

// Close releases resources held by the router.
func (r *Router) Close() error {
	return r.dashboardCache.Close()
}
