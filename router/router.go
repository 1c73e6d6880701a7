package router

import (
	"fintrack/api"
	"fintrack/config"
	_ "fintrack/docs"
	"fintrack/middleware"
	"fintrack/store"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Deps 路由依赖
type Deps struct {
	Store  *store.TransactionStore
	DB     api.Pinger
	Logger *zap.Logger
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.CORS())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 健康检查
	r.GET("/health", api.HealthHandler(deps.DB))

	apiGroup := r.Group("/api")
	if cfg.RateLimit.Enabled {
		apiGroup.Use(middleware.WriteRateLimit(cfg.RateLimit.MaxWrites, cfg.RateLimit.Window))
	}
	{
		transactionHandler := api.NewTransactionHandler(deps.Store)
		transactions := apiGroup.Group("/transactions")
		{
			transactions.GET("", transactionHandler.List)
			transactions.POST("", transactionHandler.Create)
			transactions.GET("/stats", transactionHandler.GetStatistics)
			transactions.PUT("/:id", transactionHandler.Update)
			transactions.DELETE("/:id", transactionHandler.Delete)
		}

		exportHandler := api.NewExportHandler(deps.Store)
		exportGroup := apiGroup.Group("/export")
		{
			exportGroup.GET("/csv", exportHandler.ExportCSV)
			exportGroup.GET("/xlsx", exportHandler.ExportXLSX)
		}
	}

	return r
}
