package router

import (
	"context"
	"net/http"

	"budget/api"
	"budget/config"
	_ "budget/docs"
	"budget/middleware"
	"budget/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
// ctx 结束时停止限流器的后台清理
func SetupRouter(ctx context.Context, cfg *config.Config, svc *service.BudgetService) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	// CORS 中间件
	r.Use(CORSMiddleware())

	// 写接口限流
	write := func(c *gin.Context) { c.Next() }
	if cfg.RateLimit.Enabled {
		write = middleware.WriteRateLimit(ctx, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	}

	monthHandler := api.NewMonthHandler(svc)
	txHandler := api.NewTransactionHandler(svc)

	months := r.Group("/api/months")
	{
		months.GET("", monthHandler.List)
		months.POST("", write, monthHandler.Create)
		months.GET("/:year/:month", monthHandler.Get)
		months.PUT("/:year/:month", write, monthHandler.Update)
		months.DELETE("/:year/:month", write, monthHandler.Delete)
		months.GET("/:year/:month/health", monthHandler.Health)

		// 交易
		months.GET("/:year/:month/transactions", txHandler.List)
		months.POST("/:year/:month/transactions", write, txHandler.Create)
		months.PUT("/:year/:month/transactions/:id", write, txHandler.Update)
		months.DELETE("/:year/:month/transactions/:id", write, txHandler.Delete)
	}

	r.POST("/api/integrity/reconcile", write, monthHandler.Reconcile)

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
