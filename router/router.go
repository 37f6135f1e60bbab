package router

import (
	"budget/api"
	"budget/config"
	_ "budget/docs"
	"budget/middleware"
	"budget/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由，notifier 可以为 nil
func SetupRouter(cfg *config.Config, records *service.RecordService, notifier api.GoalNotifier) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	r.Use(CORSMiddleware())
	r.Use(middleware.RequestID())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	strict := cfg.Records.StrictValidation
	loc := cfg.Records.Location

	expenseHandler := api.NewExpenseHandler(records, strict)
	savingHandler := api.NewSavingHandler(records, strict)
	investmentHandler := api.NewInvestmentHandler(records, strict)
	goalHandler := api.NewGoalHandler(records, strict, notifier)
	dashboardHandler := api.NewDashboardHandler(records, loc)
	exportHandler := api.NewExportHandler(records, loc)

	v1 := r.Group("/api/v1")
	{
		// 消费类别（无需登录）
		v1.GET("/categories", expenseHandler.GetCategories)

		// 需要 JWT 认证的路由，写操作按用户限流
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		authorized.Use(middleware.WriteRateLimit(cfg.RateLimit.WriteMax, cfg.RateLimit.WriteWindow()))
		{
			expenses := authorized.Group("/expenses")
			{
				expenses.POST("", expenseHandler.Create)
				expenses.GET("", expenseHandler.List)
				expenses.DELETE("/:id", expenseHandler.Delete)
			}

			savings := authorized.Group("/savings")
			{
				savings.POST("", savingHandler.Create)
				savings.GET("", savingHandler.List)
				savings.DELETE("/:id", savingHandler.Delete)
			}

			investments := authorized.Group("/investments")
			{
				investments.POST("", investmentHandler.Create)
				investments.GET("", investmentHandler.List)
				investments.DELETE("/:id", investmentHandler.Delete)
			}

			goals := authorized.Group("/goals")
			{
				goals.POST("", goalHandler.Create)
				goals.GET("", goalHandler.List)
				goals.POST("/:id/increment", goalHandler.Increment)
				goals.DELETE("/:id", goalHandler.Delete)
			}

			authorized.GET("/dashboard", dashboardHandler.Get)
			authorized.GET("/summary", dashboardHandler.Summary)

			export := authorized.Group("/export")
			{
				export.GET("/csv", exportHandler.ExportCSV)
				export.GET("/xlsx", exportHandler.ExportExcel)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
