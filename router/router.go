package router

import (
	"time"

	"fintrack/api"
	"fintrack/config"
	_ "fintrack/docs"
	"fintrack/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 路由组
	v1 := r.Group("/api/v1")
	{
		// 认证相关路由（无需登录，登录/注册限流）
		authHandler := api.NewAuthHandler(cfg)
		passwordResetHandler := api.NewPasswordResetHandler(cfg)
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit(10, time.Minute))
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)

			// 密码重置
			auth.POST("/password/request-reset", passwordResetHandler.RequestPasswordReset)
			auth.GET("/password/verify-token", passwordResetHandler.VerifyResetToken)
			auth.POST("/password/reset", passwordResetHandler.ResetPassword)
		}

		// 收入类别（无需登录）
		categoryHandler := api.NewCategoryHandler()
		v1.GET("/categories", categoryHandler.List)

		// 需要 JWT 认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			// 用户相关
			authorized.GET("/auth/profile", authHandler.GetProfile)
			authorized.PUT("/auth/password", authHandler.ChangePassword)

			// 收入记录相关
			incomeHandler := api.NewIncomeHandler()
			incomes := authorized.Group("/incomes")
			{
				incomes.POST("", incomeHandler.Create)
				incomes.GET("", incomeHandler.List)
				incomes.GET("/:id", incomeHandler.Get)
				incomes.PUT("/:id", incomeHandler.Update)
				incomes.DELETE("/:id", incomeHandler.Delete)
			}

			// 储蓄目标相关
			goalHandler := api.NewGoalHandler()
			goals := authorized.Group("/goals")
			{
				goals.POST("", goalHandler.Create)
				goals.GET("", goalHandler.List)
				goals.GET("/:id", goalHandler.Get)
				goals.PUT("/:id", goalHandler.Update)
				goals.DELETE("/:id", goalHandler.Delete)
			}

			// 收入类别维护
			authorized.POST("/categories", categoryHandler.Create)
			authorized.PUT("/categories/:id", categoryHandler.Update)
			authorized.DELETE("/categories/:id", categoryHandler.Delete)

			// 统计
			summaryHandler := api.NewSummaryHandler()
			authorized.GET("/statistics/summary", summaryHandler.GetIncomeSummary)

			// 导出相关
			exportHandler := api.NewExportHandler()
			export := authorized.Group("/export")
			{
				export.GET("/csv", exportHandler.ExportCSV)
				export.GET("/excel", exportHandler.ExportExcel)
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
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
