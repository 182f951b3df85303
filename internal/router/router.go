package router

import (
	"fmt"
	"strings"

	"github.com/nextcart/nextcart/internal/cache"
	"github.com/nextcart/nextcart/internal/config"
	adminhandlers "github.com/nextcart/nextcart/internal/http/handlers/admin"
	publichandlers "github.com/nextcart/nextcart/internal/http/handlers/public"
	"github.com/nextcart/nextcart/internal/http/response"
	"github.com/nextcart/nextcart/internal/logger"
	"github.com/nextcart/nextcart/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "nc"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "too many login attempts",
	}
	resetRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:reset", redisPrefix),
		WindowSeconds: cfg.Security.ResetRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.ResetRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.ResetRateLimit.BlockSeconds,
		Message:       "too many reset requests",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})

	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/categories", publicHandler.ListCategories)
			public.GET("/categories/:id", publicHandler.GetCategory)
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/featured", publicHandler.ListFeaturedProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
			auth.POST("/forgot-password", RateLimitMiddleware(redisClient, resetRule, KeyByIPAndJSONField("email")), publicHandler.ForgotPassword)
			auth.POST("/verify-otp", RateLimitMiddleware(redisClient, resetRule, KeyByIPAndJSONField("email")), publicHandler.VerifyOTP)
			auth.POST("/reset-password", RateLimitMiddleware(redisClient, resetRule, KeyByIPAndJSONField("email")), publicHandler.ResetPassword)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.Profile)
			user.POST("/orders", publicHandler.CreateOrder)
			user.GET("/orders", publicHandler.ListMyOrders)
			user.GET("/orders/:id", publicHandler.GetMyOrder)
		}

		// 管理端接口
		admin := apiV1.Group("/admin")
		admin.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), AdminRequiredMiddleware())
		{
			admin.GET("/products", adminHandler.AdminListProducts)
			admin.GET("/products/:id", adminHandler.AdminGetProduct)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)

			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			admin.GET("/orders", adminHandler.AdminListOrders)
			admin.GET("/orders/stats", adminHandler.AdminOrderStats)
			admin.GET("/orders/:id", adminHandler.AdminGetOrder)
			admin.PUT("/orders/:id/status", adminHandler.AdminUpdateOrderStatus)
			admin.DELETE("/orders/:id", adminHandler.AdminDeleteOrder)

			admin.GET("/users", adminHandler.AdminListUsers)
			admin.GET("/users/count", adminHandler.AdminCountUsers)
			admin.GET("/users/:id", adminHandler.AdminGetUser)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "route not found")
	})

	return r
}
