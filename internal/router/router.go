package router

import (
	"context"
	"time"

	"github.com/vendorhub/payout/internal/cache"
	"github.com/vendorhub/payout/internal/config"
	adminhandlers "github.com/vendorhub/payout/internal/http/handlers/admin"
	"github.com/vendorhub/payout/internal/logger"
	"github.com/vendorhub/payout/internal/models"
	"github.com/vendorhub/payout/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	adminHandler := adminhandlers.New(c)
	redisClient := cache.Client()
	payoutRule := RateLimitRule{
		Prefix:        cache.Prefix() + ":rate:payout_admin",
		WindowSeconds: cfg.Security.PayoutRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.PayoutRateLimit.MaxRequests,
		MessageKey:    "error.rate_limited",
	}
	createLimit := RateLimitMiddleware(redisClient, payoutRule, KeyByIPAndJSONField("vendor_id"))
	transitionLimit := RateLimitMiddleware(redisClient, payoutRule, KeyByIPAndPathParam("id"))

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		admin := apiV1.Group("/admin")
		admin.Use(AdminOperatorMiddleware())
		{
			// 结算单
			admin.POST("/payouts/calculate", adminHandler.CalculatePayout)
			admin.POST("/payouts", createLimit, adminHandler.CreatePayout)
			admin.GET("/payouts", adminHandler.ListPayouts)
			admin.GET("/payouts/export", adminHandler.ExportPayouts)
			admin.GET("/payouts/tds-summary", adminHandler.GetTDSSummary)
			admin.GET("/payouts/revenue-summary", adminHandler.GetRevenueSummary)
			admin.GET("/payouts/:id", adminHandler.GetPayout)
			admin.POST("/payouts/:id/process", transitionLimit, adminHandler.ProcessPayout)
			admin.POST("/payouts/:id/complete", transitionLimit, adminHandler.CompletePayout)
			admin.POST("/payouts/:id/fail", transitionLimit, adminHandler.FailPayout)

			// 供应商与钱包
			admin.POST("/vendors", adminHandler.CreateVendor)
			admin.GET("/vendors", adminHandler.ListVendors)
			admin.GET("/vendors/:id", adminHandler.GetVendor)
			admin.PUT("/vendors/:id/commission", adminHandler.UpdateVendorCommission)
			admin.PUT("/vendors/:id/bank-account", adminHandler.UpdateVendorBankAccount)
			admin.GET("/vendors/:id/wallet", adminHandler.GetVendorWallet)
			admin.GET("/vendors/:id/wallet/transactions", adminHandler.GetVendorWalletTransactions)
			admin.GET("/vendors/:id/wallet/reconcile", adminHandler.ReconcileVendorWallet)

			// 银行假日
			admin.GET("/bank-holidays", adminHandler.ListBankHolidays)
			admin.POST("/bank-holidays", adminHandler.CreateBankHoliday)
			admin.GET("/bank-holidays/next-working-day", adminHandler.GetNextWorkingDay)
			admin.DELETE("/bank-holidays/:date", adminHandler.DeleteBankHoliday)

			// 结算策略
			admin.GET("/settings/payout-policy", adminHandler.GetPayoutPolicy)
			admin.PUT("/settings/payout-policy", adminHandler.UpdatePayoutPolicy)
		}
	}

	// 健康检查
	r.GET("/health", func(ctx *gin.Context) {
		status := gin.H{"status": "ok", "database": "ok", "redis": "disabled"}
		if models.DB != nil {
			if sqlDB, err := models.DB.DB(); err != nil || sqlDB.Ping() != nil {
				status["status"] = "degraded"
				status["database"] = "down"
			}
		}
		if cache.Enabled() {
			pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
			defer cancel()
			if err := cache.Ping(pingCtx); err != nil {
				status["status"] = "degraded"
				status["redis"] = "down"
			} else {
				status["redis"] = "ok"
			}
		}
		ctx.JSON(200, status)
	})

	return r
}
