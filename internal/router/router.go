// Package router wires the HTTP routes, middleware, and handlers.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/0PeterAdel/Money-Management/internal/auth"
	"github.com/0PeterAdel/Money-Management/internal/config"
	"github.com/0PeterAdel/Money-Management/internal/handler"
	"github.com/0PeterAdel/Money-Management/internal/middleware"
)

// Setup builds the gin engine with all routes registered.
func Setup(cfg *config.Config, h *handler.Handler, jwtManager *auth.JWTManager) *gin.Engine {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logging(), middleware.Metrics())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// Registration and login need no session.
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	protected := api.Group("")
	protected.Use(middleware.Auth(jwtManager))

	protected.GET("/users", h.ListUsers)
	protected.DELETE("/users/:id", h.DeleteUser)

	protected.POST("/groups", h.CreateGroup)
	protected.GET("/groups", h.ListGroups)
	protected.GET("/groups/:id", h.GetGroup)
	protected.POST("/groups/:id/members/:userID", h.AddMember)
	protected.DELETE("/groups/:id/members/:userID", h.RemoveMember)

	protected.GET("/categories", h.ListCategories)

	protected.POST("/expenses", h.ProposeExpense)
	protected.GET("/debts", h.ListDebts)
	protected.POST("/debts/:id/payments", h.PayDebt)

	protected.GET("/groups/:id/wallet", h.WalletBalance)
	protected.POST("/groups/:id/wallet/deposits", h.ProposeDeposit)
	protected.POST("/groups/:id/wallet/deposit-direct", h.DepositDirect)
	protected.POST("/groups/:id/wallet/withdraw", h.Withdraw)
	protected.POST("/groups/:id/wallet/settle-debts", h.SettleDebts)

	protected.GET("/actions/pending", h.ListPendingActions)
	protected.GET("/actions/:id", h.GetAction)
	protected.POST("/actions/:id/vote", h.CastVote)

	protected.GET("/balance-summary", h.BalanceSummary)

	return r
}
