package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tawhidislam22/business-management/internal/config"
	"github.com/tawhidislam22/business-management/internal/handlers"
	"github.com/tawhidislam22/business-management/internal/middleware"
	"github.com/tawhidislam22/business-management/internal/models"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	gateway := handlers.LocalGateway{}

	// AUTH
	r.POST("/register", handlers.Register(cfg))
	r.POST("/login", handlers.Login(cfg))
	r.POST("/jwt", handlers.IssueToken(cfg))
	r.POST("/refresh-token", handlers.RefreshToken(cfg))
	r.POST("/logout", handlers.Logout())

	// USERS (open: the role lookup backs the client's gate before a
	// bearer token exists)
	r.POST("/users", handlers.UpsertUser)
	r.GET("/users/role/:email", handlers.GetUserRole)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth(cfg.JWTSecret))

	auth.GET("/users/:email", handlers.GetUser)
	auth.PATCH("/profile", handlers.UpdateProfile)

	// ASSETS
	auth.GET("/assets", handlers.ListAssets)
	auth.POST("/assets",
		middleware.RequireRole(models.RoleHR),
		handlers.CreateAsset,
	)
	auth.PUT("/assets/:id",
		middleware.RequireRole(models.RoleHR),
		handlers.UpdateAsset,
	)
	auth.DELETE("/assets/:id",
		middleware.RequireRole(models.RoleHR),
		handlers.DeleteAsset,
	)

	// ASSET REQUESTS
	auth.GET("/requests", handlers.ListRequests)
	auth.POST("/requests",
		middleware.RequireRole(models.RoleEmployee),
		handlers.CreateRequest,
	)
	auth.PATCH("/requests/:id/approve",
		middleware.RequireRole(models.RoleHR),
		handlers.ApproveRequest,
	)
	auth.PATCH("/requests/:id/reject",
		middleware.RequireRole(models.RoleHR),
		handlers.RejectRequest,
	)
	auth.PATCH("/requests/:id/cancel",
		middleware.RequireRole(models.RoleEmployee),
		handlers.CancelRequest,
	)
	auth.PATCH("/requests/:id/return",
		middleware.RequireRole(models.RoleEmployee),
		handlers.ReturnRequest,
	)

	// TEAM
	auth.GET("/employees", handlers.ListEmployees)
	auth.POST("/employees",
		middleware.RequireRole(models.RoleHR),
		handlers.AddEmployee,
	)
	auth.DELETE("/employees/:id",
		middleware.RequireRole(models.RoleHR),
		handlers.RemoveEmployee,
	)

	// PAYMENTS
	auth.POST("/create-payment-intent",
		middleware.RequireRole(models.RoleHR),
		handlers.CreatePaymentIntent(gateway),
	)
	auth.POST("/payments",
		middleware.RequireRole(models.RoleHR),
		handlers.RecordPayment,
	)
	auth.GET("/payments/:email", handlers.ListPayments)

	// AUDIT
	auth.GET("/audit",
		middleware.RequireRole(models.RoleHR),
		handlers.ListAuditLogs,
	)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
