package router

import (
	"net/http"

	"github.com/marco0212/wedding-tracker/internal/config"
	"github.com/marco0212/wedding-tracker/internal/handler"
	"github.com/marco0212/wedding-tracker/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// SetupRouter configures the gin engine and wires every route.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(),
		middleware.CORS(),
		middleware.Metrics(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// registration and login need no token
	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.Issuer,
		cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	// everything else requires a bearer token
	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret, db))

	protected.GET("/auth/me", handler.GetMe)

	scheduleHandler := handler.NewScheduleHandler(db)
	protected.GET("/schedules", scheduleHandler.ListSchedules)
	protected.POST("/schedules", scheduleHandler.CreateSchedule)
	protected.PUT("/schedules/:id", scheduleHandler.UpdateSchedule)
	protected.DELETE("/schedules/:id", scheduleHandler.DeleteSchedule)

	budgetHandler := handler.NewBudgetHandler(db)
	protected.GET("/budgets", budgetHandler.ListBudgets)
	protected.GET("/budgets/summary", budgetHandler.GetSummary)
	protected.POST("/budgets", budgetHandler.CreateBudget)
	protected.PUT("/budgets/:id", budgetHandler.UpdateBudget)
	protected.DELETE("/budgets/:id", budgetHandler.DeleteBudget)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
