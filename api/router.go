package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/nemopss/financas/backend/docs"
	"github.com/nemopss/financas/backend/logging"
	"github.com/nemopss/financas/backend/models"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter wires every route. When jwtSecret is non-empty the /api group requires a bearer token.
func NewRouter(h *Handler, logger *slog.Logger, jwtSecret string) *gin.Engine {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddAllowHeaders("Authorization")

	r := gin.New()
	r.Use(
		logging.Middleware(logger),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			logger.ErrorContext(c.Request.Context(), "panic recovered", "panic", recovered)
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		}),
		cors.New(corsConfig),
	)

	r.GET("/health", h.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	if jwtSecret != "" {
		api.Use(AuthMiddleware(jwtSecret))
	}

	api.GET("/categories", h.GetCategories)
	api.GET("/categories/:id", h.GetCategory)
	api.POST("/categories", h.CreateCategory)
	api.DELETE("/categories/:id", h.DeleteCategory)

	api.GET("/transactions", h.GetTransactions)
	api.GET("/transactions/:id", h.GetTransaction)
	api.POST("/transactions", h.CreateTransaction)
	api.PUT("/transactions/:id", h.UpdateTransaction)
	api.DELETE("/transactions/:id", h.DeleteTransaction)

	api.GET("/budgets", h.GetBudgets)
	api.POST("/budgets", h.CreateBudget)
	api.DELETE("/budgets/:id", h.DeleteBudget)

	api.GET("/dashboard/stats", h.GetDashboardStats)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Not found"})
	})

	return r
}
