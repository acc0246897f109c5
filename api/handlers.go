package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nemopss/financas/backend/db"
	"github.com/nemopss/financas/backend/models"
)

// Store is the persistence surface the handlers depend on. *db.Storage implements it.
type Store interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	GetTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	CreateTransaction(ctx context.Context, t *models.Transaction) error
	UpdateTransaction(ctx context.Context, t *models.Transaction) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error

	GetBudgets(ctx context.Context, filter models.BudgetFilter) ([]models.Budget, error)
	UpsertBudget(ctx context.Context, b *models.Budget) (created bool, err error)
	DeleteBudget(ctx context.Context, id uuid.UUID) error

	GetDashboardStats(ctx context.Context, month, year int) (*models.DashboardStats, error)
}

var _ Store = (*db.Storage)(nil)

type Handler struct {
	storage Store
	logger  *slog.Logger
	now     func() time.Time
}

func NewHandler(s Store, logger *slog.Logger) *Handler {
	return &Handler{storage: s, logger: logger, now: time.Now}
}

// Health godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  models.HealthResponse
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok", Timestamp: h.now().UTC()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msg})
}

// storeError answers a failed store call. notFound is the message for a missing
// row; internal is the generic message returned for anything unexpected.
func (h *Handler) storeError(c *gin.Context, err error, notFound, internal string) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: notFound})
	case errors.Is(err, db.ErrCategoryInUse):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "Category is used by transactions or budgets"})
	case errors.Is(err, db.ErrUnknownCategory):
		badRequest(c, "Category does not exist")
	case errors.Is(err, db.ErrConstraint):
		badRequest(c, "Invalid input")
	default:
		_ = c.Error(err)
		h.logger.ErrorContext(c.Request.Context(), internal, "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: internal})
	}
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// queryInt parses an optional positive integer query parameter. Zero means absent.
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		badRequest(c, "Invalid "+name)
		return 0, false
	}
	return n, true
}

func queryMonth(c *gin.Context) (int, bool) {
	month, ok := queryInt(c, "month")
	if ok && month > 12 {
		badRequest(c, "Invalid month")
		return 0, false
	}
	return month, ok
}
