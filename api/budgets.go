package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nemopss/financas/backend/models"
)

// GetBudgets godoc
// @Summary      List budgets
// @Description  Most recently created first
// @Tags         budgets
// @Produce      json
// @Security     ApiKeyAuth
// @Param        month  query     int  false  "Month (1-12)"
// @Param        year   query     int  false  "Year"
// @Success      200    {array}   models.Budget
// @Failure      400    {object}  models.ErrorResponse
// @Failure      500    {object}  models.ErrorResponse
// @Router       /api/budgets [get]
func (h *Handler) GetBudgets(c *gin.Context) {
	month, ok := queryMonth(c)
	if !ok {
		return
	}
	year, ok := queryInt(c, "year")
	if !ok {
		return
	}

	budgets, err := h.storage.GetBudgets(c.Request.Context(), models.BudgetFilter{Month: month, Year: year})
	if err != nil {
		h.storeError(c, err, "", "Failed to fetch budgets")
		return
	}
	c.JSON(http.StatusOK, budgets)
}

// CreateBudget godoc
// @Summary      Create or overwrite budget
// @Description  One budget per category and month; an existing one has its amount replaced (200) instead of a new row (201)
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        budget  body      models.BudgetInput  true  "Budget"
// @Success      200     {object}  models.Budget
// @Success      201     {object}  models.Budget
// @Failure      400     {object}  models.ErrorResponse
// @Failure      500     {object}  models.ErrorResponse
// @Router       /api/budgets [post]
func (h *Handler) CreateBudget(c *gin.Context) {
	var in models.BudgetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		badRequest(c, err.Error())
		return
	}

	budget := in.Budget()
	created, err := h.storage.UpsertBudget(c.Request.Context(), budget)
	if err != nil {
		h.storeError(c, err, "", "Failed to create budget")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, budget)
}

// DeleteBudget godoc
// @Summary      Delete budget
// @Tags         budgets
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Budget ID"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/budgets/{id} [delete]
func (h *Handler) DeleteBudget(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.storage.DeleteBudget(c.Request.Context(), id); err != nil {
		h.storeError(c, err, "Budget not found", "Failed to delete budget")
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Budget deleted successfully"})
}
