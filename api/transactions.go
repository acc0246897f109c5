package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nemopss/financas/backend/models"
)

// GetTransactions godoc
// @Summary      List transactions
// @Description  Newest first by date, ties broken by creation time
// @Tags         transactions
// @Produce      json
// @Security     ApiKeyAuth
// @Param        type         query     string  false  "income or expense"
// @Param        category_id  query     string  false  "Category ID"
// @Param        limit        query     int     false  "Maximum number of rows"
// @Success      200          {array}   models.Transaction
// @Failure      400          {object}  models.ErrorResponse
// @Failure      500          {object}  models.ErrorResponse
// @Router       /api/transactions [get]
func (h *Handler) GetTransactions(c *gin.Context) {
	var filter models.TransactionFilter

	if typ := models.TransactionType(c.Query("type")); typ != "" {
		if !typ.Valid() {
			badRequest(c, "Invalid type")
			return
		}
		filter.Type = typ
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(c, "Invalid category_id")
			return
		}
		filter.CategoryID = &id
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}
	filter.Limit = limit

	transactions, err := h.storage.GetTransactions(c.Request.Context(), filter)
	if err != nil {
		h.storeError(c, err, "", "Failed to fetch transactions")
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// GetTransaction godoc
// @Summary      Get transaction
// @Tags         transactions
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Transaction ID"
// @Success      200  {object}  models.Transaction
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *Handler) GetTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	transaction, err := h.storage.GetTransaction(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, "Transaction not found", "Failed to fetch transaction")
		return
	}
	c.JSON(http.StatusOK, transaction)
}

// CreateTransaction godoc
// @Summary      Create transaction
// @Description  Date defaults to today when omitted
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        transaction  body      models.TransactionInput  true  "Transaction"
// @Success      201          {object}  models.Transaction
// @Failure      400          {object}  models.ErrorResponse
// @Failure      500          {object}  models.ErrorResponse
// @Router       /api/transactions [post]
func (h *Handler) CreateTransaction(c *gin.Context) {
	var in models.TransactionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		badRequest(c, err.Error())
		return
	}

	transaction := in.Transaction()
	if err := h.storage.CreateTransaction(c.Request.Context(), transaction); err != nil {
		h.storeError(c, err, "", "Failed to create transaction")
		return
	}
	c.JSON(http.StatusCreated, transaction)
}

// UpdateTransaction godoc
// @Summary      Replace transaction
// @Description  Every mutable field is overwritten; date is required
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id           path      string                   true  "Transaction ID"
// @Param        transaction  body      models.TransactionInput  true  "Transaction"
// @Success      200          {object}  models.Transaction
// @Failure      400          {object}  models.ErrorResponse
// @Failure      404          {object}  models.ErrorResponse
// @Failure      500          {object}  models.ErrorResponse
// @Router       /api/transactions/{id} [put]
func (h *Handler) UpdateTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in models.TransactionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		badRequest(c, err.Error())
		return
	}
	if in.Date == nil {
		badRequest(c, models.ErrDateRequired.Error())
		return
	}

	transaction := in.Transaction()
	transaction.ID = id
	if err := h.storage.UpdateTransaction(c.Request.Context(), transaction); err != nil {
		h.storeError(c, err, "Transaction not found", "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction godoc
// @Summary      Delete transaction
// @Tags         transactions
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Transaction ID"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/transactions/{id} [delete]
func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.storage.DeleteTransaction(c.Request.Context(), id); err != nil {
		h.storeError(c, err, "Transaction not found", "Failed to delete transaction")
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Transaction deleted successfully"})
}
