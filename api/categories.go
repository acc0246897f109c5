package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nemopss/financas/backend/models"
)

// GetCategories godoc
// @Summary      List categories
// @Description  All categories ordered by name
// @Tags         categories
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {array}   models.Category
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/categories [get]
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.storage.GetCategories(c.Request.Context())
	if err != nil {
		h.storeError(c, err, "", "Failed to fetch categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategory godoc
// @Summary      Get category
// @Tags         categories
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  models.Category
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	category, err := h.storage.GetCategory(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, "Category not found", "Failed to fetch category")
		return
	}
	c.JSON(http.StatusOK, category)
}

// CreateCategory godoc
// @Summary      Create category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        category  body      models.CategoryInput  true  "Category"
// @Success      201       {object}  models.Category
// @Failure      400       {object}  models.ErrorResponse
// @Failure      500       {object}  models.ErrorResponse
// @Router       /api/categories [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	var in models.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		badRequest(c, err.Error())
		return
	}

	category := in.Category()
	if err := h.storage.CreateCategory(c.Request.Context(), category); err != nil {
		h.storeError(c, err, "", "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

// DeleteCategory godoc
// @Summary      Delete category
// @Description  Refused with 409 while any transaction or budget references the category
// @Tags         categories
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.storage.DeleteCategory(c.Request.Context(), id); err != nil {
		h.storeError(c, err, "Category not found", "Failed to delete category")
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Category deleted successfully"})
}
