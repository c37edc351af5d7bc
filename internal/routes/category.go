package routes

import (
	"net/http"
	"strconv"

	"github.com/Toston-App/lake-sub000/internal/contracts"
	"github.com/Toston-App/lake-sub000/internal/domain/category"
	appErrors "github.com/Toston-App/lake-sub000/internal/errors"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateCategory(c *gin.Context) {
	var body contracts.CategoryCreateRequest
	if !h.bindJSON(c, &body) {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	cat := &category.Category{
		UserId:   userID,
		Name:     body.Name,
		Icon:     body.Icon,
		IsIncome: body.IsIncome,
	}
	if err := h.CategoryService.Create(c.Request.Context(), cat); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.CategoryResponse{
		Message:  "Categoria criada com sucesso",
		Category: cat,
	})
}

func (h *Handler) CreateSubcategory(c *gin.Context) {
	var body contracts.SubcategoryCreateRequest
	if !h.bindJSON(c, &body) {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	categoryID, err := h.parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	sub := &category.Subcategory{
		UserId:     userID,
		CategoryId: categoryID,
		Name:       body.Name,
	}
	if err := h.CategoryService.CreateSubcategory(c.Request.Context(), sub); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.SubcategoryResponse{
		Message:     "Subcategoria criada com sucesso",
		Subcategory: sub,
	})
}

func (h *Handler) GetCategory(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	categoryID, err := h.parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	cat, err := h.CategoryService.GetByID(c.Request.Context(), categoryID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CategoryResponse{Category: cat})
}

func (h *Handler) ListCategories(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var isIncome *bool
	if raw := c.Query("is_income"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("is_income", "deve ser true ou false"))
			return
		}
		isIncome = &v
	}

	categories, err := h.CategoryService.List(c.Request.Context(), userID, isIncome)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CategoryListResponse{
		Categories: categories,
		Total:      len(categories),
	})
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	categoryID, err := h.parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.CategoryService.Delete(c.Request.Context(), categoryID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Categoria removida com sucesso"})
}
