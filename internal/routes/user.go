package routes

import (
	"net/http"

	"github.com/Toston-App/lake-sub000/internal/contracts"
	"github.com/Toston-App/lake-sub000/internal/domain/user"
	"github.com/Toston-App/lake-sub000/internal/logger"

	"github.com/gin-gonic/gin"
)

// Registration creates an owner and seeds the default categories.
func (h *Handler) Registration(c *gin.Context) {
	var body contracts.UserCreateRequest
	if !h.bindJSON(c, &body) {
		return
	}

	ctx := c.Request.Context()
	u, err := h.UserService.Create(ctx, &user.CreateUserRequest{
		Name:  body.Name,
		Email: body.Email,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.CategoryService.CreateDefaultCategories(ctx, u.Id); err != nil {
		logger.Error().Err(err).Str("user_id", u.Id.String()).Msg("Falha ao criar categorias padrão")
	}

	c.JSON(http.StatusCreated, contracts.UserResponse{
		Message: "Usuário criado com sucesso",
		User:    u,
	})
}

func (h *Handler) GetMe(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	u, err := h.UserService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.UserResponse{User: u})
}
