package routes

import (
	"net/http"

	"github.com/Toston-App/lake-sub000/internal/contracts"
	"github.com/Toston-App/lake-sub000/internal/domain/account"
	"github.com/Toston-App/lake-sub000/internal/pkg/query"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateAccount(c *gin.Context) {
	var body contracts.AccountCreateRequest
	if !h.bindJSON(c, &body) {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	req := &account.CreateAccountRequest{
		UserId:         userID,
		Name:           body.Name,
		Type:           account.AccountType(body.Type),
		InitialBalance: money(body.InitialBalance),
	}

	acc, err := h.AccountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.AccountResponse{
		Message: "Conta criada com sucesso",
		Account: acc,
	})
}

func (h *Handler) UpdateAccount(c *gin.Context) {
	var body contracts.AccountUpdateRequest
	if !h.bindJSON(c, &body) {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	accountID, err := h.parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	req := &account.UpdateAccountRequest{
		Name:           body.Name,
		InitialBalance: moneyPtr(body.InitialBalance),
	}
	if body.Type != nil {
		t := account.AccountType(*body.Type)
		req.Type = &t
	}

	acc, err := h.AccountService.UpdateAccount(c.Request.Context(), accountID, userID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.AccountResponse{
		Message: "Conta atualizada com sucesso",
		Account: acc,
	})
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	accountID, err := h.parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.AccountService.DeleteAccount(c.Request.Context(), accountID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Conta removida com sucesso"})
}

func (h *Handler) GetAccount(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	accountID, err := h.parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	acc, err := h.AccountService.GetAccountByID(c.Request.Context(), accountID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.AccountResponse{Account: acc})
}

func (h *Handler) ListAccounts(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	page := query.ParsePageFromGin(c)
	accounts, err := h.AccountService.ListAccounts(c.Request.Context(), userID, c.Query("search"), page)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, accounts)
}
