package routes

import (
	"net/http"

	"github.com/Toston-App/lake-sub000/internal/contracts"
	"github.com/Toston-App/lake-sub000/internal/domain/transaction"
	appErrors "github.com/Toston-App/lake-sub000/internal/errors"
	"github.com/Toston-App/lake-sub000/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

func (h *Handler) deleteTransaction(c *gin.Context, kind transaction.Kind) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	id, err := h.parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	switch kind {
	case transaction.KindExpense:
		err = h.Ledger.DeleteExpense(ctx, userID, id)
	case transaction.KindIncome:
		err = h.Ledger.DeleteIncome(ctx, userID, id)
	case transaction.KindTransfer:
		err = h.Ledger.DeleteTransfer(ctx, userID, id)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) bulkDeleteTransactions(c *gin.Context, kind transaction.Kind) {
	var body contracts.BulkDeleteRequest
	if !h.bindJSON(c, &body) {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ids := make([]ulid.ULID, 0, len(body.Ids))
	for i, raw := range body.Ids {
		id, err := pkg.ParseULID(raw)
		if err != nil {
			h.respondError(c, bulkError(i, appErrors.NewValidationError("id", "formato inválido")))
			return
		}
		ids = append(ids, id)
	}

	if err := h.Ledger.BulkDelete(c.Request.Context(), userID, kind, ids); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Transações removidas com sucesso"})
}

func bulkError(index int, err error) error {
	appErr := appErrors.FromError(err)
	details := make(map[string]interface{}, len(appErr.Details)+1)
	for k, v := range appErr.Details {
		details[k] = v
	}
	details["index"] = index
	return appErr.WithDetails(details)
}
