package routes

import (
	"net/http"

	"github.com/Toston-App/lake-sub000/internal/contracts"
	"github.com/Toston-App/lake-sub000/internal/domain/ledger"
	"github.com/Toston-App/lake-sub000/internal/domain/transaction"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateTransfer(c *gin.Context) {
	var body contracts.TransferCreateRequest
	if !h.bindJSON(c, &body) {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	in, err := transferInput(&body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	res, err := h.Ledger.CreateTransfer(c.Request.Context(), userID, in)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *Handler) UpdateTransfer(c *gin.Context) {
	var body contracts.TransferUpdateRequest
	if !h.bindJSON(c, &body) {
		return
	}

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

	ch := ledger.TransferChanges{
		Amount:      moneyPtr(body.Amount),
		Description: body.Description,
	}
	if ch.Date, err = parseDatePtr("date", body.Date); err != nil {
		h.respondError(c, err)
		return
	}
	if body.FromAcc != nil {
		from, err := parseRequiredRef(ledger.FieldFromAccount, *body.FromAcc)
		if err != nil {
			h.respondError(c, err)
			return
		}
		ch.FromAccountId = &from
	}
	if body.ToAcc != nil {
		to, err := parseRequiredRef(ledger.FieldToAccount, *body.ToAcc)
		if err != nil {
			h.respondError(c, err)
			return
		}
		ch.ToAccountId = &to
	}
	if ch.GoalId, err = parseRefUpdate(ledger.FieldGoal, body.GoalId); err != nil {
		h.respondError(c, err)
		return
	}

	res, err := h.Ledger.UpdateTransfer(c.Request.Context(), userID, id, ch)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) DeleteTransfer(c *gin.Context) {
	h.deleteTransaction(c, transaction.KindTransfer)
}

func (h *Handler) BulkCreateTransfers(c *gin.Context) {
	var body contracts.TransferBulkRequest
	if !h.bindJSON(c, &body) {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	inputs := make([]ledger.TransferInput, 0, len(body.Items))
	for i := range body.Items {
		in, err := transferInput(&body.Items[i])
		if err != nil {
			h.respondError(c, bulkError(i, err))
			return
		}
		inputs = append(inputs, in)
	}

	results, err := h.Ledger.BulkCreateTransfers(c.Request.Context(), userID, inputs)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.BulkResponse[*ledger.Result[*transaction.Transfer]]{Results: results})
}

func (h *Handler) BulkDeleteTransfers(c *gin.Context) {
	h.bulkDeleteTransactions(c, transaction.KindTransfer)
}

func transferInput(body *contracts.TransferCreateRequest) (ledger.TransferInput, error) {
	in := ledger.TransferInput{
		Amount:      money(body.Amount),
		Description: body.Description,
	}

	var err error
	if in.Date, err = parseDate("date", body.Date); err != nil {
		return in, err
	}
	if in.FromAccountId, err = parseRequiredRef(ledger.FieldFromAccount, body.FromAcc); err != nil {
		return in, err
	}
	if in.ToAccountId, err = parseRequiredRef(ledger.FieldToAccount, body.ToAcc); err != nil {
		return in, err
	}
	if in.GoalId, err = parseRef(ledger.FieldGoal, body.GoalId); err != nil {
		return in, err
	}
	return in, nil
}

