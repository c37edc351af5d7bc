package routes

import (
	"net/http"

	"github.com/Toston-App/lake-sub000/internal/contracts"
	"github.com/Toston-App/lake-sub000/internal/domain/ledger"
	"github.com/Toston-App/lake-sub000/internal/domain/transaction"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateIncome(c *gin.Context) {
	var body contracts.IncomeCreateRequest
	if !h.bindJSON(c, &body) {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	in, err := incomeInput(&body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	res, err := h.Ledger.CreateIncome(c.Request.Context(), userID, in)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *Handler) UpdateIncome(c *gin.Context) {
	var body contracts.IncomeUpdateRequest
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

	ch := ledger.IncomeChanges{
		Amount:      moneyPtr(body.Amount),
		Description: body.Description,
	}
	if ch.Date, err = parseDatePtr("date", body.Date); err != nil {
		h.respondError(c, err)
		return
	}
	if ch.AccountId, err = parseRefUpdate(ledger.FieldAccount, body.AccountId); err != nil {
		h.respondError(c, err)
		return
	}
	if ch.SubcategoryId, err = parseRefUpdate(ledger.FieldSubcategory, body.SubcategoryId); err != nil {
		h.respondError(c, err)
		return
	}
	if ch.PlaceId, err = parseRefUpdate(ledger.FieldPlace, body.PlaceId); err != nil {
		h.respondError(c, err)
		return
	}

	res, err := h.Ledger.UpdateIncome(c.Request.Context(), userID, id, ch)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) DeleteIncome(c *gin.Context) {
	h.deleteTransaction(c, transaction.KindIncome)
}

func (h *Handler) BulkCreateIncomes(c *gin.Context) {
	var body contracts.IncomeBulkRequest
	if !h.bindJSON(c, &body) {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	inputs := make([]ledger.IncomeInput, 0, len(body.Items))
	for i := range body.Items {
		in, err := incomeInput(&body.Items[i])
		if err != nil {
			h.respondError(c, bulkError(i, err))
			return
		}
		inputs = append(inputs, in)
	}

	results, err := h.Ledger.BulkCreateIncomes(c.Request.Context(), userID, inputs)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.BulkResponse[*ledger.Result[*transaction.Income]]{Results: results})
}

func (h *Handler) BulkDeleteIncomes(c *gin.Context) {
	h.bulkDeleteTransactions(c, transaction.KindIncome)
}

func incomeInput(body *contracts.IncomeCreateRequest) (ledger.IncomeInput, error) {
	in := ledger.IncomeInput{
		Amount:      money(body.Amount),
		Description: body.Description,
	}

	var err error
	if in.Date, err = parseDate("date", body.Date); err != nil {
		return in, err
	}
	if in.AccountId, err = parseRef(ledger.FieldAccount, body.AccountId); err != nil {
		return in, err
	}
	if in.SubcategoryId, err = parseRef(ledger.FieldSubcategory, body.SubcategoryId); err != nil {
		return in, err
	}
	if in.PlaceId, err = parseRef(ledger.FieldPlace, body.PlaceId); err != nil {
		return in, err
	}
	return in, nil
}
