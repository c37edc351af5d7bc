package routes

import (
	"net/http"

	"github.com/Toston-App/lake-sub000/internal/contracts"
	"github.com/Toston-App/lake-sub000/internal/domain/ledger"
	"github.com/Toston-App/lake-sub000/internal/domain/transaction"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateExpense(c *gin.Context) {
	var body contracts.ExpenseCreateRequest
	if !h.bindJSON(c, &body) {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	in, err := expenseInput(&body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	res, err := h.Ledger.CreateExpense(c.Request.Context(), userID, in)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *Handler) UpdateExpense(c *gin.Context) {
	var body contracts.ExpenseUpdateRequest
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

	ch := ledger.ExpenseChanges{
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
	if ch.CategoryId, err = parseRefUpdate(ledger.FieldCategory, body.CategoryId); err != nil {
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
	if ch.GoalId, err = parseRefUpdate(ledger.FieldGoal, body.GoalId); err != nil {
		h.respondError(c, err)
		return
	}

	res, err := h.Ledger.UpdateExpense(c.Request.Context(), userID, id, ch)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) DeleteExpense(c *gin.Context) {
	h.deleteTransaction(c, transaction.KindExpense)
}

func (h *Handler) BulkCreateExpenses(c *gin.Context) {
	var body contracts.ExpenseBulkRequest
	if !h.bindJSON(c, &body) {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	inputs := make([]ledger.ExpenseInput, 0, len(body.Items))
	for i := range body.Items {
		in, err := expenseInput(&body.Items[i])
		if err != nil {
			h.respondError(c, bulkError(i, err))
			return
		}
		inputs = append(inputs, in)
	}

	results, err := h.Ledger.BulkCreateExpenses(c.Request.Context(), userID, inputs)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.BulkResponse[*ledger.Result[*transaction.Expense]]{Results: results})
}

func (h *Handler) BulkDeleteExpenses(c *gin.Context) {
	h.bulkDeleteTransactions(c, transaction.KindExpense)
}

func expenseInput(body *contracts.ExpenseCreateRequest) (ledger.ExpenseInput, error) {
	in := ledger.ExpenseInput{
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
	if in.CategoryId, err = parseRef(ledger.FieldCategory, body.CategoryId); err != nil {
		return in, err
	}
	if in.SubcategoryId, err = parseRef(ledger.FieldSubcategory, body.SubcategoryId); err != nil {
		return in, err
	}
	if in.PlaceId, err = parseRef(ledger.FieldPlace, body.PlaceId); err != nil {
		return in, err
	}
	if in.GoalId, err = parseRef(ledger.FieldGoal, body.GoalId); err != nil {
		return in, err
	}
	return in, nil
}

