package routes

import (
	"net/http"
	"strings"

	"github.com/Toston-App/lake-sub000/internal/contracts"
	"github.com/Toston-App/lake-sub000/internal/domain/feed"
	"github.com/Toston-App/lake-sub000/internal/domain/transaction"
	appErrors "github.com/Toston-App/lake-sub000/internal/errors"
	"github.com/Toston-App/lake-sub000/internal/pkg"
	"github.com/Toston-App/lake-sub000/internal/pkg/query"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

func (h *Handler) ListTransactions(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	params, err := parseFeedParams(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.FeedService.Query(c.Request.Context(), userID, params)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.NewFeedResponse(result))
}

func parseFeedParams(c *gin.Context) (feed.Params, error) {
	params := feed.Params{
		Order: feed.Order(strings.ToLower(c.Query("order"))),
		Page:  query.ParsePageFromGin(c),
	}
	f := &params.Filters
	f.Search = strings.TrimSpace(c.Query("search"))

	if raw := c.Query("amount"); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return params, appErrors.NewValidationError("amount", "deve ser um valor numérico")
		}
		f.Amount = &amount
		f.AmountOperator = feed.AmountOperator(strings.ToLower(c.Query("amount_operator")))
	}

	var err error
	if f.StartDate, err = pkg.ParseDatePtr(c.Query("start_date")); err != nil {
		return params, appErrors.NewValidationError("start_date", "deve estar no formato AAAA-MM-DD")
	}
	if f.EndDate, err = pkg.ParseDatePtr(c.Query("end_date")); err != nil {
		return params, appErrors.NewValidationError("end_date", "deve estar no formato AAAA-MM-DD")
	}

	if f.Accounts, err = idList(c, "accounts"); err != nil {
		return params, err
	}
	if f.Categories, err = idList(c, "categories"); err != nil {
		return params, err
	}
	if f.Places, err = idList(c, "places"); err != nil {
		return params, err
	}

	for _, value := range c.QueryArray("transaction_type") {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				f.Types = append(f.Types, transaction.Kind(strings.ToLower(part)))
			}
		}
	}

	return params, nil
}

func idList(c *gin.Context, key string) ([]ulid.ULID, error) {
	ids, err := pkg.ParseULIDList(c.QueryArray(key))
	if err != nil {
		return nil, appErrors.NewValidationError(key, "contém um id inválido")
	}
	return ids, nil
}
