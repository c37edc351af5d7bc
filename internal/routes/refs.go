package routes

import (
	"time"

	"github.com/Toston-App/lake-sub000/internal/domain/transaction"
	appErrors "github.com/Toston-App/lake-sub000/internal/errors"
	"github.com/Toston-App/lake-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

func parseRef(field string, raw *string) (*ulid.ULID, error) {
	id, err := pkg.ParseULIDPtr(raw)
	if err != nil {
		return nil, appErrors.NewValidationError(field, "formato inválido")
	}
	return id, nil
}

func parseRequiredRef(field, raw string) (ulid.ULID, error) {
	id, err := pkg.ParseULID(raw)
	if err != nil {
		return ulid.ULID{}, appErrors.NewValidationError(field, "formato inválido")
	}
	return id, nil
}

// parseRefUpdate maps an absent field to no change and "" to a cleared reference.
func parseRefUpdate(field string, raw *string) (*transaction.RefUpdate, error) {
	if raw == nil {
		return nil, nil
	}
	if *raw == "" {
		return transaction.ClearRef(), nil
	}
	id, err := parseRequiredRef(field, *raw)
	if err != nil {
		return nil, err
	}
	return transaction.SetRef(id), nil
}

func parseDate(field, raw string) (time.Time, error) {
	d, err := pkg.ParseDate(raw)
	if err != nil {
		return time.Time{}, appErrors.NewValidationError(field, "deve estar no formato AAAA-MM-DD")
	}
	return d, nil
}

func parseDatePtr(field string, raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	d, err := parseDate(field, *raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// money rounds to cents, the precision of every stored amount.
func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func moneyPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := money(*d)
	return &v
}
