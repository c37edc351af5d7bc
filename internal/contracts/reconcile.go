package contracts

import "github.com/Toston-App/lake-sub000/internal/domain/reconcile"

type ReconcileResponse struct {
	Reports []*reconcile.Report `json:"reports"`
}
