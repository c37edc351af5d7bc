package routes

import (
	"net/http"
	"strconv"

	"github.com/Toston-App/lake-sub000/internal/contracts"
	"github.com/Toston-App/lake-sub000/internal/domain/reconcile"
	appErrors "github.com/Toston-App/lake-sub000/internal/errors"

	"github.com/gin-gonic/gin"
)

// Reconcile checks the caller's aggregates against the transaction tables.
func (h *Handler) Reconcile(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	fix := false
	if raw := c.Query("fix"); raw != "" {
		if fix, err = strconv.ParseBool(raw); err != nil {
			h.respondError(c, appErrors.NewValidationError("fix", "deve ser true ou false"))
			return
		}
	}

	report, err := h.ReconcileService.Reconcile(c.Request.Context(), userID, fix)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.ReconcileResponse{Reports: []*reconcile.Report{report}})
}
