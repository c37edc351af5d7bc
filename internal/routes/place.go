package routes

import (
	"net/http"

	"github.com/Toston-App/lake-sub000/internal/contracts"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreatePlace(c *gin.Context) {
	var body contracts.PlaceCreateRequest
	if !h.bindJSON(c, &body) {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	p, err := h.PlaceService.Create(c.Request.Context(), userID, body.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.PlaceResponse{
		Message: "Local criado com sucesso",
		Place:   p,
	})
}

func (h *Handler) ListPlaces(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	places, err := h.PlaceService.List(c.Request.Context(), userID, c.Query("search"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.PlaceListResponse{
		Places: places,
		Total:  len(places),
	})
}
