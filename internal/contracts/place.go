package contracts

import "github.com/Toston-App/lake-sub000/internal/domain/place"

type PlaceCreateRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type PlaceResponse struct {
	Message string       `json:"message,omitempty"`
	Place   *place.Place `json:"place"`
}

type PlaceListResponse struct {
	Places []*place.Place `json:"places"`
	Total  int            `json:"total"`
}
