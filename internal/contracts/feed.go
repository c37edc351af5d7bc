package contracts

import (
	"github.com/Toston-App/lake-sub000/internal/domain/feed"
	"github.com/Toston-App/lake-sub000/internal/pkg/query"
)

// FeedResponse carries one page of the merged feed; every item has a type field.
type FeedResponse struct {
	Items      []feed.Item `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Size       int         `json:"size"`
	TotalPages int         `json:"totalPages"`
}

func NewFeedResponse(r *query.Result[feed.Item]) FeedResponse {
	return FeedResponse{
		Items:      r.Data,
		Total:      r.Total,
		Page:       r.Page,
		Size:       r.Size,
		TotalPages: r.TotalPages,
	}
}
