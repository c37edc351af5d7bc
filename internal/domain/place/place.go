package place

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Place is where a transaction happened; it carries no aggregates.
type Place struct {
	Id        ulid.ULID `json:"id"`
	UserId    ulid.ULID `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
