package amqp

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/Toston-App/lake-sub000/internal/domain/transaction"

	"github.com/shopspring/decimal"
)

// IngestMessage is a create request produced by an importer (bank statement, receipt, chat).
type IngestMessage struct {
	MessageId     string           `json:"message_id"`
	UserId        string           `json:"user_id"`
	Kind          transaction.Kind `json:"kind"`
	Amount        decimal.Decimal  `json:"amount"`
	Date          string           `json:"date"`
	Description   string           `json:"description"`
	AccountId     *string          `json:"account_id,omitempty"`
	CategoryId    *string          `json:"category_id,omitempty"`
	SubcategoryId *string          `json:"subcategory_id,omitempty"`
	PlaceId       *string          `json:"place_id,omitempty"`
	GoalId        *string          `json:"goal_id,omitempty"`
	FromAcc       *string          `json:"from_acc,omitempty"`
	ToAcc         *string          `json:"to_acc,omitempty"`
	Timestamp     time.Time        `json:"timestamp"`
}

func (m *IngestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func IngestMessageFromJSON(data []byte) (*IngestMessage, error) {
	var msg IngestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}
