package pkg

import (
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

func GenerateULID() string {
	return GenerateULIDObject().String()
}

func GenerateULIDObject() ulid.ULID {
	entropy := ulid.DefaultEntropy()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
}

func ParseULID(ulidStr string) (ulid.ULID, error) {
	if ulidStr == "" {
		return ulid.ULID{}, errors.New("ULID string cannot be empty")
	}

	parsedULID, err := ulid.Parse(ulidStr)
	if err != nil {
		return ulid.ULID{}, errors.New("invalid ULID format")
	}

	return parsedULID, nil
}

func IsEmptyULID(id ulid.ULID) bool {
	return id == ulid.ULID{}
}

func ParseULIDPtr(ulidStr *string) (*ulid.ULID, error) {
	if ulidStr == nil || *ulidStr == "" {
		return nil, nil
	}
	parsed, err := ParseULID(*ulidStr)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// ParseULIDList accepts repeated values and comma separated lists.
func ParseULIDList(values []string) ([]ulid.ULID, error) {
	ids := make([]ulid.ULID, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := ParseULID(part)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func ULIDStrings(ids []ulid.ULID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func StringPtr(id *ulid.ULID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func SameULID(a, b *ulid.ULID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
