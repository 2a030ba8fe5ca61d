package valueobjects

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ID is a value object representing a unique entity identifier.
// Seed data uses short human-readable tokens, generated entities use UUIDs,
// and fusion nodes use the fusion-<timestamp>-<random> scheme, so any
// non-empty token is accepted.
type ID struct {
	value string
}

// NewID creates a new random ID
func NewID() ID {
	return ID{value: uuid.New().String()}
}

// NewFusionID creates an ID for a fusion node
func NewFusionID() ID {
	return ID{value: fmt.Sprintf("fusion-%d-%04d", time.Now().UnixMilli(), rand.Intn(10000))}
}

// ParseID creates an ID from an existing string
func ParseID(id string) (ID, error) {
	if id == "" {
		return ID{}, errors.New("id cannot be empty")
	}
	return ID{value: id}, nil
}

// String returns the string representation of the ID
func (id ID) String() string {
	return id.value
}

// Equals checks if two IDs are equal
func (id ID) Equals(other ID) bool {
	return id.value == other.value
}

// IsZero checks if the ID is the zero value
func (id ID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("ID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}
