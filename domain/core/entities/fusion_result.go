package entities

import "time"

// FusionStatus is the terminal state of a fusion attempt
type FusionStatus string

const (
	FusionStatusCompleted FusionStatus = "completed"
	FusionStatusFailed    FusionStatus = "failed"
)

// FusionResult is a committed fusion of two or more reality-data items.
// SourceDataIDs are weak references into the catalog; the stored
// compatibility always equals the deterministic preview score.
type FusionResult struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	SourceDataIDs []string     `json:"sourceDataIds"`
	DateCreated   time.Time    `json:"dateCreated"`
	Compatibility int          `json:"compatibility"`
	Status        FusionStatus `json:"status"`
}
