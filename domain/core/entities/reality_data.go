package entities

import "time"

// DataType classifies a reality-data catalog item
type DataType string

const (
	DataTypeModel DataType = "model"
	DataTypeVideo DataType = "video"
	DataTypeAudio DataType = "audio"
	DataTypeCode  DataType = "code"
	DataTypeText  DataType = "text"
)

// ValidDataType reports whether t names a known data type
func ValidDataType(t DataType) bool {
	switch t {
	case DataTypeModel, DataTypeVideo, DataTypeAudio, DataTypeCode, DataTypeText:
		return true
	}
	return false
}

// RealityData is a typed content unit eligible as fusion input. The catalog
// is seeded at startup and read-only; fusions never mutate it.
type RealityData struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        DataType  `json:"type"`
	Description string    `json:"description"`
	DateCreated time.Time `json:"dateCreated"`
	Size        string    `json:"size"`
	Tags        []string  `json:"tags"`
}
