package model

import "time"

// Conversion status values.
const (
	ConversionSucceeded = "succeeded"
	ConversionFailed    = "failed"
)

// Conversion is one entry of the conversion log. It records what was asked for and how it
// went; the produced record itself is never stored.
type Conversion struct {
	ID         string    `json:"id"`
	BaseURL    string    `json:"base_url"`
	RecordID   int64     `json:"record_id"`
	Format     string    `json:"format"`
	Status     string    `json:"status"`
	ErrorCode  string    `json:"error_code,omitempty"`
	Bytes      int64     `json:"bytes"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}
