package service

import (
	"errors"

	"marcapi/internal/marc"
	"marcapi/internal/pergamum"
)

// ErrInvalidID is returned for a catalogue id that is not a positive integer.
var ErrInvalidID = errors.New("id must be a positive integer")

// Error codes shared by the HTTP envelope, the conversion log and the CLI.
const (
	CodeURLRequired    = "URL_REQUIRED"
	CodeInvalidURL     = "INVALID_URL"
	CodeHostNotAllowed = "HOST_NOT_ALLOWED"
	CodeInvalidID      = "INVALID_ID"
	CodeInvalidFormat  = "INVALID_FORMAT"
	CodeInvalidRecord  = "INVALID_RECORD"
	CodeRecordTooLong  = "RECORD_TOO_LONG"
	CodeUpstream       = "UPSTREAM_ERROR"
	CodeInternal       = "INTERNAL_ERROR"
)

// ErrorCode classifies err into one of the Code constants. A nil error has no code.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, pergamum.ErrBaseURLRequired):
		return CodeURLRequired
	case errors.Is(err, pergamum.ErrInvalidBaseURL):
		return CodeInvalidURL
	case errors.Is(err, pergamum.ErrHostNotAllowed):
		return CodeHostNotAllowed
	case errors.Is(err, ErrInvalidID):
		return CodeInvalidID
	case errors.Is(err, marc.ErrUnknownFormat):
		return CodeInvalidFormat
	case errors.Is(err, marc.ErrRecordTooLong):
		return CodeRecordTooLong
	case errors.Is(err, marc.ErrDataShape),
		errors.Is(err, marc.ErrFieldFormat),
		errors.Is(err, marc.ErrLeaderLength),
		errors.Is(err, marc.ErrMalformedRecord),
		errors.Is(err, pergamum.ErrInvalidPayload):
		return CodeInvalidRecord
	case errors.Is(err, pergamum.ErrUpstream):
		return CodeUpstream
	default:
		return CodeInternal
	}
}
