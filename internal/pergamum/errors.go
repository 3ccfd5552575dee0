package pergamum

import (
	"errors"
	"fmt"
)

var (
	ErrBaseURLRequired = errors.New("base url is required")
	ErrInvalidBaseURL  = errors.New("invalid base url")
	ErrHostNotAllowed  = errors.New("host is not allowed")
	ErrUpstream        = errors.New("pergamum web service failed")
	ErrInvalidPayload  = errors.New("invalid Dados_marc payload")
)

// UpstreamError describes a failed busca_marc call: a transport error, a non-2xx status or a
// SOAP fault.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Fault      string
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Fault != "":
		return fmt.Sprintf("%s: %s: soap fault: %s", ErrUpstream, e.Endpoint, e.Fault)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %s: status %d", ErrUpstream, e.Endpoint, e.StatusCode)
	default:
		return fmt.Sprintf("%s: %s: %v", ErrUpstream, e.Endpoint, e.Err)
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }
