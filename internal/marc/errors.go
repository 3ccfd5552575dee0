package marc

import (
	"errors"
	"fmt"
)

var (
	ErrDataShape       = errors.New("parallel sequences differ in length")
	ErrFieldFormat     = errors.New("invalid field tag")
	ErrLeaderLength    = errors.New("leader must be 24 characters")
	ErrRecordTooLong   = errors.New("record exceeds ISO 2709 limits")
	ErrMalformedRecord = errors.New("malformed record")
)

// DataShapeError reports tag, indicator and content sequences of unequal length.
type DataShapeError struct {
	Tags       int
	Indicators int
	Contents   int
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("%s: %d tags, %d indicators, %d contents", ErrDataShape, e.Tags, e.Indicators, e.Contents)
}

func (e *DataShapeError) Is(target error) bool { return target == ErrDataShape }

// FieldFormatError reports a tag that is not three ASCII digits, or one that does not suit
// the requested field kind. Index is the position of the source triple in the input batch,
// or -1 when the field was built outside an assembly.
type FieldFormatError struct {
	Index  int
	Tag    string
	Reason string
}

func (e *FieldFormatError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s %q at position %d: %s", ErrFieldFormat, e.Tag, e.Index, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", ErrFieldFormat, e.Tag, e.Reason)
}

func (e *FieldFormatError) Is(target error) bool { return target == ErrFieldFormat }
