package marc

import (
	"bytes"
	"errors"
	"io"
)

// ErrUnknownFormat is returned by EncoderFor for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown output format")

// Format names an output representation by its conventional file extension.
type Format string

const (
	FormatISO2709  Format = "mrc"
	FormatMARCXML  Format = "xml"
	FormatMnemonic Format = "mrk"
)

// Encoder serializes a record. Implementations never reorder or modify fields.
type Encoder interface {
	Encode(w io.Writer, r *Record) error
	ContentType() string
	Extension() string
}

// EncoderFor returns the encoder registered for f.
func EncoderFor(f Format) (Encoder, error) {
	switch f {
	case FormatISO2709:
		return ISO2709Encoder{}, nil
	case FormatMARCXML:
		return MARCXMLEncoder{}, nil
	case FormatMnemonic:
		return MnemonicEncoder{}, nil
	default:
		return nil, ErrUnknownFormat
	}
}

// EncodeToBytes runs enc into a buffer so that callers only ever see complete output.
func EncodeToBytes(enc Encoder, r *Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := enc.Encode(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
