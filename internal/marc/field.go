package marc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// SubfieldDelimiter separates subfields in Pergamum content strings.
	SubfieldDelimiter = '$'

	// BlankIndicator is the default value of an absent indicator.
	BlankIndicator = ' '

	controlTagLimit = 10
)

// parseTag returns the numeric value of a three-digit tag.
func parseTag(tag string) (int, error) {
	if len(tag) != 3 {
		return 0, &FieldFormatError{Index: -1, Tag: tag, Reason: "tag must be exactly 3 characters"}
	}
	n := 0
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		if c < '0' || c > '9' {
			return 0, &FieldFormatError{Index: -1, Tag: tag, Reason: "tag must be a non-negative integer"}
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

// ParseIndicators extracts the two indicators from a Pergamum indicator string.
//
// Pergamum pads indicator pairs with filler, e.g. " 1 0 ", "1 0 " or "1 0". After trailing
// whitespace is removed only two offsets carry meaning: three from the end and the last
// character. One- and two-character leftovers are a short form naming only the first
// indicator. Malformed input is never an error; blanks fill whatever is missing.
func ParseIndicators(raw string) (rune, rune) {
	ind1, ind2 := BlankIndicator, BlankIndicator
	if raw == "" {
		return ind1, ind2
	}

	r := []rune(strings.TrimRightFunc(raw, unicode.IsSpace))
	if len(r) <= 2 {
		if s := strings.TrimSpace(string(r)); s != "" {
			ind1, _ = utf8.DecodeRuneInString(s)
		}
		return ind1, ind2
	}
	return r[len(r)-3], r[len(r)-1]
}

// SplitSubfields splits a content string such as "$aTitle $bSubtitle" into subfields.
// Text before the first delimiter is never a subfield and is dropped. A code with nothing
// after it yields an empty value; a delimiter followed directly by another delimiter carries
// no code and is skipped.
func SplitSubfields(content string) []Subfield {
	if content == "" {
		return nil
	}
	segments := strings.Split(content, string(SubfieldDelimiter))[1:]
	out := make([]Subfield, 0, len(segments))
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		code, size := utf8.DecodeRuneInString(seg)
		out = append(out, Subfield{Code: code, Value: strings.TrimSpace(seg[size:])})
	}
	return out
}

// BuildField turns one (tag, indicator, content) triple into a field. Tags below 010 give a
// control field whose payload is content unmodified; the indicator string is ignored.
func BuildField(tag, indicators, content string) (Field, error) {
	tag = strings.TrimSpace(tag)
	n, err := parseTag(tag)
	if err != nil {
		return nil, err
	}
	if n < controlTagLimit {
		return ControlField{tag: tag, value: content}, nil
	}
	ind1, ind2 := ParseIndicators(indicators)
	return DataField{tag: tag, ind1: ind1, ind2: ind2, subfields: SplitSubfields(content)}, nil
}
