package marc

import (
	"errors"
	"strings"
)

// LineBreak is the marker Pergamum uses to pack repeated occurrences of a field into a
// single indicator/content pair.
const LineBreak = "<br>"

// InputBatch is the validated form of Pergamum's three parallel sequences. Element i of each
// sequence describes one field occurrence before line-break expansion. An absent indicator or
// content is the empty string.
type InputBatch struct {
	tags       []string
	indicators []string
	contents   []string
}

// NewInputBatch copies the three sequences, rejecting them with a *DataShapeError when their
// lengths differ.
func NewInputBatch(tags, indicators, contents []string) (InputBatch, error) {
	if len(tags) != len(indicators) || len(tags) != len(contents) {
		return InputBatch{}, &DataShapeError{Tags: len(tags), Indicators: len(indicators), Contents: len(contents)}
	}
	return InputBatch{
		tags:       append([]string(nil), tags...),
		indicators: append([]string(nil), indicators...),
		contents:   append([]string(nil), contents...),
	}, nil
}

// Len returns the number of triples before expansion.
func (b InputBatch) Len() int { return len(b.tags) }

// Triple returns the tag, indicator and content at position i.
func (b InputBatch) Triple(i int) (tag, indicators, content string) {
	return b.tags[i], b.indicators[i], b.contents[i]
}

// ExpansionStrategy selects how one triple fans out into fields.
type ExpansionStrategy int

const (
	// ExpandNone emits the triple as a single field.
	ExpandNone ExpansionStrategy = iota
	// ExpandBoth splits indicator and content on LineBreak and pairs them positionally.
	ExpandBoth
	// ExpandContentOnly splits content on LineBreak and reuses the indicator for each piece.
	ExpandContentOnly
)

func (s ExpansionStrategy) String() string {
	switch s {
	case ExpandBoth:
		return "expand_both"
	case ExpandContentOnly:
		return "expand_content_only"
	default:
		return "none"
	}
}

// StrategyFor picks the expansion for one triple. The indicator is checked first, so a
// marker in the indicator always means both sides are split.
func StrategyFor(indicators, content string) ExpansionStrategy {
	switch {
	case strings.Contains(indicators, LineBreak):
		return ExpandBoth
	case strings.Contains(content, LineBreak):
		return ExpandContentOnly
	default:
		return ExpandNone
	}
}

// Assemble builds a record with DefaultLeader from the batch. It fails on the first tag that
// is not a three-digit number; no record is returned in that case.
func Assemble(b InputBatch) (*Record, error) {
	fields := make([]Field, 0, b.Len())
	for i := 0; i < b.Len(); i++ {
		var err error
		tag, ind, content := b.Triple(i)
		if fields, err = expand(fields, tag, ind, content); err != nil {
			var ffe *FieldFormatError
			if errors.As(err, &ffe) {
				ffe.Index = i
			}
			return nil, err
		}
	}
	return &Record{leader: DefaultLeader, fields: fields}, nil
}

func expand(dst []Field, tag, ind, content string) ([]Field, error) {
	switch StrategyFor(ind, content) {
	case ExpandBoth:
		inds := strings.Split(ind, LineBreak)
		contents := strings.Split(content, LineBreak)
		// Extra segments on either side are dropped without error. Pergamum has always
		// behaved this way; keep it until an upstream fix says otherwise.
		n := min(len(inds), len(contents))
		for j := 0; j < n; j++ {
			f, err := BuildField(tag, inds[j], contents[j])
			if err != nil {
				return dst, err
			}
			dst = append(dst, f)
		}
	case ExpandContentOnly:
		for _, c := range strings.Split(content, LineBreak) {
			f, err := BuildField(tag, ind, c)
			if err != nil {
				return dst, err
			}
			dst = append(dst, f)
		}
	default:
		f, err := BuildField(tag, ind, content)
		if err != nil {
			return dst, err
		}
		dst = append(dst, f)
	}
	return dst, nil
}
