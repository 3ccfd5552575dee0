// Package marc holds the in-memory bibliographic record model, the builders that turn
// Pergamum's parallel tag/indicator/content sequences into records, and the encoders for
// ISO 2709, MARCXML and mnemonic text.
//
// A Record is immutable once built: accessors hand out copies, so a single Record may be
// encoded from many goroutines at once.
package marc

import "fmt"

// LeaderLen is the fixed size of a MARC leader.
const LeaderLen = 24

// DefaultLeader is the leader given to every assembled record. Record length (0-4) and base
// address of data (12-16) are placeholders filled in by the ISO 2709 encoder.
const DefaultLeader Leader = "     nam a22      a 4500"

// Leader is the 24-character record header.
type Leader string

// Valid reports whether the leader has the fixed MARC length.
func (l Leader) Valid() bool {
	return len(l) == LeaderLen
}

// withLengths returns a copy of the leader carrying the computed record length and base
// address, with the character coding scheme set to UCS/Unicode.
func (l Leader) withLengths(recordLen, baseAddr int) Leader {
	b := []byte(l)
	copy(b[0:5], fmt.Sprintf("%05d", recordLen))
	b[9] = 'a'
	copy(b[12:17], fmt.Sprintf("%05d", baseAddr))
	return Leader(b)
}

// Subfield is a coded component of a data field.
type Subfield struct {
	Code  rune
	Value string
}

// Field is either a ControlField or a DataField. The set is closed: no other package can
// implement it.
type Field interface {
	Tag() string
	isField()
}

// ControlField carries an unstructured payload and is used for tags 000-009.
type ControlField struct {
	tag   string
	value string
}

// NewControlField validates tag and returns a control field holding value verbatim.
func NewControlField(tag, value string) (ControlField, error) {
	n, err := parseTag(tag)
	if err != nil {
		return ControlField{}, err
	}
	if n >= controlTagLimit {
		return ControlField{}, &FieldFormatError{Index: -1, Tag: tag, Reason: "control fields require a tag below 010"}
	}
	return ControlField{tag: tag, value: value}, nil
}

func (f ControlField) Tag() string   { return f.tag }
func (f ControlField) Value() string { return f.value }
func (ControlField) isField()        {}

// DataField carries two indicators and an ordered list of subfields; used for tags 010-999.
type DataField struct {
	tag       string
	ind1      rune
	ind2      rune
	subfields []Subfield
}

// NewDataField validates tag and copies subfields into a new data field.
func NewDataField(tag string, ind1, ind2 rune, subfields ...Subfield) (DataField, error) {
	n, err := parseTag(tag)
	if err != nil {
		return DataField{}, err
	}
	if n < controlTagLimit {
		return DataField{}, &FieldFormatError{Index: -1, Tag: tag, Reason: "data fields require a tag of 010 or above"}
	}
	sf := make([]Subfield, len(subfields))
	copy(sf, subfields)
	return DataField{tag: tag, ind1: ind1, ind2: ind2, subfields: sf}, nil
}

func (f DataField) Tag() string { return f.tag }

// Indicators returns the first and second indicator.
func (f DataField) Indicators() (rune, rune) { return f.ind1, f.ind2 }

// Subfields returns a copy of the subfields in input order.
func (f DataField) Subfields() []Subfield {
	out := make([]Subfield, len(f.subfields))
	copy(out, f.subfields)
	return out
}

func (DataField) isField() {}

// Record is a leader plus an ordered list of fields.
type Record struct {
	leader Leader
	fields []Field
}

// NewRecord returns a record owning a copy of fields.
func NewRecord(leader Leader, fields ...Field) (*Record, error) {
	if !leader.Valid() {
		return nil, fmt.Errorf("%w: got %d characters", ErrLeaderLength, len(leader))
	}
	fs := make([]Field, len(fields))
	copy(fs, fields)
	return &Record{leader: leader, fields: fs}, nil
}

// Leader returns the stored leader, without computed lengths.
func (r *Record) Leader() Leader { return r.leader }

// Fields returns a copy of the field list in record order.
func (r *Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.fields) }
