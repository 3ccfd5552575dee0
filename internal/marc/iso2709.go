package marc

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

const (
	SubfieldMarker   byte = 0x1f
	FieldTerminator  byte = 0x1e
	RecordTerminator byte = 0x1d

	structuralBytes = "\x1d\x1e\x1f"

	directoryEntryLen = 12
	maxFieldLen       = 9999
	maxOffset         = 99999
)

// ISO2709Encoder writes the binary MARC interchange format.
type ISO2709Encoder struct{}

func (ISO2709Encoder) ContentType() string { return "application/marc" }
func (ISO2709Encoder) Extension() string   { return string(FormatISO2709) }

// Encode writes leader, directory and field bodies. Lengths and offsets count UTF-8 bytes,
// so the leader is only written once every body has been laid out.
func (ISO2709Encoder) Encode(w io.Writer, r *Record) error {
	if !r.leader.Valid() {
		return ErrLeaderLength
	}
	var body, dir bytes.Buffer
	dir.Grow(len(r.fields)*directoryEntryLen + 1)

	for _, f := range r.fields {
		start := body.Len()
		if err := writeFieldBody(&body, f); err != nil {
			return err
		}
		n := body.Len() - start
		if n > maxFieldLen {
			return fmt.Errorf("%w: field %s is %d bytes", ErrRecordTooLong, f.Tag(), n)
		}
		if start > maxOffset {
			return fmt.Errorf("%w: field %s starts at offset %d", ErrRecordTooLong, f.Tag(), start)
		}
		fmt.Fprintf(&dir, "%s%04d%05d", f.Tag(), n, start)
	}
	dir.WriteByte(FieldTerminator)
	body.WriteByte(RecordTerminator)

	base := LeaderLen + dir.Len()
	total := base + body.Len()
	if total > maxOffset {
		return fmt.Errorf("%w: record is %d bytes", ErrRecordTooLong, total)
	}

	if _, err := io.WriteString(w, string(r.leader.withLengths(total, base))); err != nil {
		return err
	}
	if _, err := w.Write(dir.Bytes()); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}

// writeFieldBody lays out one field. Payload bytes may not include the delimiters that
// frame the record, or readers scanning for terminators would split it.
func writeFieldBody(buf *bytes.Buffer, f Field) error {
	switch f := f.(type) {
	case ControlField:
		if strings.ContainsAny(f.value, structuralBytes) {
			return fmt.Errorf("%w: field %s contains a delimiter byte", ErrMalformedRecord, f.tag)
		}
		buf.WriteString(f.value)
	case DataField:
		if strings.ContainsAny(string([]rune{f.ind1, f.ind2}), structuralBytes) {
			return fmt.Errorf("%w: field %s indicator is a delimiter byte", ErrMalformedRecord, f.tag)
		}
		buf.WriteRune(f.ind1)
		buf.WriteRune(f.ind2)
		for _, sf := range f.subfields {
			if strings.ContainsRune(structuralBytes, sf.Code) || strings.ContainsAny(sf.Value, structuralBytes) {
				return fmt.Errorf("%w: field %s subfield %c contains a delimiter byte", ErrMalformedRecord, f.tag, sf.Code)
			}
			buf.WriteByte(SubfieldMarker)
			buf.WriteRune(sf.Code)
			buf.WriteString(sf.Value)
		}
	}
	buf.WriteByte(FieldTerminator)
	return nil
}

// DecodeISO2709 parses one binary record, the inverse of ISO2709Encoder. The returned
// record keeps the leader as found, including its computed lengths.
func DecodeISO2709(data []byte) (*Record, error) {
	if len(data) < LeaderLen+1 {
		return nil, fmt.Errorf("%w: %d bytes is shorter than a leader", ErrMalformedRecord, len(data))
	}
	leader := Leader(data[:LeaderLen])
	total, err := atoiASCII(data[0:5])
	if err != nil || total != len(data) {
		return nil, fmt.Errorf("%w: record length %q does not match %d bytes", ErrMalformedRecord, data[0:5], len(data))
	}
	base, err := atoiASCII(data[12:17])
	if err != nil || base <= LeaderLen || base > len(data) {
		return nil, fmt.Errorf("%w: bad base address %q", ErrMalformedRecord, data[12:17])
	}
	if data[len(data)-1] != RecordTerminator || data[base-1] != FieldTerminator {
		return nil, fmt.Errorf("%w: missing terminator", ErrMalformedRecord)
	}

	dir := data[LeaderLen : base-1]
	if len(dir)%directoryEntryLen != 0 {
		return nil, fmt.Errorf("%w: directory length %d", ErrMalformedRecord, len(dir))
	}
	bodies := data[base : len(data)-1]

	fields := make([]Field, 0, len(dir)/directoryEntryLen)
	for i := 0; i < len(dir); i += directoryEntryLen {
		entry := dir[i : i+directoryEntryLen]
		tag := string(entry[0:3])
		n, err1 := atoiASCII(entry[3:7])
		off, err2 := atoiASCII(entry[7:12])
		if err1 != nil || err2 != nil || n < 1 || off+n > len(bodies) {
			return nil, fmt.Errorf("%w: directory entry %q", ErrMalformedRecord, entry)
		}
		raw := bodies[off : off+n]
		if raw[n-1] != FieldTerminator {
			return nil, fmt.Errorf("%w: field %s is not terminated", ErrMalformedRecord, tag)
		}
		f, err := decodeFieldBody(tag, raw[:n-1])
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return NewRecord(leader, fields...)
}

func decodeFieldBody(tag string, raw []byte) (Field, error) {
	num, err := parseTag(tag)
	if err != nil {
		return nil, err
	}
	if num < controlTagLimit {
		return NewControlField(tag, string(raw))
	}

	parts := bytes.Split(raw, []byte{SubfieldMarker})
	ind := []rune(string(parts[0]))
	if len(ind) != 2 {
		return nil, fmt.Errorf("%w: field %s has %d indicator characters", ErrMalformedRecord, tag, len(ind))
	}
	subfields := make([]Subfield, 0, len(parts)-1)
	for _, p := range parts[1:] {
		s := []rune(string(p))
		if len(s) == 0 {
			continue
		}
		subfields = append(subfields, Subfield{Code: s[0], Value: string(s[1:])})
	}
	return NewDataField(tag, ind[0], ind[1], subfields...)
}

func atoiASCII(b []byte) (int, error) {
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("not a number: %q", b)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
