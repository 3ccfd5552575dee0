package marc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

const (
	MARCXMLNamespace = "http://www.loc.gov/MARC21/slim"
	MARCXMLSchema    = "http://www.loc.gov/standards/marcxml/schema/MARC21slim.xsd"
	xsiNamespace     = "http://www.w3.org/2001/XMLSchema-instance"
)

// MARCXMLEncoder writes a single namespace-qualified MARCXML record. Indent, when set, is used
// for each nesting level; the default output has no insignificant whitespace.
type MARCXMLEncoder struct {
	Indent string
}

func (MARCXMLEncoder) ContentType() string { return "application/xml; charset=utf-8" }
func (MARCXMLEncoder) Extension() string   { return string(FormatMARCXML) }

func (e MARCXMLEncoder) Encode(w io.Writer, r *Record) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	if e.Indent != "" {
		enc.Indent("", e.Indent)
	}

	root := xml.StartElement{
		Name: xml.Name{Local: "record"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns"}, Value: MARCXMLNamespace},
			{Name: xml.Name{Local: "xmlns:xsi"}, Value: xsiNamespace},
			{Name: xml.Name{Local: "xsi:schemaLocation"}, Value: MARCXMLNamespace + " " + MARCXMLSchema},
		},
	}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}
	if err := textElement(enc, "leader", nil, string(r.leader)); err != nil {
		return err
	}

	for _, f := range r.fields {
		var err error
		switch f := f.(type) {
		case ControlField:
			err = textElement(enc, "controlfield", []xml.Attr{attr("tag", f.tag)}, f.value)
		case DataField:
			err = writeDataField(enc, f)
		}
		if err != nil {
			return err
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	return enc.Flush()
}

func writeDataField(enc *xml.Encoder, f DataField) error {
	start := xml.StartElement{
		Name: xml.Name{Local: "datafield"},
		Attr: []xml.Attr{
			attr("tag", f.tag),
			attr("ind1", string(f.ind1)),
			attr("ind2", string(f.ind2)),
		},
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, sf := range f.subfields {
		if err := textElement(enc, "subfield", []xml.Attr{attr("code", string(sf.Code))}, sf.Value); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

func textElement(enc *xml.Encoder, name string, attrs []xml.Attr, text string) error {
	start := xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if text != "" {
		if err := enc.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

type xmlDataField struct {
	Tag       string        `xml:"tag,attr"`
	Ind1      string        `xml:"ind1,attr"`
	Ind2      string        `xml:"ind2,attr"`
	Subfields []xmlSubfield `xml:"subfield"`
}

type xmlSubfield struct {
	Code  string `xml:"code,attr"`
	Value string `xml:",chardata"`
}

// DecodeMARCXML reads the first record element from r, standalone or inside a collection.
func DecodeMARCXML(r io.Reader) (*Record, error) {
	d := xml.NewDecoder(r)
	var (
		inRecord bool
		leader   Leader
		fields   []Field
	)
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: no record element", ErrMalformedRecord)
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Local == "record":
				inRecord = true
			case !inRecord:
			case t.Name.Local == "leader":
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return nil, err
				}
				leader = Leader(s)
			case t.Name.Local == "controlfield":
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return nil, err
				}
				f, err := NewControlField(attrValue(t, "tag"), s)
				if err != nil {
					return nil, err
				}
				fields = append(fields, f)
			case t.Name.Local == "datafield":
				var df xmlDataField
				if err := d.DecodeElement(&df, &t); err != nil {
					return nil, err
				}
				f, err := df.field()
				if err != nil {
					return nil, err
				}
				fields = append(fields, f)
			default:
				if err := d.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if inRecord && t.Name.Local == "record" {
				return NewRecord(leader, fields...)
			}
		}
	}
}

func (df xmlDataField) field() (DataField, error) {
	subfields := make([]Subfield, 0, len(df.Subfields))
	for _, sf := range df.Subfields {
		subfields = append(subfields, Subfield{Code: firstRune(sf.Code), Value: sf.Value})
	}
	return NewDataField(df.Tag, firstRune(df.Ind1), firstRune(df.Ind2), subfields...)
}

func attrValue(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func firstRune(s string) rune {
	if s == "" {
		return BlankIndicator
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
