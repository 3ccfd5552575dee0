package marc

import (
	"bufio"
	"io"
	"strings"
)

// MnemonicEncoder writes the line-oriented MarcEdit text form:
//
//	=LDR       nam a22      a 4500
//	=001  12345
//	=245  10$aTitle$bSubtitle
//
// Blanks in control payloads and indicators are shown as a backslash.
type MnemonicEncoder struct{}

func (MnemonicEncoder) ContentType() string { return "text/plain; charset=utf-8" }
func (MnemonicEncoder) Extension() string   { return string(FormatMnemonic) }

func (MnemonicEncoder) Encode(w io.Writer, r *Record) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("=LDR  ")
	bw.WriteString(string(r.leader))
	bw.WriteByte('\n')

	for _, f := range r.fields {
		bw.WriteByte('=')
		bw.WriteString(f.Tag())
		bw.WriteString("  ")
		switch f := f.(type) {
		case ControlField:
			bw.WriteString(strings.ReplaceAll(f.value, " ", `\`))
		case DataField:
			bw.WriteRune(mnemonicIndicator(f.ind1))
			bw.WriteRune(mnemonicIndicator(f.ind2))
			for _, sf := range f.subfields {
				bw.WriteByte(SubfieldDelimiter)
				bw.WriteRune(sf.Code)
				bw.WriteString(sf.Value)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func mnemonicIndicator(r rune) rune {
	if r == BlankIndicator {
		return '\\'
	}
	return r
}
