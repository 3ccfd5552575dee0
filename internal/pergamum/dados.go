package pergamum

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"marcapi/internal/marc"
)

// dadosMarc mirrors the busca_marc payload: three repeated elements that line up by
// position. Missing or empty indicador/descricao entries decode to "".
type dadosMarc struct {
	XMLName   xml.Name `xml:"Dados_marc"`
	Paragrafo []string `xml:"paragrafo"`
	Indicador []string `xml:"indicador"`
	Descricao []string `xml:"descricao"`
}

// ParseDadosMarc decodes a Dados_marc document into a validated input batch.
func ParseDadosMarc(payload string) (marc.InputBatch, error) {
	if strings.TrimSpace(payload) == "" {
		return marc.InputBatch{}, fmt.Errorf("%w: empty response", ErrInvalidPayload)
	}
	var d dadosMarc
	dec := xml.NewDecoder(strings.NewReader(payload))
	// The payload arrives as already decoded text inside the SOAP envelope, whatever
	// encoding its own declaration names.
	dec.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }
	if err := dec.Decode(&d); err != nil {
		return marc.InputBatch{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return marc.NewInputBatch(d.Paragrafo, d.Indicador, d.Descricao)
}
