package main

import (
	"bytes"
	"encoding/xml"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marcapi/internal/marc"
)

const payloadFile = "testdata/dados_marc.xml"

func execute(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("PERGAMUM_ALLOWED_HOSTS", "")

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "marcconv", cmd.Use)
	assert.Equal(t, "Convert Pergamum catalogue records to MARC", cmd.Short)
	assert.True(t, cmd.SilenceUsage)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"convert", "fetch"})
}

func TestConvertMnemonic(t *testing.T) {
	out, _, err := execute(t, nil, "convert", "--format", "mrk", "--in", payloadFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "=LDR       nam a22      a 4500", lines[0])
	assert.Equal(t, "=001  000123", lines[1])
	assert.Equal(t, `=100  1\$aAssis, Machado de,$d1839-1908.`, lines[3])
	assert.Equal(t, "=245  10$aDom Casmurro /$cMachado de Assis.", lines[4])
	assert.Equal(t, `=650  \4$aRomance brasileiro.`, lines[5])
	assert.Equal(t, `=650  \4$aLiteratura brasileira.`, lines[6])
}

func TestConvertISO2709FromStdinToFile(t *testing.T) {
	payload, err := os.ReadFile(payloadFile)
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "record.mrc")
	out, _, err := execute(t, bytes.NewReader(payload), "convert", "-f", "mrc", "-o", dst)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	rec, err := marc.DecodeISO2709(data)
	require.NoError(t, err)
	assert.Equal(t, 6, rec.Len())
}

func TestConvertErrors(t *testing.T) {
	_, _, err := execute(t, nil, "convert", "--format", "pdf", "--in", payloadFile)
	assert.ErrorIs(t, err, marc.ErrUnknownFormat)

	_, stderr, err := execute(t, strings.NewReader("<Dados_marc><paragrafo>1</paragrafo><indicador/><descricao/></Dados_marc>"),
		"convert", "--format", "xml", "--log-level", "error")
	assert.ErrorIs(t, err, marc.ErrFieldFormat)
	assert.Contains(t, stderr, `"error_code":"INVALID_RECORD"`)

	_, _, err = execute(t, nil, "convert", "--in", "testdata/missing.xml")
	assert.Error(t, err)

	_, _, err = execute(t, nil, "convert", "--log-level", "loud", "--in", payloadFile)
	assert.ErrorContains(t, err, "invalid --log-level")
}

func soapServer(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	payload, err := os.ReadFile(payloadFile)
	require.NoError(t, err)

	var escaped bytes.Buffer
	require.NoError(t, xml.EscapeText(&escaped, payload))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		io.WriteString(w, `<Envelope><Body><busca_marcResponse><return>`+escaped.String()+`</return></busca_marcResponse></Body></Envelope>`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchSingle(t *testing.T) {
	var calls atomic.Int32
	srv := soapServer(t, &calls)

	out, _, err := execute(t, nil, "fetch", "--url", srv.URL, "--id", "42", "--format", "xml")
	require.NoError(t, err)

	rec, err := marc.DecodeMARCXML(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 6, rec.Len())
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchMany(t *testing.T) {
	var calls atomic.Int32
	srv := soapServer(t, &calls)
	dir := filepath.Join(t.TempDir(), "out")

	_, _, err := execute(t, nil, "fetch", "--url", srv.URL, "--id", "1,2", "--id", "3", "--format", "mrk", "--dir", dir)
	require.NoError(t, err)

	for _, name := range []string{"1.mrk", "2.mrk", "3.mrk"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.True(t, strings.HasPrefix(string(data), "=LDR  "), name)
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchErrors(t *testing.T) {
	var calls atomic.Int32
	srv := soapServer(t, &calls)

	_, _, err := execute(t, nil, "fetch", "--url", srv.URL)
	assert.ErrorContains(t, err, "at least one --id is required")

	_, _, err = execute(t, nil, "fetch", "--url", srv.URL, "--id", "1,2")
	assert.ErrorContains(t, err, "--dir is required")

	_, _, err = execute(t, nil, "fetch", "--id", "1")
	assert.ErrorContains(t, err, `required flag(s) "url" not set`)

	_, _, err = execute(t, nil, "fetch", "--url", "ftp://lib.example.edu", "--id", "1")
	assert.ErrorContains(t, err, "record 1")

	assert.Equal(t, int32(0), calls.Load())
}
