// Package pergamum talks to the Pergamum library catalogue web service and turns its
// busca_marc payload into a marc.InputBatch.
package pergamum

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	servicePath  = "/web_service/servidor_ws.php"
	soapEnvNS    = "http://schemas.xmlsoap.org/soap/envelope/"
	maxBodyBytes = 8 << 20
)

// Client fetches raw busca_marc payloads for one Pergamum installation.
type Client interface {
	// FetchRecord returns the Dados_marc XML document for the catalogue entry id.
	FetchRecord(ctx context.Context, id int64) (string, error)
}

// Options configure a SOAPClient.
type Options struct {
	Namespace string
	Timeout   time.Duration
	// Transport defaults to an otelhttp-instrumented http.DefaultTransport.
	Transport http.RoundTripper
}

// SOAPClient calls busca_marc over SOAP 1.1. It is safe for concurrent use.
type SOAPClient struct {
	endpoint  string
	namespace string
	http      *http.Client
}

var _ Client = (*SOAPClient)(nil)

// NewSOAPClient returns a client for the installation rooted at baseURL.
func NewSOAPClient(baseURL string, opt Options) *SOAPClient {
	rt := opt.Transport
	if rt == nil {
		rt = otelhttp.NewTransport(http.DefaultTransport)
	}
	return &SOAPClient{
		endpoint:  strings.TrimRight(baseURL, "/") + servicePath,
		namespace: opt.Namespace,
		http:      &http.Client{Transport: rt, Timeout: opt.Timeout},
	}
}

// Endpoint returns the SOAP endpoint URL.
func (c *SOAPClient) Endpoint() string { return c.endpoint }

type soapEnvelope struct {
	XMLName xml.Name `xml:"soap:Envelope"`
	Soap    string   `xml:"xmlns:soap,attr"`
	Body    struct {
		Call buscaMarc `xml:"ns:busca_marc"`
	} `xml:"soap:Body"`
}

type buscaMarc struct {
	NS     string `xml:"xmlns:ns,attr"`
	Codigo int64  `xml:"codigo_acervo_temp"`
}

func (c *SOAPClient) FetchRecord(ctx context.Context, id int64) (string, error) {
	env := soapEnvelope{Soap: soapEnvNS}
	env.Body.Call = buscaMarc{NS: c.namespace, Codigo: id}
	payload, err := xml.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("marshal soap request: %w", err)
	}

	body := append([]byte(xml.Header), payload...)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build soap request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", strconv.Quote(c.namespace+"#busca_marc"))
	// The service mangles compressed responses.
	req.Header.Set("Accept-Encoding", "identity")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &UpstreamError{Endpoint: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &UpstreamError{Endpoint: c.endpoint, Err: err}
	}

	result, fault, err := parseSOAPResponse(body)
	switch {
	case fault != "":
		return "", &UpstreamError{Endpoint: c.endpoint, StatusCode: resp.StatusCode, Fault: fault}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", &UpstreamError{Endpoint: c.endpoint, StatusCode: resp.StatusCode}
	case err != nil:
		return "", &UpstreamError{Endpoint: c.endpoint, Err: err}
	}
	return result, nil
}

// parseSOAPResponse returns the text of the first element inside the SOAP body's response
// element (the busca_marc return value), or the fault string when the body holds a Fault.
func parseSOAPResponse(body []byte) (result, fault string, err error) {
	d := xml.NewDecoder(bytes.NewReader(body))
	depth, bodyDepth := 0, -1
	var text strings.Builder

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			return "", "", errors.New("soap body not found")
		}
		if err != nil {
			return "", "", fmt.Errorf("decode soap response: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case t.Name.Local == "Body" && bodyDepth < 0:
				bodyDepth = depth
			case t.Name.Local == "Fault" && bodyDepth > 0:
				var f struct {
					String string `xml:"faultstring"`
				}
				if err := d.DecodeElement(&f, &t); err != nil {
					return "", "", fmt.Errorf("decode soap fault: %w", err)
				}
				if f.String == "" {
					f.String = "unknown fault"
				}
				return "", f.String, nil
			case bodyDepth > 0 && depth == bodyDepth+2:
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return "", "", fmt.Errorf("decode soap result: %w", err)
				}
				return s, "", nil
			}
		case xml.CharData:
			if bodyDepth > 0 && depth == bodyDepth+1 {
				text.Write(t)
			}
		case xml.EndElement:
			switch {
			case bodyDepth > 0 && depth == bodyDepth+1:
				// Response element without a child: the value is its own text.
				return strings.TrimSpace(text.String()), "", nil
			case depth == bodyDepth:
				return "", "", errors.New("soap body is empty")
			}
			depth--
		}
	}
}
