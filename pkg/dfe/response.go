package dfe

import (
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"

	"github.com/sirosfoundation/go-dfe/pkg/catalog"
	"github.com/sirosfoundation/go-dfe/pkg/soap"
)

// Response is the raw reply of one web service call
type Response struct {
	// RequestID correlates the call with its log lines and span
	RequestID string
	Servico   catalog.Servico
	UF        catalog.UF
	URL       string
	Action    string
	Duration  time.Duration

	raw []byte
}

// Bytes returns the response body exactly as received
func (r *Response) Bytes() []byte {
	return r.raw
}

// String decodes the body as UTF-8. A leading byte order mark is dropped and
// invalid sequences become U+FFFD.
func (r *Response) String() string {
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(r.raw)
	if err != nil {
		return strings.ToValidUTF8(string(r.raw), "\uFFFD")
	}
	return string(out)
}

// Parse parses the body as a SOAP envelope
func (r *Response) Parse() (*soap.Response, error) {
	return soap.ParseResponse(r.raw)
}
