package soap

import (
	"strings"

	"github.com/sirosfoundation/go-dfe/pkg/catalog"
)

// Namespace constants
const (
	NsSOAP11 = "http://schemas.xmlsoap.org/soap/envelope/"
	NsSOAP12 = "http://www.w3.org/2003/05/soap-envelope"
	NsXSI    = "http://www.w3.org/2001/XMLSchema-instance"
	NsXSD    = "http://www.w3.org/2001/XMLSchema"

	portalBase = "http://www.portalfiscal.inf.br/"
)

// Portal returns the fiscal portal namespace of a document type, e.g.
// http://www.portalfiscal.inf.br/nfe
func Portal(tipo catalog.Tipo) string {
	return portalBase + tipo.String()
}

// Action returns the SOAP action of an operation. It is also the namespace of
// the DadosMsg wrapper.
func Action(tipo catalog.Tipo, operacao string) string {
	return Portal(tipo) + "/wsdl/" + operacao
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape escapes XML special characters. ASCII digits and letters are
// returned unchanged.
func Escape(s string) string {
	return escaper.Replace(s)
}
