package soap

import (
	"strconv"
	"strings"

	"github.com/sirosfoundation/go-dfe/pkg/catalog"
)

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`

// ConsStatServ builds the service status query
func ConsStatServ(uf catalog.UF, amb catalog.Ambiente, tipo catalog.Tipo, versao catalog.VersaoURL) string {
	var b strings.Builder
	b.WriteString(`<consStatServ xmlns="` + Portal(tipo) + `" versao="` + versao.String() + `">`)
	b.WriteString(`<tpAmb>` + tpAmb(amb) + `</tpAmb>`)
	b.WriteString(`<cUF>` + strconv.Itoa(int(uf.CUF())) + `</cUF>`)
	b.WriteString(`<xServ>STATUS</xServ>`)
	b.WriteString(`</consStatServ>`)
	return b.String()
}

// ConsSit builds the document status query for an access key
func ConsSit(amb catalog.Ambiente, tipo catalog.Tipo, versao catalog.VersaoURL, chave string) string {
	nome := tipo.Nome()

	var b strings.Builder
	b.WriteString(`<consSit` + nome + ` xmlns="` + Portal(tipo) + `" versao="` + versao.String() + `">`)
	b.WriteString(`<tpAmb>` + tpAmb(amb) + `</tpAmb>`)
	b.WriteString(`<xServ>CONSULTAR</xServ>`)
	b.WriteString(`<ch` + nome + `>` + Escape(chave) + `</ch` + nome + `>`)
	b.WriteString(`</consSit` + nome + `>`)
	return b.String()
}

// ConsReci builds the batch authorization query for a receipt number
func ConsReci(amb catalog.Ambiente, tipo catalog.Tipo, versao catalog.VersaoURL, recibo string) string {
	nome := tipo.Nome()

	var b strings.Builder
	b.WriteString(`<consReci` + nome + ` xmlns="` + Portal(tipo) + `" versao="` + versao.String() + `">`)
	b.WriteString(`<tpAmb>` + tpAmb(amb) + `</tpAmb>`)
	b.WriteString(`<nRec>` + Escape(recibo) + `</nRec>`)
	b.WriteString(`</consReci` + nome + `>`)
	return b.String()
}

// ConsCad builds the taxpayer registration query. The document kind selects
// the CPF, CNPJ or IE element.
func ConsCad(uf catalog.UF, tipo catalog.Tipo, versao catalog.VersaoURL, doc catalog.Documento) string {
	tag := doc.Tipo().String()

	var b strings.Builder
	b.WriteString(`<ConsCad xmlns="` + Portal(tipo) + `" versao="` + versao.String() + `">`)
	b.WriteString(`<infCons>`)
	b.WriteString(`<xServ>CONS-CAD</xServ>`)
	b.WriteString(`<UF>` + strconv.Itoa(int(uf.CUF())) + `</UF>`)
	b.WriteString(`<` + tag + `>` + Escape(doc.Valor()) + `</` + tag + `>`)
	b.WriteString(`</infCons>`)
	b.WriteString(`</ConsCad>`)
	return b.String()
}

// DadosMsg wraps a business fragment in the operation message element
func DadosMsg(tipo catalog.Tipo, operacao, dados string) string {
	elem := tipo.String() + "DadosMsg"
	return `<` + elem + ` xmlns="` + Action(tipo, operacao) + `">` + dados + `</` + elem + `>`
}

// Envelope wraps body in a SOAP 1.2 envelope preceded by the XML declaration
func Envelope(body string) []byte {
	var b strings.Builder
	b.WriteString(xmlDeclaration)
	b.WriteString(`<soap12:Envelope xmlns:xsi="` + NsXSI + `" xmlns:xsd="` + NsXSD + `" xmlns:soap12="` + NsSOAP12 + `">`)
	b.WriteString(`<soap12:Body>`)
	b.WriteString(body)
	b.WriteString(`</soap12:Body>`)
	b.WriteString(`</soap12:Envelope>`)
	return []byte(b.String())
}

// Request is an operation call ready to be serialized
type Request struct {
	Tipo     catalog.Tipo
	Operacao string
	Dados    string
}

// Build returns the complete envelope and the SOAP action
func (r Request) Build() ([]byte, string) {
	return Envelope(DadosMsg(r.Tipo, r.Operacao, r.Dados)), Action(r.Tipo, r.Operacao)
}

func tpAmb(amb catalog.Ambiente) string {
	return strconv.Itoa(int(amb.TpAmb()))
}
