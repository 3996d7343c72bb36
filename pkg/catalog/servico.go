package catalog

import "strings"

// VersaoURL is the schema version tag of a service
type VersaoURL uint8

const (
	Ver100 VersaoURL = iota + 1
	Ver101
	Ver200
	Ver400
)

// String returns the version as it appears in versao attributes and lookup keys
func (v VersaoURL) String() string {
	switch v {
	case Ver100:
		return "1.00"
	case Ver101:
		return "1.01"
	case Ver200:
		return "2.00"
	case Ver400:
		return "4.00"
	}
	return ""
}

// Servico is one business operation of the web-service catalog
type Servico uint8

const (
	StatusServico Servico = iota + 1
	Envio
	ConsultaRecibo
	ConsultaCadastro
	CCe
	EPEC
	Manifestacao
	Cancelamento
	CancelamentoSubstituicao
	Inutilizacao
	ConsultaXML
	DistribuicaoDFe
	URLQRCode
	URLConsultaNFCe
)

type servicoInfo struct {
	nome     string
	slug     string
	versao   VersaoURL
	prefixo  string // lookup key without the version suffix
	operacao string
	urlOnly  bool
}

var servicos = [...]servicoInfo{
	StatusServico:            {"Status Serviço", "status", Ver400, "NfeStatusServico", "NFeStatusServico4", false},
	Envio:                    {"Envio", "envio", Ver400, "NfeAutorizacao", "NFeAutorizacao4", false},
	ConsultaRecibo:           {"Consulta Recibo", "recibo", Ver400, "NFeRetAutorizacao", "NFeRetAutorizacao4", false},
	ConsultaCadastro:         {"Consulta Cadastro", "cadastro", Ver400, "NfeConsultaCadastro", "CadConsultaCadastro4", false},
	CCe:                      {"CC-e", "cce", Ver400, "RecepcaoEvento", "NFeRecepcaoEvento4", false},
	EPEC:                     {"EPEC", "epec", Ver400, "RecepcaoEvento", "NFeRecepcaoEvento4", false},
	Manifestacao:             {"Manifestação", "manifestacao", Ver400, "RecepcaoEvento", "RecepcaoEvento", false},
	Cancelamento:             {"Cancelamento", "cancelamento", Ver400, "RecepcaoEvento", "RecepcaoEvento", false},
	CancelamentoSubstituicao: {"Cancelamento Substituição", "cancelamento-substituicao", Ver400, "RecepcaoEvento", "RecepcaoEvento", false},
	Inutilizacao:             {"Inutilização", "inutilizacao", Ver400, "NfeInutilizacao", "NFeInutilizacao4", false},
	ConsultaXML:              {"Consulta XML", "consulta-xml", Ver400, "NfeConsultaProtocolo", "NFeConsultaProtocolo4", false},
	DistribuicaoDFe:          {"Distribuição DF-e", "distribuicao", Ver101, "NFeDistribuicaoDFe", "NFeDistribuicaoDFe", false},
	URLQRCode:                {"URL QRCode", "qrcode", Ver400, "URL-QRCode", "", true},
	URLConsultaNFCe:          {"URL Consulta NFC-e", "consulta-nfce", Ver400, "URL-ConsultaNFCe", "", true},
}

// Servicos returns every service of the catalog
func Servicos() []Servico {
	out := make([]Servico, 0, len(servicos)-1)
	for s := StatusServico; s <= URLConsultaNFCe; s++ {
		out = append(out, s)
	}
	return out
}

// Valid reports whether s is a declared service
func (s Servico) Valid() bool {
	return s >= StatusServico && s <= URLConsultaNFCe
}

// String returns the human-readable service name
func (s Servico) String() string {
	if !s.Valid() {
		return ""
	}
	return servicos[s].nome
}

// Versao returns the schema version tag
func (s Servico) Versao() VersaoURL {
	if !s.Valid() {
		return 0
	}
	return servicos[s].versao
}

// Chave returns the key under which the service URL is stored in a section.
// URL-only services use a fixed key; the others append the schema version.
func (s Servico) Chave() string {
	if !s.Valid() {
		return ""
	}
	info := servicos[s]
	if info.urlOnly {
		return info.prefixo
	}
	return info.prefixo + "_" + info.versao.String()
}

// Operacao returns the wire operation name used in the SOAP action and the
// DadosMsg namespace. URL-only services have none.
func (s Servico) Operacao() (string, bool) {
	if !s.Valid() || servicos[s].operacao == "" {
		return "", false
	}
	return servicos[s].operacao, true
}

// URLOnly reports whether the service only resolves a URL and is never sent
func (s Servico) URLOnly() bool {
	return s.Valid() && servicos[s].urlOnly
}

// Slug returns the short command-line name of the service
func (s Servico) Slug() string {
	if !s.Valid() {
		return ""
	}
	return servicos[s].slug
}

// ParseServico decodes a service from its slug, display name, lookup key or
// wire operation name, ignoring case. Several event services share a wire
// name; the first declared one wins.
func ParseServico(s string) (Servico, bool) {
	s = strings.TrimSpace(s)
	for srv := StatusServico; srv <= URLConsultaNFCe; srv++ {
		info := servicos[srv]
		if strings.EqualFold(s, info.slug) || strings.EqualFold(s, info.nome) || strings.EqualFold(s, srv.Chave()) {
			return srv, true
		}
	}
	for srv := StatusServico; srv <= URLConsultaNFCe; srv++ {
		if info := servicos[srv]; info.operacao != "" && strings.EqualFold(s, info.operacao) {
			return srv, true
		}
	}
	return 0, false
}
