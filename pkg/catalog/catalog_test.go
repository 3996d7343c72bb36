package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUFCodes(t *testing.T) {
	tests := []struct {
		uf    UF
		sigla string
		cuf   uint8
	}{
		{RO, "RO", 11},
		{SP, "SP", 35},
		{RS, "RS", 43},
		{MT, "MT", 51},
		{DF, "DF", 53},
	}

	for _, tt := range tests {
		t.Run(tt.sigla, func(t *testing.T) {
			assert.Equal(t, tt.sigla, tt.uf.String())
			assert.Equal(t, tt.cuf, tt.uf.CUF())
		})
	}
}

func TestUFs(t *testing.T) {
	all := UFs()
	require.Len(t, all, 27)

	seen := make(map[uint8]bool)
	for _, uf := range all {
		assert.True(t, uf.Valid())
		assert.Len(t, uf.String(), 2)
		assert.False(t, seen[uf.CUF()], "duplicate cUF %d", uf.CUF())
		seen[uf.CUF()] = true
	}
}

func TestParseUF(t *testing.T) {
	for _, uf := range UFs() {
		got, ok := ParseUF(uf.String())
		require.True(t, ok)
		assert.Equal(t, uf, got)
	}

	got, ok := ParseUF("mt")
	assert.True(t, ok)
	assert.Equal(t, MT, got)

	_, ok = ParseUF("XX")
	assert.False(t, ok)
	_, ok = ParseUF("")
	assert.False(t, ok)
}

func TestUF_ZeroValue(t *testing.T) {
	var uf UF
	assert.False(t, uf.Valid())
	assert.Equal(t, "", uf.String())
	assert.Equal(t, uint8(0), uf.CUF())
}

func TestAmbiente(t *testing.T) {
	assert.Equal(t, "P", Producao.String())
	assert.Equal(t, "H", Homologacao.String())
	assert.Equal(t, uint8(1), Producao.TpAmb())
	assert.Equal(t, uint8(2), Homologacao.TpAmb())
}

func TestParseAmbiente(t *testing.T) {
	tests := []struct {
		in   string
		want Ambiente
		ok   bool
	}{
		{"P", Producao, true},
		{"producao", Producao, true},
		{"Produção", Producao, true},
		{"H", Homologacao, true},
		{"homologacao", Homologacao, true},
		{"Homologação", Homologacao, true},
		{"", 0, false},
		{"x", 0, false},
		{" H", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseAmbiente(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestModelo(t *testing.T) {
	assert.Equal(t, "NFe", NFe.String())
	assert.Equal(t, "NFCe", NFCe.String())
	assert.Equal(t, uint8(55), NFe.Codigo())
	assert.Equal(t, uint8(65), NFCe.Codigo())

	m, ok := ParseModelo("nfce")
	assert.True(t, ok)
	assert.Equal(t, NFCe, m)

	m, ok = ParseModelo("55")
	assert.True(t, ok)
	assert.Equal(t, NFe, m)

	_, ok = ParseModelo("cte")
	assert.False(t, ok)
}

func TestTipo(t *testing.T) {
	tests := []struct {
		tipo Tipo
		path string
		nome string
	}{
		{TipoNFe, "nfe", "NFe"},
		{TipoCTe, "cte", "CTe"},
		{TipoMDFe, "mdfe", "MDFe"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.path, tt.tipo.String())
		assert.Equal(t, tt.nome, tt.tipo.Nome())

		got, ok := ParseTipo(tt.nome)
		require.True(t, ok)
		assert.Equal(t, tt.tipo, got)
	}
}

func TestServico_Catalog(t *testing.T) {
	tests := []struct {
		servico  Servico
		chave    string
		operacao string
		versao   string
	}{
		{StatusServico, "NfeStatusServico_4.00", "NFeStatusServico4", "4.00"},
		{Envio, "NfeAutorizacao_4.00", "NFeAutorizacao4", "4.00"},
		{ConsultaRecibo, "NFeRetAutorizacao_4.00", "NFeRetAutorizacao4", "4.00"},
		{ConsultaCadastro, "NfeConsultaCadastro_4.00", "CadConsultaCadastro4", "4.00"},
		{CCe, "RecepcaoEvento_4.00", "NFeRecepcaoEvento4", "4.00"},
		{EPEC, "RecepcaoEvento_4.00", "NFeRecepcaoEvento4", "4.00"},
		{Manifestacao, "RecepcaoEvento_4.00", "RecepcaoEvento", "4.00"},
		{Cancelamento, "RecepcaoEvento_4.00", "RecepcaoEvento", "4.00"},
		{CancelamentoSubstituicao, "RecepcaoEvento_4.00", "RecepcaoEvento", "4.00"},
		{Inutilizacao, "NfeInutilizacao_4.00", "NFeInutilizacao4", "4.00"},
		{ConsultaXML, "NfeConsultaProtocolo_4.00", "NFeConsultaProtocolo4", "4.00"},
		{DistribuicaoDFe, "NFeDistribuicaoDFe_1.01", "NFeDistribuicaoDFe", "1.01"},
		{URLQRCode, "URL-QRCode", "", "4.00"},
		{URLConsultaNFCe, "URL-ConsultaNFCe", "", "4.00"},
	}
	require.Len(t, tests, len(Servicos()))

	for _, tt := range tests {
		t.Run(tt.servico.String(), func(t *testing.T) {
			assert.Equal(t, tt.chave, tt.servico.Chave())
			assert.Equal(t, tt.versao, tt.servico.Versao().String())

			op, ok := tt.servico.Operacao()
			assert.Equal(t, tt.operacao != "", ok)
			assert.Equal(t, tt.operacao, op)
		})
	}
}

func TestServico_URLOnly(t *testing.T) {
	for _, s := range []Servico{URLQRCode, URLConsultaNFCe} {
		assert.True(t, s.URLOnly())
		_, ok := s.Operacao()
		assert.False(t, ok, "%s must not have a wire operation", s)
	}
	assert.Equal(t, "URL-QRCode", URLQRCode.Chave())
	assert.Equal(t, "URL-ConsultaNFCe", URLConsultaNFCe.Chave())
}

func TestServico_WireNameInvariant(t *testing.T) {
	all := Servicos()
	require.Len(t, all, 14)

	for _, s := range all {
		assert.NotEmpty(t, s.String())
		assert.NotEmpty(t, s.Chave())
		assert.NotEmpty(t, s.Slug())
		if s.URLOnly() {
			continue
		}
		op, ok := s.Operacao()
		assert.True(t, ok, "%s has no wire operation", s)
		assert.NotEmpty(t, op)
	}
}

func TestParseServico(t *testing.T) {
	tests := []struct {
		in   string
		want Servico
	}{
		{"status", StatusServico},
		{"Status Serviço", StatusServico},
		{"NfeStatusServico_4.00", StatusServico},
		{"nfestatusservico4", StatusServico},
		{"cadastro", ConsultaCadastro},
		{"qrcode", URLQRCode},
		{"URL-ConsultaNFCe", URLConsultaNFCe},
	}

	for _, tt := range tests {
		got, ok := ParseServico(tt.in)
		assert.True(t, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}

	_, ok := ParseServico("unknown")
	assert.False(t, ok)
}

func TestDocumento(t *testing.T) {
	d := NewCNPJ("12345678000195")
	assert.Equal(t, "12345678000195", d.Valor())
	assert.Equal(t, CNPJ, d.Tipo())
	assert.Equal(t, "CNPJ", d.Tipo().String())

	assert.Equal(t, "CPF", NewCPF("1").Tipo().String())
	assert.Equal(t, "IE", NewIE("1").Tipo().String())
}
