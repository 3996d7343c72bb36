package dfe

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/sirosfoundation/go-dfe/pkg/catalog"
	"github.com/sirosfoundation/go-dfe/pkg/credential"
	"github.com/sirosfoundation/go-dfe/pkg/dfe/mocks"
	"github.com/sirosfoundation/go-dfe/pkg/soap"
	"github.com/sirosfoundation/go-dfe/pkg/transport"
	"github.com/sirosfoundation/go-dfe/pkg/webservices"
)

const (
	chaveValida  = "51200812345678000195550010000000011000000010"
	reciboValido = "511000000123456"

	mtStatusURL = "https://homologacao.sefaz.mt.gov.br/nfews/v2/services/NfeStatusServico4?wsdl"
	retStatus   = `<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope"><soap:Body>` +
		`<nfeResultMsg xmlns="http://www.portalfiscal.inf.br/nfe/wsdl/NFeStatusServico4">` +
		`<retConsStatServ xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00">` +
		`<tpAmb>2</tpAmb><cStat>107</cStat><xMotivo>Servico em Operacao</xMotivo><cUF>51</cUF>` +
		`</retConsStatServ></nfeResultMsg></soap:Body></soap:Envelope>`
)

// =============================================================================
// Client Test Suite
// =============================================================================
// The transport is mocked so that every test can assert exactly how many
// dispatches happen and with which URL, action and envelope.

type ClientSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockTransport *mocks.MockTransport
	mockMetrics   *mocks.MockMetrics
	store         webservices.MapStore
	client        *Client
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockTransport = mocks.NewMockTransport(s.ctrl)
	s.mockMetrics = mocks.NewMockMetrics(s.ctrl)

	store, err := webservices.Embedded()
	s.Require().NoError(err)
	s.store = store

	s.client, err = New(Config{
		Store:     s.store,
		Transport: s.mockTransport,
		Metrics:   s.mockMetrics,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	s.Require().NoError(err)
}

func (s *ClientSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ClientSuite) expectOutcome(servico catalog.Servico, uf catalog.UF, outcome string) {
	s.mockMetrics.EXPECT().ObserveRequest(servico.Slug(), uf.String(), outcome, gomock.Any())
}

// =============================================================================
// Constructor Tests
// =============================================================================

func (s *ClientSuite) TestNew() {
	s.Run("nil store returns error", func() {
		_, err := New(Config{Transport: s.mockTransport})
		s.ErrorIs(err, ErrStoreMissing)
	})

	s.Run("no transport and no identity returns error", func() {
		_, err := New(Config{Store: s.store})
		s.ErrorIs(err, ErrTransportMissing)
	})

	s.Run("undeclared tipo returns error", func() {
		_, err := New(Config{Store: s.store, Transport: s.mockTransport, Tipo: catalog.Tipo(9)})
		s.ErrorIs(err, ErrTipoInvalido)
	})

	s.Run("defaults are applied", func() {
		c, err := New(Config{Store: s.store, Transport: s.mockTransport})
		s.Require().NoError(err)
		s.Equal(catalog.TipoNFe, c.Tipo())
		s.NotNil(c.logger)
		s.NotNil(c.tracer)
		s.NotNil(c.resolver)
		s.Nil(c.metrics)
	})

	s.Run("identity builds an HTTPS transport", func() {
		id, err := credential.FromFile("../credential/testdata/certificado.p12", "segredo")
		s.Require().NoError(err)

		c, err := New(Config{Store: s.store, Identity: id})
		s.Require().NoError(err)
		_, ok := c.transport.(*transport.HTTPSClient)
		s.True(ok)
	})
}

// =============================================================================
// Operation Tests
// =============================================================================

func (s *ClientSuite) TestStatusServico() {
	dados := soap.ConsStatServ(catalog.MT, catalog.Homologacao, catalog.TipoNFe, catalog.Ver400)
	body, action := soap.Request{Tipo: catalog.TipoNFe, Operacao: "NFeStatusServico4", Dados: dados}.Build()

	s.mockTransport.EXPECT().
		Execute(gomock.Any(), mtStatusURL, action, body).
		Return([]byte(retStatus), nil)
	s.expectOutcome(catalog.StatusServico, catalog.MT, OutcomeOK)

	resp, err := s.client.StatusServico(context.Background(), catalog.NFe, catalog.MT, catalog.Homologacao)
	s.Require().NoError(err)

	s.Equal(mtStatusURL, resp.URL)
	s.Equal("http://www.portalfiscal.inf.br/nfe/wsdl/NFeStatusServico4", resp.Action)
	s.Equal(catalog.StatusServico, resp.Servico)
	s.Equal(catalog.MT, resp.UF)
	s.NotEmpty(resp.RequestID)
	s.Equal(retStatus, string(resp.Bytes()))

	parsed, err := resp.Parse()
	s.Require().NoError(err)
	s.Equal("107", parsed.CStat)
}

func (s *ClientSuite) TestConsultarProtocolo() {
	s.Run("short key fails before any network call", func() {
		s.expectOutcome(catalog.ConsultaXML, catalog.MT, OutcomeInvalid)

		_, err := s.client.ConsultarProtocolo(context.Background(), catalog.NFe, catalog.MT, catalog.Homologacao, "1234")
		s.ErrorIs(err, ErrChaveInvalida)
	})

	s.Run("valid key is sent in consSitNFe", func() {
		s.mockTransport.EXPECT().
			Execute(gomock.Any(),
				"https://homologacao.sefaz.mt.gov.br/nfews/v2/services/NfeConsulta4?wsdl",
				"http://www.portalfiscal.inf.br/nfe/wsdl/NFeConsultaProtocolo4",
				gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, body []byte) ([]byte, error) {
				s.Contains(string(body), "<chNFe>"+chaveValida+"</chNFe>")
				s.Contains(string(body), `<nfeDadosMsg xmlns="http://www.portalfiscal.inf.br/nfe/wsdl/NFeConsultaProtocolo4">`)
				return []byte("<ok/>"), nil
			})
		s.expectOutcome(catalog.ConsultaXML, catalog.MT, OutcomeOK)

		resp, err := s.client.ConsultarXML(context.Background(), catalog.NFe, catalog.MT, catalog.Homologacao, chaveValida)
		s.Require().NoError(err)
		s.Equal("<ok/>", resp.String())
	})
}

func (s *ClientSuite) TestConsultarAutorizacao() {
	s.Run("malformed receipt fails before any network call", func() {
		s.expectOutcome(catalog.ConsultaRecibo, catalog.MT, OutcomeInvalid)

		_, err := s.client.ConsultarAutorizacao(context.Background(), catalog.NFe, catalog.MT, catalog.Homologacao, "12345")
		s.ErrorIs(err, ErrReciboInvalido)
	})

	s.Run("valid receipt is sent in consReciNFe", func() {
		s.mockTransport.EXPECT().
			Execute(gomock.Any(), gomock.Any(), "http://www.portalfiscal.inf.br/nfe/wsdl/NFeRetAutorizacao4", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, body []byte) ([]byte, error) {
				s.Contains(string(body), "<nRec>"+reciboValido+"</nRec>")
				return []byte("<ok/>"), nil
			})
		s.expectOutcome(catalog.ConsultaRecibo, catalog.MT, OutcomeOK)

		_, err := s.client.ConsultarAutorizacao(context.Background(), catalog.NFe, catalog.MT, catalog.Homologacao, reciboValido)
		s.NoError(err)
	})
}

func (s *ClientSuite) TestConsultarCadastro() {
	s.Run("unsupported UF fails before any network call", func() {
		s.expectOutcome(catalog.ConsultaCadastro, catalog.PA, OutcomeUnsupported)

		_, err := s.client.ConsultarCadastro(context.Background(), catalog.NFe, catalog.PA, catalog.Producao, catalog.NewCNPJ("12345678000195"))
		s.ErrorIs(err, webservices.ErrUnsupportedForUF)
	})

	s.Run("empty document is rejected", func() {
		s.expectOutcome(catalog.ConsultaCadastro, catalog.SP, OutcomeInvalid)

		_, err := s.client.ConsultarCadastro(context.Background(), catalog.NFe, catalog.SP, catalog.Producao, catalog.Documento{})
		s.ErrorIs(err, ErrDocumentoInvalido)
	})

	s.Run("document tag follows its kind", func() {
		s.mockTransport.EXPECT().
			Execute(gomock.Any(),
				"https://nfe.fazenda.sp.gov.br/ws/cadconsultacadastro4.asmx",
				"http://www.portalfiscal.inf.br/nfe/wsdl/CadConsultaCadastro4",
				gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, body []byte) ([]byte, error) {
				s.Contains(string(body), "<UF>35</UF><IE>110042490114</IE>")
				return []byte("<ok/>"), nil
			})
		s.expectOutcome(catalog.ConsultaCadastro, catalog.SP, OutcomeOK)

		_, err := s.client.ConsultarCadastro(context.Background(), catalog.NFe, catalog.SP, catalog.Producao, catalog.NewIE("110042490114"))
		s.NoError(err)
	})
}

func (s *ClientSuite) TestEndpointNotFound() {
	s.expectOutcome(catalog.StatusServico, catalog.MG, OutcomeNotFound)

	_, err := s.client.StatusServico(context.Background(), catalog.NFe, catalog.MG, catalog.Producao)
	s.ErrorIs(err, webservices.ErrEndpointNotFound)

	var notFound *webservices.EndpointNotFoundError
	s.Require().ErrorAs(err, &notFound)
	s.Equal("NFe_MG_P", notFound.Secao)
}

func (s *ClientSuite) TestMissingSelector() {
	s.expectOutcome(catalog.StatusServico, catalog.UF(0), OutcomeError)

	_, err := s.client.StatusServico(context.Background(), catalog.NFe, 0, catalog.Producao)
	s.ErrorIs(err, webservices.ErrUFMissing)
}

func (s *ClientSuite) TestTransportFailure() {
	cause := &transport.Error{Category: transport.CategoryTimeout, Err: context.DeadlineExceeded}
	s.mockTransport.EXPECT().
		Execute(gomock.Any(), mtStatusURL, gomock.Any(), gomock.Any()).
		Return(nil, cause)
	s.expectOutcome(catalog.StatusServico, catalog.MT, OutcomeTransport)

	_, err := s.client.StatusServico(context.Background(), catalog.NFe, catalog.MT, catalog.Homologacao)
	s.ErrorIs(err, ErrTransport)
	s.ErrorIs(err, transport.ErrTransport)
	s.ErrorIs(err, context.DeadlineExceeded)
	s.Equal(transport.CategoryTimeout, transport.GetCategory(err))
}

func (s *ClientSuite) TestContingencia() {
	c, err := New(Config{Store: s.store, Transport: s.mockTransport, Contingencia: true})
	s.Require().NoError(err)

	s.mockTransport.EXPECT().
		Execute(gomock.Any(), "https://hom.svc.fazenda.gov.br/NFeStatusServico4/NFeStatusServico4.asmx", gomock.Any(), gomock.Any()).
		Return([]byte("<ok/>"), nil)

	resp, err := c.StatusServico(context.Background(), catalog.NFe, catalog.SP, catalog.Homologacao)
	s.Require().NoError(err)
	s.Equal("https://hom.svc.fazenda.gov.br/NFeStatusServico4/NFeStatusServico4.asmx", resp.URL)
}

func (s *ClientSuite) TestTipoCTe() {
	store := webservices.MapStore{"NFe_SP_H": {"NfeStatusServico_4.00": "https://cte.example.test/status"}}
	c, err := New(Config{Store: store, Transport: s.mockTransport, Tipo: catalog.TipoCTe})
	s.Require().NoError(err)

	s.mockTransport.EXPECT().
		Execute(gomock.Any(), "https://cte.example.test/status", "http://www.portalfiscal.inf.br/cte/wsdl/NFeStatusServico4", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, body []byte) ([]byte, error) {
			s.Contains(string(body), `<cteDadosMsg xmlns="http://www.portalfiscal.inf.br/cte/wsdl/NFeStatusServico4">`)
			s.Contains(string(body), `<consStatServ xmlns="http://www.portalfiscal.inf.br/cte"`)
			return []byte("<ok/>"), nil
		})

	_, err = c.StatusServico(context.Background(), catalog.NFe, catalog.SP, catalog.Homologacao)
	s.NoError(err)
}

func (s *ClientSuite) TestServiceURL() {
	url, err := s.client.ServiceURL(catalog.NFCe, catalog.SP, catalog.Producao, catalog.URLQRCode)
	s.Require().NoError(err)
	s.Equal("https://www.nfce.fazenda.sp.gov.br/NFCeConsultaPublica/Paginas/ConsultaQRCode.aspx", url)

	url, err = s.client.ServiceURL(catalog.NFe, catalog.AC, catalog.Producao, catalog.DistribuicaoDFe)
	s.Require().NoError(err)
	s.Equal("https://www1.nfe.fazenda.gov.br/NFeDistribuicaoDFe/NFeDistribuicaoDFe.asmx", url)
}

func (s *ClientSuite) TestConcurrentCalls() {
	const n = 32

	s.mockTransport.EXPECT().
		Execute(gomock.Any(), mtStatusURL, gomock.Any(), gomock.Any()).
		Return([]byte(retStatus), nil).
		Times(n)
	s.mockMetrics.EXPECT().
		ObserveRequest("status", "MT", OutcomeOK, gomock.Any()).
		Times(n)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[string]bool)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := s.client.StatusServico(context.Background(), catalog.NFe, catalog.MT, catalog.Homologacao)
			if err != nil {
				return
			}
			mu.Lock()
			ids[resp.RequestID] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	s.Len(ids, n, "every call has its own request id")
}

// =============================================================================
// End-to-end over HTTP
// =============================================================================

func TestClient_HTTPTransport(t *testing.T) {
	var gotAction string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAction = r.Header.Get("SOAPAction")
		w.Header().Set("Content-Type", "application/soap+xml; charset=utf-8")
		_, _ = w.Write([]byte(retStatus))
	}))
	defer server.Close()

	store := webservices.MapStore{"NFe_MT_H": {"NfeStatusServico_4.00": server.URL}}
	client, err := New(Config{Store: store, Transport: transport.NewHTTPSClient(nil)})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := client.StatusServico(context.Background(), catalog.NFe, catalog.MT, catalog.Homologacao)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAction != "http://www.portalfiscal.inf.br/nfe/wsdl/NFeStatusServico4" {
		t.Errorf("unexpected SOAPAction %q", gotAction)
	}
	if resp.Duration <= 0 {
		t.Error("expected a positive duration")
	}

	parsed, err := resp.Parse()
	if err != nil {
		t.Fatal(err)
	}
	if parsed.XMotivo != "Servico em Operacao" {
		t.Errorf("unexpected xMotivo %q", parsed.XMotivo)
	}
}

func TestClient_FaultReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/soap+xml; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope"><soap:Body>` +
			`<soap:Fault><soap:Code><soap:Value>soap:Receiver</soap:Value></soap:Code>` +
			`<soap:Reason><soap:Text xml:lang="pt">Falha no processamento</soap:Text></soap:Reason>` +
			`</soap:Fault></soap:Body></soap:Envelope>`))
	}))
	defer server.Close()

	store := webservices.MapStore{"NFe_MT_H": {"NfeStatusServico_4.00": server.URL}}
	client, err := New(Config{Store: store, Transport: transport.NewHTTPSClient(nil)})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := client.StatusServico(context.Background(), catalog.NFe, catalog.MT, catalog.Homologacao)
	if err != nil {
		t.Fatalf("a fault reply is a response, got error: %v", err)
	}

	_, err = resp.Parse()
	if !errors.Is(err, soap.ErrFault) {
		t.Fatalf("expected ErrFault, got %v", err)
	}
	var fault *soap.FaultError
	if !errors.As(err, &fault) || fault.Reason != "Falha no processamento" {
		t.Errorf("unexpected fault: %v", err)
	}
}

func TestOutcome(t *testing.T) {
	tests := map[string]error{
		OutcomeOK:          nil,
		OutcomeTransport:   ErrTransport,
		OutcomeUnsupported: webservices.ErrUnsupportedForUF,
		OutcomeNotFound:    &webservices.EndpointNotFoundError{},
		OutcomeInvalid:     ErrChaveInvalida,
		OutcomeError:       errors.New("boom"),
	}
	for want, err := range tests {
		if got := outcome(err); got != want {
			t.Errorf("outcome(%v) = %q, want %q", err, got, want)
		}
	}
}
