package dfe

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sirosfoundation/go-dfe/pkg/catalog"
	"github.com/sirosfoundation/go-dfe/pkg/credential"
	"github.com/sirosfoundation/go-dfe/pkg/soap"
	"github.com/sirosfoundation/go-dfe/pkg/transport"
	"github.com/sirosfoundation/go-dfe/pkg/webservices"
)

// TracerName is the instrumentation scope of the client spans
const TracerName = "github.com/sirosfoundation/go-dfe/pkg/dfe"

// Config holds client configuration
type Config struct {
	// Store is the webservices table (required)
	Store webservices.Store

	// Transport dispatches envelopes. When nil, an HTTPS transport is built
	// from HTTPS and Identity.
	Transport Transport
	Identity  *credential.Identity
	HTTPS     *transport.HTTPSConfig

	// Tipo selects the portal namespace; defaults to TipoNFe
	Tipo catalog.Tipo

	// Contingencia routes requests to the contingency authorities
	Contingencia bool

	// Resolver defaults to webservices.NewResolver()
	Resolver webservices.EndpointResolver

	Logger  *slog.Logger
	Metrics Metrics
	Tracer  trace.Tracer
}

// Client calls the SEFAZ web services. It is immutable after New and safe
// for concurrent use.
type Client struct {
	store        webservices.Store
	transport    Transport
	resolver     webservices.EndpointResolver
	tipo         catalog.Tipo
	contingencia bool
	logger       *slog.Logger
	metrics      Metrics
	tracer       trace.Tracer
}

// New validates cfg and creates a client
func New(cfg Config) (*Client, error) {
	if cfg.Store == nil {
		return nil, ErrStoreMissing
	}

	tipo := cfg.Tipo
	if tipo == 0 {
		tipo = catalog.TipoNFe
	}
	if !tipo.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrTipoInvalido, tipo)
	}

	t := cfg.Transport
	if t == nil {
		if cfg.Identity == nil {
			return nil, ErrTransportMissing
		}
		t = newHTTPSTransport(cfg.HTTPS, cfg.Identity)
	}

	resolver := cfg.Resolver
	if resolver == nil {
		resolver = webservices.NewResolver()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}

	return &Client{
		store:        cfg.Store,
		transport:    t,
		resolver:     resolver,
		tipo:         tipo,
		contingencia: cfg.Contingencia,
		logger:       logger,
		metrics:      cfg.Metrics,
		tracer:       tracer,
	}, nil
}

func newHTTPSTransport(base *transport.HTTPSConfig, id *credential.Identity) *transport.HTTPSClient {
	config := transport.DefaultHTTPSConfig()
	if base != nil {
		copied := *base
		config = &copied
	}
	config.Certificates = append([]tls.Certificate{id.TLSCertificate()}, config.Certificates...)
	return transport.NewHTTPSClient(config)
}

// Tipo returns the document type the client speaks
func (c *Client) Tipo() catalog.Tipo {
	return c.tipo
}

// StatusServico queries the operational status of the authority's services
func (c *Client) StatusServico(ctx context.Context, modelo catalog.Modelo, uf catalog.UF, amb catalog.Ambiente) (*Response, error) {
	return c.do(ctx, call{
		modelo:   modelo,
		uf:       uf,
		ambiente: amb,
		servico:  catalog.StatusServico,
		dados: func(v catalog.VersaoURL) string {
			return soap.ConsStatServ(uf, amb, c.tipo, v)
		},
	})
}

// ConsultarProtocolo queries the status and protocol of a document by its
// 44-digit access key
func (c *Client) ConsultarProtocolo(ctx context.Context, modelo catalog.Modelo, uf catalog.UF, amb catalog.Ambiente, chave string) (*Response, error) {
	return c.do(ctx, call{
		modelo:   modelo,
		uf:       uf,
		ambiente: amb,
		servico:  catalog.ConsultaXML,
		validate: func() error {
			if !catalog.ValidarChave(chave) {
				return fmt.Errorf("%w: %q", ErrChaveInvalida, chave)
			}
			return nil
		},
		dados: func(v catalog.VersaoURL) string {
			return soap.ConsSit(amb, c.tipo, v, chave)
		},
	})
}

// ConsultarXML is ConsultarProtocolo
func (c *Client) ConsultarXML(ctx context.Context, modelo catalog.Modelo, uf catalog.UF, amb catalog.Ambiente, chave string) (*Response, error) {
	return c.ConsultarProtocolo(ctx, modelo, uf, amb, chave)
}

// ConsultarAutorizacao queries the result of an asynchronous batch by its
// 15-digit receipt number
func (c *Client) ConsultarAutorizacao(ctx context.Context, modelo catalog.Modelo, uf catalog.UF, amb catalog.Ambiente, recibo string) (*Response, error) {
	return c.do(ctx, call{
		modelo:   modelo,
		uf:       uf,
		ambiente: amb,
		servico:  catalog.ConsultaRecibo,
		validate: func() error {
			if !catalog.ValidarRecibo(recibo) {
				return fmt.Errorf("%w: %q", ErrReciboInvalido, recibo)
			}
			return nil
		},
		dados: func(v catalog.VersaoURL) string {
			return soap.ConsReci(amb, c.tipo, v, recibo)
		},
	})
}

// ConsultarCadastro queries the taxpayer registry by CPF, CNPJ or IE
func (c *Client) ConsultarCadastro(ctx context.Context, modelo catalog.Modelo, uf catalog.UF, amb catalog.Ambiente, doc catalog.Documento) (*Response, error) {
	return c.do(ctx, call{
		modelo:   modelo,
		uf:       uf,
		ambiente: amb,
		servico:  catalog.ConsultaCadastro,
		validate: func() error {
			// the contents are checked by the authority; only the kind is
			// needed to pick the tag
			if doc.Tipo() == 0 {
				return ErrDocumentoInvalido
			}
			return nil
		},
		dados: func(v catalog.VersaoURL) string {
			return soap.ConsCad(uf, c.tipo, v, doc)
		},
	})
}

// ServiceURL resolves the endpoint of any service, including the URL-only
// ones (QR code and NFC-e consultation pages), without dispatching
func (c *Client) ServiceURL(modelo catalog.Modelo, uf catalog.UF, amb catalog.Ambiente, servico catalog.Servico) (string, error) {
	return c.resolver.ResolveEndpoint(c.request(modelo, uf, amb, servico))
}

func (c *Client) request(modelo catalog.Modelo, uf catalog.UF, amb catalog.Ambiente, servico catalog.Servico) webservices.Request {
	return webservices.Request{
		Store:        c.store,
		Modelo:       modelo,
		UF:           uf,
		Ambiente:     amb,
		Servico:      servico,
		Contingencia: c.contingencia,
	}
}

// call is the request-scoped state of one operation
type call struct {
	modelo   catalog.Modelo
	uf       catalog.UF
	ambiente catalog.Ambiente
	servico  catalog.Servico
	validate func() error
	dados    func(catalog.VersaoURL) string
}

func (c *Client) do(ctx context.Context, op call) (*Response, error) {
	id := uuid.New().String()
	start := time.Now()

	ctx, span := c.tracer.Start(ctx, "dfe."+op.servico.Slug(),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("dfe.request_id", id),
			attribute.String("dfe.servico", op.servico.String()),
			attribute.String("dfe.uf", op.uf.String()),
			attribute.String("dfe.ambiente", op.ambiente.String()),
			attribute.String("dfe.modelo", op.modelo.String()),
		))
	defer span.End()

	resp, err := c.dispatch(ctx, id, op)
	elapsed := time.Since(start)

	if c.metrics != nil {
		c.metrics.ObserveRequest(op.servico.Slug(), op.uf.String(), outcome(err), elapsed)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resp.Duration = elapsed
	return resp, nil
}

// dispatch validates, resolves, builds and sends; only the last step touches
// the network
func (c *Client) dispatch(ctx context.Context, id string, op call) (*Response, error) {
	if op.validate != nil {
		if err := op.validate(); err != nil {
			return nil, err
		}
	}

	operacao, ok := op.servico.Operacao()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOperacaoInexistente, op.servico)
	}

	url, err := c.resolver.ResolveEndpoint(c.request(op.modelo, op.uf, op.ambiente, op.servico))
	if err != nil {
		return nil, fmt.Errorf("resolving endpoint: %w", err)
	}

	body, action := soap.Request{
		Tipo:     c.tipo,
		Operacao: operacao,
		Dados:    op.dados(op.servico.Versao()),
	}.Build()

	log := c.logger.With(
		slog.String("request_id", id),
		slog.String("servico", op.servico.String()),
		slog.String("uf", op.uf.String()),
	)
	log.DebugContext(ctx, "dispatching request", slog.String("url", url), slog.String("action", action))

	raw, err := c.transport.Execute(ctx, url, action, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, op.servico, op.uf, err)
	}

	log.DebugContext(ctx, "response received", slog.Int("bytes", len(raw)))

	return &Response{
		RequestID: id,
		Servico:   op.servico,
		UF:        op.uf,
		URL:       url,
		Action:    action,
		raw:       raw,
	}, nil
}
