package webservices

import (
	"fmt"

	"github.com/sirosfoundation/go-dfe/pkg/catalog"
)

// Request selects the endpoint to resolve
type Request struct {
	Store        Store
	Modelo       catalog.Modelo
	UF           catalog.UF
	Ambiente     catalog.Ambiente
	Servico      catalog.Servico
	Contingencia bool
}

// EndpointResolver resolves a request to an endpoint URL
type EndpointResolver interface {
	// ResolveEndpoint returns the URL stored for the request
	ResolveEndpoint(req Request) (string, error)
}

// DefaultNationalServices are the services always served by the national
// environment (Ambiente Nacional)
var DefaultNationalServices = []catalog.Servico{
	catalog.DistribuicaoDFe,
	catalog.Manifestacao,
	catalog.EPEC,
}

// States without a registration lookup (CadConsultaCadastro) web service
var semConsultaCadastro = map[catalog.UF]bool{
	catalog.PA: true,
	catalog.AM: true,
	catalog.AL: true,
	catalog.AP: true,
	catalog.DF: true,
	catalog.PI: true,
	catalog.RJ: true,
	catalog.RO: true,
	catalog.SE: true,
	catalog.TO: true,
}

// States whose contingency authority is SVC-RS; the rest use SVC-AN
var contingenciaSVRS = map[catalog.UF]bool{
	catalog.GO: true,
	catalog.AM: true,
	catalog.BA: true,
	catalog.CE: true,
	catalog.MA: true,
	catalog.MS: true,
	catalog.MT: true,
	catalog.PA: true,
	catalog.PE: true,
	catalog.PI: true,
	catalog.PR: true,
}

// ConsultaCadastroDisponivel reports whether uf offers registration lookups
func ConsultaCadastroDisponivel(uf catalog.UF) bool {
	return uf.Valid() && !semConsultaCadastro[uf]
}

// ContingenciaSVRS reports whether uf falls back to SVC-RS in contingency
func ContingenciaSVRS(uf catalog.UF) bool {
	return contingenciaSVRS[uf]
}

// Resolver implements EndpointResolver over a Store section table
type Resolver struct {
	nacionais map[catalog.Servico]bool
}

// Option configures a Resolver
type Option func(*Resolver)

// WithNationalServices replaces the set of services forced to the national
// environment
func WithNationalServices(servicos ...catalog.Servico) Option {
	return func(r *Resolver) {
		r.nacionais = make(map[catalog.Servico]bool, len(servicos))
		for _, s := range servicos {
			r.nacionais[s] = true
		}
	}
}

// NewResolver creates a resolver using DefaultNationalServices unless
// overridden
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{}
	WithNationalServices(DefaultNationalServices...)(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultResolver = NewResolver()

// Resolve resolves req with the default resolver
func Resolve(req Request) (string, error) {
	return defaultResolver.ResolveEndpoint(req)
}

// National reports whether servico is forced to the national environment
func (r *Resolver) National(servico catalog.Servico) bool {
	return r.nacionais[servico]
}

// ResolveEndpoint implements EndpointResolver
func (r *Resolver) ResolveEndpoint(req Request) (string, error) {
	secao, err := r.Section(req)
	if err != nil {
		return "", err
	}

	url, ok := req.Store.Get(secao, req.Servico.Chave())
	if !ok {
		return "", &EndpointNotFoundError{UF: req.UF, Servico: req.Servico, Secao: secao}
	}

	return url, nil
}

// Section returns the name of the section the request resolves to
func (r *Resolver) Section(req Request) (string, error) {
	if err := validate(req); err != nil {
		return "", err
	}

	modelo := req.Modelo.String()
	ambiente := req.Ambiente.String()
	secao := fmt.Sprintf("%s_%s_%s", modelo, req.UF, ambiente)
	usar, hasUsar := req.Store.Get(secao, UsarKey)

	switch {
	case req.Servico == catalog.ConsultaCadastro && semConsultaCadastro[req.UF]:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedForUF, req.UF)
	case r.nacionais[req.Servico]:
		secao = fmt.Sprintf("%s_AN_%s", modelo, ambiente)
	case !req.Servico.URLOnly() && hasUsar:
		secao = usar
	case req.Contingencia && contingenciaSVRS[req.UF]:
		secao = fmt.Sprintf("%s_SVRS_%s", modelo, ambiente)
	case req.Contingencia:
		secao = fmt.Sprintf("%s_SVC-AN_%s", modelo, ambiente)
	}

	return secao, nil
}

func validate(req Request) error {
	switch {
	case req.Store == nil:
		return ErrStoreMissing
	case !req.Modelo.Valid():
		return ErrModeloMissing
	case !req.UF.Valid():
		return ErrUFMissing
	case !req.Ambiente.Valid():
		return ErrAmbienteMissing
	case !req.Servico.Valid():
		return ErrServicoMissing
	}
	return nil
}
