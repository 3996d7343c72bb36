package webservices

import (
	"errors"
	"fmt"

	"github.com/sirosfoundation/go-dfe/pkg/catalog"
)

var (
	// ErrStoreMissing is returned when no Store is supplied
	ErrStoreMissing = errors.New("webservices store not provided")
	// ErrModeloMissing is returned when the document model is not set
	ErrModeloMissing = errors.New("document model not provided")
	// ErrUFMissing is returned when the jurisdiction is not set
	ErrUFMissing = errors.New("uf not provided")
	// ErrAmbienteMissing is returned when the environment is not set
	ErrAmbienteMissing = errors.New("environment not provided")
	// ErrServicoMissing is returned when the service is not set
	ErrServicoMissing = errors.New("service not provided")
	// ErrUnsupportedForUF is returned for registration lookups in states that
	// do not offer the web service
	ErrUnsupportedForUF = errors.New("uf has no registration lookup web service")
	// ErrEndpointNotFound is returned when the resolved section has no entry
	// for the service
	ErrEndpointNotFound = errors.New("endpoint not found")
	// ErrUnknownFormat is returned by Load for unrecognised file extensions
	ErrUnknownFormat = errors.New("unknown webservices file format")
)

// EndpointNotFoundError carries the request that could not be resolved
type EndpointNotFoundError struct {
	UF      catalog.UF
	Servico catalog.Servico
	Secao   string
}

func (e *EndpointNotFoundError) Error() string {
	return fmt.Sprintf("endpoint not found for %s: %s (section %s, key %s)",
		e.UF, e.Servico, e.Secao, e.Servico.Chave())
}

// Is makes errors.Is(err, ErrEndpointNotFound) match
func (e *EndpointNotFoundError) Is(target error) bool {
	return target == ErrEndpointNotFound
}
