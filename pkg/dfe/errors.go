package dfe

import (
	"errors"

	"github.com/sirosfoundation/go-dfe/pkg/webservices"
)

var (
	// ErrStoreMissing is returned by New without a webservices store
	ErrStoreMissing = errors.New("webservices store is required")
	// ErrTransportMissing is returned by New without a transport or identity
	ErrTransportMissing = errors.New("transport or client certificate is required")
	// ErrTipoInvalido is returned by New for an undeclared document type
	ErrTipoInvalido = errors.New("invalid document type")

	// ErrChaveInvalida is returned when an access key is not 44 ASCII digits
	ErrChaveInvalida = errors.New("invalid access key")
	// ErrReciboInvalido is returned when a receipt number is not 15 ASCII digits
	ErrReciboInvalido = errors.New("invalid receipt number")
	// ErrDocumentoInvalido is returned for a taxpayer identifier without a kind
	ErrDocumentoInvalido = errors.New("invalid taxpayer identifier")
	// ErrOperacaoInexistente is returned when a service has no wire operation
	ErrOperacaoInexistente = errors.New("service has no web service operation")
	// ErrTransport wraps every failure returned by the Transport
	ErrTransport = errors.New("dispatch failed")
)

// Outcome labels recorded by Metrics
const (
	OutcomeOK          = "ok"
	OutcomeInvalid     = "invalid"
	OutcomeUnsupported = "unsupported"
	OutcomeNotFound    = "not_found"
	OutcomeTransport   = "transport"
	OutcomeError       = "error"
)

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrTransport):
		return OutcomeTransport
	case errors.Is(err, webservices.ErrUnsupportedForUF), errors.Is(err, ErrOperacaoInexistente):
		return OutcomeUnsupported
	case errors.Is(err, webservices.ErrEndpointNotFound):
		return OutcomeNotFound
	case errors.Is(err, ErrChaveInvalida), errors.Is(err, ErrReciboInvalido), errors.Is(err, ErrDocumentoInvalido):
		return OutcomeInvalid
	}
	return OutcomeError
}
