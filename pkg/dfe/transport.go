package dfe

//go:generate mockgen -source=transport.go -destination=mocks/transport.go -package=mocks Transport,Metrics

import (
	"context"
	"time"
)

// Transport posts a SOAP envelope and returns the raw response body.
// transport.HTTPSClient implements it.
type Transport interface {
	Execute(ctx context.Context, url, action string, body []byte) ([]byte, error)
}

// Metrics records the outcome of each call
type Metrics interface {
	ObserveRequest(servico, uf, outcome string, d time.Duration)
}
