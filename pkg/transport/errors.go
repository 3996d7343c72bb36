package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
)

// ErrTransport matches every error returned by HTTPSClient.Execute
var ErrTransport = errors.New("transport failure")

// Category is the normalized transport failure taxonomy
type Category string

const (
	// CategoryTimeout indicates the request or connection timed out
	CategoryTimeout Category = "timeout"
	// CategoryCanceled indicates the caller's context was canceled
	CategoryCanceled Category = "canceled"
	// CategoryTLS indicates a handshake or certificate failure
	CategoryTLS Category = "tls"
	// CategoryConnection indicates a dial, DNS or reset failure
	CategoryConnection Category = "connection"
	// CategoryStatus indicates a non-2xx HTTP response without a SOAP envelope
	CategoryStatus Category = "status"
	// CategoryRead indicates the response body could not be read or decoded
	CategoryRead Category = "read"
	// CategoryRequest indicates the request could not be built
	CategoryRequest Category = "request"
)

// Error is a categorized transport failure
type Error struct {
	Category Category
	// StatusCode and Body are set for CategoryStatus
	StatusCode int
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	if e.Category == CategoryStatus && len(e.Body) > 0 {
		return fmt.Sprintf("transport [%s]: %v: %s", e.Category, e.Err, truncate(e.Body, 512))
	}
	return fmt.Sprintf("transport [%s]: %v", e.Category, e.Err)
}

// Unwrap supports error unwrapping
func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrTransport) match
func (e *Error) Is(target error) bool {
	return target == ErrTransport
}

// GetCategory extracts the category of a transport error, or "" for other
// errors
func GetCategory(err error) Category {
	var te *Error
	if errors.As(err, &te) {
		return te.Category
	}
	return ""
}

func newError(category Category, err error) *Error {
	return &Error{Category: category, Err: err}
}

func classify(ctx context.Context, err error) *Error {
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return newError(CategoryCanceled, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(CategoryTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newError(CategoryTimeout, err)
	}

	var (
		verifyErr   *tls.CertificateVerificationError
		recordErr   tls.RecordHeaderError
		alertErr    tls.AlertError
		unknownAuth x509.UnknownAuthorityError
		hostnameErr x509.HostnameError
		invalidCert x509.CertificateInvalidError
	)
	switch {
	case errors.As(err, &verifyErr),
		errors.As(err, &recordErr),
		errors.As(err, &alertErr),
		errors.As(err, &unknownAuth),
		errors.As(err, &hostnameErr),
		errors.As(err, &invalidCert):
		return newError(CategoryTLS, err)
	}

	return newError(CategoryConnection, err)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
