package credential

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/pkcs12"
)

var (
	// ErrEmpty is returned for an empty PKCS#12 blob
	ErrEmpty = errors.New("empty certificate data")
	// ErrIncorrectPassword is returned when the blob cannot be decrypted
	ErrIncorrectPassword = errors.New("incorrect certificate password")
	// ErrNoCertificate is returned when the blob holds no certificate
	ErrNoCertificate = errors.New("no certificate found")
	// ErrNoPrivateKey is returned when the blob holds no private key
	ErrNoPrivateKey = errors.New("no private key found")
)

// Identity is a client certificate with its private key. It is immutable.
type Identity struct {
	cert tls.Certificate
	leaf *x509.Certificate
}

// FromBytes decodes a PKCS#12 blob
func FromBytes(data []byte, password string) (*Identity, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	blocks, err := pkcs12.ToPEM(data, password)
	if err != nil {
		if errors.Is(err, pkcs12.ErrIncorrectPassword) {
			return nil, ErrIncorrectPassword
		}
		return nil, fmt.Errorf("decoding PKCS#12: %w", err)
	}

	var (
		key   *pem.Block
		certs []*pem.Block
	)
	for _, b := range blocks {
		switch b.Type {
		case "CERTIFICATE":
			certs = append(certs, b)
		case "PRIVATE KEY":
			if key == nil {
				key = b
			}
		}
	}
	if len(certs) == 0 {
		return nil, ErrNoCertificate
	}
	if key == nil {
		return nil, ErrNoPrivateKey
	}

	var certPEM bytes.Buffer
	for _, c := range leafFirst(certs, key) {
		if err := pem.Encode(&certPEM, &pem.Block{Type: c.Type, Bytes: c.Bytes}); err != nil {
			return nil, fmt.Errorf("encoding certificate: %w", err)
		}
	}
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: key.Type, Bytes: key.Bytes})

	cert, err := tls.X509KeyPair(certPEM.Bytes(), keyPEM)
	if err != nil {
		return nil, fmt.Errorf("building key pair: %w", err)
	}

	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return nil, fmt.Errorf("parsing certificate: %w", err)
	}
	cert.Leaf = leaf

	return &Identity{cert: cert, leaf: leaf}, nil
}

// FromString decodes a PKCS#12 blob held in a string
func FromString(data, password string) (*Identity, error) {
	return FromBytes([]byte(data), password)
}

// FromFile reads and decodes a .pfx or .p12 file
func FromFile(path, password string) (*Identity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading certificate file: %w", err)
	}
	return FromBytes(data, password)
}

// TLSCertificate returns the certificate for tls.Config.Certificates
func (id *Identity) TLSCertificate() tls.Certificate {
	return id.cert
}

// Leaf returns the end-entity certificate
func (id *Identity) Leaf() *x509.Certificate {
	return id.leaf
}

// NotAfter returns the certificate expiry
func (id *Identity) NotAfter() time.Time {
	return id.leaf.NotAfter
}

// Expired reports whether the certificate has expired at t
func (id *Identity) Expired(t time.Time) bool {
	return t.After(id.leaf.NotAfter)
}

// Subject returns the certificate subject in RFC 2253 form
func (id *Identity) Subject() string {
	return id.leaf.Subject.String()
}

// leafFirst moves the certificate sharing the key's localKeyId to the front
func leafFirst(certs []*pem.Block, key *pem.Block) []*pem.Block {
	id := key.Headers["localKeyId"]
	if id == "" {
		return certs
	}
	for i, c := range certs {
		if c.Headers["localKeyId"] == id {
			out := make([]*pem.Block, 0, len(certs))
			out = append(out, c)
			out = append(out, certs[:i]...)
			return append(out, certs[i+1:]...)
		}
	}
	return certs
}
