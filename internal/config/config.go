// Package config handles configuration loading for the DF-e client.
//
// Configuration is loaded from a YAML file with support for environment
// variable expansion (${VAR} or $VAR syntax). This allows the certificate
// password to be injected at runtime instead of living in the file.
//
// # Configuration Sections
//
//   - webservices: endpoint table file (INI or YAML); empty uses the embedded table
//   - certificate: PKCS#12 client certificate and its password
//   - tipo, contingencia, nationalServices: request routing
//   - transport: timeouts, TLS and rate limiting
//   - log: slog level and format
//   - observability: Prometheus metrics endpoint
//
// # Example Configuration
//
//	webservices:
//	  file: /etc/dfe/webservices.ini
//
//	certificate:
//	  file: /etc/dfe/certificado.p12
//	  password: ${DFE_CERT_PASSWORD}
//
//	tipo: nfe
//	contingencia: false
//
//	transport:
//	  timeout: 30s
//	  minTLSVersion: "1.2"
//	  rateLimit: 5
//
//	log:
//	  level: info
//
// See [Load] for loading configuration from a file.
package config

import (
	"crypto/x509"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sirosfoundation/go-dfe/pkg/catalog"
	"github.com/sirosfoundation/go-dfe/pkg/credential"
	"github.com/sirosfoundation/go-dfe/pkg/transport"
	"github.com/sirosfoundation/go-dfe/pkg/webservices"
)

// Config is the root configuration structure
type Config struct {
	WebServices WebServicesConfig `yaml:"webservices"`
	Certificate CertificateConfig `yaml:"certificate"`

	// Tipo is the document type: nfe, cte or mdfe
	Tipo         string `yaml:"tipo"`
	Contingencia bool   `yaml:"contingencia"`

	// NationalServices overrides the services always routed to the national
	// environment. Entries are service slugs or names.
	NationalServices []string `yaml:"nationalServices"`

	Transport TransportConfig `yaml:"transport"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"observability"`
}

// WebServicesConfig locates the endpoint table
type WebServicesConfig struct {
	File string `yaml:"file"`
}

// CertificateConfig holds the PKCS#12 client certificate
type CertificateConfig struct {
	File     string `yaml:"file"`
	Password string `yaml:"password"`
}

// TransportConfig holds HTTPS settings
type TransportConfig struct {
	Timeout            time.Duration `yaml:"timeout"`
	ConnectTimeout     time.Duration `yaml:"connectTimeout"`
	MinTLSVersion      string        `yaml:"minTLSVersion"`
	InsecureSkipVerify bool          `yaml:"insecureSkipVerify"`
	RootCAFile         string        `yaml:"rootCAFile"`
	RateLimit          float64       `yaml:"rateLimit"`
	Burst              int           `yaml:"burst"`
	CompressRequests   bool          `yaml:"compressRequests"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig holds observability settings
type MetricsConfig struct {
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML document, expanding environment variables first
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is given
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Tipo == "" {
		c.Tipo = "nfe"
	}
	if c.Transport.Timeout == 0 {
		c.Transport.Timeout = 30 * time.Second
	}
	if c.Transport.ConnectTimeout == 0 {
		c.Transport.ConnectTimeout = 5 * time.Second
	}
	if c.Transport.MinTLSVersion == "" {
		c.Transport.MinTLSVersion = "1.2"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Metrics.Metrics.Addr == "" {
		c.Metrics.Metrics.Addr = ":9090"
	}
	if c.Metrics.Metrics.Path == "" {
		c.Metrics.Metrics.Path = "/metrics"
	}
}

// Validate checks a configuration assembled outside Load, e.g. after
// command-line overrides
func (c *Config) Validate() error {
	return c.validate()
}

func (c *Config) validate() error {
	if _, ok := catalog.ParseTipo(c.Tipo); !ok {
		return fmt.Errorf("tipo must be 'nfe', 'cte' or 'mdfe', got '%s'", c.Tipo)
	}

	if _, err := c.NationalServiceList(); err != nil {
		return err
	}

	if _, err := tlsVersion(c.Transport.MinTLSVersion); err != nil {
		return err
	}
	if c.Transport.RateLimit < 0 {
		return fmt.Errorf("transport.rateLimit must not be negative")
	}
	if c.Transport.Timeout < 0 || c.Transport.ConnectTimeout < 0 {
		return fmt.Errorf("transport timeouts must not be negative")
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be 'text' or 'json', got '%s'", c.Log.Format)
	}

	if c.Certificate.File == "" && c.Certificate.Password != "" {
		return fmt.Errorf("certificate.password is set without certificate.file")
	}

	return nil
}

// TipoValue returns the parsed document type
func (c *Config) TipoValue() catalog.Tipo {
	tipo, _ := catalog.ParseTipo(c.Tipo)
	return tipo
}

// NationalServiceList parses NationalServices. A nil result means the
// resolver default applies.
func (c *Config) NationalServiceList() ([]catalog.Servico, error) {
	if len(c.NationalServices) == 0 {
		return nil, nil
	}
	out := make([]catalog.Servico, 0, len(c.NationalServices))
	for _, name := range c.NationalServices {
		s, ok := catalog.ParseServico(name)
		if !ok {
			return nil, fmt.Errorf("nationalServices: unknown service '%s'", name)
		}
		out = append(out, s)
	}
	return out, nil
}

// Resolver builds the endpoint resolver for this configuration
func (c *Config) Resolver() (*webservices.Resolver, error) {
	national, err := c.NationalServiceList()
	if err != nil {
		return nil, err
	}
	if national == nil {
		return webservices.NewResolver(), nil
	}
	return webservices.NewResolver(webservices.WithNationalServices(national...)), nil
}

// Store loads the endpoint table, falling back to the embedded one
func (c *Config) Store() (webservices.MapStore, error) {
	if c.WebServices.File == "" {
		return webservices.Embedded()
	}
	return webservices.Load(c.WebServices.File)
}

// Identity loads the client certificate. Returns nil when none is configured.
func (c *Config) Identity() (*credential.Identity, error) {
	if c.Certificate.File == "" {
		return nil, nil
	}
	return credential.FromFile(c.Certificate.File, c.Certificate.Password)
}

// HTTPSConfig builds the transport configuration
func (c *Config) HTTPSConfig() (*transport.HTTPSConfig, error) {
	cfg := transport.DefaultHTTPSConfig()
	cfg.Timeout = c.Transport.Timeout
	cfg.ConnectTimeout = c.Transport.ConnectTimeout
	cfg.InsecureSkipVerify = c.Transport.InsecureSkipVerify
	cfg.RateLimit = c.Transport.RateLimit
	cfg.Burst = c.Transport.Burst
	cfg.CompressRequests = c.Transport.CompressRequests

	version, err := tlsVersion(c.Transport.MinTLSVersion)
	if err != nil {
		return nil, err
	}
	cfg.MinTLSVersion = version

	if c.Transport.RootCAFile != "" {
		pem, err := os.ReadFile(c.Transport.RootCAFile)
		if err != nil {
			return nil, fmt.Errorf("reading root CA file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", c.Transport.RootCAFile)
		}
		cfg.RootCAs = pool
	}

	return cfg, nil
}

// SlogLevel maps log.level to a slog level
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level must be debug, info, warn or error, got '%s'", c.Log.Level)
	}
	return level, nil
}

func tlsVersion(v string) (uint16, error) {
	switch strings.TrimPrefix(v, "TLS") {
	case "1.2":
		return transport.TLS12, nil
	case "1.3":
		return transport.TLS13, nil
	}
	return 0, fmt.Errorf("transport.minTLSVersion must be '1.2' or '1.3', got '%s'", v)
}
