package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sirosfoundation/go-dfe/internal/config"
	"github.com/sirosfoundation/go-dfe/internal/metrics"
	"github.com/sirosfoundation/go-dfe/pkg/dfe"
)

// options are the persistent flags shared by every command
type options struct {
	configFile   string
	logLevel     string
	certFile     string
	password     string
	webservices  string
	tipo         string
	contingencia bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "dfe",
		Short: "Query the SEFAZ DF-e web services",
		Long: `dfe resolves SEFAZ web service endpoints and sends read-only queries:
service status, document protocol, batch receipt and taxpayer registry.

Selectors are positional: modelo (nfe, nfce), uf (two letters) and
ambiente (p for production, h for homologation).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "YAML configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.certFile, "cert", "", "PKCS#12 client certificate")
	flags.StringVar(&opts.password, "password", os.Getenv("DFE_CERT_PASSWORD"), "certificate password (default $DFE_CERT_PASSWORD)")
	flags.StringVar(&opts.webservices, "webservices", "", "endpoint table (.ini or .yaml); default is the embedded table")
	flags.StringVar(&opts.tipo, "tipo", "", "document type (nfe, cte, mdfe)")
	flags.BoolVar(&opts.contingencia, "contingencia", false, "route requests to the contingency authorities")

	cmd.AddCommand(
		newStatusCmd(opts),
		newConsultarXMLCmd(opts),
		newConsultarReciboCmd(opts),
		newConsultarCadastroCmd(opts),
		newResolveCmd(opts),
		newStatusAllCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// load reads the configuration file, if any, and applies flag overrides
func (o *options) load() (*config.Config, error) {
	cfg := config.Default()
	if o.configFile != "" {
		loaded, err := config.Load(o.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.certFile != "" {
		cfg.Certificate.File = o.certFile
	}
	if o.password != "" && cfg.Certificate.File != "" {
		cfg.Certificate.Password = o.password
	}
	if o.webservices != "" {
		cfg.WebServices.File = o.webservices
	}
	if o.tipo != "" {
		cfg.Tipo = o.tipo
	}
	if o.contingencia {
		cfg.Contingencia = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, handlerOpts)), nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, handlerOpts)), nil
}

// session is everything a network command needs
type session struct {
	cfg     *config.Config
	client  *dfe.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func (o *options) session() (*session, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	store, err := cfg.Store()
	if err != nil {
		return nil, fmt.Errorf("loading webservices: %w", err)
	}

	resolver, err := cfg.Resolver()
	if err != nil {
		return nil, err
	}

	id, err := cfg.Identity()
	if err != nil {
		return nil, fmt.Errorf("loading certificate: %w", err)
	}
	if id == nil {
		return nil, fmt.Errorf("a client certificate is required (--cert or certificate.file)")
	}
	if id.Expired(timeNow()) {
		logger.Warn("client certificate has expired",
			slog.String("subject", id.Subject()),
			slog.Time("not_after", id.NotAfter()))
	}

	https, err := cfg.HTTPSConfig()
	if err != nil {
		return nil, err
	}

	var m *metrics.Metrics
	cc := dfe.Config{
		Store:        store,
		Identity:     id,
		HTTPS:        https,
		Tipo:         cfg.TipoValue(),
		Contingencia: cfg.Contingencia,
		Resolver:     resolver,
		Logger:       logger,
	}
	if cfg.Metrics.Metrics.Enabled {
		m = metrics.New(nil)
		cc.Metrics = m
	}

	client, err := dfe.New(cc)
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, client: client, logger: logger, metrics: m}, nil
}
