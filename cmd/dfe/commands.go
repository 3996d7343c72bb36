package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sirosfoundation/go-dfe/pkg/catalog"
	"github.com/sirosfoundation/go-dfe/pkg/dfe"
	"github.com/sirosfoundation/go-dfe/pkg/soap"
	"github.com/sirosfoundation/go-dfe/pkg/webservices"
)

const selectorsUsage = "<modelo> <uf> <ambiente>"

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status " + selectorsUsage,
		Short: "Query the service status of an authority",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := parseSelectors(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			s, err := opts.session()
			if err != nil {
				return err
			}
			resp, err := s.client.StatusServico(cmd.Context(), sel.modelo, sel.uf, sel.ambiente)
			return s.print(cmd, resp, err)
		},
	}
}

func newConsultarXMLCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "consultar-xml " + selectorsUsage + " <chave>",
		Aliases: []string{"consultar-protocolo"},
		Short:   "Query a document by its 44-digit access key",
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := parseSelectors(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			s, err := opts.session()
			if err != nil {
				return err
			}
			resp, err := s.client.ConsultarXML(cmd.Context(), sel.modelo, sel.uf, sel.ambiente, args[3])
			return s.print(cmd, resp, err)
		},
	}
}

func newConsultarReciboCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "consultar-recibo " + selectorsUsage + " <recibo>",
		Short: "Query the result of a batch by its 15-digit receipt",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := parseSelectors(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			s, err := opts.session()
			if err != nil {
				return err
			}
			resp, err := s.client.ConsultarAutorizacao(cmd.Context(), sel.modelo, sel.uf, sel.ambiente, args[3])
			return s.print(cmd, resp, err)
		},
	}
}

func newConsultarCadastroCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "consultar-cadastro " + selectorsUsage + " <cpf|cnpj|ie> <valor>",
		Short: "Query the taxpayer registry",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := parseSelectors(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			doc, err := parseDocumento(args[3], args[4])
			if err != nil {
				return err
			}
			s, err := opts.session()
			if err != nil {
				return err
			}
			resp, err := s.client.ConsultarCadastro(cmd.Context(), sel.modelo, sel.uf, sel.ambiente, doc)
			return s.print(cmd, resp, err)
		},
	}
}

func newResolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve " + selectorsUsage + " <servico>",
		Short: "Print the endpoint URL of a service without calling it",
		Long: `Print the endpoint URL of a service without calling it.

Services: ` + servicoSlugs(),
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := parseSelectors(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			servico, ok := catalog.ParseServico(args[3])
			if !ok {
				return fmt.Errorf("unknown servico %q", args[3])
			}

			cfg, err := opts.load()
			if err != nil {
				return err
			}
			store, err := cfg.Store()
			if err != nil {
				return fmt.Errorf("loading webservices: %w", err)
			}
			resolver, err := cfg.Resolver()
			if err != nil {
				return err
			}

			url, err := resolver.ResolveEndpoint(webservices.Request{
				Store:        store,
				Modelo:       sel.modelo,
				UF:           sel.uf,
				Ambiente:     sel.ambiente,
				Servico:      servico,
				Contingencia: cfg.Contingencia,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), url)
			return err
		},
	}
}

func servicoSlugs() string {
	var out string
	for i, s := range catalog.Servicos() {
		if i > 0 {
			out += ", "
		}
		out += s.Slug()
	}
	return out
}

// print writes the response body to stdout and logs its status
func (s *session) print(cmd *cobra.Command, resp *dfe.Response, err error) error {
	if err != nil {
		return err
	}

	attrs := []any{
		slog.String("request_id", resp.RequestID),
		slog.String("url", resp.URL),
		slog.Duration("duration", resp.Duration),
	}
	parsed, perr := resp.Parse()
	var fault *soap.FaultError
	switch {
	case errors.As(perr, &fault):
		s.logger.Warn("web service returned a fault", append(attrs, slog.String("code", fault.Code), slog.String("reason", fault.Reason))...)
	case perr != nil:
		s.logger.Warn("response is not a SOAP envelope", append(attrs, slog.Any("error", perr))...)
	default:
		s.logger.Info("response received", append(attrs, slog.String("cStat", parsed.CStat), slog.String("xMotivo", parsed.XMotivo))...)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), resp.String())
	return err
}
