package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sirosfoundation/go-dfe/pkg/catalog"
)

type statusRow struct {
	uf       catalog.UF
	cstat    string
	xmotivo  string
	duration time.Duration
	err      error
}

func newStatusAllCmd(opts *options) *cobra.Command {
	var (
		concurrency int
		interval    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "status-all <modelo> <ambiente>",
		Short: "Query the service status of every authority",
		Long: `Query the service status of every UF concurrently and print a table.

With --interval the query repeats until interrupted; when
observability.metrics.enabled is set the Prometheus endpoint is served
meanwhile.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			modelo, ok := catalog.ParseModelo(args[0])
			if !ok {
				return fmt.Errorf("unknown modelo %q (nfe, nfce)", args[0])
			}
			amb, ok := catalog.ParseAmbiente(args[1])
			if !ok {
				return fmt.Errorf("unknown ambiente %q (p, h)", args[1])
			}

			s, err := opts.session()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if interval > 0 && s.metrics != nil {
				stop := s.serveMetrics()
				defer stop()
			}

			for {
				rows := s.statusAll(ctx, modelo, amb, concurrency)
				if err := writeStatusTable(cmd.OutOrStdout(), rows); err != nil {
					return err
				}
				if interval <= 0 {
					return nil
				}
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(interval):
				}
			}
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 8, "maximum concurrent requests")
	cmd.Flags().DurationVar(&interval, "interval", 0, "repeat every interval until interrupted")

	return cmd
}

func (s *session) statusAll(ctx context.Context, modelo catalog.Modelo, amb catalog.Ambiente, limit int) []statusRow {
	ufs := catalog.UFs()
	rows := make([]statusRow, len(ufs))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, uf := range ufs {
		i, uf := i, uf
		g.Go(func() error {
			row := statusRow{uf: uf}
			resp, err := s.client.StatusServico(ctx, modelo, uf, amb)
			if err != nil {
				row.err = err
			} else {
				row.duration = resp.Duration
				parsed, perr := resp.Parse()
				if perr != nil {
					row.err = perr
				} else {
					row.cstat, row.xmotivo = parsed.CStat, parsed.XMotivo
				}
			}
			rows[i] = row
			// one failing authority must not cancel the others
			return nil
		})
	}
	_ = g.Wait()

	return rows
}

func writeStatusTable(w io.Writer, rows []statusRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "UF\tCSTAT\tMOTIVO\tDURATION")
	for _, row := range rows {
		if row.err != nil {
			fmt.Fprintf(tw, "%s\t-\t%v\t-\n", row.uf, row.err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.uf, row.cstat, row.xmotivo, row.duration.Round(time.Millisecond))
	}
	return tw.Flush()
}

func (s *session) serveMetrics() func() {
	mux := http.NewServeMux()
	mux.Handle(s.cfg.Metrics.Metrics.Path, s.metrics.Handler())

	server := &http.Server{
		Addr:              s.cfg.Metrics.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		s.logger.Info("serving metrics", slog.String("addr", server.Addr), slog.String("path", s.cfg.Metrics.Metrics.Path))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server failed", slog.Any("error", err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
}
