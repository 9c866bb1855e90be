package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/praetorian-inc/macrolex/pkg/scanner"
	"github.com/praetorian-inc/macrolex/pkg/serve"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer scan requests over stdin/stdout",
	Long: `Read NDJSON requests from stdin and write one NDJSON response per request
to stdout. Supported request types are "scan", "scan_batch", "locate" and "close".

The process exits when stdin closes, a "close" request arrives, or on SIGINT/SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveMetricsAddr string

func init() {
	addSyntaxFlags(serveCmd)
	serveCmd.Flags().StringVar(&serveMetricsAddr, "metrics-addr", "", "Expose Prometheus metrics on this address (e.g. :9090)")
}

func runServe(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return fmt.Errorf("loading syntax: %w", err)
	}

	core, err := scanner.NewCoreWithSettings(settings, cmdLogger{cmd: cmd})
	if err != nil {
		return fmt.Errorf("invalid syntax: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var opts []serve.Option
	if serveMetricsAddr != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, serve.WithMetrics(serve.NewMetrics(reg)))

		stopMetrics, err := startMetricsServer(cmd, serveMetricsAddr, reg)
		if err != nil {
			return err
		}
		defer stopMetrics()
	}

	logf(cmd, "serving with end ident %q", settings.MacroEndIdent)
	err = serve.NewServer(core, cmd.InOrStdin(), cmd.OutOrStdout(), opts...).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// startMetricsServer serves reg on addr under /metrics until the returned func is called.
func startMetricsServer(cmd *cobra.Command, addr string, reg *prometheus.Registry) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logf(cmd, "metrics server: %v", err)
		}
	}()
	logf(cmd, "metrics on http://%s/metrics", ln.Addr())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}, nil
}
