package main

import (
	"context"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/browser"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/internal/preview"
	"github.com/vango-dev/vtree/pkg/observe"
	"github.com/vango-dev/vtree/pkg/vtree"
)

func serveCmd(g *globals) *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve [demo]",
		Short: "Serve a live preview of a demo tree",
		Long: `Serve a live preview of a demo tree.

The tree is mounted into an in-memory document driven by the render
loop. Clicks in the browser are dispatched to the mounted tree and each
flushed render is pushed to connected pages over a websocket.

Metrics are served at /metrics.

Examples:
  vtree serve
  vtree serve counter --addr :8080 --open
  vtree serve todos --trace-stdout`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "app"
			if len(args) == 1 {
				name = args[0]
			}
			return runServe(cmd.Context(), g, name, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.addr, "addr", "a", "", "Listen address (default from config)")
	cmd.Flags().BoolVar(&opts.tracing, "trace", false, "Emit OpenTelemetry spans through the global tracer provider")
	cmd.Flags().BoolVar(&opts.traceStdout, "trace-stdout", false, "Write OpenTelemetry spans to stderr")
	cmd.Flags().BoolVar(&opts.open, "open", false, "Open the preview in the default browser")

	return cmd
}

type serveOptions struct {
	addr        string
	tracing     bool
	traceStdout bool
	open        bool
}

// previewURL returns the address a browser should load for a listen address.
func previewURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

func runServe(ctx context.Context, g *globals, name string, so serveOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if so.addr != "" {
		cfg.Preview.Addr = so.addr
	}
	d, err := lookupDemo(name)
	if err != nil {
		return err
	}
	logger := g.logger(cfg)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	observers := []vtree.Observer{observe.Prometheus(observe.WithRegistry(reg))}
	switch {
	case so.traceStdout:
		tp, err := observe.StdoutProvider(g.stderr)
		if err != nil {
			return err
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Warn("trace shutdown failed", "error", err)
			}
		}()
		observers = append(observers, observe.Tracer(observe.WithTracerProvider(tp)))
	case so.tracing:
		observers = append(observers, observe.Tracer())
	}

	runtimeOpts := append(cfg.RuntimeOptions(logger), vtree.WithObserver(observe.Multi(observers...)))
	session, err := preview.NewSession(preview.SessionConfig{
		Demo:     d,
		Interval: time.Duration(cfg.FrameInterval),
		Options:  runtimeOpts,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	srv := preview.New(preview.Config{
		Addr:    cfg.Preview.Addr,
		Session: session,
		Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Logger:  logger,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	url := previewURL(cfg.Preview.Addr)
	success(g.stderr, "Serving %s at %s", d.Name, url)
	if so.open {
		browser.Stdout, browser.Stderr = io.Discard, io.Discard
		if err := browser.OpenURL(url); err != nil {
			logger.Warn("open browser failed", "url", url, "error", err)
		}
	}
	if err := srv.Run(ctx); err != nil {
		return errors.New("E151").Wrap(err)
	}
	return nil
}
