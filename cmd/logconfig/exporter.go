package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/veesix-networks/logcfg/pkg/logger"
)

// exporter serves the tool's Prometheus registry over HTTP.
type exporter struct {
	logger   *slog.Logger
	addr     string
	registry *prometheus.Registry
	parses   *prometheus.CounterVec
	server   *http.Server
}

func newExporter(addr string) *exporter {
	e := &exporter{
		addr:     addr,
		registry: prometheus.NewRegistry(),
		parses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "logcfg",
			Name:      "parses_total",
			Help:      "Configuration texts parsed, by result.",
		}, []string{"result"}),
	}
	e.registry.MustRegister(e.parses)
	return e
}

func (e *exporter) observeParse(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	e.parses.WithLabelValues(result).Inc()
}

func (e *exporter) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{}))
	return mux
}

func (e *exporter) Start() {
	e.logger = logger.Get(logger.Exporter)
	e.server = &http.Server{
		Addr:    e.addr,
		Handler: e.handler(),
	}

	go func() {
		e.logger.Info("Prometheus HTTP server listening", "addr", e.addr)
		if err := e.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			e.logger.Error("Prometheus HTTP server error", "error", err)
		}
	}()
}

func (e *exporter) Stop() {
	if e.server == nil {
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.server.Shutdown(shutdownCtx); err != nil {
		e.logger.Warn("Prometheus HTTP server shutdown failed", "error", err)
	}
}
