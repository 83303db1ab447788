package main

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veesix-networks/logcfg/pkg/logconfig"
	"github.com/veesix-networks/logcfg/pkg/logger"
)

func TestExporterCountsParses(t *testing.T) {
	e := newExporter("127.0.0.1:0")
	p := &parser{formatter: &Formatter{format: FormatCompact}, exporter: e}

	_, err := p.parse("INFO")
	require.NoError(t, err)
	_, err = p.parse("INFO=bad")
	require.True(t, errors.Is(err, logconfig.ErrInvalidLevel))
	_, err = p.parse("{")
	require.Error(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(e.parses.WithLabelValues("ok")))
	assert.Equal(t, float64(2), testutil.ToFloat64(e.parses.WithLabelValues("error")))
}

func TestExporterServesMetrics(t *testing.T) {
	e := newExporter("127.0.0.1:0")
	m, err := logger.NewMetrics(e.registry)
	require.NoError(t, err)

	cfg, err := logconfig.Parse("INFO:d; d=discard")
	require.NoError(t, err)
	tree, err := logger.New(cfg, logger.Options{Metrics: m})
	require.NoError(t, err)
	defer tree.Close()

	tree.Get("svc").Warn("counted")
	e.observeParse(nil)

	srv := httptest.NewServer(e.handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `logcfg_log_records_total{category="svc",level="WARN"} 1`)
	assert.Contains(t, string(body), `logcfg_parses_total{result="ok"} 1`)
}

func TestExporterStopWithoutStart(t *testing.T) {
	e := newExporter("127.0.0.1:0")
	e.Stop()
}
