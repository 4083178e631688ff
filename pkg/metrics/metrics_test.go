package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := New()

	m.ObserveInstall("official", nil)
	m.ObserveInstall("official", nil)
	m.ObserveInstall("local", errors.New("boom"))
	m.ObserveRemoval("extra", nil)
	m.AddDownloadedBytes(512)
	m.AddDownloadedBytes(-1)
	m.ObserveRefresh(nil)
	m.SetAppWindows(2)
	m.SetOpenPorts(1)
	m.ObserveChannelRequest("apps:get-local-apps", nil)
	m.SetChannelPeers(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.InstallsTotal.WithLabelValues("official", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InstallsTotal.WithLabelValues("local", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RemovalsTotal.WithLabelValues("extra", "success")))
	assert.Equal(t, 512.0, testutil.ToFloat64(m.DownloadedBytes))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AppWindows))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OpenPorts))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ChannelPeers))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "launchpad_installs_total")
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveInstall("official", nil)
		m.ObserveRemoval("official", nil)
		m.AddDownloadedBytes(1)
		m.ObserveRefresh(nil)
		m.SetAppWindows(1)
		m.SetOpenPorts(1)
		m.ObserveChannelRequest("x", nil)
		m.SetChannelPeers(1)
	})
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
