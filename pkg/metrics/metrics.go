// Package metrics exposes the launcher's Prometheus collectors. All methods are safe to call
// on a nil *Metrics, so components can run without instrumentation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "launchpad"

// Metrics holds all Prometheus metrics.
type Metrics struct {
	registry *prometheus.Registry

	InstallsTotal   *prometheus.CounterVec
	RemovalsTotal   *prometheus.CounterVec
	DownloadedBytes prometheus.Counter
	CatalogRefresh  *prometheus.CounterVec

	AppWindows prometheus.Gauge
	OpenPorts  prometheus.Gauge

	ChannelRequests *prometheus.CounterVec
	ChannelPeers    prometheus.Gauge
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		InstallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "installs_total",
				Help:      "Total number of app installs",
			},
			[]string{"source", "result"},
		),
		RemovalsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "removals_total",
				Help:      "Total number of app removals",
			},
			[]string{"source", "result"},
		),
		DownloadedBytes: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "downloaded_bytes_total",
				Help:      "Bytes of app packages downloaded",
			},
		),
		CatalogRefresh: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_refresh_total",
				Help:      "Total number of app list refreshes",
			},
			[]string{"result"},
		),
		AppWindows: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "app_windows",
				Help:      "Number of open app windows",
			},
		),
		OpenPorts: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "serial_ports_open",
				Help:      "Number of open serial ports",
			},
		),
		ChannelRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "channel_requests_total",
				Help:      "Total number of channel requests",
			},
			[]string{"channel", "status"},
		),
		ChannelPeers: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "channel_peers",
				Help:      "Number of connected display processes",
			},
		),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// ObserveInstall counts an install of an app from source.
func (m *Metrics) ObserveInstall(source string, err error) {
	if m == nil {
		return
	}
	m.InstallsTotal.WithLabelValues(source, resultLabel(err)).Inc()
}

// ObserveRemoval counts a removal of an app from source.
func (m *Metrics) ObserveRemoval(source string, err error) {
	if m == nil {
		return
	}
	m.RemovalsTotal.WithLabelValues(source, resultLabel(err)).Inc()
}

// AddDownloadedBytes adds n to the downloaded bytes.
func (m *Metrics) AddDownloadedBytes(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.DownloadedBytes.Add(float64(n))
}

// ObserveRefresh counts a refresh of the app lists.
func (m *Metrics) ObserveRefresh(err error) {
	if m == nil {
		return
	}
	m.CatalogRefresh.WithLabelValues(resultLabel(err)).Inc()
}

// SetAppWindows records the number of open app windows.
func (m *Metrics) SetAppWindows(n int) {
	if m == nil {
		return
	}
	m.AppWindows.Set(float64(n))
}

// SetOpenPorts records the number of open serial ports.
func (m *Metrics) SetOpenPorts(n int) {
	if m == nil {
		return
	}
	m.OpenPorts.Set(float64(n))
}

// ObserveChannelRequest counts a handled channel request.
func (m *Metrics) ObserveChannelRequest(channel string, err error) {
	if m == nil {
		return
	}
	m.ChannelRequests.WithLabelValues(channel, resultLabel(err)).Inc()
}

// SetChannelPeers records the number of connected display processes.
func (m *Metrics) SetChannelPeers(n int) {
	if m == nil {
		return
	}
	m.ChannelPeers.Set(float64(n))
}
