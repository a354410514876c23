// Package metrics owns the Prometheus registry exposed on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Scope labels for authorization decisions.
const (
	ScopeUser  = "user"
	ScopeEvent = "event"
)

// Metrics collects the application's Prometheus series. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	handler        http.Handler
	authzDecisions *prometheus.CounterVec
	wsClients      prometheus.Gauge
	notifications  *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "campus_authz_decisions_total",
		Help: "Authorization decisions by scope and result.",
	}, []string{"scope", "result"})
	clients := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "campus_ws_clients",
		Help: "Connected WebSocket clients on this instance.",
	})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "campus_notifications_total",
		Help: "Notifications broadcast, by delivery path.",
	}, []string{"path"})
	registry.MustRegister(
		decisions, clients, notifications,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Metrics{
		registry:       registry,
		handler:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		authzDecisions: decisions,
		wsClients:      clients,
		notifications:  notifications,
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveDecision counts one allow/deny outcome.
func (m *Metrics) ObserveDecision(scope string, allowed bool) {
	if m == nil {
		return
	}
	result := "deny"
	if allowed {
		result = "allow"
	}
	m.authzDecisions.WithLabelValues(scope, result).Inc()
}

func (m *Metrics) ClientConnected() {
	if m != nil {
		m.wsClients.Inc()
	}
}

func (m *Metrics) ClientDisconnected() {
	if m != nil {
		m.wsClients.Dec()
	}
}

// NotificationSent counts a broadcast; path is "local" or "redis".
func (m *Metrics) NotificationSent(path string) {
	if m != nil {
		m.notifications.WithLabelValues(path).Inc()
	}
}
