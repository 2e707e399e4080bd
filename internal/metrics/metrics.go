// Package metrics exposes Prometheus counters for upstream calls, token refreshes and renders.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	APITwitch      = "twitch"
	APITwitchOAuth = "twitch_oauth"
	APIVatsim      = "vatsim"

	outcomeTransportError = "transport_error"
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tvs",
		Name:      "upstream_requests_total",
		Help:      "Outbound API requests by upstream and outcome.",
	}, []string{"api", "outcome"})

	tokenRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tvs",
		Name:      "token_refresh_total",
		Help:      "Token freshness checks by outcome.",
	}, []string{"outcome"})

	renders = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tvs",
		Name:      "renders_total",
		Help:      "Widget renders by status.",
	}, []string{"status"})
)

// ObserveUpstream counts one request; status 0 means no reply was received.
func ObserveUpstream(api string, status int) {
	upstreamRequests.WithLabelValues(api, upstreamOutcome(status)).Inc()
}

func ObserveRefresh(outcome string) {
	tokenRefreshes.WithLabelValues(outcome).Inc()
}

func ObserveRender(status string) {
	renders.WithLabelValues(status).Inc()
}

func upstreamOutcome(status int) string {
	if status == 0 {
		return outcomeTransportError
	}
	return strconv.Itoa(status/100) + "xx"
}
