package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Hub metrics collectors
var (
	// Upstream agents

	AgentFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hub_agent_fetch_duration_seconds",
			Help:    "Latency of a single Glances agent fetch in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"outcome"},
	)

	HostUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hub_host_up",
			Help: "1 if the host was online in the last overview, 0 otherwise",
		},
		[]string{"host"},
	)

	HostStatusTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hub_host_status_total",
			Help: "Total number of overview rows produced, by host status",
		},
		[]string{"status"},
	)

	// Overview

	OverviewDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hub_overview_duration_seconds",
			Help:    "Wall time to assemble the full overview in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	// HTTP API

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hub_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

const (
	OutcomeOK       = "ok"
	OutcomeTimeout  = "timeout"
	OutcomeUpstream = "upstream"
)
