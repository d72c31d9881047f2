package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "cogtrain"
)

var (
	SessionsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "session", "started_total"),
		Help: "Sessions started per game",
	}, []string{"game"})
	SessionsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "session", "completed_total"),
		Help: "Sessions completed per game and whether they were won",
	}, []string{"game", "won"})
	SessionsLive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "session", "live"),
		Help: "Sessions currently held by the manager",
	})
	Responses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "session", "responses_total"),
		Help: "Judged responses per game and verdict",
	}, []string{"game", "verdict"})
	ReportWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "report", "writes_total"),
		Help: "Result record writes per game and status",
	}, []string{"game", "status"})
	ReportWriteDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "report", "write_duration_seconds"),
		Help:    "Duration of result record writes in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{"game"})
	TuningReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "tuning", "reloads_total"),
		Help: "Tuning reloads by status",
	}, []string{"status"})
)
