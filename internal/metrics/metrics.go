package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RoundsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rps_rounds_recorded_total",
			Help: "Rounds recorded, by round result",
		},
		[]string{"result"},
	)
	GamesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rps_games_created_total",
			Help: "Games created",
		},
	)
	GamesFinished = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rps_games_finished_total",
			Help: "Games that reached three round wins",
		},
	)
	RejectedRounds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rps_rounds_rejected_total",
			Help: "Round submissions rejected by the match engine",
		},
		[]string{"reason"},
	)

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)

	LeaderboardCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leaderboard_cache_lookups_total",
			Help: "Leaderboard cache lookups, by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		RoundsRecorded,
		GamesCreated,
		GamesFinished,
		RejectedRounds,
		HTTPRequests,
		HTTPDuration,
		RLRequests,
		RLBlocked,
		LeaderboardCache,
	)
}
