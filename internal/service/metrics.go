package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	GamesStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "minesweeper_games_started_total",
			Help: "Games moved from fresh to playing by a first reveal",
		},
	)
	GamesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minesweeper_games_finished_total",
			Help: "Finished games by result",
		},
		[]string{"result"},
	)
	Clicks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minesweeper_clicks_total",
			Help: "Clicks handled by button",
		},
		[]string{"button"},
	)
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "minesweeper_active_sessions",
			Help: "Sessions currently held in memory",
		},
	)
)

func init() {
	prometheus.MustRegister(GamesStarted)
	prometheus.MustRegister(GamesFinished)
	prometheus.MustRegister(Clicks)
	prometheus.MustRegister(ActiveSessions)
}
