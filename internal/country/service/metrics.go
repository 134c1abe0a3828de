package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refreshRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atlas_refresh_runs_total",
		Help: "Refresh attempts by outcome.",
	}, []string{"result"})

	refreshRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atlas_refresh_records_total",
		Help: "Records reconciled during refresh by outcome.",
	}, []string{"outcome"})
)
