package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	marginComputes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "margindesk_margin_computes_total",
		Help: "Completed margin calculations.",
	})

	reportUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "margindesk_report_uploads_total",
		Help: "Parsed report uploads by file format.",
	}, []string{"format"})

	settlementsSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "margindesk_settlements_saved_total",
		Help: "Settlement records written to the database.",
	})
)
