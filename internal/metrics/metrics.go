package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActionsTotal counts applied tournament actions by name.
	ActionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kickball_cup_actions_total",
		Help: "Tournament actions applied, by action.",
	}, []string{"action"})

	// RejectionsTotal counts engine rejections by action and reason.
	RejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kickball_cup_rejections_total",
		Help: "Tournament actions rejected, by action and reason.",
	}, []string{"action", "reason"})
)
