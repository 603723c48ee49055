// Package metrics exposes the bot's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MonitorCycles counts monitoring cycles per source and outcome
	// (ok, scrape_failed, persist_failed).
	MonitorCycles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kinowatch_monitor_cycles_total",
		Help: "Monitoring cycles run, by source and outcome.",
	}, []string{"source", "outcome"})

	// FilmsListed tracks the size of the last scraped listing per source.
	FilmsListed = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "kinowatch_films_listed",
		Help: "Films in the most recent listing, by source.",
	}, []string{"source"})

	// ChangesDetected counts diffed changes per source and kind
	// (new, removed, updated).
	ChangesDetected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kinowatch_changes_detected_total",
		Help: "Program changes detected, by source and kind.",
	}, []string{"source", "kind"})

	// NotificationsSent counts successful per-recipient deliveries.
	NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kinowatch_notifications_sent_total",
		Help: "Update notifications delivered to subscribers.",
	})

	// NotificationsFailed counts per-recipient delivery failures.
	NotificationsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kinowatch_notifications_failed_total",
		Help: "Update notifications that could not be delivered.",
	})

	// CommandsHandled counts inbound chat commands by name.
	CommandsHandled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kinowatch_commands_handled_total",
		Help: "Chat commands handled, by command.",
	}, []string{"command"})
)
