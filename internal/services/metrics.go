// Package services — Prometheus instrumentation for the offline core.
//
// Label cardinality is kept deliberately small: action types are a
// closed set, load sources are three fixed strings, and sync outcomes
// are two. Collectors are registered with the default registry and
// shared by all service instances in the process.
package services

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// syncCycles counts completed sync cycles by outcome
	// ("completed" or "skipped" via the single-flight / offline guard).
	syncCycles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offline_sync_cycles_total",
			Help: "Total number of sync cycles by outcome.",
		},
		[]string{"outcome"},
	)

	// actionsReplayed counts pending actions confirmed by the remote
	// API, by action type.
	actionsReplayed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offline_actions_replayed_total",
			Help: "Pending actions successfully replayed against the remote API.",
		},
		[]string{"type"},
	)

	// actionsDropped counts actions evicted at the retry ceiling. A
	// non-zero rate here is silent data loss surfacing.
	actionsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offline_actions_dropped_total",
			Help: "Pending actions permanently dropped after exhausting retries.",
		},
		[]string{"type"},
	)

	// actionFailures counts individual failed replay attempts.
	actionFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offline_action_failures_total",
			Help: "Failed replay attempts (each one increments a retry count).",
		},
		[]string{"type"},
	)

	// outboxDepth gauges the pending-action backlog after each cycle.
	outboxDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "offline_outbox_depth",
			Help: "Pending actions remaining after the most recent sync cycle.",
		},
	)

	// analyticsSynced counts analytics events marked synced.
	analyticsSynced = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "offline_analytics_synced_total",
			Help: "Analytics events uploaded and marked synced.",
		},
	)

	// cacheLoads counts DataAccessor loads by the source that actually
	// served the data: "network", "cache", or "fallback".
	cacheLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offline_cache_loads_total",
			Help: "Data accessor loads by serving source.",
		},
		[]string{"source"},
	)
)

func init() {
	prometheus.MustRegister(
		syncCycles,
		actionsReplayed,
		actionsDropped,
		actionFailures,
		outboxDepth,
		analyticsSynced,
		cacheLoads,
	)
}
