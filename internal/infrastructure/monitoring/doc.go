/*
Package monitoring provides Prometheus metrics for the conversion engine.

# Metrics

All names are prefixed with the configured namespace (default "units"):

- conversions_resolved_total{status}: resolutions by outcome (resolved, cached, error)
- conversion_errors_total{kind}: failures by error kind
- resolution_duration_seconds: resolution latency
- cache_hits_total, cache_misses_total: conversion cache effectiveness
- schemas_loaded: schemas registered in the context

# Usage

	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics("units", reg)
	converter := units.NewConverter(ctx, units.WithRecorder(metrics))

Metrics implements units.Recorder. A nil *Metrics records nothing, so a
disabled collector can be passed around without checks.
*/
package monitoring
