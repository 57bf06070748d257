/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Pipeline metrics
	validationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fwvalidate_validation_duration_seconds",
			Help:    "Time taken to run the full validation pipeline on one file",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	validationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fwvalidate_validation_total",
			Help: "Total number of firmware validations",
		},
		[]string{"status"}, // passed or failed
	)

	stageTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fwvalidate_stage_total",
			Help: "Total number of stage results",
		},
		[]string{"stage", "result"}, // passed, failed or warning
	)

	stageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fwvalidate_stage_duration_seconds",
			Help:    "Time taken by individual pipeline stages",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"stage"},
	)

	lastValidationTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fwvalidate_last_validation_timestamp_seconds",
			Help: "Unix time of the last completed validation",
		},
	)
)

func recordStage(cr CheckResult) {
	result := "passed"
	switch {
	case cr.Passed:
	case cr.Advisory:
		result = "warning"
	default:
		result = "failed"
	}
	stageTotal.WithLabelValues(cr.Stage.String(), result).Inc()
	stageDuration.WithLabelValues(cr.Stage.String()).Observe(cr.Duration.Seconds())
}

func recordValidation(s Summary) {
	status := "passed"
	if !s.OverallPassed {
		status = "failed"
	}
	validationTotal.WithLabelValues(status).Inc()
	validationDuration.Observe(s.Duration.Seconds())
	lastValidationTimestamp.Set(float64(s.GeneratedAt.Unix()))
}
