// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instrumentation for the kernel operations this package exposes
// (SPEC_FULL.md §16). Grounded on
// goodnatureofminers-blockinsight7000-backend/internal/metrics/btc_repository.go's
// promauto counter/histogram-vec pattern.
var (
	modifiersGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "poststake",
		Subsystem: "modifier",
		Name:      "generated_total",
		Help:      "Count of stake modifiers this node generated (as opposed to inherited).",
	})

	kernelChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "poststake",
		Subsystem: "kernel",
		Name:      "checks_total",
		Help:      "Count of coinstake kernel checks, by outcome.",
	}, []string{"result"})

	kernelCheckDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "poststake",
		Subsystem: "kernel",
		Name:      "check_duration_seconds",
		Help:      "Latency of CheckStakeTimeKernelHash calls.",
		Buckets:   prometheus.DefBuckets,
	})

	averageStakeWeightGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "poststake",
		Subsystem: "weight",
		Name:      "average_stake_weight",
		Help:      "Most recently computed rolling average stake weight.",
	})
)

// observeKernelCheck records the outcome and latency of a kernel check.
// Called by CheckStakeTimeKernelHash; kept separate from that function's
// consensus logic so the hot path stays free of metric-label branching.
// A RuleError (a consensus rejection) is counted as "reject"; any other
// error is counted as "error".
func observeKernelCheck(ok bool, err error, started time.Time) {
	result := "accept"
	var ruleErr RuleError
	switch {
	case errors.As(err, &ruleErr):
		result = "reject"
	case err != nil:
		result = "error"
	case !ok:
		result = "reject"
	}
	kernelChecksTotal.WithLabelValues(result).Inc()
	kernelCheckDuration.Observe(time.Since(started).Seconds())
}
