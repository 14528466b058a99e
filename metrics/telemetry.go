// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics exposes counters, gauges and histograms of the sale service. Meters are
// no-ops until InitializePrometheusMetrics is called.
package metrics

import (
	"net/http"
	"sync"
)

var metrics Metrics = defaultNoopMetrics()

// Metrics creates meters on first use and returns the same meter for a name afterwards.
type Metrics interface {
	GetOrCreateCountMeter(name string) CountMeter
	GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter
	GetOrCreateGaugeMeter(name string) GaugeMeter
	GetOrCreateHistogramVecMeter(name string, labels []string, buckets []int64) HistogramVecMeter
	GetOrCreateHandler() http.Handler
}

type (
	CountMeter interface {
		Add(int64)
	}
	CountVecMeter interface {
		AddWithLabel(int64, map[string]string)
	}
	GaugeMeter interface {
		Add(int64)
		Set(int64)
	}
	HistogramVecMeter interface {
		ObserveWithLabels(int64, map[string]string)
	}
)

// BucketHTTPReqs are the buckets of request durations in milliseconds.
var BucketHTTPReqs = []int64{
	0, 1, 2, 5, 10, 20, 30, 50, 75, 100,
	150, 200, 300, 400, 500, 750, 1000,
	1500, 2000, 3000, 4000, 5000, 10000,
}

// BucketOps are the buckets of sale operation durations in milliseconds.
var BucketOps = []int64{0, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}

// NoOp reports whether metrics collection is disabled.
func NoOp() bool {
	_, ok := metrics.(*noopMetrics)
	return ok
}

// HTTPHandler serves the collected metrics.
func HTTPHandler() http.Handler {
	return metrics.GetOrCreateHandler()
}

// LazyLoad defers creating a meter until first use, so package level meters can be declared
// before the metrics backend is chosen.
func LazyLoad[T any](create func() T) func() T {
	return sync.OnceValue(create)
}

func LazyLoadCounter(name string) func() CountMeter {
	return LazyLoad(func() CountMeter { return metrics.GetOrCreateCountMeter(name) })
}

func LazyLoadCounterVec(name string, labels []string) func() CountVecMeter {
	return LazyLoad(func() CountVecMeter { return metrics.GetOrCreateCountVecMeter(name, labels) })
}

func LazyLoadGauge(name string) func() GaugeMeter {
	return LazyLoad(func() GaugeMeter { return metrics.GetOrCreateGaugeMeter(name) })
}

func LazyLoadHistogramVec(name string, labels []string, buckets []int64) func() HistogramVecMeter {
	return LazyLoad(func() HistogramVecMeter { return metrics.GetOrCreateHistogramVecMeter(name, labels, buckets) })
}
