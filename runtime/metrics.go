// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/vechain/rico/metrics"

var (
	metricOpCount      = metrics.LazyLoadCounterVec("operation_count", []string{"op", "status"})
	metricOpDuration   = metrics.LazyLoadHistogramVec("operation_duration_ms", []string{"op"}, metrics.BucketOps)
	metricStorageWords = metrics.LazyLoadCounterVec("storage_words", []string{"op", "kind"})
	metricBlockNumber  = metrics.LazyLoadGauge("block_number")
	metricParticipants = metrics.LazyLoadCounter("participant_new_count")
	metricFeedDropped  = metrics.LazyLoadCounter("feed_dropped_count")
)
