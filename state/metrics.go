// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/vechain/rico/metrics"

var (
	metricStorageCache  = metrics.LazyLoadCounterVec("storage_cache_count", []string{"type"})
	metricStorageWrites = metrics.LazyLoadCounter("storage_write_count")
)
