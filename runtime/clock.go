// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"sync/atomic"
	"time"
)

// Clock supplies the current block height.
type Clock interface {
	BlockNumber() uint32
}

// ManualClock is a clock advanced by hand, for tests.
type ManualClock struct {
	num atomic.Uint32
}

func NewManualClock(num uint32) *ManualClock {
	c := &ManualClock{}
	c.num.Store(num)
	return c
}

func (c *ManualClock) BlockNumber() uint32 {
	return c.num.Load()
}

// Set moves the clock to num.
func (c *ManualClock) Set(num uint32) {
	c.num.Store(num)
}

// Advance moves the clock forward by n blocks and returns the new height.
func (c *ManualClock) Advance(n uint32) uint32 {
	return c.num.Add(n)
}

// ChainClock derives the block height from wall time, one block per interval since genesis.
type ChainClock struct {
	genesis  time.Time
	interval time.Duration
	now      func() time.Time
}

func NewChainClock(genesis time.Time, interval time.Duration) *ChainClock {
	return &ChainClock{
		genesis:  genesis,
		interval: interval,
		now:      time.Now,
	}
}

func (c *ChainClock) BlockNumber() uint32 {
	elapsed := c.now().Sub(c.genesis)
	if elapsed < 0 || c.interval <= 0 {
		return 0
	}
	n := uint64(elapsed / c.interval)
	if n > uint64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(n)
}

// BlockTime returns the wall time at which block num starts.
func (c *ChainClock) BlockTime(num uint32) time.Time {
	return c.genesis.Add(time.Duration(num) * c.interval)
}

// Interval returns the block interval.
func (c *ChainClock) Interval() time.Duration {
	return c.interval
}
