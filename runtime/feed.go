// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"sync"

	"github.com/vechain/rico/logdb"
)

// Record is what one committed operation produced.
type Record struct {
	Op        string
	Block     uint32
	Events    []*logdb.Event
	Transfers []*logdb.Transfer
}

// Feed broadcasts committed records to subscribers.
type Feed struct {
	mu        sync.RWMutex
	listeners map[chan *Record]struct{}
}

func newFeed() *Feed {
	return &Feed{listeners: make(map[chan *Record]struct{})}
}

func (f *Feed) Subscribe(ch chan *Record) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listeners[ch] = struct{}{}
}

func (f *Feed) Unsubscribe(ch chan *Record) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.listeners, ch)
}

func (f *Feed) send(rec *Record) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for lsn := range f.listeners {
		select {
		case lsn <- rec:
		default: // slow subscribers miss records
			metricFeedDropped().Add(1)
		}
	}
}

// Len returns the number of subscribers.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return len(f.listeners)
}
