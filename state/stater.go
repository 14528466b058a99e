// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"

	"github.com/vechain/rico/kv"
)

// Stater is the state creator.
// It holds the committed storage and a cache of recently read values.
type Stater struct {
	store kv.Store
	cache *lru.Cache
}

// NewStater create a new stater.
// cacheSize limits the number of storage values cached, 0 disables the cache.
func NewStater(store kv.Store, cacheSize int) *Stater {
	s := &Stater{store: store}
	if cacheSize > 0 {
		s.cache, _ = lru.New(cacheSize)
	}
	return s
}

// NewState create a new state object upon the latest committed storage.
func (s *Stater) NewState() *State {
	return newState(s)
}

func (s *Stater) load(key storageKey) (rlp.RawValue, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			metricStorageCache().AddWithLabel(1, map[string]string{"type": "hit"})
			return v.(rlp.RawValue), nil
		}
		metricStorageCache().AddWithLabel(1, map[string]string{"type": "miss"})
	}

	data, err := s.store.Get(key.dbKey())
	if err != nil {
		if !s.store.IsNotFound(err) {
			return nil, err
		}
		data = nil
	}
	v := rlp.RawValue(data)
	if s.cache != nil {
		s.cache.Add(key, v)
	}
	return v, nil
}

func (s *Stater) cacheCommitted(key storageKey, v rlp.RawValue) {
	if s.cache != nil {
		s.cache.Add(key, v)
	}
}
