// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"io"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/rico/thor"
)

// Stage abstracts changes on the contract storage.
type Stage struct {
	stater  *Stater
	keys    []storageKey
	changes map[storageKey]rlp.RawValue
}

func newStage(stater *Stater, changes map[storageKey]rlp.RawValue) *Stage {
	keys := make([]storageKey, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i].dbKey(), keys[j].dbKey()) < 0
	})
	return &Stage{stater: stater, keys: keys, changes: changes}
}

// Len returns count of changed storage slots.
func (s *Stage) Len() int {
	return len(s.keys)
}

// Hash computes the digest of all changes, in key order.
func (s *Stage) Hash() thor.Bytes32 {
	return thor.Blake2bFn(func(w io.Writer) {
		for _, k := range s.keys {
			w.Write(k.dbKey())
			w.Write(s.changes[k])
		}
	})
}

// Commit writes all changes into the store atomically.
func (s *Stage) Commit() (thor.Bytes32, error) {
	batch := s.stater.store.NewBatch()
	for _, k := range s.keys {
		var err error
		if v := s.changes[k]; len(v) == 0 {
			err = batch.Delete(k.dbKey())
		} else {
			err = batch.Put(k.dbKey(), v)
		}
		if err != nil {
			return thor.Bytes32{}, errors.Wrap(err, "stage storage")
		}
	}
	if err := batch.Write(); err != nil {
		return thor.Bytes32{}, errors.Wrap(err, "commit storage")
	}
	for _, k := range s.keys {
		s.stater.cacheCommitted(k, s.changes[k])
	}
	metricStorageWrites().Add(int64(len(s.keys)))
	return s.Hash(), nil
}
