// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rico/lvldb"
	"github.com/vechain/rico/thor"
)

func newStater(t *testing.T) *Stater {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStater(db, 16)
}

func M(a ...any) []any {
	return a
}

func TestStateReadWrite(t *testing.T) {
	st := newStater(t).NewState()

	addr := thor.BytesToAddress([]byte("rico"))
	storageKey := thor.BytesToBytes32([]byte("key"))

	assert.Equal(t, M(thor.Bytes32{}, nil), M(st.GetStorage(addr, storageKey)))

	st.SetStorage(addr, storageKey, thor.BytesToBytes32([]byte("value")))
	assert.Equal(t, M(thor.BytesToBytes32([]byte("value")), nil), M(st.GetStorage(addr, storageKey)))

	st.SetStorage(addr, storageKey, thor.Bytes32{})
	raw, err := st.GetRawStorage(addr, storageKey)
	assert.NoError(t, err)
	assert.Empty(t, raw)
}

func TestStateRevert(t *testing.T) {
	st := newStater(t).NewState()

	addr := thor.BytesToAddress([]byte("rico"))
	storageKey := thor.BytesToBytes32([]byte("key"))

	values := []thor.Bytes32{
		thor.BytesToBytes32([]byte("v1")),
		thor.BytesToBytes32([]byte("v2")),
		thor.BytesToBytes32([]byte("v3")),
	}

	var revisions []int
	for _, v := range values {
		revisions = append(revisions, st.NewCheckpoint())
		st.SetStorage(addr, storageKey, v)
	}

	for i := len(revisions) - 1; i >= 0; i-- {
		st.RevertTo(revisions[i])
		expected := thor.Bytes32{}
		if i > 0 {
			expected = values[i-1]
		}
		assert.Equal(t, M(expected, nil), M(st.GetStorage(addr, storageKey)))
	}
}

func TestEncodeDecodeStorage(t *testing.T) {
	st := newStater(t).NewState()
	addr := thor.BytesToAddress([]byte("rico"))
	key := thor.BytesToBytes32([]byte("record"))

	type record struct {
		A uint64
		B []byte
	}
	in := record{A: 7, B: []byte("x")}

	require.NoError(t, st.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(&in)
	}))

	var out record
	require.NoError(t, st.DecodeStorage(addr, key, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &out)
	}))
	assert.Equal(t, in, out)

	// list values are exposed as their hash
	raw, _ := st.GetRawStorage(addr, key)
	assert.Equal(t, M(thor.Blake2b(raw), nil), M(st.GetStorage(addr, key)))

	err := st.DecodeStorage(addr, key, func([]byte) error { return assert.AnError })
	assert.ErrorIs(t, err, assert.AnError)
}
