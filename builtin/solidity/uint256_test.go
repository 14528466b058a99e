// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rico/thor"
)

func TestUint256(t *testing.T) {
	ctx := newTestContext(t)
	uint := NewUint256(ctx, thor.Bytes32{0o1})

	value, err := uint.Get()
	require.NoError(t, err)
	assert.Equal(t, 0, value.Sign())

	require.NoError(t, uint.Set(big.NewInt(1000)))
	value, err = uint.Get()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), value)

	assert.NoError(t, uint.Add(big.NewInt(500)))
	value, err = uint.Get()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1500), value)

	assert.NoError(t, uint.Sub(big.NewInt(200)))
	value, err = uint.Get()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1300), value)

	// never wraps below zero
	assert.ErrorIs(t, uint.Sub(big.NewInt(1301)), errNegative)
	value, err = uint.Get()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1300), value)
}

func TestUint256Overflow(t *testing.T) {
	ctx := newTestContext(t)
	uint := NewUint256(ctx, thor.Bytes32{0o4})

	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	require.NoError(t, uint.Set(max))

	assert.ErrorIs(t, uint.Set(new(big.Int).Lsh(big.NewInt(1), 256)), ErrOverflow)
	assert.ErrorIs(t, uint.Add(big.NewInt(1)), ErrOverflow)

	// the slot keeps the last stored value
	value, err := uint.Get()
	require.NoError(t, err)
	assert.Equal(t, max, value)

	half := new(big.Int).Lsh(big.NewInt(1), 255)
	require.NoError(t, uint.Set(half))
	assert.ErrorIs(t, uint.Add(half), ErrOverflow)
	value, err = uint.Get()
	require.NoError(t, err)
	assert.Equal(t, half, value)
}

func TestRawAndAddress(t *testing.T) {
	ctx := newTestContext(t)

	raw := NewRaw[*big.Int](ctx, thor.Bytes32{0o2})
	v, err := raw.Get()
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, raw.Upsert(big.NewInt(77)))
	v, err = raw.Get()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(77), v)

	addr := NewAddress(ctx, thor.Bytes32{0o3})
	a, err := addr.Get()
	require.NoError(t, err)
	assert.True(t, a.IsZero())

	addr.Set(thor.BytesToAddress([]byte("beneficiary")))
	a, err = addr.Get()
	require.NoError(t, err)
	assert.Equal(t, thor.BytesToAddress([]byte("beneficiary")), a)
}
