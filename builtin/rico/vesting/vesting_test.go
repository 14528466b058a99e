// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

import (
	"math/big"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
)

func TestLockAt(t *testing.T) {
	l := NewLock(big.NewInt(1000), 0, 30)

	tests := []struct {
		num   uint64
		floor int64
		ceil  int64
	}{
		{0, 1000, 1000},
		{1, 966, 967},
		{10, 666, 667},
		{15, 500, 500},
		{29, 33, 34},
		{30, 0, 0},
		{100, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, big.NewInt(tt.floor).String(), l.At(tt.num).String(), "num %d", tt.num)
		assert.Equal(t, big.NewInt(tt.ceil).String(), l.AtCeil(tt.num).String(), "num %d", tt.num)
	}
}

func TestLockRebase(t *testing.T) {
	l := NewLock(big.NewInt(1000), 0, 30)

	// withdraw 300 of the 666 locked at progress 10
	locked := l.At(10)
	l = l.Rebase(new(big.Int).Sub(locked, big.NewInt(300)), 10)

	assert.Equal(t, "366", l.At(10).String())
	assert.Equal(t, "366", l.At(5).String(), "never above the base before the checkpoint")
	assert.Equal(t, "183", l.At(20).String())
	assert.Equal(t, "0", l.At(30).String())
}

func TestLockAdd(t *testing.T) {
	// adding at the start is exact
	l := NewLock(nil, 0, 30).Add(big.NewInt(600))
	assert.Equal(t, "600", l.Base.String())

	// after a checkpoint the added amount still follows the global curve
	l = NewLock(big.NewInt(100), 10, 30).Add(big.NewInt(600))
	assert.Equal(t, "500", l.Base.String())
	// 100 checkpointed plus 600*(30-15)/30
	assert.Equal(t, "375", l.At(15).String())

	done := NewLock(big.NewInt(100), 30, 30)
	assert.Equal(t, "0", done.Increment(big.NewInt(600)).String())
	assert.Equal(t, "0", done.At(10).String())
}

func TestLockMonotonic(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for range 100 {
		var base, cp, span uint32
		f.Fuzz(&base)
		f.Fuzz(&cp)
		f.Fuzz(&span)
		span = span%1000 + 1
		cp %= span

		l := NewLock(new(big.Int).SetUint64(uint64(base)), uint64(cp), uint64(span))
		prev := l.At(0)
		for num := uint64(0); num <= uint64(span); num++ {
			cur := l.At(num)
			assert.True(t, cur.Cmp(prev) <= 0, "lock grew at %d", num)
			assert.True(t, l.AtCeil(num).Cmp(cur) >= 0)
			prev = cur
		}
		assert.Equal(t, 0, prev.Sign())
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name                        string
		outstanding, locked, resv   int64
		wantLocked, wantUnl, wantRs int64
	}{
		{"all locked", 100, 100, 100, 100, 0, 0},
		{"reserved from vested", 100, 60, 30, 60, 10, 30},
		{"reserved capped", 100, 60, 80, 60, 0, 40},
		{"nothing reserved", 100, 0, 0, 0, 100, 0},
		{"locked capped", 50, 60, 0, 50, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Split(big.NewInt(tt.outstanding), big.NewInt(tt.locked), big.NewInt(tt.resv))
			assert.Equal(t, big.NewInt(tt.wantLocked).String(), b.Locked.String())
			assert.Equal(t, big.NewInt(tt.wantUnl).String(), b.Unlocked.String())
			assert.Equal(t, big.NewInt(tt.wantRs).String(), b.Reserved.String())

			sum := new(big.Int).Add(b.Locked, b.Unlocked)
			sum.Add(sum, b.Reserved)
			assert.Equal(t, big.NewInt(tt.outstanding).String(), sum.String())
		})
	}
}

func TestTokensAndValue(t *testing.T) {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	ether := new(big.Int).Set(scale)
	price := big.NewInt(21e14) // 0.0021 ether per token

	tokens := Tokens(ether, price, scale)
	assert.Equal(t, "476190476190476190476", tokens.String())

	// one wei lost to truncation
	refund := Value(tokens, price, scale)
	assert.Equal(t, "999999999999999999", refund.String())
	assert.Equal(t, ether.String(), ValueCeil(tokens, price, scale).String())

	exact := Tokens(ether, big.NewInt(2e15), scale)
	assert.Equal(t, "500000000000000000000", exact.String())
	assert.Equal(t, ether.String(), Value(exact, big.NewInt(2e15), scale).String())
	assert.Equal(t, ether.String(), ValueCeil(exact, big.NewInt(2e15), scale).String())
}
