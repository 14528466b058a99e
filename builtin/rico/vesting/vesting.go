// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package vesting implements the linear lock curve of the sale.
//
// A lock is a base amount together with the vesting progress at its checkpoint. The amount
// still locked at progress num is base*(den-num)/(den-checkpoint): the whole base at the
// checkpoint, nothing once num reaches den. Checkpointing a lock at the current progress keeps
// its amount while letting later changes (withdrawals) apply from that point on.
package vesting

import (
	"math/big"
)

// Lock is a checkpointed locked amount.
type Lock struct {
	Base       *big.Int
	Checkpoint uint64 // vesting progress of the checkpoint
	Span       uint64 // total vesting progress
}

// NewLock returns a lock over base, checkpointed at progress checkpoint.
func NewLock(base *big.Int, checkpoint, span uint64) Lock {
	if base == nil {
		base = new(big.Int)
	}
	return Lock{Base: base, Checkpoint: checkpoint, Span: span}
}

// At returns the locked amount at progress num, rounded down.
func (l Lock) At(num uint64) *big.Int {
	return l.at(num, false)
}

// AtCeil returns the locked amount at progress num, rounded up.
func (l Lock) AtCeil(num uint64) *big.Int {
	return l.at(num, true)
}

func (l Lock) at(num uint64, ceil bool) *big.Int {
	switch {
	case l.Base.Sign() == 0, num >= l.Span, l.Checkpoint >= l.Span:
		return new(big.Int)
	case num <= l.Checkpoint:
		return new(big.Int).Set(l.Base)
	}
	return mulDiv(l.Base, l.Span-num, l.Span-l.Checkpoint, ceil)
}

// Increment returns the base increment that locks amount along the global curve,
// as if amount had been locked from the start of the vesting period.
func (l Lock) Increment(amount *big.Int) *big.Int {
	if l.Checkpoint >= l.Span {
		return new(big.Int)
	}
	return mulDiv(amount, l.Span-l.Checkpoint, l.Span, false)
}

// Add returns the lock with amount added along the global curve.
func (l Lock) Add(amount *big.Int) Lock {
	l.Base = new(big.Int).Add(l.Base, l.Increment(amount))
	return l
}

// Rebase returns a lock holding base, checkpointed at num.
func (l Lock) Rebase(base *big.Int, num uint64) Lock {
	return NewLock(base, num, l.Span)
}

// Balances is the split of an outstanding token balance at a point in time.
type Balances struct {
	Locked   *big.Int
	Unlocked *big.Int
	Reserved *big.Int
}

// Split divides outstanding tokens into locked, reserved and unlocked parts.
// Reserved tokens belong to pending contributions and are taken from the vested share,
// so locked+unlocked+reserved always equals outstanding.
func Split(outstanding, locked, reservedTokens *big.Int) Balances {
	if locked.Cmp(outstanding) > 0 {
		locked = outstanding
	}
	vested := new(big.Int).Sub(outstanding, locked)
	reserved := new(big.Int).Set(reservedTokens)
	if reserved.Cmp(vested) > 0 {
		reserved.Set(vested)
	}
	return Balances{
		Locked:   new(big.Int).Set(locked),
		Unlocked: vested.Sub(vested, reserved),
		Reserved: reserved,
	}
}

// Tokens returns floor(value * scale / price).
func Tokens(value, price, scale *big.Int) *big.Int {
	tokens := new(big.Int).Mul(value, scale)
	return tokens.Quo(tokens, price)
}

// Value returns floor(tokens * price / scale).
func Value(tokens, price, scale *big.Int) *big.Int {
	value := new(big.Int).Mul(tokens, price)
	return value.Quo(value, scale)
}

// ValueCeil returns ceil(tokens * price / scale).
func ValueCeil(tokens, price, scale *big.Int) *big.Int {
	value := new(big.Int).Mul(tokens, price)
	return divCeil(value, scale)
}

func mulDiv(x *big.Int, num, den uint64, ceil bool) *big.Int {
	r := new(big.Int).Mul(x, new(big.Int).SetUint64(num))
	d := new(big.Int).SetUint64(den)
	if ceil {
		return divCeil(r, d)
	}
	return r.Quo(r, d)
}

// divCeil divides non-negative x by positive d, rounding up. x is overwritten.
func divCeil(x, d *big.Int) *big.Int {
	m := new(big.Int)
	x.QuoRem(x, d, m)
	if m.Sign() > 0 {
		x.Add(x, big.NewInt(1))
	}
	return x
}

// Min returns the smaller of a and b.
func Min(a, b *big.Int) *big.Int {
	if a.Cmp(b) < 0 {
		return a
	}
	return b
}
