// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package settlement computes refunds for returned tokens and for cancelled contributions.
package settlement

import (
	"math/big"

	"github.com/vechain/rico/builtin/rico/ledger"
	"github.com/vechain/rico/builtin/rico/reverts"
	"github.com/vechain/rico/builtin/rico/stage"
	"github.com/vechain/rico/builtin/rico/vesting"
)

// Withdrawal is the outcome of returning locked tokens.
type Withdrawal struct {
	Block  uint32
	Tokens *big.Int // tokens consumed
	Price  *big.Int
	Refund *big.Int
	// accepted value vested since the last checkpoint, settled to the project
	Allocated *big.Int

	lockedTokens *big.Int
	lockedValue  *big.Int
}

// Compute settles the return of tokens at block.
//
// Tokens are refunded at the current stage price, floored. The refund is capped by the
// participant's locked accepted value and by the locked part of the project pool.
func Compute(
	p *ledger.Participant,
	sched *stage.Schedule,
	scale *big.Int,
	block uint32,
	tokens *big.Int,
	poolLocked *big.Int,
) (*Withdrawal, error) {
	if tokens == nil || tokens.Sign() <= 0 {
		return nil, reverts.ErrZeroAmount
	}
	locked := p.LockedAt(sched, block)
	if locked.Sign() == 0 {
		return nil, reverts.ErrNoLockedTokens
	}
	if tokens.Cmp(locked) > 0 {
		return nil, reverts.ErrExceedsLockedBalance.Withf("requested %v, locked %v", tokens, locked)
	}

	price := sched.PriceAt(block)
	refund := vesting.Value(tokens, price, scale)

	unsettled := p.UnsettledValue()
	lockedValue := vesting.Min(p.ValueLock(sched).At(sched.Progress(block)), unsettled)
	allocated := new(big.Int).Sub(unsettled, lockedValue)

	refund = vesting.Min(refund, lockedValue)
	refund = new(big.Int).Set(vesting.Min(refund, poolLocked))

	return &Withdrawal{
		Block:        block,
		Tokens:       new(big.Int).Set(tokens),
		Price:        price,
		Refund:       refund,
		Allocated:    allocated,
		lockedTokens: new(big.Int).Sub(locked, tokens),
		lockedValue:  new(big.Int).Sub(lockedValue, refund),
	}, nil
}

// Apply records the withdrawal on the participant and checkpoints its locks.
func (w *Withdrawal) Apply(p *ledger.Participant) {
	p.WithdrawnValue = new(big.Int).Add(p.WithdrawnValue, w.Refund)
	p.AllocatedValue = new(big.Int).Add(p.AllocatedValue, w.Allocated)
	p.ReturnedTokens = new(big.Int).Add(p.ReturnedTokens, w.Tokens)
	p.LockedTokens = w.lockedTokens
	p.LockedValue = w.lockedValue
	p.Checkpoint = w.Block
}

// Cancellation is the outcome of cancelling all pending contributions.
type Cancellation struct {
	From, To uint32 // cancelled contribution indexes [From, To)
	Refund   *big.Int
	Tokens   *big.Int
}

// ComputeCancel settles a full cancel. It is allowed only while nothing was ever accepted
// and the participant is not whitelisted.
func ComputeCancel(p *ledger.Participant) (*Cancellation, error) {
	pending := p.PendingValue()
	if p.Whitelisted || p.AcceptedValue.Sign() > 0 || pending.Sign() <= 0 {
		return nil, reverts.ErrCancelNotAllowed
	}
	return &Cancellation{
		From:   p.SettledCount,
		To:     p.ContributionCount,
		Refund: pending,
		Tokens: p.OutstandingTokens(),
	}, nil
}

// Apply records the cancel. Contribution entries stay untouched, the settled cursor moves past them.
func (c *Cancellation) Apply(p *ledger.Participant) {
	p.ReturnedValue = new(big.Int).Add(p.ReturnedValue, c.Refund)
	p.ReturnedTokens = new(big.Int).Add(p.ReturnedTokens, c.Tokens)
	p.ReservedTokens = new(big.Int)
	p.LockedTokens = new(big.Int)
	p.LockedValue = new(big.Int)
	p.SettledCount = c.To
}
