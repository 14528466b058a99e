// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/vechain/rico/builtin/rico/stage"
	"github.com/vechain/rico/builtin/rico/vesting"
)

// TokenLock returns the lock over the participant's outstanding tokens.
func (p *Participant) TokenLock(sched *stage.Schedule) vesting.Lock {
	return vesting.NewLock(p.LockedTokens, sched.Progress(p.Checkpoint), sched.Span())
}

// ValueLock returns the lock over the participant's accepted, unsettled value.
func (p *Participant) ValueLock(sched *stage.Schedule) vesting.Lock {
	return vesting.NewLock(p.LockedValue, sched.Progress(p.Checkpoint), sched.Span())
}

// LockedAt returns the locked token balance at block.
func (p *Participant) LockedAt(sched *stage.Schedule, block uint32) *big.Int {
	return vesting.Min(p.TokenLock(sched).At(sched.Progress(block)), p.OutstandingTokens())
}

// Balances splits the outstanding tokens at block.
func (p *Participant) Balances(sched *stage.Schedule, block uint32) vesting.Balances {
	return vesting.Split(p.OutstandingTokens(), p.LockedAt(sched, block), p.ReservedTokens)
}

// AddTokens records bought tokens, locked along the vesting curve.
func (p *Participant) AddTokens(sched *stage.Schedule, tokens *big.Int) {
	p.BoughtTokens = new(big.Int).Add(p.BoughtTokens, tokens)
	p.LockedTokens = p.TokenLock(sched).Add(tokens).Base
}

// Accept records accepted value, locked along the vesting curve.
func (p *Participant) Accept(sched *stage.Schedule, value *big.Int) {
	p.AcceptedValue = new(big.Int).Add(p.AcceptedValue, value)
	p.LockedValue = p.ValueLock(sched).Add(value).Base
}
