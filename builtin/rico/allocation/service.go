// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package allocation tracks the project's share of accepted value.
//
// All accepted value sits in one pool that unlocks along the sale's vesting curve. The locked
// part of the pool backs participant refunds, the rest belongs to the beneficiary:
//
//	available(t) = accepted - refunded - poolLocked(t) - projectWithdrawn
//
// Participant refunds come out of the locked part, so they never reduce what the project
// may claim. Without refunds available(t) is floor(accepted * unlockRatio(t)) - projectWithdrawn.
package allocation

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/rico/builtin/rico/globalstats"
	"github.com/vechain/rico/builtin/rico/reverts"
	"github.com/vechain/rico/builtin/rico/stage"
	"github.com/vechain/rico/builtin/rico/vesting"
	"github.com/vechain/rico/builtin/solidity"
	"github.com/vechain/rico/thor"
)

var (
	slotPoolLocked     = thor.Slot("project-pool-locked")
	slotPoolCheckpoint = thor.Slot("project-pool-checkpoint")
)

// Service manages the checkpointed project pool.
type Service struct {
	locked     *solidity.Uint256
	checkpoint *solidity.Raw[uint32]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		locked:     solidity.NewUint256(sctx, slotPoolLocked),
		checkpoint: solidity.NewRaw[uint32](sctx, slotPoolCheckpoint),
	}
}

func (s *Service) lock(sched *stage.Schedule) (vesting.Lock, error) {
	base, err := s.locked.Get()
	if err != nil {
		return vesting.Lock{}, errors.Wrap(err, "failed to get pool")
	}
	checkpoint, err := s.checkpoint.Get()
	if err != nil {
		return vesting.Lock{}, errors.Wrap(err, "failed to get pool checkpoint")
	}
	return vesting.NewLock(base, sched.Progress(checkpoint), sched.Span()), nil
}

// Locked returns the locked part of the pool at block, rounded up.
func (s *Service) Locked(sched *stage.Schedule, block uint32) (*big.Int, error) {
	l, err := s.lock(sched)
	if err != nil {
		return nil, err
	}
	return l.AtCeil(sched.Progress(block)), nil
}

// Accept adds accepted value to the pool.
func (s *Service) Accept(sched *stage.Schedule, value *big.Int) error {
	l, err := s.lock(sched)
	if err != nil {
		return err
	}
	if err := s.locked.Add(l.Increment(value)); err != nil {
		if errors.Is(err, solidity.ErrOverflow) {
			return reverts.ErrValueOverflow.Withf("(%v)", err)
		}
		return err
	}
	return nil
}

// Release checkpoints the pool at block and takes a refund out of its locked part.
func (s *Service) Release(sched *stage.Schedule, block uint32, refund *big.Int) error {
	locked, err := s.Locked(sched, block)
	if err != nil {
		return err
	}
	if locked.Cmp(refund) < 0 {
		return errors.Errorf("refund %v exceeds locked pool %v", refund, locked)
	}
	if err := s.locked.Set(locked.Sub(locked, refund)); err != nil {
		return err
	}
	return s.checkpoint.Upsert(block)
}

// Available returns the value the beneficiary can claim given the totals and the locked pool.
func Available(totals *globalstats.Totals, locked *big.Int) *big.Int {
	available := new(big.Int).Sub(totals.Accepted, totals.ParticipantWithdrawn)
	available.Sub(available, locked)
	available.Sub(available, totals.ProjectWithdrawn)
	if available.Sign() < 0 {
		return new(big.Int)
	}
	return available
}
