// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package globalstats

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/rico/builtin/rico/reverts"
	"github.com/vechain/rico/builtin/solidity"
	"github.com/vechain/rico/thor"
)

var (
	slotCommitted            = thor.Slot("total-committed")
	slotAccepted             = thor.Slot("total-accepted")
	slotReturned             = thor.Slot("total-returned")
	slotParticipantWithdrawn = thor.Slot("total-participant-withdrawn")
	slotProjectWithdrawn     = thor.Slot("total-project-withdrawn")
	slotAllocated            = thor.Slot("total-allocated")
	slotTokenSupply          = thor.Slot("token-supply")
	slotSoldTokens           = thor.Slot("sold-tokens")
	slotReturnedTokens       = thor.Slot("returned-tokens")
)

// Totals is a snapshot of the contract-wide counters.
type Totals struct {
	Committed            *big.Int // value of all contributions
	Accepted             *big.Int // value accepted through the whitelist
	Returned             *big.Int // value refunded by withdrawals and cancels
	ParticipantWithdrawn *big.Int // value refunded by withdrawals
	ProjectWithdrawn     *big.Int // value claimed by the beneficiary
	Allocated            *big.Int // value settled to the project on participant withdrawals
	TokenSupply          *big.Int // tokens deposited for sale
	SoldTokens           *big.Int
	ReturnedTokens       *big.Int
}

// RemainingTokens returns the tokens still available for sale.
func (t *Totals) RemainingTokens() *big.Int {
	remaining := new(big.Int).Sub(t.TokenSupply, t.SoldTokens)
	remaining.Add(remaining, t.ReturnedTokens)
	if remaining.Sign() < 0 {
		return new(big.Int)
	}
	return remaining
}

// Service manages contract-wide sale totals.
type Service struct {
	committed            *solidity.Uint256
	accepted             *solidity.Uint256
	returned             *solidity.Uint256
	participantWithdrawn *solidity.Uint256
	projectWithdrawn     *solidity.Uint256
	allocated            *solidity.Uint256
	tokenSupply          *solidity.Uint256
	soldTokens           *solidity.Uint256
	returnedTokens       *solidity.Uint256
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		committed:            solidity.NewUint256(sctx, slotCommitted),
		accepted:             solidity.NewUint256(sctx, slotAccepted),
		returned:             solidity.NewUint256(sctx, slotReturned),
		participantWithdrawn: solidity.NewUint256(sctx, slotParticipantWithdrawn),
		projectWithdrawn:     solidity.NewUint256(sctx, slotProjectWithdrawn),
		allocated:            solidity.NewUint256(sctx, slotAllocated),
		tokenSupply:          solidity.NewUint256(sctx, slotTokenSupply),
		soldTokens:           solidity.NewUint256(sctx, slotSoldTokens),
		returnedTokens:       solidity.NewUint256(sctx, slotReturnedTokens),
	}
}

// Get reads all counters.
func (s *Service) Get() (*Totals, error) {
	var (
		totals Totals
		err    error
	)
	for _, f := range []struct {
		dst **big.Int
		src *solidity.Uint256
	}{
		{&totals.Committed, s.committed},
		{&totals.Accepted, s.accepted},
		{&totals.Returned, s.returned},
		{&totals.ParticipantWithdrawn, s.participantWithdrawn},
		{&totals.ProjectWithdrawn, s.projectWithdrawn},
		{&totals.Allocated, s.allocated},
		{&totals.TokenSupply, s.tokenSupply},
		{&totals.SoldTokens, s.soldTokens},
		{&totals.ReturnedTokens, s.returnedTokens},
	} {
		if *f.dst, err = f.src.Get(); err != nil {
			return nil, errors.Wrap(err, "failed to get totals")
		}
	}
	return &totals, nil
}

// add increments u, a total that no longer fits a storage word rejects the operation.
func add(u *solidity.Uint256, value *big.Int) error {
	if err := u.Add(value); err != nil {
		if errors.Is(err, solidity.ErrOverflow) {
			return reverts.ErrValueOverflow.Withf("(%v)", err)
		}
		return err
	}
	return nil
}

// AddContribution records a new contribution of value buying tokens.
func (s *Service) AddContribution(value, tokens *big.Int) error {
	if err := add(s.committed, value); err != nil {
		return err
	}
	return add(s.soldTokens, tokens)
}

// AddAccepted records value accepted through the whitelist.
func (s *Service) AddAccepted(value *big.Int) error {
	return add(s.accepted, value)
}

// AddCancel records a full cancel refunding value and returning tokens.
func (s *Service) AddCancel(value, tokens *big.Int) error {
	if err := add(s.returned, value); err != nil {
		return err
	}
	return add(s.returnedTokens, tokens)
}

// AddWithdrawal records a participant withdrawal.
func (s *Service) AddWithdrawal(refund, tokens, allocated *big.Int) error {
	if err := add(s.returned, refund); err != nil {
		return err
	}
	if err := add(s.participantWithdrawn, refund); err != nil {
		return err
	}
	if err := add(s.allocated, allocated); err != nil {
		return err
	}
	return add(s.returnedTokens, tokens)
}

// AddProjectWithdrawal records value claimed by the beneficiary.
func (s *Service) AddProjectWithdrawal(amount *big.Int) error {
	return add(s.projectWithdrawn, amount)
}

// AddSupply records tokens deposited for sale.
func (s *Service) AddSupply(amount *big.Int) error {
	return add(s.tokenSupply, amount)
}
