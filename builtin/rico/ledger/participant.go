// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"
)

// Participant is the aggregate record of one sale participant.
// Values are in the currency's smallest unit, tokens in the token's smallest unit.
type Participant struct {
	Whitelisted bool

	ContributionCount uint32
	SettledCount      uint32 // contributions below this index are accepted or cancelled

	CommittedValue *big.Int
	AcceptedValue  *big.Int
	WithdrawnValue *big.Int // refunded by withdrawals
	ReturnedValue  *big.Int // refunded by cancels
	AllocatedValue *big.Int // settled to the project on withdrawals

	BoughtTokens   *big.Int
	ReturnedTokens *big.Int
	ReservedTokens *big.Int // bought by pending contributions

	// vesting locks, both checkpointed at Checkpoint
	LockedTokens *big.Int
	LockedValue  *big.Int
	Checkpoint   uint32
}

// NewParticipant returns a zeroed record.
func NewParticipant() *Participant {
	return &Participant{
		CommittedValue: new(big.Int),
		AcceptedValue:  new(big.Int),
		WithdrawnValue: new(big.Int),
		ReturnedValue:  new(big.Int),
		AllocatedValue: new(big.Int),
		BoughtTokens:   new(big.Int),
		ReturnedTokens: new(big.Int),
		ReservedTokens: new(big.Int),
		LockedTokens:   new(big.Int),
		LockedValue:    new(big.Int),
	}
}

// Exists reports whether the participant ever contributed or was whitelisted.
func (p *Participant) Exists() bool {
	return p.ContributionCount > 0 || p.Whitelisted
}

// PendingValue returns the value of contributions neither accepted nor cancelled.
func (p *Participant) PendingValue() *big.Int {
	pending := new(big.Int).Sub(p.CommittedValue, p.AcceptedValue)
	return pending.Sub(pending, p.ReturnedValue)
}

// UnsettledValue returns accepted value not yet refunded or allocated to the project.
func (p *Participant) UnsettledValue() *big.Int {
	unsettled := new(big.Int).Sub(p.AcceptedValue, p.WithdrawnValue)
	return unsettled.Sub(unsettled, p.AllocatedValue)
}

// OutstandingTokens returns bought minus returned tokens.
func (p *Participant) OutstandingTokens() *big.Int {
	return new(big.Int).Sub(p.BoughtTokens, p.ReturnedTokens)
}

// HasPending reports whether there are contributions waiting for acceptance.
func (p *Participant) HasPending() bool {
	return p.SettledCount < p.ContributionCount
}

// Clone returns a deep copy.
func (p *Participant) Clone() *Participant {
	c := *p
	for _, f := range []**big.Int{
		&c.CommittedValue, &c.AcceptedValue, &c.WithdrawnValue, &c.ReturnedValue, &c.AllocatedValue,
		&c.BoughtTokens, &c.ReturnedTokens, &c.ReservedTokens, &c.LockedTokens, &c.LockedValue,
	} {
		if *f == nil {
			*f = new(big.Int)
		} else {
			*f = new(big.Int).Set(*f)
		}
	}
	return &c
}

// Contribution is an immutable ledger entry.
type Contribution struct {
	Index  uint32
	Block  uint32
	Value  *big.Int
	Tokens *big.Int
	Stage  uint32 // 0 for the commit phase, i+1 for buy stage i
}
