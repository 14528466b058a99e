// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package whitelist

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/rico/builtin/rico/ledger"
	"github.com/vechain/rico/builtin/rico/stage"
	"github.com/vechain/rico/thor"
)

// Sweep is the set of pending contributions accepted on approval.
type Sweep struct {
	From, To uint32 // accepted contribution indexes [From, To)
	Value    *big.Int
	Tokens   *big.Int
}

// Count returns the number of accepted contributions.
func (s *Sweep) Count() uint32 {
	return s.To - s.From
}

// Transition is the result of an approval change.
type Transition struct {
	Changed  bool
	Approved bool
	Sweep    *Sweep // set when a false to true transition accepted contributions
}

// Gate applies approval changes to participant records.
type Gate struct {
	ledger *ledger.Service
}

func New(ledger *ledger.Service) *Gate {
	return &Gate{ledger: ledger}
}

// SetApproval sets the whitelist flag of p. Approving accepts every pending contribution
// in chronological order, revoking only stops automatic acceptance of later ones.
// Setting the current value again changes nothing. The caller persists p.
func (g *Gate) SetApproval(addr thor.Address, p *ledger.Participant, approved bool, sched *stage.Schedule) (*Transition, error) {
	if p.Whitelisted == approved {
		return &Transition{Approved: approved}, nil
	}
	p.Whitelisted = approved
	if !approved {
		return &Transition{Changed: true}, nil
	}

	sweep, err := g.sweep(addr, p)
	if err != nil {
		return nil, err
	}
	if sweep.Count() > 0 {
		g.accept(p, sweep, sched)
		return &Transition{Changed: true, Approved: true, Sweep: sweep}, nil
	}
	return &Transition{Changed: true, Approved: true}, nil
}

// AcceptLatest accepts a contribution just appended by a whitelisted participant.
func (g *Gate) AcceptLatest(p *ledger.Participant, c *ledger.Contribution, sched *stage.Schedule) *Sweep {
	sweep := &Sweep{From: c.Index, To: c.Index + 1, Value: c.Value, Tokens: c.Tokens}
	g.accept(p, sweep, sched)
	return sweep
}

func (g *Gate) sweep(addr thor.Address, p *ledger.Participant) (*Sweep, error) {
	sweep := &Sweep{
		From:   p.SettledCount,
		To:     p.ContributionCount,
		Value:  new(big.Int),
		Tokens: new(big.Int),
	}
	err := g.ledger.Iterate(addr, sweep.From, sweep.To, func(c *ledger.Contribution) error {
		sweep.Value.Add(sweep.Value, c.Value)
		sweep.Tokens.Add(sweep.Tokens, c.Tokens)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to sweep contributions")
	}
	if pending := p.PendingValue(); pending.Cmp(sweep.Value) != 0 {
		return nil, errors.Errorf("pending value %v does not match contributions %v", pending, sweep.Value)
	}
	return sweep, nil
}

func (g *Gate) accept(p *ledger.Participant, sweep *Sweep, sched *stage.Schedule) {
	p.Accept(sched, sweep.Value)
	reserved := new(big.Int).Sub(p.ReservedTokens, sweep.Tokens)
	if reserved.Sign() < 0 {
		reserved.SetInt64(0)
	}
	p.ReservedTokens = reserved
	p.SettledCount = sweep.To
}
