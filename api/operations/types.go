// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package operations

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/rico/api/utils"
	"github.com/vechain/rico/builtin/rico"
	"github.com/vechain/rico/builtin/rico/settlement"
	"github.com/vechain/rico/builtin/rico/whitelist"
	"github.com/vechain/rico/thor"
)

// amounts in request bodies are decimal or 0x prefixed hex strings

type ContributeRequest struct {
	Value string `json:"value"`
}

type WithdrawRequest struct {
	Tokens string `json:"tokens"`
}

type SupplyRequest struct {
	Amount string `json:"amount"`
}

type WhitelistRequest struct {
	Participant thor.Address `json:"participant"`
	Approved    bool         `json:"approved"`
}

type Sweep struct {
	From   uint32                `json:"from"`
	To     uint32                `json:"to"`
	Value  *math.HexOrDecimal256 `json:"value"`
	Tokens *math.HexOrDecimal256 `json:"tokens"`
}

func convertSweep(s *whitelist.Sweep) *Sweep {
	if s == nil {
		return nil
	}
	return &Sweep{
		From:   s.From,
		To:     s.To,
		Value:  utils.Amount(s.Value),
		Tokens: utils.Amount(s.Tokens),
	}
}

type Contribution struct {
	Index    uint32                `json:"index"`
	Block    uint32                `json:"block"`
	Stage    uint32                `json:"stage"`
	Value    *math.HexOrDecimal256 `json:"value"`
	Tokens   *math.HexOrDecimal256 `json:"tokens"`
	Price    *math.HexOrDecimal256 `json:"price"`
	Returned *math.HexOrDecimal256 `json:"returned"`
	Accepted *Sweep                `json:"accepted"`
}

func convertContribution(c *rico.Contribution) *Contribution {
	return &Contribution{
		Index:    c.Index,
		Block:    c.Block,
		Stage:    c.Stage,
		Value:    utils.Amount(c.Value),
		Tokens:   utils.Amount(c.Tokens),
		Price:    utils.Amount(c.Price),
		Returned: utils.Amount(c.Returned),
		Accepted: convertSweep(c.Accepted),
	}
}

type Withdrawal struct {
	Block     uint32                `json:"block"`
	Tokens    *math.HexOrDecimal256 `json:"tokens"`
	Price     *math.HexOrDecimal256 `json:"price"`
	Refund    *math.HexOrDecimal256 `json:"refund"`
	Allocated *math.HexOrDecimal256 `json:"allocated"`
}

func convertWithdrawal(w *settlement.Withdrawal) *Withdrawal {
	return &Withdrawal{
		Block:     w.Block,
		Tokens:    utils.Amount(w.Tokens),
		Price:     utils.Amount(w.Price),
		Refund:    utils.Amount(w.Refund),
		Allocated: utils.Amount(w.Allocated),
	}
}

type Cancellation struct {
	From   uint32                `json:"from"`
	To     uint32                `json:"to"`
	Refund *math.HexOrDecimal256 `json:"refund"`
	Tokens *math.HexOrDecimal256 `json:"tokens"`
}

func convertCancellation(c *settlement.Cancellation) *Cancellation {
	return &Cancellation{
		From:   c.From,
		To:     c.To,
		Refund: utils.Amount(c.Refund),
		Tokens: utils.Amount(c.Tokens),
	}
}

type Transition struct {
	Participant thor.Address `json:"participant"`
	Changed     bool         `json:"changed"`
	Approved    bool         `json:"approved"`
	Accepted    *Sweep       `json:"accepted"`
}

func convertTransition(participant thor.Address, t *whitelist.Transition) *Transition {
	return &Transition{
		Participant: participant,
		Changed:     t.Changed,
		Approved:    t.Approved,
		Accepted:    convertSweep(t.Sweep),
	}
}
