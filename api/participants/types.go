// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package participants

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/rico/api/utils"
	"github.com/vechain/rico/builtin/rico/cancelmode"
	"github.com/vechain/rico/builtin/rico/ledger"
	"github.com/vechain/rico/builtin/rico/vesting"
	"github.com/vechain/rico/thor"
)

type Contribution struct {
	Index  uint32                `json:"index"`
	Block  uint32                `json:"block"`
	Stage  uint32                `json:"stage"`
	Value  *math.HexOrDecimal256 `json:"value"`
	Tokens *math.HexOrDecimal256 `json:"tokens"`
}

// Participant is the aggregate record of a participant.
type Participant struct {
	Address           thor.Address          `json:"address"`
	Whitelisted       bool                  `json:"whitelisted"`
	ContributionCount uint32                `json:"contributionCount"`
	PendingFrom       uint32                `json:"pendingFrom"` // contributions from this index wait for whitelisting
	Committed         *math.HexOrDecimal256 `json:"committed"`
	Accepted          *math.HexOrDecimal256 `json:"accepted"`
	Pending           *math.HexOrDecimal256 `json:"pending"`
	Withdrawn         *math.HexOrDecimal256 `json:"withdrawn"`
	Returned          *math.HexOrDecimal256 `json:"returned"`
	Allocated         *math.HexOrDecimal256 `json:"allocated"`
	BoughtTokens      *math.HexOrDecimal256 `json:"boughtTokens"`
	ReturnedTokens    *math.HexOrDecimal256 `json:"returnedTokens"`
	ReservedTokens    *math.HexOrDecimal256 `json:"reservedTokens"`
	Contributions     []*Contribution       `json:"contributions"`
}

func convertContributions(list []*ledger.Contribution) []*Contribution {
	out := make([]*Contribution, 0, len(list))
	for _, c := range list {
		out = append(out, &Contribution{
			Index:  c.Index,
			Block:  c.Block,
			Stage:  c.Stage,
			Value:  utils.Amount(c.Value),
			Tokens: utils.Amount(c.Tokens),
		})
	}
	return out
}

func convertParticipant(addr thor.Address, p *ledger.Participant, list []*ledger.Contribution) *Participant {
	return &Participant{
		Address:           addr,
		Whitelisted:       p.Whitelisted,
		ContributionCount: p.ContributionCount,
		PendingFrom:       p.SettledCount,
		Committed:         utils.Amount(p.CommittedValue),
		Accepted:          utils.Amount(p.AcceptedValue),
		Pending:           utils.Amount(p.PendingValue()),
		Withdrawn:         utils.Amount(p.WithdrawnValue),
		Returned:          utils.Amount(p.ReturnedValue),
		Allocated:         utils.Amount(p.AllocatedValue),
		BoughtTokens:      utils.Amount(p.BoughtTokens),
		ReturnedTokens:    utils.Amount(p.ReturnedTokens),
		ReservedTokens:    utils.Amount(p.ReservedTokens),
		Contributions:     convertContributions(list),
	}
}

type Balances struct {
	Block    uint32                `json:"block"`
	Locked   *math.HexOrDecimal256 `json:"locked"`
	Unlocked *math.HexOrDecimal256 `json:"unlocked"`
	Reserved *math.HexOrDecimal256 `json:"reserved"`
}

func convertBalances(block uint32, b vesting.Balances) *Balances {
	return &Balances{
		Block:    block,
		Locked:   utils.Amount(b.Locked),
		Unlocked: utils.Amount(b.Unlocked),
		Reserved: utils.Amount(b.Reserved),
	}
}

type CancelModes struct {
	Block           uint32 `json:"block"`
	FullCancel      bool   `json:"fullCancel"`
	PartialWithdraw bool   `json:"partialWithdraw"`
}

func convertCancelModes(block uint32, m cancelmode.Modes) *CancelModes {
	return &CancelModes{
		Block:           block,
		FullCancel:      m.FullCancel,
		PartialWithdraw: m.PartialWithdraw,
	}
}
