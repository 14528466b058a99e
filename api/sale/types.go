// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sale

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/rico/api/utils"
	"github.com/vechain/rico/builtin/rico/config"
	"github.com/vechain/rico/builtin/rico/globalstats"
	"github.com/vechain/rico/builtin/rico/stage"
	"github.com/vechain/rico/thor"
)

type Totals struct {
	Committed            *math.HexOrDecimal256 `json:"committed"`
	Accepted             *math.HexOrDecimal256 `json:"accepted"`
	Returned             *math.HexOrDecimal256 `json:"returned"`
	ParticipantWithdrawn *math.HexOrDecimal256 `json:"participantWithdrawn"`
	ProjectWithdrawn     *math.HexOrDecimal256 `json:"projectWithdrawn"`
	Allocated            *math.HexOrDecimal256 `json:"allocated"`
	TokenSupply          *math.HexOrDecimal256 `json:"tokenSupply"`
	SoldTokens           *math.HexOrDecimal256 `json:"soldTokens"`
	ReturnedTokens       *math.HexOrDecimal256 `json:"returnedTokens"`
	RemainingTokens      *math.HexOrDecimal256 `json:"remainingTokens"`
}

func convertTotals(t *globalstats.Totals) *Totals {
	return &Totals{
		Committed:            utils.Amount(t.Committed),
		Accepted:             utils.Amount(t.Accepted),
		Returned:             utils.Amount(t.Returned),
		ParticipantWithdrawn: utils.Amount(t.ParticipantWithdrawn),
		ProjectWithdrawn:     utils.Amount(t.ProjectWithdrawn),
		Allocated:            utils.Amount(t.Allocated),
		TokenSupply:          utils.Amount(t.TokenSupply),
		SoldTokens:           utils.Amount(t.SoldTokens),
		ReturnedTokens:       utils.Amount(t.ReturnedTokens),
		RemainingTokens:      utils.Amount(t.RemainingTokens()),
	}
}

// Sale is the configuration and state of the sale.
type Sale struct {
	Address         thor.Address          `json:"address"`
	Token           thor.Address          `json:"token"`
	Authority       thor.Address          `json:"authority"`
	Beneficiary     thor.Address          `json:"beneficiary"`
	StartBlock      uint32                `json:"startBlock"`
	BuyStartBlock   uint32                `json:"buyStartBlock"`
	EndBlock        uint32                `json:"endBlock"`
	CommitPrice     *math.HexOrDecimal256 `json:"commitPrice"`
	PriceStep       *math.HexOrDecimal256 `json:"priceStep"`
	StageCount      uint32                `json:"stageCount"`
	StageBlocks     uint32                `json:"stageBlocks"`
	Decimals        uint8                 `json:"decimals"`
	MinContribution *math.HexOrDecimal256 `json:"minContribution"`
	Block           uint32                `json:"block"`
	Phase           *Phase                `json:"phase"`
	Totals          *Totals               `json:"totals"`
}

type Ratio struct {
	Num uint64 `json:"num"`
	Den uint64 `json:"den"`
}

// Phase describes the sale at a block.
type Phase struct {
	Block    uint32                `json:"block"`
	Name     string                `json:"name"`
	Stage    uint32                `json:"stage"`
	Active   bool                  `json:"active"`
	Price    *math.HexOrDecimal256 `json:"price"`
	Unlocked Ratio                 `json:"unlocked"`
}

func convertPhase(sched *stage.Schedule, block uint32) *Phase {
	p := sched.Phase(block)
	num, den := sched.UnlockRatio(block)
	return &Phase{
		Block:    block,
		Name:     p.String(),
		Stage:    p.Number(),
		Active:   p.IsActive(),
		Price:    utils.Amount(sched.Price(p)),
		Unlocked: Ratio{Num: num, Den: den},
	}
}

func convertSale(addr thor.Address, cfg *config.Config, sched *stage.Schedule, totals *globalstats.Totals, block uint32) *Sale {
	return &Sale{
		Address:         addr,
		Token:           cfg.Token,
		Authority:       cfg.Authority,
		Beneficiary:     cfg.Beneficiary,
		StartBlock:      sched.StartBlock(),
		BuyStartBlock:   sched.BuyStartBlock(),
		EndBlock:        sched.EndBlock(),
		CommitPrice:     utils.Amount(cfg.CommitPrice),
		PriceStep:       utils.Amount(cfg.PriceStep),
		StageCount:      cfg.StageCount,
		StageBlocks:     cfg.StageBlocks,
		Decimals:        cfg.Decimals,
		MinContribution: utils.Amount(cfg.MinContribution),
		Block:           block,
		Phase:           convertPhase(sched, block),
		Totals:          convertTotals(totals),
	}
}

// Window is one phase of the timeline, blocks [start, end).
type Window struct {
	Name  string                `json:"name"`
	Stage uint32                `json:"stage"`
	Start uint32                `json:"start"`
	End   uint32                `json:"end"`
	Price *math.HexOrDecimal256 `json:"price"`
}

func convertWindows(windows []stage.Window) []*Window {
	out := make([]*Window, 0, len(windows))
	for _, w := range windows {
		out = append(out, &Window{
			Name:  w.Phase.String(),
			Stage: w.Phase.Number(),
			Start: w.Start,
			End:   w.End,
			Price: utils.Amount(w.Price),
		})
	}
	return out
}
