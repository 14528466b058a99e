// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stage

import (
	"fmt"
	"math/big"

	"github.com/vechain/rico/builtin/rico/config"
)

type Kind uint8

const (
	KindNotStarted Kind = iota
	KindCommit
	KindBuy
	KindEnded
)

// Phase is the sale phase at a block. Stage is meaningful for KindBuy only.
type Phase struct {
	Kind  Kind
	Stage uint32
}

// Number returns 0 for the commit phase and i+1 for buy stage i.
func (p Phase) Number() uint32 {
	if p.Kind == KindBuy {
		return p.Stage + 1
	}
	return 0
}

// IsActive reports whether contributions are accepted in this phase.
func (p Phase) IsActive() bool {
	return p.Kind == KindCommit || p.Kind == KindBuy
}

func (p Phase) String() string {
	switch p.Kind {
	case KindNotStarted:
		return "not-started"
	case KindCommit:
		return "commit"
	case KindBuy:
		return fmt.Sprintf("buy-%d", p.Stage)
	default:
		return "ended"
	}
}

// Schedule maps blocks to phases, prices and vesting progress.
// Windows are half-open: a phase starting at block b includes b.
type Schedule struct {
	start       uint64
	buyStart    uint64
	end         uint64
	stageBlocks uint64
	stageCount  uint64
	commitPrice *big.Int
	priceStep   *big.Int
}

func New(cfg *config.Config) *Schedule {
	start := uint64(cfg.StartBlock)
	buyStart := start + uint64(cfg.CommitBlocks)
	return &Schedule{
		start:       start,
		buyStart:    buyStart,
		end:         cfg.EndBlock(),
		stageBlocks: uint64(cfg.StageBlocks),
		stageCount:  uint64(cfg.StageCount),
		commitPrice: cfg.CommitPrice,
		priceStep:   cfg.PriceStep,
	}
}

// Phase returns the phase at block.
func (s *Schedule) Phase(block uint32) Phase {
	b := uint64(block)
	switch {
	case b < s.start:
		return Phase{Kind: KindNotStarted}
	case b < s.buyStart:
		return Phase{Kind: KindCommit}
	case b < s.end:
		return Phase{Kind: KindBuy, Stage: uint32((b - s.buyStart) / s.stageBlocks)}
	default:
		return Phase{Kind: KindEnded}
	}
}

// Price returns the price per whole token of the phase.
// Before the start it is the commit price, after the end it is the last stage price.
func (s *Schedule) Price(p Phase) *big.Int {
	var steps uint64
	switch p.Kind {
	case KindBuy:
		steps = uint64(p.Stage) + 1
	case KindEnded:
		steps = s.stageCount
	}
	price := new(big.Int).SetUint64(steps)
	price.Mul(price, s.priceStep)
	return price.Add(price, s.commitPrice)
}

// PriceAt returns the price effective at block.
func (s *Schedule) PriceAt(block uint32) *big.Int {
	return s.Price(s.Phase(block))
}

// Span is the length of the vesting period in blocks, the sum of all buy stages.
func (s *Schedule) Span() uint64 {
	return s.stageCount * s.stageBlocks
}

// Progress returns the blocks elapsed in the vesting period at block, clamped to [0, Span].
func (s *Schedule) Progress(block uint32) uint64 {
	b := uint64(block)
	if b <= s.buyStart {
		return 0
	}
	if b >= s.end {
		return s.Span()
	}
	return b - s.buyStart
}

// UnlockRatio returns the unlocked fraction at block as num/den.
// It is 0 up to the end of the commit phase, grows linearly through the buy stages
// and is exactly 1 from the end block on.
func (s *Schedule) UnlockRatio(block uint32) (num, den uint64) {
	return s.Progress(block), s.Span()
}

func (s *Schedule) StartBlock() uint32 { return uint32(s.start) }
func (s *Schedule) BuyStartBlock() uint32 { return uint32(s.buyStart) }
func (s *Schedule) EndBlock() uint32 { return uint32(s.end) }

// Window describes one phase of the timeline.
type Window struct {
	Phase Phase
	Start uint32 // included
	End   uint32 // excluded
	Price *big.Int
}

// Windows lists the commit phase followed by each buy stage.
func (s *Schedule) Windows() []Window {
	windows := make([]Window, 0, s.stageCount+1)
	windows = append(windows, Window{
		Phase: Phase{Kind: KindCommit},
		Start: uint32(s.start),
		End:   uint32(s.buyStart),
		Price: s.Price(Phase{Kind: KindCommit}),
	})
	for i := uint64(0); i < s.stageCount; i++ {
		p := Phase{Kind: KindBuy, Stage: uint32(i)}
		windows = append(windows, Window{
			Phase: p,
			Start: uint32(s.buyStart + i*s.stageBlocks),
			End:   uint32(s.buyStart + (i+1)*s.stageBlocks),
			Price: s.Price(p),
		})
	}
	return windows
}
