// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rico

import (
	"math/big"

	"github.com/vechain/rico/builtin/rico/allocation"
	"github.com/vechain/rico/builtin/rico/cancelmode"
	"github.com/vechain/rico/builtin/rico/config"
	"github.com/vechain/rico/builtin/rico/globalstats"
	"github.com/vechain/rico/builtin/rico/ledger"
	"github.com/vechain/rico/builtin/rico/reverts"
	"github.com/vechain/rico/builtin/rico/settlement"
	"github.com/vechain/rico/builtin/rico/stage"
	"github.com/vechain/rico/builtin/rico/vesting"
	"github.com/vechain/rico/builtin/rico/whitelist"
	"github.com/vechain/rico/builtin/solidity"
	"github.com/vechain/rico/log"
	"github.com/vechain/rico/state"
	"github.com/vechain/rico/thor"
)

var logger = log.WithContext("pkg", "rico")

func SetLogger(l log.Logger) {
	logger = l
}

// Rico implements the reversible token sale accounting.
// Every mutating method either fails before writing or leaves a consistent state. Atomicity across
// a failure in the middle of a write is provided by the host through state checkpoints.
type Rico struct {
	sctx *solidity.Context

	configService      *config.Service
	ledgerService      *ledger.Service
	allocationService  *allocation.Service
	globalStatsService *globalstats.Service
	gate               *whitelist.Gate
}

// New create a new instance.
func New(addr thor.Address, state *state.State, meter *solidity.Meter) *Rico {
	sctx := solidity.NewContext(addr, state, meter)
	ledgerService := ledger.New(sctx)

	return &Rico{
		sctx:               sctx,
		configService:      config.New(sctx),
		ledgerService:      ledgerService,
		allocationService:  allocation.New(sctx),
		globalStatsService: globalstats.New(sctx),
		gate:               whitelist.New(ledgerService),
	}
}

func (r *Rico) Address() thor.Address {
	return r.sctx.Address()
}

// Initialize stores the sale configuration, only once.
func (r *Rico) Initialize(cfg *config.Config) error {
	if err := r.configService.Init(cfg); err != nil {
		return err
	}
	if err := r.globalStatsService.AddSupply(cfg.TokenSupply); err != nil {
		return err
	}
	logger.Info("sale initialized",
		"start", cfg.StartBlock,
		"end", cfg.EndBlock(),
		"stages", cfg.StageCount,
		"commitPrice", cfg.CommitPrice,
		"supply", cfg.TokenSupply,
	)
	return nil
}

// Config returns the sale configuration, nil before initialization.
func (r *Rico) Config() (*config.Config, error) {
	return r.configService.Get()
}

// Schedule returns the sale timeline.
func (r *Rico) Schedule() (*stage.Schedule, error) {
	_, sched, err := r.load()
	return sched, err
}

func (r *Rico) load() (*config.Config, *stage.Schedule, error) {
	cfg, err := r.configService.MustGet()
	if err != nil {
		return nil, nil, err
	}
	return cfg, stage.New(cfg), nil
}

// IsAuthority reports whether caller may change approvals.
func (r *Rico) IsAuthority(caller thor.Address) (bool, error) {
	authority, err := r.configService.Authority()
	if err != nil {
		return false, err
	}
	return authority == caller, nil
}

// IsBeneficiary reports whether caller may claim the project allocation and deposit supply.
func (r *Rico) IsBeneficiary(caller thor.Address) (bool, error) {
	beneficiary, err := r.configService.Beneficiary()
	if err != nil {
		return false, err
	}
	return beneficiary == caller, nil
}

// Contribute records a contribution of value at block.
// Value not spent because the remaining supply is short is reported in the result and not recorded.
func (r *Rico) Contribute(participant thor.Address, block uint32, value *big.Int) (*Contribution, error) {
	cfg, sched, err := r.load()
	if err != nil {
		return nil, err
	}
	phase := sched.Phase(block)
	if !phase.IsActive() {
		return nil, reverts.ErrSaleNotActive.Withf("phase %v at block %d", phase, block)
	}
	if value == nil || value.Cmp(cfg.MinContribution) < 0 {
		return nil, reverts.ErrBelowMinimum.Withf("minimum %v", cfg.MinContribution)
	}

	price := sched.Price(phase)
	scale := cfg.Scale()
	tokens := vesting.Tokens(value, price, scale)
	if tokens.Sign() == 0 {
		return nil, reverts.ErrBelowMinimum.Withf("value buys no tokens at price %v", price)
	}

	totals, err := r.globalStatsService.Get()
	if err != nil {
		return nil, err
	}
	spent := new(big.Int).Set(value)
	if totals.TokenSupply.Sign() > 0 {
		remaining := totals.RemainingTokens()
		if remaining.Sign() == 0 {
			return nil, reverts.ErrSupplyExhausted
		}
		if tokens.Cmp(remaining) > 0 {
			tokens = remaining
			spent = vesting.Min(vesting.ValueCeil(remaining, price, scale), value)
		}
	}

	// participant sums never exceed the totals
	if err := r.globalStatsService.AddContribution(spent, tokens); err != nil {
		return nil, err
	}

	p, err := r.ledgerService.Get(participant)
	if err != nil {
		return nil, err
	}
	entry := &ledger.Contribution{
		Block:  block,
		Value:  spent,
		Tokens: tokens,
		Stage:  phase.Number(),
	}
	if err := r.ledgerService.Append(participant, p, entry); err != nil {
		return nil, err
	}
	p.CommittedValue = new(big.Int).Add(p.CommittedValue, spent)
	p.AddTokens(sched, tokens)
	p.ReservedTokens = new(big.Int).Add(p.ReservedTokens, tokens)

	result := &Contribution{
		Contribution: entry,
		Price:        price,
		Returned:     new(big.Int).Sub(value, spent),
	}
	if p.Whitelisted {
		result.Accepted = r.gate.AcceptLatest(p, entry, sched)
		if err := r.accept(sched, result.Accepted.Value); err != nil {
			return nil, err
		}
	}
	if err := r.ledgerService.Update(participant, p); err != nil {
		return nil, err
	}

	logger.Debug("contribution recorded",
		"participant", participant,
		"index", entry.Index,
		"stage", phase,
		"value", spent,
		"tokens", tokens,
		"returned", result.Returned,
		"accepted", result.Accepted != nil,
	)
	return result, nil
}

func (r *Rico) accept(sched *stage.Schedule, value *big.Int) error {
	if err := r.allocationService.Accept(sched, value); err != nil {
		return err
	}
	return r.globalStatsService.AddAccepted(value)
}

// SetApproval sets the whitelist flag. Approval accepts all pending contributions at once.
func (r *Rico) SetApproval(participant thor.Address, approved bool) (*whitelist.Transition, error) {
	_, sched, err := r.load()
	if err != nil {
		return nil, err
	}
	p, err := r.ledgerService.Get(participant)
	if err != nil {
		return nil, err
	}
	transition, err := r.gate.SetApproval(participant, p, approved, sched)
	if err != nil {
		return nil, err
	}
	if !transition.Changed {
		return transition, nil
	}
	if transition.Sweep != nil {
		if err := r.accept(sched, transition.Sweep.Value); err != nil {
			return nil, err
		}
		logger.Info("pending contributions accepted",
			"participant", participant,
			"count", transition.Sweep.Count(),
			"value", transition.Sweep.Value,
		)
	}
	if err := r.ledgerService.Update(participant, p); err != nil {
		return nil, err
	}
	logger.Debug("approval changed", "participant", participant, "approved", approved)
	return transition, nil
}

// Withdraw returns locked tokens at block for a refund at the current stage price.
func (r *Rico) Withdraw(participant thor.Address, block uint32, tokens *big.Int) (*settlement.Withdrawal, error) {
	cfg, sched, err := r.load()
	if err != nil {
		return nil, err
	}
	p, err := r.ledgerService.Get(participant)
	if err != nil {
		return nil, err
	}
	poolLocked, err := r.allocationService.Locked(sched, block)
	if err != nil {
		return nil, err
	}
	w, err := settlement.Compute(p, sched, cfg.Scale(), block, tokens, poolLocked)
	if err != nil {
		return nil, err
	}

	if err := r.allocationService.Release(sched, block, w.Refund); err != nil {
		return nil, err
	}
	w.Apply(p)
	if err := r.ledgerService.Update(participant, p); err != nil {
		return nil, err
	}
	if err := r.globalStatsService.AddWithdrawal(w.Refund, w.Tokens, w.Allocated); err != nil {
		return nil, err
	}

	logger.Info("participant withdrawal",
		"participant", participant,
		"block", block,
		"tokens", w.Tokens,
		"price", w.Price,
		"refund", w.Refund,
		"allocated", w.Allocated,
	)
	return w, nil
}

// Cancel reclaims all pending value of a participant that never had a contribution accepted.
func (r *Rico) Cancel(participant thor.Address) (*settlement.Cancellation, error) {
	if _, err := r.configService.MustGet(); err != nil {
		return nil, err
	}
	p, err := r.ledgerService.Get(participant)
	if err != nil {
		return nil, err
	}
	c, err := settlement.ComputeCancel(p)
	if err != nil {
		return nil, err
	}
	c.Apply(p)
	if err := r.ledgerService.Update(participant, p); err != nil {
		return nil, err
	}
	if err := r.globalStatsService.AddCancel(c.Refund, c.Tokens); err != nil {
		return nil, err
	}

	logger.Info("participant cancelled",
		"participant", participant,
		"contributions", c.To-c.From,
		"refund", c.Refund,
		"tokens", c.Tokens,
	)
	return c, nil
}

// ProjectAvailable returns the value the beneficiary can claim at block.
func (r *Rico) ProjectAvailable(block uint32) (*big.Int, error) {
	_, sched, err := r.load()
	if err != nil {
		return nil, err
	}
	locked, err := r.allocationService.Locked(sched, block)
	if err != nil {
		return nil, err
	}
	totals, err := r.globalStatsService.Get()
	if err != nil {
		return nil, err
	}
	return allocation.Available(totals, locked), nil
}

// WithdrawProjectAllocation claims amount of the vested project allocation at block.
func (r *Rico) WithdrawProjectAllocation(block uint32, amount *big.Int) (*big.Int, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, reverts.ErrZeroAmount
	}
	available, err := r.ProjectAvailable(block)
	if err != nil {
		return nil, err
	}
	if amount.Cmp(available) > 0 {
		return nil, reverts.ErrInsufficientAllocation.Withf("requested %v, available %v", amount, available)
	}
	if err := r.globalStatsService.AddProjectWithdrawal(amount); err != nil {
		return nil, err
	}

	logger.Info("project withdrawal", "block", block, "amount", amount, "available", available)
	return new(big.Int).Set(amount), nil
}

// DepositSupply adds tokens for sale. Deposits are rejected once the sale has ended.
func (r *Rico) DepositSupply(block uint32, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return reverts.ErrZeroAmount
	}
	_, sched, err := r.load()
	if err != nil {
		return err
	}
	if phase := sched.Phase(block); phase.Kind == stage.KindEnded {
		return reverts.ErrSaleNotActive.Withf("phase %v at block %d", phase, block)
	}
	if err := r.globalStatsService.AddSupply(amount); err != nil {
		return err
	}
	logger.Debug("supply deposited", "block", block, "amount", amount)
	return nil
}

// Phase returns the sale phase at block.
func (r *Rico) Phase(block uint32) (stage.Phase, error) {
	_, sched, err := r.load()
	if err != nil {
		return stage.Phase{}, err
	}
	return sched.Phase(block), nil
}

// Price returns the token price effective at block.
func (r *Rico) Price(block uint32) (*big.Int, error) {
	_, sched, err := r.load()
	if err != nil {
		return nil, err
	}
	return sched.PriceAt(block), nil
}

// Balances returns the locked, unlocked and reserved token balances at block.
func (r *Rico) Balances(participant thor.Address, block uint32) (vesting.Balances, error) {
	_, sched, err := r.load()
	if err != nil {
		return vesting.Balances{}, err
	}
	p, err := r.ledgerService.Get(participant)
	if err != nil {
		return vesting.Balances{}, err
	}
	return p.Balances(sched, block), nil
}

// LockedBalance returns the tokens still locked at block.
func (r *Rico) LockedBalance(participant thor.Address, block uint32) (*big.Int, error) {
	b, err := r.Balances(participant, block)
	if err != nil {
		return nil, err
	}
	return b.Locked, nil
}

// UnlockedBalance returns the vested tokens at block, excluding reserved ones.
func (r *Rico) UnlockedBalance(participant thor.Address, block uint32) (*big.Int, error) {
	b, err := r.Balances(participant, block)
	if err != nil {
		return nil, err
	}
	return b.Unlocked, nil
}

// CancelModes returns the reclaim permissions of the participant at block.
func (r *Rico) CancelModes(participant thor.Address, block uint32) (cancelmode.Modes, error) {
	_, sched, err := r.load()
	if err != nil {
		return cancelmode.Modes{}, err
	}
	p, err := r.ledgerService.Get(participant)
	if err != nil {
		return cancelmode.Modes{}, err
	}
	return cancelmode.Resolve(p, p.LockedAt(sched, block)), nil
}

// Participant returns the record of the participant, zeroed when unknown.
func (r *Rico) Participant(participant thor.Address) (*ledger.Participant, error) {
	return r.ledgerService.Get(participant)
}

// Contributions lists the contributions of the participant in chronological order.
func (r *Rico) Contributions(participant thor.Address) ([]*ledger.Contribution, error) {
	return r.ledgerService.Contributions(participant)
}

// Totals returns the contract-wide counters.
func (r *Rico) Totals() (*globalstats.Totals, error) {
	return r.globalStatsService.Get()
}
