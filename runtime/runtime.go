// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime hosts the sale engine: it serializes operations, supplies the block height,
// enforces caller roles, commits storage and records events and transfers.
package runtime

import (
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/rico/builtin/rico"
	"github.com/vechain/rico/builtin/rico/config"
	"github.com/vechain/rico/builtin/rico/reverts"
	"github.com/vechain/rico/builtin/rico/settlement"
	"github.com/vechain/rico/builtin/rico/whitelist"
	"github.com/vechain/rico/builtin/solidity"
	"github.com/vechain/rico/log"
	"github.com/vechain/rico/logdb"
	"github.com/vechain/rico/state"
	"github.com/vechain/rico/thor"
)

var logger = log.WithContext("pkg", "runtime")

// Runtime executes sale operations against the committed storage, one mutation at a time.
type Runtime struct {
	mu     sync.RWMutex
	addr   thor.Address
	stater *state.Stater
	logDB  *logdb.LogDB
	clock  Clock
	feed   *Feed

	lastCommit atomic.Int64 // unix nano
}

// New create a runtime for the sale stored under addr.
func New(addr thor.Address, stater *state.Stater, logDB *logdb.LogDB, clock Clock) *Runtime {
	return &Runtime{
		addr:   addr,
		stater: stater,
		logDB:  logDB,
		clock:  clock,
		feed:   newFeed(),
	}
}

func (rt *Runtime) Address() thor.Address { return rt.addr }
func (rt *Runtime) LogDB() *logdb.LogDB    { return rt.logDB }
func (rt *Runtime) Feed() *Feed            { return rt.feed }

// BlockNumber returns the current block height.
func (rt *Runtime) BlockNumber() uint32 {
	return rt.clock.BlockNumber()
}

// LastCommit returns the time of the latest committed operation, zero if none.
func (rt *Runtime) LastCommit() time.Time {
	if ns := rt.lastCommit.Load(); ns != 0 {
		return time.Unix(0, ns)
	}
	return time.Time{}
}

// View runs fn over the committed storage. Writes made by fn are discarded.
func (rt *Runtime) View(fn func(r *rico.Rico, block uint32) error) error {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	r := rico.New(rt.addr, rt.stater.NewState(), &solidity.Meter{})
	return fn(r, rt.clock.BlockNumber())
}

type execFunc func(r *rico.Rico, block uint32, batch *logdb.Batch) error

// exec runs fn inside a state checkpoint. On success the storage changes are committed and the
// records of the batch are stored and broadcast. On failure nothing is written.
func (rt *Runtime) exec(op string, fn execFunc) (err error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	start := time.Now()
	block := rt.clock.BlockNumber()
	metricBlockNumber().Set(int64(block))
	defer func() {
		status := "ok"
		if err != nil {
			status = "failed"
			if reverts.IsRevertErr(err) {
				status = "reverted"
			}
		}
		metricOpCount().AddWithLabel(1, map[string]string{"op": op, "status": status})
		metricOpDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"op": op})
	}()

	st := rt.stater.NewState()
	meter := &solidity.Meter{}
	r := rico.New(rt.addr, st, meter)
	batch := rt.logDB.NewBatch(block)

	checkpoint := st.NewCheckpoint()
	if err := fn(r, block, batch); err != nil {
		st.RevertTo(checkpoint)
		logger.Debug("operation reverted", "op", op, "block", block, "err", err)
		return err
	}

	stage := st.Stage()
	hash, err := stage.Commit()
	if err != nil {
		return errors.Wrap(err, "commit state")
	}
	rt.lastCommit.Store(time.Now().UnixNano())
	metricStorageWords().AddWithLabel(int64(meter.Reads()), map[string]string{"op": op, "kind": "read"})
	metricStorageWords().AddWithLabel(int64(meter.Writes()), map[string]string{"op": op, "kind": "write"})

	// storage is the source of truth, a failed log write only loses history
	if err := batch.Commit(); err != nil {
		logger.Error("failed to record events", "op", op, "block", block, "err", err)
	}
	logger.Debug("operation committed", "op", op, "block", block, "changes", stage.Len(), "hash", hash)

	rt.feed.send(&Record{
		Op:        op,
		Block:     block,
		Events:    batch.Events(),
		Transfers: batch.Transfers(),
	})
	return nil
}

// Initialize stores the sale configuration.
func (rt *Runtime) Initialize(cfg *config.Config) error {
	return rt.exec("initialize", func(r *rico.Rico, _ uint32, batch *logdb.Batch) error {
		if err := r.Initialize(cfg); err != nil {
			return err
		}
		if cfg.TokenSupply.Sign() > 0 {
			batch.AddEvent(logdb.SupplyDeposit, cfg.Beneficiary, 0, nil, cfg.TokenSupply)
		}
		logger.Info("sale initialized", "address", rt.addr, "authority", cfg.Authority, "beneficiary", cfg.Beneficiary)
		return nil
	})
}

// Contribute commits value from caller at the current block.
func (rt *Runtime) Contribute(caller thor.Address, value *big.Int) (*rico.Contribution, error) {
	var result *rico.Contribution
	err := rt.exec("contribute", func(r *rico.Rico, block uint32, batch *logdb.Batch) error {
		c, err := r.Contribute(caller, block, value)
		if err != nil {
			return err
		}
		batch.AddEvent(logdb.ContributionNew, caller, c.Index, c.Value, c.Tokens)
		batch.AddTransfer(logdb.AutomaticReturn, caller, c.Returned)
		if c.Accepted != nil {
			batch.AddEvent(logdb.CommitmentAccepted, caller, c.Index, c.Accepted.Value, c.Accepted.Tokens)
		}
		result = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.Index == 0 {
		metricParticipants().Add(1)
	}
	return result, nil
}

// SetApproval changes the whitelist flag of participant. Only the authority may call it.
func (rt *Runtime) SetApproval(caller, participant thor.Address, approved bool) (*whitelist.Transition, error) {
	var result *whitelist.Transition
	err := rt.exec("whitelist", func(r *rico.Rico, _ uint32, batch *logdb.Batch) error {
		ok, err := r.IsAuthority(caller)
		if err != nil {
			return err
		}
		if !ok {
			return reverts.ErrNotAuthority
		}
		t, err := r.SetApproval(participant, approved)
		if err != nil {
			return err
		}
		if t.Changed {
			typ := logdb.WhitelistReject
			if approved {
				typ = logdb.WhitelistApprove
			}
			batch.AddEvent(typ, participant, 0, nil, nil)
		}
		if t.Sweep != nil {
			batch.AddEvent(logdb.CommitmentAccepted, participant, t.Sweep.From, t.Sweep.Value, t.Sweep.Tokens)
		}
		result = t
		return nil
	})
	return result, err
}

// Withdraw returns tokens of caller for a refund at the current block.
func (rt *Runtime) Withdraw(caller thor.Address, tokens *big.Int) (*settlement.Withdrawal, error) {
	var result *settlement.Withdrawal
	err := rt.exec("withdraw", func(r *rico.Rico, block uint32, batch *logdb.Batch) error {
		w, err := r.Withdraw(caller, block, tokens)
		if err != nil {
			return err
		}
		batch.AddEvent(logdb.ParticipantWithdraw, caller, 0, w.Refund, w.Tokens)
		batch.AddTransfer(logdb.WithdrawRefund, caller, w.Refund)
		result = w
		return nil
	})
	return result, err
}

// Cancel reclaims all pending value of caller.
func (rt *Runtime) Cancel(caller thor.Address) (*settlement.Cancellation, error) {
	var result *settlement.Cancellation
	err := rt.exec("cancel", func(r *rico.Rico, _ uint32, batch *logdb.Batch) error {
		c, err := r.Cancel(caller)
		if err != nil {
			return err
		}
		entries, err := r.Contributions(caller)
		if err != nil {
			return err
		}
		for _, e := range entries[c.From:c.To] {
			batch.AddEvent(logdb.ContributionCancel, caller, e.Index, e.Value, e.Tokens)
		}
		batch.AddEvent(logdb.ParticipantCancel, caller, 0, c.Refund, c.Tokens)
		batch.AddTransfer(logdb.CancelRefund, caller, c.Refund)
		result = c
		return nil
	})
	return result, err
}

// WithdrawProject pays amount of the vested project allocation to the beneficiary.
func (rt *Runtime) WithdrawProject(caller thor.Address, amount *big.Int) (*big.Int, error) {
	var result *big.Int
	err := rt.exec("project-withdraw", func(r *rico.Rico, block uint32, batch *logdb.Batch) error {
		ok, err := r.IsBeneficiary(caller)
		if err != nil {
			return err
		}
		if !ok {
			return reverts.ErrNotBeneficiary
		}
		paid, err := r.WithdrawProjectAllocation(block, amount)
		if err != nil {
			return err
		}
		batch.AddEvent(logdb.ProjectWithdraw, caller, 0, paid, nil)
		batch.AddTransfer(logdb.ProjectPayout, caller, paid)
		result = paid
		return nil
	})
	return result, err
}

// DepositSupply adds amount tokens for sale. Only the beneficiary may call it.
func (rt *Runtime) DepositSupply(caller thor.Address, amount *big.Int) error {
	return rt.exec("deposit", func(r *rico.Rico, block uint32, batch *logdb.Batch) error {
		ok, err := r.IsBeneficiary(caller)
		if err != nil {
			return err
		}
		if !ok {
			return reverts.ErrNotBeneficiary
		}
		if err := r.DepositSupply(block, amount); err != nil {
			return err
		}
		batch.AddEvent(logdb.SupplyDeposit, caller, 0, nil, amount)
		return nil
	})
}
