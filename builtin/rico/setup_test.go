// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rico

import (
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rico/builtin/rico/config"
	"github.com/vechain/rico/builtin/rico/ledger"
	"github.com/vechain/rico/builtin/solidity"
	"github.com/vechain/rico/lvldb"
	"github.com/vechain/rico/state"
	"github.com/vechain/rico/thor"
)

var (
	authority   = thor.BytesToAddress([]byte("authority"))
	beneficiary = thor.BytesToAddress([]byte("beneficiary"))
)

// ToWei converts whole currency units to the smallest unit.
func ToWei(units int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(units), big.NewInt(1e18))
}

// commit phase 100..120 at 0.002, three buy stages of 10 blocks stepping by 0.0001; sale ends at 150.
func testConfig() *config.Config {
	return &config.Config{
		Token:        thor.BytesToAddress([]byte("token")),
		Authority:    authority,
		Beneficiary:  beneficiary,
		StartBlock:   100,
		CommitBlocks: 20,
		CommitPrice:  big.NewInt(2e15),
		StageCount:   3,
		StageBlocks:  10,
		PriceStep:    big.NewInt(1e14),
		Decimals:     18,
	}
}

func newRico(t *testing.T) (*Rico, *solidity.Meter) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	meter := &solidity.Meter{}
	r := New(thor.BytesToAddress([]byte("rico")), state.NewStater(db, 0).NewState(), meter)
	return r, meter
}

func newTest(t *testing.T, modify ...func(*config.Config)) *Rico {
	r, _ := newRico(t)
	cfg := testConfig()
	for _, m := range modify {
		m(cfg)
	}
	require.NoError(t, r.Initialize(cfg))
	return r
}

type TestFunc func(t *testing.T)

type TestSequence struct {
	rico *Rico

	funcs []TestFunc
	mu    sync.Mutex
}

func NewSequence(rico *Rico) *TestSequence {
	return &TestSequence{funcs: make([]TestFunc, 0), rico: rico}
}

func (st *TestSequence) AddFunc(f TestFunc) *TestSequence {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.funcs = append(st.funcs, f)
	return st
}

func (st *TestSequence) Contribute(addr thor.Address, block uint32, value *big.Int) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		c, err := st.rico.Contribute(addr, block, value)
		if err != nil {
			t.Fatalf("failed to contribute %v from %s: %v", value, addr, err)
		}
		t.Logf("contribution %d of %s bought %v tokens", c.Index, addr, c.Tokens)
	})
}

func (st *TestSequence) Approve(addr thor.Address) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if _, err := st.rico.SetApproval(addr, true); err != nil {
			t.Fatalf("failed to approve %s: %v", addr, err)
		}
	})
}

func (st *TestSequence) Revoke(addr thor.Address) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if _, err := st.rico.SetApproval(addr, false); err != nil {
			t.Fatalf("failed to revoke %s: %v", addr, err)
		}
	})
}

func (st *TestSequence) Withdraw(addr thor.Address, block uint32, tokens *big.Int) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		w, err := st.rico.Withdraw(addr, block, tokens)
		if err != nil {
			t.Fatalf("failed to withdraw %v tokens of %s: %v", tokens, addr, err)
		}
		t.Logf("withdrawal of %s refunded %v", addr, w.Refund)
	})
}

func (st *TestSequence) Run(t *testing.T) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, f := range st.funcs {
		f(t)
	}

	t.Logf("All test functions executed successfully")
}

type ParticipantAssertions struct {
	rico   *Rico
	addr   thor.Address
	checks []func(t *testing.T)
}

func AssertParticipant(rico *Rico, addr thor.Address) *ParticipantAssertions {
	return &ParticipantAssertions{rico: rico, addr: addr}
}

func (pa *ParticipantAssertions) field(name string, expected *big.Int, get func(t *testing.T) *big.Int) *ParticipantAssertions {
	pa.checks = append(pa.checks, func(t *testing.T) {
		assert.Equal(t, expected.String(), get(t).String(), "%s mismatch for %s", name, pa.addr)
	})
	return pa
}

func (pa *ParticipantAssertions) record(t *testing.T) *ledger.Participant {
	p, err := pa.rico.Participant(pa.addr)
	require.NoError(t, err)
	return p
}

func (pa *ParticipantAssertions) Committed(expected *big.Int) *ParticipantAssertions {
	return pa.field("committed", expected, func(t *testing.T) *big.Int { return pa.record(t).CommittedValue })
}

func (pa *ParticipantAssertions) Accepted(expected *big.Int) *ParticipantAssertions {
	return pa.field("accepted", expected, func(t *testing.T) *big.Int { return pa.record(t).AcceptedValue })
}

func (pa *ParticipantAssertions) Withdrawn(expected *big.Int) *ParticipantAssertions {
	return pa.field("withdrawn", expected, func(t *testing.T) *big.Int { return pa.record(t).WithdrawnValue })
}

func (pa *ParticipantAssertions) Bought(expected *big.Int) *ParticipantAssertions {
	return pa.field("bought", expected, func(t *testing.T) *big.Int { return pa.record(t).BoughtTokens })
}

func (pa *ParticipantAssertions) Locked(block uint32, expected *big.Int) *ParticipantAssertions {
	return pa.field("locked", expected, func(t *testing.T) *big.Int {
		locked, err := pa.rico.LockedBalance(pa.addr, block)
		require.NoError(t, err)
		return locked
	})
}

func (pa *ParticipantAssertions) CancelModes(block uint32, full, partial bool) *ParticipantAssertions {
	pa.checks = append(pa.checks, func(t *testing.T) {
		modes, err := pa.rico.CancelModes(pa.addr, block)
		require.NoError(t, err)
		assert.Equal(t, full, modes.FullCancel, "full cancel mismatch for %s at %d", pa.addr, block)
		assert.Equal(t, partial, modes.PartialWithdraw, "partial withdraw mismatch for %s at %d", pa.addr, block)
	})
	return pa
}

func (pa *ParticipantAssertions) Assert(t *testing.T) {
	for _, check := range pa.checks {
		check(t)
	}
}
