// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/rico/builtin/rico/config"
	"github.com/vechain/rico/builtin/rico/stage"
)

// buy stages run from block 20 to 50
func newSchedule() *stage.Schedule {
	return stage.New(&config.Config{
		StartBlock:   10,
		CommitBlocks: 10,
		CommitPrice:  big.NewInt(100),
		StageCount:   3,
		StageBlocks:  10,
		PriceStep:    big.NewInt(10),
	})
}

func TestLocks(t *testing.T) {
	sched := newSchedule()
	p := NewParticipant()

	p.AddTokens(sched, big.NewInt(3000))
	p.Accept(sched, big.NewInt(300))

	assert.Equal(t, "3000", p.LockedAt(sched, 15).String())
	assert.Equal(t, "3000", p.LockedAt(sched, 20).String())
	assert.Equal(t, "2000", p.LockedAt(sched, 30).String())
	assert.Equal(t, "0", p.LockedAt(sched, 50).String())
	assert.Equal(t, "150", p.ValueLock(sched).At(sched.Progress(35)).String())

	// checkpoint at block 30 after returning 500 of the 2000 locked tokens
	p.ReturnedTokens.SetInt64(500)
	p.LockedTokens.SetInt64(1500)
	p.Checkpoint = 30
	assert.Equal(t, "1500", p.LockedAt(sched, 30).String())
	assert.Equal(t, "750", p.LockedAt(sched, 40).String())

	// tokens bought at block 40 follow the global curve
	p.AddTokens(sched, big.NewInt(600))
	assert.Equal(t, "3600", p.BoughtTokens.String())
	assert.Equal(t, "1900", p.LockedTokens.String())
	assert.Equal(t, "950", p.LockedAt(sched, 40).String())
}

func TestBalances(t *testing.T) {
	sched := newSchedule()
	p := NewParticipant()
	p.AddTokens(sched, big.NewInt(3000))
	p.ReservedTokens.SetInt64(1200)

	b := p.Balances(sched, 35)
	assert.Equal(t, "1500", b.Locked.String())
	assert.Equal(t, "1200", b.Reserved.String())
	assert.Equal(t, "300", b.Unlocked.String())

	b = p.Balances(sched, 25)
	assert.Equal(t, "2500", b.Locked.String())
	assert.Equal(t, "500", b.Reserved.String())
	assert.Equal(t, "0", b.Unlocked.String())
}
