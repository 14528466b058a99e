// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rico/builtin/solidity"
	"github.com/vechain/rico/lvldb"
	"github.com/vechain/rico/state"
	"github.com/vechain/rico/test/datagen"
	"github.com/vechain/rico/thor"
)

func newService(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.NewStater(db, 0).NewState()
	return New(solidity.NewContext(thor.Address{1}, st, nil))
}

func TestUnknownParticipant(t *testing.T) {
	svc := newService(t)

	p, err := svc.Get(datagen.RandAddress())
	require.NoError(t, err)
	assert.False(t, p.Exists())
	assert.Equal(t, 0, p.CommittedValue.Sign())
	assert.Equal(t, 0, p.OutstandingTokens().Sign())
	assert.Equal(t, 0, p.PendingValue().Sign())
	assert.False(t, p.HasPending())

	list, err := svc.Contributions(datagen.RandAddress())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAppendAndGet(t *testing.T) {
	svc := newService(t)
	addr := datagen.RandAddress()
	other := datagen.RandAddress()

	p, err := svc.Get(addr)
	require.NoError(t, err)
	for i := range 3 {
		c := &Contribution{Block: uint32(10 + i), Value: big.NewInt(int64(100 * (i + 1))), Tokens: big.NewInt(5), Stage: uint32(i)}
		require.NoError(t, svc.Append(addr, p, c))
		assert.Equal(t, uint32(i), c.Index)
		p.CommittedValue.Add(p.CommittedValue, c.Value)
	}
	require.NoError(t, svc.Update(addr, p))

	loaded, err := svc.Get(addr)
	require.NoError(t, err)
	assert.True(t, loaded.Exists())
	assert.Equal(t, uint32(3), loaded.ContributionCount)
	assert.Equal(t, "600", loaded.CommittedValue.String())

	list, err := svc.Contributions(addr)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, c := range list {
		assert.Equal(t, uint32(i), c.Index)
		assert.Equal(t, uint32(10+i), c.Block)
		assert.Equal(t, uint32(i), c.Stage)
	}
	assert.Equal(t, "300", list[2].Value.String())

	// entries are keyed per participant
	c, err := svc.Contribution(other, 0)
	require.NoError(t, err)
	assert.Nil(t, c)

	var seen []uint32
	require.NoError(t, svc.Iterate(addr, 1, 3, func(c *Contribution) error {
		seen = append(seen, c.Index)
		return nil
	}))
	assert.Equal(t, []uint32{1, 2}, seen)

	assert.Error(t, svc.Iterate(addr, 2, 4, func(*Contribution) error { return nil }))
}

func TestParticipantAggregates(t *testing.T) {
	p := NewParticipant()
	p.ContributionCount = 3
	p.SettledCount = 1
	p.CommittedValue.SetInt64(100)
	p.AcceptedValue.SetInt64(40)
	p.ReturnedValue.SetInt64(10)
	p.WithdrawnValue.SetInt64(5)
	p.AllocatedValue.SetInt64(15)
	p.BoughtTokens.SetInt64(1000)
	p.ReturnedTokens.SetInt64(300)

	assert.Equal(t, "50", p.PendingValue().String())
	assert.Equal(t, "20", p.UnsettledValue().String())
	assert.Equal(t, "700", p.OutstandingTokens().String())
	assert.True(t, p.HasPending())

	c := p.Clone()
	c.CommittedValue.SetInt64(1)
	assert.Equal(t, "100", p.CommittedValue.String())
}
