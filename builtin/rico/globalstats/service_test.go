// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package globalstats

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rico/builtin/solidity"
	"github.com/vechain/rico/lvldb"
	"github.com/vechain/rico/state"
	"github.com/vechain/rico/thor"
)

func newService(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.NewStater(db, 0).NewState()
	return New(solidity.NewContext(thor.Address{1}, st, nil))
}

func TestTotals(t *testing.T) {
	svc := newService(t)

	totals, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, 0, totals.Committed.Sign())
	assert.Equal(t, 0, totals.RemainingTokens().Sign())

	require.NoError(t, svc.AddSupply(big.NewInt(1000)))
	require.NoError(t, svc.AddContribution(big.NewInt(50), big.NewInt(400)))
	require.NoError(t, svc.AddAccepted(big.NewInt(30)))
	require.NoError(t, svc.AddCancel(big.NewInt(20), big.NewInt(160)))
	require.NoError(t, svc.AddWithdrawal(big.NewInt(5), big.NewInt(40), big.NewInt(2)))
	require.NoError(t, svc.AddProjectWithdrawal(big.NewInt(7)))

	totals, err = svc.Get()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(50), totals.Committed)
	assert.Equal(t, big.NewInt(30), totals.Accepted)
	assert.Equal(t, big.NewInt(25), totals.Returned)
	assert.Equal(t, big.NewInt(5), totals.ParticipantWithdrawn)
	assert.Equal(t, big.NewInt(7), totals.ProjectWithdrawn)
	assert.Equal(t, big.NewInt(2), totals.Allocated)
	assert.Equal(t, big.NewInt(1000), totals.TokenSupply)
	assert.Equal(t, big.NewInt(400), totals.SoldTokens)
	assert.Equal(t, big.NewInt(200), totals.ReturnedTokens)
	assert.Equal(t, big.NewInt(800), totals.RemainingTokens())
}
