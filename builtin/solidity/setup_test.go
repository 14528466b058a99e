// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vechain/rico/lvldb"
	"github.com/vechain/rico/state"
	"github.com/vechain/rico/thor"
)

// newTestContext returns a fresh Context with in-memory DB and a meter.
func newTestContext(t *testing.T) *Context {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.NewStater(db, 0).NewState()
	return NewContext(thor.Address{1}, st, &Meter{})
}
