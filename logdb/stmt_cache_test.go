// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rico/thor"
)

func TestStmtCacheReuse(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	addr := thor.BytesToAddress([]byte("alice"))
	filter := &EventFilter{Participant: &addr, Order: DESC}
	for range 3 {
		_, err := db.FilterEvents(context.Background(), filter)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, db.stmtCache.Len())

	_, err = db.FilterEvents(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, db.stmtCache.Len())

	db.stmtCache.Clear()
	assert.Equal(t, 0, db.stmtCache.Len())
}
