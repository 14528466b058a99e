// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cancelmode

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/rico/builtin/rico/ledger"
)

func TestResolve(t *testing.T) {
	participant := func(whitelisted bool, committed, accepted, returned int64) *ledger.Participant {
		p := ledger.NewParticipant()
		p.Whitelisted = whitelisted
		p.CommittedValue.SetInt64(committed)
		p.AcceptedValue.SetInt64(accepted)
		p.ReturnedValue.SetInt64(returned)
		return p
	}

	tests := []struct {
		name   string
		p      *ledger.Participant
		locked int64
		want   Modes
	}{
		{"never contributed", ledger.NewParticipant(), 0, Modes{}},
		{"pending and locked", participant(false, 100, 0, 0), 10, Modes{true, true}},
		{"pending after vesting", participant(false, 100, 0, 0), 0, Modes{true, false}},
		{"accepted and locked", participant(true, 100, 100, 0), 10, Modes{false, true}},
		{"accepted and vested", participant(true, 100, 100, 0), 0, Modes{}},
		{"revoked with accepted history", participant(false, 150, 100, 0), 10, Modes{false, true}},
		{"whitelisted with nothing accepted", participant(true, 100, 0, 0), 10, Modes{false, true}},
		{"already cancelled", participant(false, 100, 0, 100), 0, Modes{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.p, big.NewInt(tt.locked)))
		})
	}
}
