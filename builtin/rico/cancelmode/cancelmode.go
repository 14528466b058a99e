// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cancelmode

import (
	"math/big"

	"github.com/vechain/rico/builtin/rico/ledger"
)

// Modes are the two reclaim permissions of a participant.
type Modes struct {
	// FullCancel allows reclaiming all never accepted value.
	FullCancel bool
	// PartialWithdraw allows returning locked tokens for a refund.
	PartialWithdraw bool
}

// Resolve derives the modes from the record and its locked balance at the time of the query.
func Resolve(p *ledger.Participant, locked *big.Int) Modes {
	return Modes{
		FullCancel:      !p.Whitelisted && p.PendingValue().Sign() > 0 && p.AcceptedValue.Sign() == 0,
		PartialWithdraw: locked.Sign() > 0,
	}
}
