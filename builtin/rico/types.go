// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rico

import (
	"math/big"

	"github.com/vechain/rico/builtin/rico/ledger"
	"github.com/vechain/rico/builtin/rico/whitelist"
)

// Contribution is the outcome of Contribute.
type Contribution struct {
	*ledger.Contribution
	Price    *big.Int
	Returned *big.Int         // value not spent, to be sent back
	Accepted *whitelist.Sweep // nil while pending
}
