// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"math/big"
	mathrand "math/rand/v2"
)

var ether = big.NewInt(1e18)

func RandInt() int {
	return mathrand.Int() //#nosec G404
}

func RandIntN(n int) int {
	return mathrand.N(n) //#nosec G404
}

// RandWei returns a random amount in [1, maxEther] ether, with a random wei fraction.
func RandWei(maxEther int) *big.Int {
	v := new(big.Int).Mul(big.NewInt(int64(RandIntN(maxEther))), ether)
	return v.Add(v, big.NewInt(mathrand.Int64N(1e18)+1)) //#nosec G404
}

// Ether converts a whole ether amount into wei.
func Ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), ether)
}
