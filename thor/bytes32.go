// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/common"
)

// Bytes32 is a storage key, a storage slot or a digest.
type Bytes32 [32]byte

// Slot returns the storage slot named name. Names are at most 32 bytes.
func Slot(name string) Bytes32 {
	if len(name) > 32 {
		panic("thor: slot name too long: " + name)
	}
	return BytesToBytes32([]byte(name))
}

// BytesToBytes32 left-pads b to 32 bytes, keeping the rightmost 32 when b is longer.
func BytesToBytes32(b []byte) Bytes32 {
	return Bytes32(common.BytesToHash(b))
}

func (b Bytes32) String() string {
	return "0x" + hex.EncodeToString(b[:])
}

func (b Bytes32) Bytes() []byte {
	return b[:]
}

func (b Bytes32) IsZero() bool {
	return b == Bytes32{}
}

// MarshalText encodes the value as 0x-prefixed hex, so it logs and serializes like an address.
func (b Bytes32) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}
