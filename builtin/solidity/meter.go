// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

// Meter counts storage words touched through a Context.
type Meter struct {
	reads  uint64
	writes uint64
}

// Reads returns the number of words loaded.
func (m *Meter) Reads() uint64 { return m.reads }

// Writes returns the number of words stored.
func (m *Meter) Writes() uint64 { return m.writes }

// toWordSize converts bytes length to 32 bytes words, an empty value still costs one word.
func toWordSize(length int) uint64 {
	if length <= 32 {
		return 1
	}
	return (uint64(length) + 31) / 32
}
