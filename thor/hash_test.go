// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"io"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/blake2b"
)

func BenchmarkBlake2b(b *testing.B) {
	data := make([]byte, 100)

	rng := rand.New(rand.NewPCG(1, 0)) //#nosec G404
	for i := range data {
		data[i] = byte(rng.Uint64())
	}
	b.Run("Blake2b", func(b *testing.B) {
		for b.Loop() {
			Blake2b(data).Bytes()
		}
	})

	b.Run("BlakeFn", func(b *testing.B) {
		for b.Loop() {
			Blake2bFn(func(w io.Writer) {
				w.Write(data)
			})
		}
	})
}

func TestBlake2b(t *testing.T) {
	single := []byte("participants")
	assert.Equal(t, Bytes32(blake2b.Sum256(single)), Blake2b(single))

	// multiple chunks hash the same as their concatenation
	a, b := []byte("contrib"), []byte("utions")
	assert.Equal(t, Blake2b([]byte("contributions")), Blake2b(a, b))

	assert.NotEqual(t, Blake2b(a, b), Blake2b(b, a))
}
