// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelDB(t *testing.T) {
	var (
		key        = []byte("123")
		value      = []byte("456")
		inValidKey = []byte("abc")
	)

	persistent, err := New(filepath.Join(t.TempDir(), "lvldb"), Options{CacheSize: 16, OpenFilesCacheCapacity: 16})
	require.NoError(t, err)
	defer persistent.Close()

	mem, err := NewMem()
	require.NoError(t, err)
	defer mem.Close()

	for _, db := range []*LevelDB{persistent, mem} {
		assert.NoError(t, db.Put(key, value))

		ret1, err := db.Get(key)
		assert.NoError(t, err)

		ret2, err := db.Has(key)
		assert.NoError(t, err)

		ret3, err := db.Has(inValidKey)
		assert.NoError(t, err)

		assert.NoError(t, db.Delete(key))

		_, ret4 := db.Get(key)

		tests := []struct {
			ret      any
			expected any
		}{
			{ret1, value},
			{ret2, true},
			{ret3, false},
			{db.IsNotFound(ret4), true},
		}

		for _, tt := range tests {
			assert.Equal(t, tt.expected, tt.ret)
		}
	}
}

func TestLevelDBBatch(t *testing.T) {
	var (
		key   = []byte("123")
		value = []byte("456")
	)
	db, err := New(filepath.Join(t.TempDir(), "batch"), Options{})
	require.NoError(t, err)
	defer db.Close()

	batch := db.NewBatch()
	assert.NoError(t, batch.Put(key, value))
	assert.NoError(t, batch.Put([]byte("gone"), value))
	assert.NoError(t, batch.Delete([]byte("gone")))
	assert.Equal(t, 3, batch.Len())

	has, err := db.Has(key)
	assert.NoError(t, err)
	assert.False(t, has)

	assert.NoError(t, batch.Write())

	v, err := db.Get(key)
	assert.NoError(t, err)
	assert.Equal(t, value, v)

	has, err = db.Has([]byte("gone"))
	assert.NoError(t, err)
	assert.False(t, has)
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen")
	db, err := New(path, Options{})
	require.NoError(t, err)
	require.NoError(t, db.Put([]byte("k"), []byte("v")))
	require.NoError(t, db.Close())

	db, err = New(path, Options{})
	require.NoError(t, err)
	defer db.Close()

	v, err := db.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}

func TestReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readonly")

	_, err := New(path, Options{ReadOnly: true})
	assert.Error(t, err, "missing database is not created when read only")

	db, err := New(path, Options{})
	require.NoError(t, err)
	require.NoError(t, db.Put([]byte("k"), []byte("v")))
	require.NoError(t, db.Close())

	ro, err := New(path, Options{ReadOnly: true})
	require.NoError(t, err)
	defer ro.Close()

	assert.True(t, ro.ReadOnly())
	v, err := ro.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
	assert.Error(t, ro.Put([]byte("k"), []byte("w")))
}
