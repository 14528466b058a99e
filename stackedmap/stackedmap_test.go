// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vechain/rico/stackedmap"
)

func M(a ...any) []any {
	return a
}

func TestStackedMap(t *testing.T) {
	assert := assert.New(t)
	src := map[string]string{"foo": "bar"}

	sm := stackedmap.New(func(key any) (any, bool, error) {
		v, r := src[key.(string)]
		return v, r, nil
	})
	assert.Equal(M("bar", true, nil), M(sm.Get("foo")))

	rev1 := sm.Push()
	assert.Equal(1, rev1)
	sm.Put("foo", "baz")
	assert.Equal(M("baz", true, nil), M(sm.Get("foo")))
	sm.Put("foo", "baz1")
	assert.Equal(M("baz1", true, nil), M(sm.Get("foo")))

	rev2 := sm.Push()
	assert.Equal(2, rev2)
	sm.Put("foo", "qux")
	assert.Equal(M("qux", true, nil), M(sm.Get("foo")))

	sm.PopTo(rev2)
	assert.Equal(M("baz1", true, nil), M(sm.Get("foo")))
	sm.PopTo(rev1)
	assert.Equal(M("bar", true, nil), M(sm.Get("foo")))

	sm.Push()
	assert.Equal(2, sm.Push())
	sm.PopTo(0)
	assert.Equal(0, sm.Push(), "empty after popping to zero")
}

func TestStackedMapPuts(t *testing.T) {
	assert := assert.New(t)
	sm := stackedmap.New(func(key any) (any, bool, error) {
		return nil, false, nil
	})

	kvs := []struct {
		k, v string
	}{
		{"a", "b"},
		{"a", "b"},
		{"a1", "b1"},
		{"a2", "b2"},
		{"a3", "b3"},
		{"a4", "b4"},
	}

	for _, kv := range kvs {
		sm.Push()
		sm.Put(kv.k, kv.v)
	}
	i := 0
	sm.Journal(func(k, v any) bool {
		assert.Equal(k, kvs[i].k)
		assert.Equal(v, kvs[i].v)
		i++
		return true
	})
	assert.Equal(len(kvs), i, "Journal traverse should abort")

	i = 0
	sm.Journal(func(k, v any) bool {
		i++
		return false
	})

	assert.Equal(1, i, "Journal traverse should abort")
}

func TestStackedMapRevertKeepsLowerLevels(t *testing.T) {
	sm := stackedmap.New(func(key any) (any, bool, error) {
		return 0, true, nil
	})

	sm.Put("balance", 10)
	rev := sm.Push()
	sm.Put("balance", 20)
	sm.Put("balance", 30)
	sm.Put("other", 1)

	v, _, _ := sm.Get("balance")
	assert.Equal(t, 30, v)

	sm.PopTo(rev)
	v, _, _ = sm.Get("balance")
	assert.Equal(t, 10, v)
	v, _, _ = sm.Get("other")
	assert.Equal(t, 0, v, "falls back to source")

	var keys []any
	sm.Journal(func(k, _ any) bool {
		keys = append(keys, k)
		return true
	})
	assert.Equal(t, []any{"balance"}, keys)
}
