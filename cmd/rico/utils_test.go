// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rico/builtin/rico/config"
	"github.com/vechain/rico/builtin/rico/reverts"
	ricoruntime "github.com/vechain/rico/runtime"
	"github.com/vechain/rico/thor"
)

func TestRequestBodyLimit(t *testing.T) {
	handler := requestBodyLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}")))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 300*1024))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHandleAPITimeout(t *testing.T) {
	handler := handleAPITimeout(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, ok := r.Context().Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 500*time.Millisecond)
	}), time.Second)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestDefaultDataDir(t *testing.T) {
	t.Setenv("HOME", "/tmp/home")
	assert.True(t, strings.HasPrefix(defaultDataDir(), "/tmp/home"))
}

func TestCheckSale(t *testing.T) {
	mainDB := openMemMainDB()
	logDB := openMemLogDB()
	defer func() {
		logDB.Close()
		mainDB.Close()
	}()

	rt := newRuntime(mainDB, logDB, ricoruntime.NewManualClock(0))
	assert.ErrorIs(t, checkSale(rt), reverts.ErrNotInitialized)

	require.NoError(t, rt.Initialize(&config.Config{
		Token:        thor.BytesToAddress([]byte("token")),
		Authority:    thor.BytesToAddress([]byte("authority")),
		Beneficiary:  thor.BytesToAddress([]byte("beneficiary")),
		StartBlock:   10,
		CommitBlocks: 10,
		CommitPrice:  big.NewInt(2e15),
		StageCount:   2,
		StageBlocks:  10,
		PriceStep:    big.NewInt(1e14),
		Decimals:     18,
	}))
	assert.NoError(t, checkSale(rt))
}
