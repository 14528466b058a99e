// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rico/builtin/rico/reverts"
	"github.com/vechain/rico/thor"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"0", "0", false},
		{"1000000000000000000", "1000000000000000000", false},
		{"0x10", "16", false},
		{"-1", "", true},
		{"1.5", "", true},
		{"", "", true},
		{"0x10000000000000000000000000000000000000000000000000000000000000000", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestCaller(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/contributions", nil)
	_, err := Caller(req)
	assert.Error(t, err)

	addr := thor.BytesToAddress([]byte("alice"))
	req.Header.Set(CallerHeader, addr.String())
	got, err := Caller(req)
	require.NoError(t, err)
	assert.Equal(t, addr, got)

	req.Header.Set(CallerHeader, "0xzz")
	_, err = Caller(req)
	assert.Error(t, err)
}

func TestParseBlock(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/sale/phase", nil)
	n, err := ParseBlock(req, 7)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), n)

	req = httptest.NewRequest(http.MethodGet, "/sale/phase?block=0x10", nil)
	n, err = ParseBlock(req, 7)
	require.NoError(t, err)
	assert.Equal(t, uint32(16), n)

	req = httptest.NewRequest(http.MethodGet, "/sale/phase?block=4294967296", nil)
	_, err = ParseBlock(req, 7)
	assert.Error(t, err)
}

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"ok", nil, http.StatusOK},
		{"bad request", BadRequest(errors.New("bad")), http.StatusBadRequest},
		{"forbidden revert", reverts.ErrNotAuthority, http.StatusForbidden},
		{"balance revert", reverts.ErrNoLockedTokens.Withf("at block %d", 3), http.StatusConflict},
		{"input revert", reverts.ErrZeroAmount, http.StatusBadRequest},
		{"internal", errors.New("disk"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error { return tt.err })
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	h := WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
		return reverts.ErrExceedsLockedBalance
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	var body RevertError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ExceedsLockedBalance", body.Name)
	assert.Equal(t, "BalanceError", body.Kind)
}

func TestAmount(t *testing.T) {
	assert.Nil(t, Amount(nil))
	out, err := json.Marshal(Amount(big.NewInt(255)))
	require.NoError(t, err)
	assert.Equal(t, `"0xff"`, string(out))

	out, err = json.Marshal(Amount(new(big.Int)))
	require.NoError(t, err)
	assert.Equal(t, `"0x0"`, string(out))
}
