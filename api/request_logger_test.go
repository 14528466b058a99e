// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rico/api/utils"
	"github.com/vechain/rico/log"
)

func TestRequestLoggerHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogger(slog.NewJSONHandler(&buf, nil))

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		seen = string(data)
		w.WriteHeader(http.StatusConflict)
	})

	body := `{"value":"1000"}`
	req := httptest.NewRequest(http.MethodPost, "/contributions", strings.NewReader(body))
	req.Header.Set(utils.CallerHeader, "0x0000000000000000000000000000000000001000")
	rec := httptest.NewRecorder()
	RequestLoggerHandler(next, logger).ServeHTTP(rec, req)

	// the next handler still gets the whole body
	assert.Equal(t, body, seen)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "api request", entry["msg"])
	assert.Equal(t, "/contributions", entry["uri"])
	assert.Equal(t, body, entry["body"])
	assert.Equal(t, float64(http.StatusConflict), entry["status"])
	assert.Equal(t, "0x0000000000000000000000000000000000001000", entry["caller"])
}

func TestRequestLoggerSkipsReadBodies(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogger(slog.NewJSONHandler(&buf, nil))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	req := httptest.NewRequest(http.MethodGet, "/sale", nil)
	RequestLoggerHandler(next, logger).ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "/sale", entry["uri"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.NotContains(t, entry, "body")
}
