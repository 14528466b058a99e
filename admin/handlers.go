// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vechain/rico/builtin/rico"
	"github.com/vechain/rico/log"
	"github.com/vechain/rico/runtime"
)

var levelsByName = map[string]slog.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
	"crit":  log.LevelCrit,
}

type logLevelRequest struct {
	Level string `json:"level"`
}

type logLevelResponse struct {
	CurrentLevel string `json:"currentLevel"`
}

type errorResponse struct {
	ErrorCode    int    `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// Status reports whether the sale storage and log db are readable.
type Status struct {
	Healthy     bool       `json:"healthy"`
	Block       uint32     `json:"block"`
	Phase       string     `json:"phase,omitempty"`
	LastCommit  *time.Time `json:"lastCommit"`
	LogsNewest  uint32     `json:"logsNewestBlock"`
	ErrorReason string     `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{ErrorCode: code, ErrorMessage: msg})
}

func getLogLevel(logLevel *slog.LevelVar) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, logLevelResponse{CurrentLevel: logLevel.Level().String()})
	}
}

func setLogLevel(logLevel *slog.LevelVar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req logLevelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		level, ok := levelsByName[strings.ToLower(req.Level)]
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid verbosity level")
			return
		}
		logLevel.Set(level)
		logger.Info("log level changed", "level", log.LevelString(level))
		writeJSON(w, http.StatusOK, logLevelResponse{CurrentLevel: logLevel.Level().String()})
	}
}

// health reads the current phase through the runtime and the newest logged block.
// Any failure, including an uninitialized sale, makes the service unhealthy.
func health(rt *runtime.Runtime) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		status := &Status{Healthy: true}
		if t := rt.LastCommit(); !t.IsZero() {
			status.LastCommit = &t
		}

		err := rt.View(func(r *rico.Rico, block uint32) error {
			status.Block = block
			phase, err := r.Phase(block)
			if err != nil {
				return err
			}
			status.Phase = phase.String()
			return nil
		})
		if err == nil {
			status.LogsNewest, err = rt.LogDB().NewestBlockNumber()
		}

		code := http.StatusOK
		if err != nil {
			status.Healthy = false
			status.ErrorReason = err.Error()
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, status)
	}
}
