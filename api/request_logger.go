// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/vechain/rico/api/utils"
	"github.com/vechain/rico/log"
)

// maxLoggedBody bounds the part of a request body copied into the log.
const maxLoggedBody = 1024

// RequestLoggerHandler logs every request once it is served, with the caller, the response
// status and the duration. Bodies of mutating requests are logged too.
func RequestLoggerHandler(handler http.Handler, logger log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Method == http.MethodPost && r.Body != nil {
			data, err := io.ReadAll(r.Body)
			if err != nil {
				logger.Warn("unexpected body read error", "uri", r.URL.String(), "err", err)
				http.Error(w, "unable to read request body", http.StatusBadRequest)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(data))
			body = data
			if len(body) > maxLoggedBody {
				body = body[:maxLoggedBody]
			}
		}

		start := time.Now()
		rw := newMetricsResponseWriter(w)
		handler.ServeHTTP(rw, r)

		ctx := []any{
			"method", r.Method,
			"uri", r.URL.String(),
			"caller", r.Header.Get(utils.CallerHeader),
			"status", rw.statusCode,
			"elapsed", time.Since(start),
		}
		if body != nil {
			ctx = append(ctx, "body", string(body))
		}
		logger.Info("api request", ctx...)
	})
}
