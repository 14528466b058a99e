// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/rico/api/logs"
	"github.com/vechain/rico/api/operations"
	"github.com/vechain/rico/api/participants"
	"github.com/vechain/rico/api/project"
	"github.com/vechain/rico/api/sale"
	"github.com/vechain/rico/api/subscriptions"
	"github.com/vechain/rico/api/utils"
	"github.com/vechain/rico/log"
	"github.com/vechain/rico/metrics"
	"github.com/vechain/rico/runtime"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	LogsLimit       uint64
	SkipLogs        bool
	EnableReqLogger bool
	EnableMetrics   bool
}

// New return api router
func New(rt *runtime.Runtime, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	sale.New(rt).
		Mount(router, "/sale")
	participants.New(rt).
		Mount(router, "/participants")
	project.New(rt).
		Mount(router, "/project")
	operations.New(rt).
		Mount(router)
	if !opts.SkipLogs {
		logs.New(rt.LogDB(), opts.LogsLimit).
			Mount(router, "/logs")
	}
	subs := subscriptions.New(rt.Feed(), origins)
	subs.Mount(router, "/subscriptions")

	if opts.EnableMetrics {
		router.Path("/metrics").Methods(http.MethodGet).Handler(metrics.HTTPHandler())
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", utils.CallerHeader}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}

	return handler.ServeHTTP, subs.Close // subscriptions handles hijacked conns, which need to be closed
}
