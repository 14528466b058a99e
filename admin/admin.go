// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package admin serves operator endpoints on a listener separate from the public API.
package admin

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/rico/log"
	"github.com/vechain/rico/runtime"
)

var logger = log.WithContext("pkg", "admin")

// HTTPHandler serves the log level and health endpoints under /admin.
func HTTPHandler(logLevel *slog.LevelVar, rt *runtime.Runtime) http.Handler {
	router := mux.NewRouter()
	sub := router.PathPrefix("/admin").Subrouter()
	sub.Path("/loglevel").Methods(http.MethodGet).HandlerFunc(getLogLevel(logLevel))
	sub.Path("/loglevel").Methods(http.MethodPost).HandlerFunc(setLogLevel(logLevel))
	sub.Path("/health").Methods(http.MethodGet).HandlerFunc(health(rt))
	return handlers.CompressHandler(router)
}

// StartServer serves the admin API on addr. The returned func stops it and waits for the
// serving goroutine to exit.
func StartServer(addr string, logLevel *slog.LevelVar, rt *runtime.Runtime) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen admin API addr [%v]", addr)
	}

	srv := &http.Server{
		Handler:           HTTPHandler(logLevel, rt),
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("admin server stopped", "err", err)
		}
	}()
	return "http://" + listener.Addr().String() + "/admin", func() {
		srv.Close()
		<-done
	}, nil
}
