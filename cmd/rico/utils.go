// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/beevik/ntp"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/rico/builtin/rico"
	"github.com/vechain/rico/kv"
	"github.com/vechain/rico/log"
	"github.com/vechain/rico/logdb"
	"github.com/vechain/rico/lvldb"
	ricoruntime "github.com/vechain/rico/runtime"
	"github.com/vechain/rico/state"
	"github.com/vechain/rico/thor"
)

var (
	// saleAddress is the storage namespace of the sale.
	saleAddress   = thor.BytesToAddress([]byte("rico"))
	storageBucket = kv.Bucket("s")
)

func fatal(args ...any) {
	var w io.Writer
	if runtime.GOOS == "windows" {
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		} else {
			w = io.MultiWriter(os.Stdout, os.Stderr)
		}
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

func initLogger(ctx *cli.Context) *slog.LevelVar {
	level := new(slog.LevelVar)
	level.Set(log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)))

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stderr, level)
	} else {
		useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, level, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
	return level
}

func makeDataDir(ctx *cli.Context) string {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatal(fmt.Sprintf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name))
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		fatal(fmt.Sprintf("create data dir [%v]: %v", dataDir, err))
	}
	return dataDir
}

func openMainDB(dataDir string, readOnly bool) *lvldb.LevelDB {
	dir := filepath.Join(dataDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              64,
		OpenFilesCacheCapacity: 64,
		ReadOnly:               readOnly,
	})
	if err != nil {
		fatal(fmt.Sprintf("open main database [%v]: %v", dir, err))
	}
	return db
}

func openLogDB(dataDir string) *logdb.LogDB {
	dir := filepath.Join(dataDir, "logs.db")
	db, err := logdb.New(dir)
	if err != nil {
		fatal(fmt.Sprintf("open log database [%v]: %v", dir, err))
	}
	return db
}

func openMemMainDB() *lvldb.LevelDB {
	db, err := lvldb.NewMem()
	if err != nil {
		fatal(fmt.Sprintf("open main database: %v", err))
	}
	return db
}

func openMemLogDB() *logdb.LogDB {
	db, err := logdb.NewMem()
	if err != nil {
		fatal(fmt.Sprintf("open log database: %v", err))
	}
	return db
}

func newChainClock(ctx *cli.Context) *ricoruntime.ChainClock {
	genesis := time.Now()
	if ctx.IsSet(genesisTimeFlag.Name) {
		genesis = time.Unix(ctx.Int64(genesisTimeFlag.Name), 0)
	}
	interval := time.Duration(ctx.Uint64(blockIntervalFlag.Name)) * time.Second
	if interval <= 0 {
		fatal(fmt.Sprintf("invalid -%s", blockIntervalFlag.Name))
	}
	return ricoruntime.NewChainClock(genesis, interval)
}

// checkSale fails unless the stored sale is initialized.
func checkSale(rt *ricoruntime.Runtime) error {
	return rt.View(func(r *rico.Rico, _ uint32) error {
		_, err := r.Schedule()
		return err
	})
}

// newRuntime opens the sale runtime over the given databases.
func newRuntime(mainDB *lvldb.LevelDB, logDB *logdb.LogDB, clock ricoruntime.Clock) *ricoruntime.Runtime {
	return ricoruntime.New(saleAddress, state.NewStater(storageBucket.NewStore(mainDB), 4096), logDB, clock)
}

// evalBlock returns the block given by --block, or the current block of rt.
func evalBlock(ctx *cli.Context, rt *ricoruntime.Runtime) uint32 {
	if b := ctx.Int64(blockFlag.Name); b >= 0 {
		return uint32(b)
	}
	return rt.BlockNumber()
}

func handleAPITimeout(h http.Handler, timeout time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		h.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestBodyLimit limits the body size to 200kb.
func requestBodyLimit(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 200*1024)
		h.ServeHTTP(w, r)
	})
}

func newAPIServer(ctx *cli.Context, handler http.Handler) (*http.Server, net.Listener, error) {
	addr := ctx.String(apiAddrFlag.Name)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	if timeout := ctx.Uint64(apiTimeoutFlag.Name); timeout > 0 {
		handler = handleAPITimeout(handler, time.Duration(timeout)*time.Millisecond)
	}
	handler = requestBodyLimit(handler)
	return &http.Server{Handler: handler, ReadHeaderTimeout: time.Second}, listener, nil
}

func exitContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// checkClockOffset warns when the local clock drifts more than half a block from NTP time.
func checkClockOffset(interval time.Duration) {
	resp, err := ntp.Query("pool.ntp.org")
	if err != nil {
		log.Debug("failed to access NTP", "err", err)
		return
	}
	offset := resp.ClockOffset
	if offset < 0 {
		offset = -offset
	}
	if offset > interval/2 {
		log.Warn("clock offset detected", "offset", common.PrettyDuration(resp.ClockOffset))
	}
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "org.vechain.rico")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.rico")
		default:
			return filepath.Join(home, ".org.vechain.rico")
		}
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
