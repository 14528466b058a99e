// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/rico/admin"
	"github.com/vechain/rico/api"
	"github.com/vechain/rico/api/utils"
	"github.com/vechain/rico/builtin/rico"
	"github.com/vechain/rico/log"
	"github.com/vechain/rico/logdb"
	"github.com/vechain/rico/lvldb"
	"github.com/vechain/rico/metrics"
	"github.com/vechain/rico/thor"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	clockFlags := []cli.Flag{genesisTimeFlag, blockIntervalFlag}

	app := cli.App{
		Version:   fullVersion(),
		Name:      "Rico",
		Usage:     "Reversible token sale accounting engine",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: append([]cli.Flag{
			dataDirFlag,
			configFlag,
			devFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiLogsLimitFlag,
			enableAPILogsFlag,
			skipLogsFlag,
			enableMetricsFlag,
			enableAdminFlag,
			adminAddrFlag,
			verbosityFlag,
			jsonLogsFlag,
		}, clockFlags...),
		Action: serveAction,
		Commands: []cli.Command{
			{
				Name:   "init",
				Usage:  "initialize the sale in data dir from a configuration file",
				Flags:  append([]cli.Flag{dataDirFlag, configFlag, verbosityFlag, jsonLogsFlag}, clockFlags...),
				Action: initAction,
			},
			{
				Name:      "inspect",
				Usage:     "print the record and balances of a participant",
				ArgsUsage: "<address>",
				Flags:     append([]cli.Flag{dataDirFlag, blockFlag}, clockFlags...),
				Action:    inspectAction,
			},
			{
				Name:   "phase",
				Usage:  "print the sale timeline and the phase at a block",
				Flags:  append([]cli.Flag{dataDirFlag, blockFlag}, clockFlags...),
				Action: phaseAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveAction(ctx *cli.Context) error {
	logLevel := initLogger(ctx)
	defer func() { log.Info("exited") }()

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	dev := ctx.Bool(devFlag.Name)
	var (
		mainDB      *lvldb.LevelDB
		logDB       *logdb.LogDB
		instanceDir string
	)
	if dev {
		instanceDir = "Memory"
		mainDB = openMemMainDB()
		logDB = openMemLogDB()
	} else {
		instanceDir = makeDataDir(ctx)
		mainDB = openMainDB(instanceDir, false)
		logDB = openLogDB(instanceDir)
	}
	defer func() { log.Info("closing main database..."); mainDB.Close() }()
	defer func() { log.Info("closing log database..."); logDB.Close() }()

	clock := newChainClock(ctx)
	rt := newRuntime(mainDB, logDB, clock)
	if dev {
		cfg, err := loadSaleConfig(ctx.String(configFlag.Name))
		if err != nil {
			return err
		}
		if err := rt.Initialize(cfg); err != nil {
			return err
		}
	}
	if err := checkSale(rt); err != nil {
		return errors.WithMessage(err, "load sale, run init first")
	}

	if ctx.Bool(enableAdminFlag.Name) {
		url, stopAdmin, err := admin.StartServer(ctx.String(adminAddrFlag.Name), logLevel, rt)
		if err != nil {
			return err
		}
		defer func() { log.Info("stopping admin server..."); stopAdmin() }()
		log.Info("admin server started", "url", url)
	}

	handler, closeSubs := api.New(rt, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		LogsLimit:       ctx.Uint64(apiLogsLimitFlag.Name),
		SkipLogs:        ctx.Bool(skipLogsFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
	})
	defer closeSubs()

	srv, listener, err := newAPIServer(ctx, handler)
	if err != nil {
		return err
	}
	go checkClockOffset(clock.Interval())

	exitCtx, stop := exitContext()
	defer stop()
	g, gctx := errgroup.WithContext(exitCtx)
	g.Go(func() error {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("stopping API server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	log.Info("sale service started",
		"data", instanceDir,
		"api", "http://"+listener.Addr().String()+"/",
		"block", rt.BlockNumber(),
		"interval", clock.Interval(),
	)
	return g.Wait()
}

func initAction(ctx *cli.Context) error {
	initLogger(ctx)

	cfg, err := loadSaleConfig(ctx.String(configFlag.Name))
	if err != nil {
		return err
	}
	dataDir := makeDataDir(ctx)
	mainDB := openMainDB(dataDir, false)
	defer mainDB.Close()
	logDB := openLogDB(dataDir)
	defer logDB.Close()

	rt := newRuntime(mainDB, logDB, newChainClock(ctx))
	if err := rt.Initialize(cfg); err != nil {
		return err
	}
	fmt.Printf("sale initialized in %v, blocks [%v, %v)\n", dataDir, cfg.StartBlock, cfg.EndBlock())
	return nil
}

func inspectAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("missing participant address")
	}
	participant, err := thor.ParseAddress(ctx.Args().First())
	if err != nil {
		return errors.WithMessage(err, "participant")
	}

	dataDir := makeDataDir(ctx)
	mainDB := openMainDB(dataDir, true)
	defer mainDB.Close()
	logDB := openLogDB(dataDir)
	defer logDB.Close()

	rt := newRuntime(mainDB, logDB, newChainClock(ctx))
	block := evalBlock(ctx, rt)

	var out utils.M
	if err := rt.View(func(r *rico.Rico, _ uint32) error {
		p, err := r.Participant(participant)
		if err != nil {
			return err
		}
		b, err := r.Balances(participant, block)
		if err != nil {
			return err
		}
		m, err := r.CancelModes(participant, block)
		if err != nil {
			return err
		}
		out = utils.M{
			"address":       participant,
			"block":         block,
			"whitelisted":   p.Whitelisted,
			"contributions": p.ContributionCount,
			"committed":     utils.Amount(p.CommittedValue),
			"accepted":      utils.Amount(p.AcceptedValue),
			"pending":       utils.Amount(p.PendingValue()),
			"withdrawn":     utils.Amount(p.WithdrawnValue),
			"locked":        utils.Amount(b.Locked),
			"unlocked":      utils.Amount(b.Unlocked),
			"reserved":      utils.Amount(b.Reserved),
			"fullCancel":    m.FullCancel,
			"withdraw":      m.PartialWithdraw,
		}
		return nil
	}); err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func phaseAction(ctx *cli.Context) error {
	dataDir := makeDataDir(ctx)
	mainDB := openMainDB(dataDir, true)
	defer mainDB.Close()
	logDB := openLogDB(dataDir)
	defer logDB.Close()

	rt := newRuntime(mainDB, logDB, newChainClock(ctx))
	block := evalBlock(ctx, rt)

	return rt.View(func(r *rico.Rico, _ uint32) error {
		sched, err := r.Schedule()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PHASE\tSTART\tEND\tPRICE")
		for _, win := range sched.Windows() {
			fmt.Fprintf(w, "%v\t%v\t%v\t%v\n", win.Phase, win.Start, win.End, win.Price)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		phase := sched.Phase(block)
		num, den := sched.UnlockRatio(block)
		fmt.Printf("\nblock %v: %v, price %v, unlocked %v/%v\n", block, phase, sched.Price(phase), num, den)
		return nil
	})
}
