// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"net/http"
	// pprof imported for the side effect of registering its HTTP handlers
	_ "net/http/pprof"

	"github.com/evlytic/clickbridge/cmd"
	"github.com/evlytic/clickbridge/config"
	"github.com/evlytic/clickbridge/pkg/bridge"
	"github.com/evlytic/clickbridge/pkg/health"
)

const (
	appVersion   = cmd.AppVersion
	appName      = cmd.AppName
	appUsage     = "Bridges application events into a ClickHouse-compatible analytical store"
	appCopyright = "(c) 2025-present Evlytic Ltd. All rights reserved."
)

// RunCli allows running the bridge daemon from the cli
func RunCli() {
	cfg, sentryEnabled, err := cmd.Init()
	if err != nil {
		exitWithError(err, sentryEnabled)
	}

	app := cli.NewApp()
	app.Name = appName
	app.Usage = appUsage
	app.Version = appVersion
	app.Copyright = appCopyright
	app.Compiled = time.Now().UTC()

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "profile, p",
			Usage: "Enable application profiling endpoint on port 8080",
		},
		cli.BoolFlag{
			Name:  "skip-setup",
			Usage: "Skip the idempotent schema setup on startup",
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.Bool("profile") {
			go func() {
				if err := http.ListenAndServe("localhost:8080", nil); err != nil {
					log.WithError(err).Fatal("failed to start up the profiling server")
				}
			}()
		}
		return runDaemon(cfg, !c.Bool("skip-setup"))
	}

	app.ExitErrHandler = func(context *cli.Context, err error) {
		if err != nil {
			exitWithError(err, sentryEnabled)
		}
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Error("failed to run cli")
	}
}

// runDaemon starts the bridge and blocks until a shutdown signal arrives,
// at which point the pipeline is drained before exit
func runDaemon(cfg *config.Config, setup bool) error {
	b, err := bridge.New(cfg)
	if err != nil {
		return err
	}

	if setup {
		if err := b.Setup(); err != nil {
			b.Close()
			return err
		}
	}

	if b.Client.Ping() {
		health.SetHealthy()
	}
	log.Infof("%s %s started", appName, appVersion)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Warn("SIGTERM called, draining pipeline and closing ...")
	return b.Close()
}

// exitWithError logs the error, gives sentry time to deliver it and exits
func exitWithError(err error, flushSentry bool) {
	if flushSentry {
		sentry.CaptureException(err)
		sentry.Flush(2 * time.Second)
	}
	log.WithError(err).Fatal("Fatal error, exiting")
}
