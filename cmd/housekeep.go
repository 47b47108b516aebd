package cmd

import (
	"path"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/nacternals/roboshop/action"
	"github.com/nacternals/roboshop/cache"
	"github.com/nacternals/roboshop/phase"
)

var housekeepCommand = &cli.Command{
	Name:  "housekeep",
	Usage: "Prune aged roboshop log files and unit file backups",
	Flags: []cli.Flag{
		configFlag,
		&cli.DurationFlag{
			Name:  "max-age",
			Usage: "Retention period for log files and unit file backups",
			Value: 7 * 24 * time.Hour,
		},
		&cli.BoolFlag{
			Name:  "local-only",
			Usage: "Only prune local log files, do not connect to the hosts",
		},
		debugFlag,
		traceFlag,
		analyticsFlag,
	},
	Before: func(ctx *cli.Context) error {
		if ctx.Bool("local-only") {
			return actions(initLogging, initAnalytics)(ctx)
		}
		return actions(initLogging, initConfig, initManager, initAnalytics)(ctx)
	},
	After: actions(closeAnalytics),
	Action: func(ctx *cli.Context) error {
		var manager *phase.Manager
		if !ctx.Bool("local-only") {
			manager = ctx.Context.Value(ctxManagerKey{}).(*phase.Manager)
		}

		housekeepAction := action.Housekeep{
			Manager:  manager,
			LockPath: path.Join(cache.Dir(), "housekeep.lock"),
			LogDir:   cache.Dir(),
			MaxAge:   ctx.Duration("max-age"),
		}

		return housekeepAction.Run(ctx.Context)
	},
}
