package cmd

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/nacternals/roboshop/action"
	"github.com/nacternals/roboshop/phase"
)

var alertCommand = &cli.Command{
	Name:      "alert",
	Usage:     "Check host resource usage and mail an alert report when thresholds are exceeded",
	ArgsUsage: "[THRESHOLD]",
	Flags: []cli.Flag{
		configFlag,
		&cli.IntFlag{
			Name:  "memory-threshold",
			Usage: "Memory usage alert threshold percentage, overrides the configured value",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Report threshold breaches without sending mail",
		},
		debugFlag,
		traceFlag,
		analyticsFlag,
	},
	Before: actions(initLogging, initConfig, initManager, initAnalytics),
	After:  actions(closeAnalytics),
	Action: func(ctx *cli.Context) error {
		var diskThreshold int
		if arg := ctx.Args().First(); arg != "" {
			t, err := strconv.Atoi(arg)
			if err != nil || t < 1 || t > 100 {
				return fmt.Errorf("invalid threshold %q, expected a percentage between 1 and 100", arg)
			}
			diskThreshold = t
		}

		alertAction := action.Alert{
			Manager:       ctx.Context.Value(ctxManagerKey{}).(*phase.Manager),
			DiskThreshold: diskThreshold,
			MemThreshold:  ctx.Int("memory-threshold"),
			DryRun:        ctx.Bool("dry-run"),
		}

		return alertAction.Run(ctx.Context)
	},
}
