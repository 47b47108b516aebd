package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/nacternals/roboshop/action"
	"github.com/nacternals/roboshop/phase"
)

var applyCommand = &cli.Command{
	Name:  "apply",
	Usage: "Apply a roboshop stack configuration",
	Flags: []cli.Flag{
		configFlag,
		concurrencyFlag,
		concurrentUploadsFlag,
		&cli.BoolFlag{
			Name:   "disable-downgrade-check",
			Usage:  "Skip artifact downgrade check",
			Hidden: true,
		},
		&cli.BoolFlag{
			Name:  "force",
			Usage: "Attempt a forced deployment in case of certain failures",
		},
		debugFlag,
		traceFlag,
		analyticsFlag,
	},
	Before: actions(initLogging, initConfig, initManager, initAnalytics),
	After:  actions(closeAnalytics),
	Action: func(ctx *cli.Context) error {
		applyAction := action.Apply{
			Manager:               ctx.Context.Value(ctxManagerKey{}).(*phase.Manager),
			Force:                 ctx.Bool("force"),
			DisableDowngradeCheck: ctx.Bool("disable-downgrade-check"),
		}

		if err := applyAction.Run(ctx.Context); err != nil {
			return fmt.Errorf("apply failed - log file saved to %s: %w", ctx.Context.Value(ctxLogFileKey{}).(string), err)
		}

		return nil
	},
}
