package cmd

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nacternals/roboshop/action"
	"github.com/nacternals/roboshop/phase"
)

var resetCommand = &cli.Command{
	Name:  "reset",
	Usage: "Remove the stack services from the hosts",
	Flags: []cli.Flag{
		configFlag,
		concurrencyFlag,
		&cli.BoolFlag{
			Name:    "force",
			Usage:   "Don't ask for confirmation",
			Aliases: []string{"f"},
		},
		debugFlag,
		traceFlag,
		analyticsFlag,
	},
	Before: actions(initLogging, initConfig, initManager, initAnalytics),
	After:  actions(closeAnalytics),
	Action: func(ctx *cli.Context) error {
		resetAction := action.Reset{
			Manager: ctx.Context.Value(ctxManagerKey{}).(*phase.Manager),
			Stdout:  os.Stdout,
			Force:   ctx.Bool("force"),
		}

		return resetAction.Run(ctx.Context)
	},
}
