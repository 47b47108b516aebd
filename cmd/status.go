package cmd

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nacternals/roboshop/action"
	"github.com/nacternals/roboshop/phase"
)

var statusCommand = &cli.Command{
	Name:  "status",
	Usage: "Show the service state of the hosts",
	Flags: []cli.Flag{
		configFlag,
		concurrencyFlag,
		debugFlag,
		traceFlag,
		analyticsFlag,
	},
	Before: actions(initLogging, initConfig, initManager, initAnalytics),
	After:  actions(closeAnalytics),
	Action: func(ctx *cli.Context) error {
		statusAction := action.Status{
			Manager: ctx.Context.Value(ctxManagerKey{}).(*phase.Manager),
			Out:     os.Stdout,
		}

		return statusAction.Run(ctx.Context)
	},
}
