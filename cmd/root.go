package cmd

import (
	"github.com/urfave/cli/v2"
)

// App is the main urfave/cli.App for roboshop
var App = &cli.App{
	Name:                 "roboshop",
	Usage:                "roboshop e-commerce stack provisioning tool",
	EnableBashCompletion: true,
	Flags: []cli.Flag{
		debugFlag,
		traceFlag,
	},
	Commands: []*cli.Command{
		versionCommand,
		applyCommand,
		resetCommand,
		initCommand,
		statusCommand,
		alertCommand,
		housekeepCommand,
		completionCommand,
	},
}
