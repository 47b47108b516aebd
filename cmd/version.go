package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/nacternals/roboshop/analytics"
	"github.com/nacternals/roboshop/integration/github"
	"github.com/nacternals/roboshop/version"
)

var versionCommand = &cli.Command{
	Name:  "version",
	Usage: "Output roboshop version",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "latest",
			Usage: "Check for the latest release",
		},
		&cli.BoolFlag{
			Name:   "machine-id",
			Hidden: true,
		},
	},
	Action: func(ctx *cli.Context) error {
		fmt.Printf("version: %s\n", version.Version)
		fmt.Printf("commit: %s\n", version.GitCommit)
		if ctx.Bool("latest") {
			release, err := github.LatestRelease(version.IsPre())
			if err != nil {
				return fmt.Errorf("checking for the latest release failed: %w", err)
			}
			fmt.Printf("latest: %s\n", release.TagName)
			if release.IsNewer(version.Version) {
				fmt.Printf("upgrade: %s\n", release.URL)
			}
		}
		if ctx.Bool("machine-id") {
			id, err := analytics.MachineID()
			if err != nil {
				id = "failed: " + err.Error()
			}
			fmt.Printf("machine-id: %s\n", id)
		}
		return nil
	},
}
