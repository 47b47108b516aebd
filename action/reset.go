package action

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"

	"github.com/nacternals/roboshop/analytics"
	"github.com/nacternals/roboshop/phase"
)

// Reset removes the stack's services from the hosts
type Reset struct {
	// Manager is the phase manager
	Manager *phase.Manager
	Stdout  io.Writer
	Force   bool
}

// Run the Reset action
func (r Reset) Run(ctx context.Context) error {
	if !r.Force {
		if stdoutFile, ok := r.Stdout.(*os.File); ok && !isatty.IsTerminal(stdoutFile.Fd()) {
			return fmt.Errorf("reset requires --force")
		}
		confirmed := false
		prompt := &survey.Confirm{
			Message: "Going to remove the stack services from all of the hosts, which will destroy their data. Are you sure?",
		}
		_ = survey.AskOne(prompt, &confirmed)
		if !confirmed {
			return fmt.Errorf("confirmation or --force required to proceed")
		}
	}

	start := time.Now()

	r.Manager.AddPhase(
		&phase.Connect{},
		&phase.DetectOS{},
		&phase.RunHooks{Stage: "before", Action: "reset"},
		&phase.ResetServices{},
		&phase.RunHooks{Stage: "after", Action: "reset"},
		&phase.Disconnect{},
	)

	analytics.Client.Publish("reset-start", map[string]interface{}{})

	if err := r.Manager.Run(ctx); err != nil {
		analytics.Client.Publish("reset-failure", map[string]interface{}{})
		return err
	}

	analytics.Client.Publish("reset-success", map[string]interface{}{"duration": time.Since(start)})

	duration := time.Since(start).Truncate(time.Second)
	text := fmt.Sprintf("==> Finished in %s", duration)
	log.Info(phase.Colorize.Green(text).String())

	return nil
}
