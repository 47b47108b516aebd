package action

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/nacternals/roboshop/analytics"
	"github.com/nacternals/roboshop/phase"
)

// Apply provisions the whole stack onto the configured hosts
type Apply struct {
	// Manager is the phase manager
	Manager *phase.Manager
	// DisableDowngradeCheck skips the artifact downgrade check
	DisableDowngradeCheck bool
	// Force makes the validation phases advisory instead of fatal
	Force bool
}

// Run the Apply action
func (a Apply) Run(ctx context.Context) error {
	start := time.Now()

	phase.Force = a.Force

	a.Manager.AddPhase(
		&phase.Connect{},
		&phase.DetectOS{},
		&phase.PrepareHosts{},
		&phase.GatherFacts{},
		&phase.ValidateHosts{},
	)

	if !a.DisableDowngradeCheck {
		a.Manager.AddPhase(&phase.ValidateFacts{})
	}

	a.Manager.AddPhase(
		&phase.DownloadArtifacts{},
		&phase.UploadArtifacts{},
		&phase.UploadFiles{},
		&phase.InstallPackages{},
		&phase.RunHooks{Stage: "before", Action: "apply"},
		&phase.InstallServices{},
		&phase.LoadSchemas{},
		&phase.ConfigureServices{},
		&phase.EnableServices{},
		&phase.RunHooks{Stage: "after", Action: "apply"},
		&phase.Disconnect{},
	)

	analytics.Client.Publish("apply-start", map[string]interface{}{})

	if err := a.Manager.Run(ctx); err != nil {
		analytics.Client.Publish("apply-failure", map[string]interface{}{})
		log.Info(phase.Colorize.Red("==> Apply failed").String())
		return err
	}

	analytics.Client.Publish("apply-success", map[string]interface{}{"duration": time.Since(start)})

	duration := time.Since(start).Truncate(time.Second)
	text := fmt.Sprintf("==> Finished in %s", duration)
	log.Info(phase.Colorize.Green(text).String())

	name := a.Manager.Config.Spec.StackName()
	if v := a.Manager.Config.Spec.Artifacts.Version; v != "" {
		log.Infof("%s version %s is now deployed", name, v)
	} else {
		log.Infof("%s is now deployed", name)
	}

	return nil
}
