package phase

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1/stack"
)

// ValidateFacts performs sanity checks on the gathered facts
type ValidateFacts struct {
	GenericPhase
}

// Title for the phase
func (p *ValidateFacts) Title() string {
	return "Validate facts"
}

// Run the phase
func (p *ValidateFacts) Run(ctx context.Context) error {
	return p.parallelDo(ctx, p.Config.Spec.Hosts, p.validateDowngrade)
}

func (p *ValidateFacts) validateDowngrade(_ context.Context, h *stack.Host) error {
	a := p.Config.Spec.Artifacts
	if a == nil || !a.IsDowngradeFrom(h.Metadata.DeployedVersion) {
		return nil
	}

	if Force {
		log.Warnf("%s: downgrading from %s to %s because --force was given", h, h.Metadata.DeployedVersion, a.Version)
		p.IncProp("force-downgrade")
		return nil
	}

	return fmt.Errorf("configured artifact version %s is older than the deployed %s (use --force to downgrade anyway)", a.Version, h.Metadata.DeployedVersion)
}
