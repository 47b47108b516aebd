package phase

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1/stack"
)

// Note: Passwordless sudo has not yet been confirmed when this runs

// GatherFacts gathers information about the hosts, such as cpu architecture
// and any previously deployed stack version
type GatherFacts struct {
	GenericPhase
}

// Title for the phase
func (p *GatherFacts) Title() string {
	return "Gather host facts"
}

// ReleaseFile holds the stack version marker written during apply
const ReleaseFile = "/etc/roboshop-release"

// Run the phase
func (p *GatherFacts) Run(ctx context.Context) error {
	return p.parallelDo(ctx, p.Config.Spec.Hosts, p.investigateHost)
}

func (p *GatherFacts) investigateHost(_ context.Context, h *stack.Host) error {
	log.Infof("%s: investigating host", h)
	for _, role := range h.Roles {
		p.IncProp(role)
	}

	output, err := h.Configurer.Arch(h)
	if err != nil {
		return err
	}
	h.Metadata.Arch = output
	p.IncProp(h.Metadata.Arch)
	log.Infof("%s: cpu architecture is %s", h, h.Metadata.Arch)

	h.Metadata.Hostname = h.Configurer.Hostname(h)

	id, err := h.Configurer.MachineID(h)
	if err != nil {
		return err
	}
	h.Metadata.MachineID = id

	if h.Configurer.FileExist(h, ReleaseFile) {
		if content, err := h.Configurer.ReadFile(h, ReleaseFile); err == nil {
			h.Metadata.DeployedVersion = strings.TrimSpace(content)
			log.Infof("%s: stack version %s is deployed", h, h.Metadata.DeployedVersion)
		}
	}

	return nil
}
