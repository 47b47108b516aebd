package phase

import (
	"context"

	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1/stack"

	// anonymous import is needed to load the os configurers
	_ "github.com/nacternals/roboshop/configurer/linux"
	// anonymous import is needed to load the os configurers
	_ "github.com/nacternals/roboshop/configurer/linux/enterpriselinux"

	log "github.com/sirupsen/logrus"
)

// DetectOS performs remote OS detection
type DetectOS struct {
	GenericPhase
}

// Title for the phase
func (p *DetectOS) Title() string {
	return "Detect host operating systems"
}

// Run the phase
func (p *DetectOS) Run(ctx context.Context) error {
	return p.parallelDo(ctx, p.Config.Spec.Hosts, func(_ context.Context, h *stack.Host) error {
		if h.OSIDOverride != "" {
			log.Infof("%s: OS ID has been manually set to %s", h, h.OSIDOverride)
			h.OSVersion.ID = h.OSIDOverride
		}
		if err := h.ResolveConfigurer(); err != nil {
			p.SetProp("missing-support", h.OSVersion.String())
			return err
		}
		os := h.OSVersion.String()
		p.IncProp(os)
		log.Infof("%s: is running %s", h, os)

		return nil
	})
}
