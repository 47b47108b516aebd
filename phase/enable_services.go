package phase

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1/stack"
	"github.com/nacternals/roboshop/pkg/unitfile"
)

// EnableServices enables and starts all the services placed on the hosts.
// Units deployed during configure get the full reload, enable, restart
// treatment. Distribution packaged units are enabled and started only
// when they are not already running.
type EnableServices struct {
	GenericPhase
}

// Title for the phase
func (p *EnableServices) Title() string {
	return "Enable and start services"
}

// Run the phase
func (p *EnableServices) Run(ctx context.Context) error {
	return p.parallelDo(ctx, p.Config.Spec.Hosts, p.enableServices)
}

func (p *EnableServices) enableServices(_ context.Context, h *stack.Host) error {
	deployer := &unitfile.Deployer{System: hostSystem{h: h}}

	for _, role := range h.Roles {
		svc := p.Config.Spec.ServiceForRole(role)
		if svc == nil || svc.Unit == "" {
			continue
		}

		if svc.UnitTemplate != "" {
			if !h.Metadata.ChangedUnits[svc.Unit] && h.Configurer.ServiceIsRunning(h, svc.Unit) {
				log.Infof("%s: %s is already running", h, svc.Unit)
				continue
			}
			log.Infof("%s: activating %s", h, svc.Unit)
			if err := deployer.Activate(svc.Unit); err != nil {
				return fmt.Errorf("activate %s: %w", svc.Unit, err)
			}
			p.IncProp(svc.Name)
			continue
		}

		if h.Configurer.ServiceIsRunning(h, svc.Unit) {
			log.Infof("%s: %s is already running", h, svc.Unit)
			continue
		}

		log.Infof("%s: enabling and starting %s", h, svc.Unit)
		if err := h.Configurer.EnableService(h, svc.Unit); err != nil {
			return fmt.Errorf("enable %s: %w", svc.Unit, err)
		}
		if err := h.Configurer.StartService(h, svc.Unit); err != nil {
			return fmt.Errorf("start %s: %w", svc.Unit, err)
		}
		p.IncProp(svc.Name)
	}

	return nil
}
