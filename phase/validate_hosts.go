package phase

import (
	"context"
	"fmt"

	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1/stack"
)

// ValidateHosts checks the host configuration for sanity
type ValidateHosts struct {
	GenericPhase
	hncount        map[string]int
	machineidcount map[string]int
}

// Title for the phase
func (p *ValidateHosts) Title() string {
	return "Validate hosts"
}

// Run the phase
func (p *ValidateHosts) Run(ctx context.Context) error {
	p.hncount = make(map[string]int, len(p.Config.Spec.Hosts))
	p.machineidcount = make(map[string]int, len(p.Config.Spec.Hosts))
	for _, h := range p.Config.Spec.Hosts {
		p.hncount[h.Metadata.Hostname]++
		p.machineidcount[h.Metadata.MachineID]++
	}

	return p.parallelDo(
		ctx,
		p.Config.Spec.Hosts,
		p.validateUniqueHostname,
		p.validateUniqueMachineID,
		p.validateRoles,
		p.validateSudo,
	)
}

func (p *ValidateHosts) validateUniqueHostname(_ context.Context, h *stack.Host) error {
	if p.hncount[h.Metadata.Hostname] > 1 {
		return fmt.Errorf("hostname is not unique: %s", h.Metadata.Hostname)
	}

	return nil
}

func (p *ValidateHosts) validateUniqueMachineID(_ context.Context, h *stack.Host) error {
	if p.machineidcount[h.Metadata.MachineID] > 1 {
		return fmt.Errorf("machine id %s is not unique: %s", h.Metadata.MachineID, h.Metadata.Hostname)
	}

	return nil
}

func (p *ValidateHosts) validateRoles(_ context.Context, h *stack.Host) error {
	for _, role := range h.Roles {
		if p.Config.Spec.ServiceForRole(role) == nil {
			return fmt.Errorf("unknown role %q - no such service in the catalog", role)
		}
	}

	return nil
}

func (p *ValidateHosts) validateSudo(_ context.Context, h *stack.Host) error {
	return h.Configurer.CheckPrivilege(h)
}
