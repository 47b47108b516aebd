package phase

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1/stack"
)

// PrepareHosts installs the base tooling and host environment the later
// phases rely on.
type PrepareHosts struct {
	GenericPhase
}

// Title for the phase
func (p *PrepareHosts) Title() string {
	return "Prepare hosts"
}

// Run the phase
func (p *PrepareHosts) Run(ctx context.Context) error {
	return p.parallelDo(ctx, p.Config.Spec.Hosts, p.prepareHost)
}

func (p *PrepareHosts) prepareHost(_ context.Context, h *stack.Host) error {
	if len(h.Environment) > 0 {
		log.Infof("%s: updating environment", h)
		if err := h.Configurer.UpdateEnvironment(h, h.Environment); err != nil {
			return err
		}
	}

	var pkgs []string

	if !h.Configurer.CommandExist(h, "curl") {
		pkgs = append(pkgs, "curl")
	}

	if !h.Configurer.CommandExist(h, "unzip") {
		pkgs = append(pkgs, "unzip")
	}

	if !h.Configurer.CommandExist(h, "tar") {
		pkgs = append(pkgs, "tar")
	}

	if len(pkgs) > 0 {
		log.Infof("%s: installing packages (%s)", h, strings.Join(pkgs, ", "))
		if err := h.Configurer.InstallPackage(h, pkgs...); err != nil {
			return err
		}
	}

	return nil
}
