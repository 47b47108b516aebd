package phase

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1/stack"
)

// InstallPackages installs the distribution packages for each service
// placed on a host. Already installed packages are left alone.
type InstallPackages struct {
	GenericPhase
}

// Title for the phase
func (p *InstallPackages) Title() string {
	return "Install service packages"
}

// Run the phase
func (p *InstallPackages) Run(ctx context.Context) error {
	return p.parallelDo(ctx, p.Config.Spec.Hosts, p.installPackages)
}

func (p *InstallPackages) installPackages(_ context.Context, h *stack.Host) error {
	var pkgs []string
	for _, role := range h.Roles {
		svc := p.Config.Spec.ServiceForRole(role)
		if svc == nil {
			continue
		}
		for _, pkg := range svc.Packages {
			if h.Configurer.PackageIsInstalled(h, pkg) {
				log.Debugf("%s: %s is already installed", h, pkg)
				continue
			}
			pkgs = append(pkgs, pkg)
		}
	}

	if len(pkgs) == 0 {
		log.Infof("%s: all packages already installed", h)
		return nil
	}

	log.Infof("%s: installing packages (%s)", h, strings.Join(pkgs, ", "))
	if err := h.Configurer.InstallPackage(h, pkgs...); err != nil {
		return err
	}
	p.IncProp("installed")

	return nil
}
