package phase

import (
	"context"
	"fmt"
	"path"

	"github.com/alessio/shellescape"
	"github.com/k0sproject/rig/exec"
	log "github.com/sirupsen/logrus"

	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1/stack"
)

// InstallServices sets up the application services on the hosts: service
// accounts, home directories, extracted artifacts and build steps.
type InstallServices struct {
	GenericPhase
}

// Title for the phase
func (p *InstallServices) Title() string {
	return "Install services"
}

// Run the phase
func (p *InstallServices) Run(ctx context.Context) error {
	return p.parallelDo(ctx, p.Config.Spec.Hosts, p.installServices)
}

func (p *InstallServices) installServices(_ context.Context, h *stack.Host) error {
	for _, role := range h.Roles {
		svc := p.Config.Spec.ServiceForRole(role)
		if svc == nil || !svc.HasArtifact {
			continue
		}
		if err := p.installService(h, svc); err != nil {
			return fmt.Errorf("install %s: %w", svc.Name, err)
		}
	}
	return nil
}

func (p *InstallServices) installService(h *stack.Host, svc *stack.Service) error {
	if svc.User != "" && !h.Configurer.UserExists(h, svc.User) {
		log.Infof("%s: creating service user %s", h, svc.User)
		if err := h.Configurer.CreateServiceUser(h, svc.User, svc.Home); err != nil {
			return err
		}
	}

	if svc.Home != "" {
		if err := h.Configurer.MkDir(h, svc.Home); err != nil {
			return err
		}
	}

	archive := path.Join(RemoteArtifactDir, svc.ArtifactName())
	log.Infof("%s: extracting %s to %s", h, svc.ArtifactName(), svc.Home)
	if err := h.Configurer.ExtractArchive(h, archive, svc.Home); err != nil {
		return err
	}

	if svc.User != "" {
		if err := h.Configurer.Chown(h, svc.Home, svc.User+":"+svc.User); err != nil {
			return err
		}
	}

	if svc.Build != "" {
		log.Infof("%s: building %s", h, svc.Name)
		if err := h.Execf(`cd %s && %s`, shellescape.Quote(svc.Home), svc.Build, exec.Sudo(h), exec.LogError(true)); err != nil {
			return fmt.Errorf("build command failed: %w", err)
		}
	}

	p.IncProp(svc.Name)
	return nil
}
