package phase

import (
	"context"
	"path"

	"github.com/alessio/shellescape"
	"github.com/k0sproject/rig/exec"
	log "github.com/sirupsen/logrus"

	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1/stack"
)

// ResetServices stops the services on the hosts and removes what the
// apply run put in place: unit files, application homes, uploaded
// artifacts and the release marker. Distribution packages are left
// installed.
type ResetServices struct {
	GenericPhase
}

// Title for the phase
func (p *ResetServices) Title() string {
	return "Reset services"
}

// Run the phase
func (p *ResetServices) Run(ctx context.Context) error {
	return p.parallelDo(ctx, p.Config.Spec.Hosts, p.resetServices)
}

func (p *ResetServices) resetServices(_ context.Context, h *stack.Host) error {
	for _, role := range h.Roles {
		svc := p.Config.Spec.ServiceForRole(role)
		if svc == nil || svc.Unit == "" {
			continue
		}

		if h.Configurer.ServiceIsRunning(h, svc.Unit) {
			log.Infof("%s: stopping %s", h, svc.Unit)
			if err := h.Configurer.StopService(h, svc.Unit); err != nil {
				log.Warnf("%s: failed to stop %s: %s", h, svc.Unit, err)
			}
		}

		if err := h.Configurer.DisableService(h, svc.Unit); err != nil {
			log.Warnf("%s: failed to disable %s: %s", h, svc.Unit, err)
		}

		if svc.UnitTemplate != "" {
			unitPath := h.Configurer.ServiceScriptPath(svc.Unit)
			if h.Configurer.FileExist(h, unitPath) {
				log.Infof("%s: removing %s", h, unitPath)
				if err := h.Configurer.DeleteFile(h, unitPath); err != nil {
					log.Warnf("%s: failed to remove %s: %s", h, unitPath, err)
				}
			}
		}

		if svc.HasArtifact {
			if svc.Home != "" && svc.Home != "/" {
				log.Infof("%s: removing %s", h, svc.Home)
				if err := h.Execf("rm -rf %s", shellescape.Quote(svc.Home), exec.Sudo(h)); err != nil {
					log.Warnf("%s: failed to remove %s: %s", h, svc.Home, err)
				}
			}
			archive := path.Join(RemoteArtifactDir, svc.ArtifactName())
			if h.Configurer.FileExist(h, archive) {
				if err := h.Configurer.DeleteFile(h, archive); err != nil {
					log.Warnf("%s: failed to remove %s: %s", h, archive, err)
				}
			}
		}

		p.IncProp(svc.Name)
	}

	if err := h.Configurer.DaemonReload(h); err != nil {
		log.Warnf("%s: daemon-reload failed: %s", h, err)
	}

	if h.Configurer.FileExist(h, ReleaseFile) {
		if err := h.Configurer.DeleteFile(h, ReleaseFile); err != nil {
			log.Warnf("%s: failed to remove %s: %s", h, ReleaseFile, err)
		}
	}

	return nil
}
