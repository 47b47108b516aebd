package phase

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1"
	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1/stack"
	"github.com/nacternals/roboshop/pkg/unitfile"
)

// hostSystem adapts a host and its configurer into the unit file deployer
type hostSystem struct {
	h *stack.Host
}

func (s hostSystem) ServiceScriptPath(name string) string {
	return s.h.Configurer.ServiceScriptPath(name)
}

func (s hostSystem) FileExist(path string) bool {
	return s.h.Configurer.FileExist(s.h, path)
}

func (s hostSystem) ReadFile(path string) (string, error) {
	return s.h.Configurer.ReadFile(s.h, path)
}

func (s hostSystem) WriteFile(path, content, perm string) error {
	return s.h.Configurer.WriteFile(s.h, path, content, perm)
}

func (s hostSystem) CopyFile(src, dst string) error {
	return s.h.Configurer.CopyFile(s.h, src, dst)
}

func (s hostSystem) DaemonReload() error {
	return s.h.Configurer.DaemonReload(s.h)
}

func (s hostSystem) EnableService(name string) error {
	return s.h.Configurer.EnableService(s.h, name)
}

func (s hostSystem) RestartService(name string) error {
	return s.h.Configurer.RestartService(s.h, name)
}

// ConfigureServices renders and deploys the systemd unit files for the
// application services. Changed units are recorded on the host so the
// enable phase knows what needs a restart.
type ConfigureServices struct {
	GenericPhase

	endpoints map[string]string
}

// Title for the phase
func (p *ConfigureServices) Title() string {
	return "Configure services"
}

// Prepare the phase
func (p *ConfigureServices) Prepare(config *v1beta1.Stack) error {
	p.Config = config
	p.endpoints = config.Spec.Endpoints()
	return nil
}

// Run the phase
func (p *ConfigureServices) Run(ctx context.Context) error {
	return p.parallelDo(ctx, p.Config.Spec.Hosts, p.configureServices)
}

func (p *ConfigureServices) environmentFor(h *stack.Host, svc *stack.Service) map[string]string {
	env := make(map[string]string, len(p.endpoints)+len(svc.Environment)+len(h.Environment)+4)
	for k, v := range p.endpoints {
		env[k] = v
	}
	env["SERVICE_NAME"] = svc.Name
	env["SERVICE_DESCRIPTION"] = svc.Description
	env["SERVICE_USER"] = svc.User
	env["SERVICE_HOME"] = svc.Home
	for k, v := range svc.Environment {
		env[k] = v
	}
	for k, v := range h.Environment {
		env[k] = v
	}
	return env
}

func (p *ConfigureServices) configureServices(_ context.Context, h *stack.Host) error {
	h.Metadata.ChangedUnits = make(map[string]bool)
	deployer := &unitfile.Deployer{System: hostSystem{h: h}}

	for _, role := range h.Roles {
		svc := p.Config.Spec.ServiceForRole(role)
		if svc == nil || svc.UnitTemplate == "" {
			continue
		}

		content, err := unitfile.Render(svc.UnitTemplate, p.environmentFor(h, svc))
		if err != nil {
			return fmt.Errorf("configure %s: %w", svc.Name, err)
		}

		changed, err := deployer.Deploy(svc.Unit, content)
		if err != nil {
			return fmt.Errorf("configure %s: %w", svc.Name, err)
		}

		if changed {
			log.Infof("%s: wrote unit file for %s", h, svc.Unit)
			h.Metadata.ChangedUnits[svc.Unit] = true
			p.IncProp(svc.Name)
		} else {
			log.Debugf("%s: unit file for %s is unchanged", h, svc.Unit)
		}
	}

	if v := p.Config.Spec.Artifacts.Version; v != "" && h.Metadata.DeployedVersion != v {
		if err := h.Configurer.WriteFile(h, ReleaseFile, v+"\n", "0644"); err != nil {
			return err
		}
		h.Metadata.DeployedVersion = v
	}

	return nil
}
