package phase

import (
	"context"
	"fmt"
	"path"

	"github.com/k0sproject/rig/exec"
	log "github.com/sirupsen/logrus"

	"github.com/nacternals/roboshop/cache"
	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1"
	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1/stack"
)

// RemoteArtifactDir is the staging directory for uploaded bundles on the hosts
const RemoteArtifactDir = "/tmp/roboshop"

// UploadArtifacts uploads the cached application bundles to the hosts
type UploadArtifacts struct {
	GenericPhase

	hosts stack.Hosts
}

// Title for the phase
func (p *UploadArtifacts) Title() string {
	return "Upload service artifacts to hosts"
}

// Prepare the phase
func (p *UploadArtifacts) Prepare(config *v1beta1.Stack) error {
	p.Config = config
	p.hosts = config.Spec.Hosts.Filter(func(h *stack.Host) bool {
		for _, role := range h.Roles {
			if svc := config.Spec.ServiceForRole(role); svc != nil && svc.HasArtifact {
				return true
			}
		}
		return false
	})
	return nil
}

// ShouldRun is true when some host needs an artifact
func (p *UploadArtifacts) ShouldRun() bool {
	return len(p.hosts) > 0
}

// Run the phase
func (p *UploadArtifacts) Run(ctx context.Context) error {
	return p.parallelDoUpload(ctx, p.hosts, p.uploadArtifacts)
}

func (p *UploadArtifacts) uploadArtifacts(_ context.Context, h *stack.Host) error {
	if err := h.Configurer.MkDir(h, RemoteArtifactDir); err != nil {
		return err
	}

	a := p.Config.Spec.Artifacts
	versionDir := a.Version
	if versionDir == "" {
		versionDir = "latest"
	}

	for _, role := range h.Roles {
		svc := p.Config.Spec.ServiceForRole(role)
		if svc == nil || !svc.HasArtifact {
			continue
		}

		name := svc.ArtifactName()
		src, err := cache.GetFile("artifacts", versionDir, name)
		if err != nil {
			return fmt.Errorf("artifact %s not found in local cache: %w", name, err)
		}

		dst := path.Join(RemoteArtifactDir, name)
		log.Infof("%s: uploading %s", h, name)
		if err := h.Upload(src, dst, 0o644, exec.Sudo(h), exec.LogError(true)); err != nil {
			return fmt.Errorf("upload %s: %w", name, err)
		}
		if err := p.verifyUpload(h, name, dst); err != nil {
			return err
		}
		p.IncProp(svc.Name)
	}

	return nil
}

// verifyUpload compares the uploaded file's checksum on the host against the
// configured one so corruption in transit does not surface as a broken
// extract later.
func (p *UploadArtifacts) verifyUpload(h *stack.Host, name, remotePath string) error {
	expected := p.Config.Spec.Artifacts.ChecksumFor(name)
	if expected == "" {
		return nil
	}

	sum, err := h.Configurer.Sha256Sum(h, remotePath)
	if err != nil {
		return fmt.Errorf("checksum %s: %w", name, err)
	}
	if sum != expected {
		return fmt.Errorf("uploaded %s sha256 mismatch (expected %s, got %s)", name, expected, sum)
	}

	return nil
}
