package phase

import (
	"context"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1"
	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1/stack"
)

// UploadFiles implements a phase which uploads user configured files to hosts
type UploadFiles struct {
	GenericPhase

	hosts stack.Hosts
}

// Title for the phase
func (p *UploadFiles) Title() string {
	return "Upload files to hosts"
}

// Prepare the phase
func (p *UploadFiles) Prepare(config *v1beta1.Stack) error {
	p.Config = config
	p.hosts = config.Spec.Hosts.Filter(func(h *stack.Host) bool {
		return len(h.UploadFiles) > 0
	})

	return nil
}

// ShouldRun is true when there are files to upload
func (p *UploadFiles) ShouldRun() bool {
	return len(p.hosts) > 0
}

// Run the phase
func (p *UploadFiles) Run(ctx context.Context) error {
	return p.parallelDoUpload(ctx, p.hosts, p.uploadFiles)
}

func (p *UploadFiles) uploadFiles(_ context.Context, h *stack.Host) error {
	for _, f := range h.UploadFiles {
		log.Infof("%s: starting to upload %s", h, f)
		files, err := f.Resolve()
		if err != nil {
			return err
		}

		if err := h.Execf("install -d %s -m %s", f.DestinationDir, f.PermMode); err != nil {
			return err
		}

		for _, file := range files {
			destination := filepath.Join(f.DestinationDir, filepath.Base(file))
			log.Debugf("%s: uploading %s to %s", h, file, destination)

			if err := h.Upload(file, destination, 0o644); err != nil {
				return err
			}

			if err := h.Configurer.Chmod(h, destination, f.PermMode); err != nil {
				return err
			}
		}
		log.Infof("%s: %s upload done", h, f)
	}
	return nil
}
