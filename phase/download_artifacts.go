package phase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"

	log "github.com/sirupsen/logrus"

	"github.com/nacternals/roboshop/cache"
	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1"
	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1/stack"
)

// DownloadArtifacts downloads the application bundles to the local cache
type DownloadArtifacts struct {
	GenericPhase

	services stack.Services
}

// Title for the phase
func (p *DownloadArtifacts) Title() string {
	return "Download service artifacts to local host"
}

// Prepare the phase
func (p *DownloadArtifacts) Prepare(config *v1beta1.Stack) error {
	p.Config = config
	for _, role := range config.Spec.Hosts.Roles() {
		svc := config.Spec.ServiceForRole(role)
		if svc != nil && svc.HasArtifact {
			p.services = append(p.services, svc)
		}
	}
	return nil
}

// ShouldRun is true when some host needs an artifact
func (p *DownloadArtifacts) ShouldRun() bool {
	return len(p.services) > 0
}

// Run the phase
func (p *DownloadArtifacts) Run(ctx context.Context) error {
	for _, svc := range p.services {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := p.download(ctx, svc); err != nil {
			return fmt.Errorf("%s: %w", svc.Name, err)
		}
	}
	return nil
}

func (p *DownloadArtifacts) download(ctx context.Context, svc *stack.Service) (string, error) {
	a := p.Config.Spec.Artifacts
	name := svc.ArtifactName()

	versionDir := a.Version
	if versionDir == "" {
		versionDir = "latest"
	}

	create := func(fpath string) error {
		url := a.URL(name)
		log.Infof("downloading %s from %s", name, url)
		return p.fetch(ctx, url, fpath)
	}

	var fpath string
	var err error
	if a.Version == "" {
		// an unpinned artifact can change upstream, skip the cache hit
		fpath = cache.File("artifacts", versionDir, name)
		if err := cache.EnsureDir(path.Dir(fpath)); err != nil {
			return "", err
		}
		err = create(fpath)
	} else {
		fpath, err = cache.GetOrCreate(create, "artifacts", versionDir, name)
	}
	if err != nil {
		return "", err
	}

	if err := p.verify(fpath, a.ChecksumFor(name)); err != nil {
		if rmErr := os.Remove(fpath); rmErr != nil {
			log.Warnf("failed to remove %s: %s", fpath, rmErr)
		}
		return "", err
	}

	return fpath, nil
}

func (p *DownloadArtifacts) fetch(ctx context.Context, url, fpath string) error {
	client := &http.Client{Timeout: p.Config.Spec.Artifacts.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected response: %s", url, resp.Status)
	}

	f, err := os.Create(fpath)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("write %s: %w", fpath, err)
	}

	return f.Close()
}

func (p *DownloadArtifacts) verify(fpath, expected string) error {
	if expected == "" {
		log.Warnf("no checksum configured for %s, skipping verification", path.Base(fpath))
		p.IncProp("unverified")
		return nil
	}

	f, err := os.Open(fpath)
	if err != nil {
		return err
	}
	defer f.Close()

	digest := sha256.New()
	if _, err := io.Copy(digest, f); err != nil {
		return err
	}

	actual := hex.EncodeToString(digest.Sum(nil))
	if actual != expected {
		return fmt.Errorf("checksum mismatch for %s: expected %s got %s", path.Base(fpath), expected, actual)
	}

	log.Debugf("%s: checksum ok", path.Base(fpath))
	return nil
}
