package stack

import (
	"fmt"
	"strings"
	"time"

	"github.com/jellydator/validation"
	"github.com/k0sproject/version"
)

// Artifacts describes where the prebuilt application bundles are
// downloaded from and how the downloads are verified.
type Artifacts struct {
	BaseURL   string            `yaml:"baseURL" default:"https://roboshop-artifacts.nacternals.io"`
	Version   string            `yaml:"version,omitempty"`
	Checksums map[string]string `yaml:"checksums,omitempty"`
	Timeout   time.Duration     `yaml:"timeout" default:"5m"`
}

// DefaultArtifacts returns artifact settings with defaults applied
func DefaultArtifacts() *Artifacts {
	return &Artifacts{
		BaseURL: "https://roboshop-artifacts.nacternals.io",
		Timeout: 5 * time.Minute,
	}
}

// Validate performs a sanity check on the artifact settings
func (a *Artifacts) Validate() error {
	if a == nil {
		return nil
	}
	return validation.ValidateStruct(a,
		validation.Field(&a.BaseURL, validation.Required),
		validation.Field(&a.Version, validation.By(validVersion)),
	)
}

func validVersion(value interface{}) error {
	s, ok := value.(string)
	if !ok || s == "" {
		return nil
	}
	if _, err := version.NewVersion(strings.TrimPrefix(s, "v")); err != nil {
		return fmt.Errorf("invalid version %q: %w", s, err)
	}
	return nil
}

// URL returns the download URL for a named artifact
func (a *Artifacts) URL(name string) string {
	base := strings.TrimSuffix(a.BaseURL, "/")
	if a.Version == "" {
		return fmt.Sprintf("%s/%s", base, name)
	}
	return fmt.Sprintf("%s/%s/%s", base, a.Version, name)
}

// ChecksumFor returns the expected sha256 for an artifact, "" when unknown
func (a *Artifacts) ChecksumFor(name string) string {
	return a.Checksums[name]
}

// IsDowngradeFrom returns true when the configured version is older than
// the given already deployed version.
func (a *Artifacts) IsDowngradeFrom(deployed string) bool {
	if a.Version == "" || deployed == "" {
		return false
	}
	want, err := version.NewVersion(strings.TrimPrefix(a.Version, "v"))
	if err != nil {
		return false
	}
	have, err := version.NewVersion(strings.TrimPrefix(deployed, "v"))
	if err != nil {
		return false
	}
	return want.LessThan(have)
}
