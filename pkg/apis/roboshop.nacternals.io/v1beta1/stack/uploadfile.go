package stack

import (
	"fmt"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jellydator/validation"
)

// UploadFile describes a file or a glob of files to be uploaded to the host
type UploadFile struct {
	Name           string `yaml:"name,omitempty"`
	Source         string `yaml:"src"`
	DestinationDir string `yaml:"dstDir"`
	PermMode       string `yaml:"perm" default:"0644"`
}

// Validate performs a sanity check on the upload file definition
func (u UploadFile) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Source, validation.Required),
		validation.Field(&u.DestinationDir, validation.Required),
		validation.Field(&u.PermMode, validation.By(validFileMode)),
	)
}

func validFileMode(value interface{}) error {
	s, ok := value.(string)
	if !ok || s == "" {
		return nil
	}
	if _, err := strconv.ParseUint(s, 8, 32); err != nil {
		return fmt.Errorf("invalid file permission %q: %w", s, err)
	}
	return nil
}

// String returns a printable name for the upload
func (u UploadFile) String() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Source
}

// Resolve expands the source glob into a list of local file paths
func (u UploadFile) Resolve() ([]string, error) {
	sources, err := doublestar.FilepathGlob(u.Source)
	if err != nil {
		return nil, fmt.Errorf("invalid source glob %q: %w", u.Source, err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no files found for %q", u.Source)
	}
	return sources, nil
}
