package stack

import (
	"fmt"
	"sync"

	"github.com/creasty/defaults"
	"github.com/jellydator/validation"
	"github.com/k0sproject/rig"
	"github.com/k0sproject/rig/os/registry"

	"github.com/nacternals/roboshop/configurer"
)

// Host contains all the needed details to work with hosts
type Host struct {
	rig.Connection `yaml:",inline"`

	Roles        []string          `yaml:"roles"`
	Environment  map[string]string `yaml:"environment,flow,omitempty"`
	UploadFiles  []UploadFile      `yaml:"files,omitempty"`
	Hooks        Hooks             `yaml:"hooks,omitempty"`
	OSIDOverride string            `yaml:"os,omitempty"`

	Metadata   HostMetadata          `yaml:"-"`
	Configurer configurer.Configurer `yaml:"-"`

	sync.Mutex `yaml:"-"`
}

// HostMetadata resolved metadata for host
type HostMetadata struct {
	Hostname        string
	Arch            string
	MachineID       string
	DeployedVersion string
	ChangedUnits    map[string]bool
}

// UnmarshalYAML sets in some sane defaults when unmarshaling the data from yaml
func (h *Host) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type host Host
	yh := (*host)(h)

	if err := unmarshal(yh); err != nil {
		return err
	}

	return defaults.Set(h)
}

// Validate the host configuration
func (h *Host) Validate() error {
	validation.ErrorTag = "yaml"
	return validation.ValidateStruct(h,
		validation.Field(&h.Roles, validation.Required, validation.Each(validation.Required)),
		validation.Field(&h.UploadFiles),
		validation.Field(&h.Hooks),
	)
}

// HasRole returns true when the host carries the given role
func (h *Host) HasRole(role string) bool {
	for _, r := range h.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ResolveConfigurer assigns a rig OS configurer to the host (when the OS is known)
func (h *Host) ResolveConfigurer() error {
	bf, err := registry.GetOSModuleBuilder(*h.OSVersion)
	if err != nil {
		return err
	}

	if c, ok := bf().(configurer.Configurer); ok {
		h.Configurer = c
		return nil
	}

	return fmt.Errorf("unsupported OS")
}

// Hook returns the hook commands for an action stage or nil when none are defined
func (h *Host) Hook(action, stage string) []string {
	return h.Hooks.ForActionStage(action, stage)
}
