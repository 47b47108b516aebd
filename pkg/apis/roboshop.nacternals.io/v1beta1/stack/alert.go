package stack

import (
	"github.com/jellydator/validation"
)

// Alerts configures the disk and memory usage alerting email relay
type Alerts struct {
	RelayHost     string `yaml:"relayHost" default:"localhost"`
	RelayPort     int    `yaml:"relayPort" default:"587"`
	From          string `yaml:"from,omitempty"`
	To            string `yaml:"to,omitempty"`
	DiskThreshold int    `yaml:"diskThreshold" default:"80"`
	MemThreshold  int    `yaml:"memThreshold" default:"90"`
	EnvFile       string `yaml:"envFile,omitempty"`
}

// Validate performs a sanity check on the alert settings
func (a *Alerts) Validate() error {
	if a == nil {
		return nil
	}
	return validation.ValidateStruct(a,
		validation.Field(&a.RelayPort, validation.Min(1), validation.Max(65535)),
		validation.Field(&a.DiskThreshold, validation.Min(1), validation.Max(100)),
		validation.Field(&a.MemThreshold, validation.Min(1), validation.Max(100)),
	)
}
