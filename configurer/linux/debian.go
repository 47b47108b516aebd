package linux

import (
	"github.com/k0sproject/rig"
	"github.com/k0sproject/rig/os/registry"
	"github.com/nacternals/roboshop/configurer"
	"github.com/nacternals/roboshop/pkg/pkgman"
)

// Debian provides OS support for Debian systems
type Debian struct {
	configurer.Linux
}

var _ configurer.Configurer = (*Debian)(nil)

func init() {
	registry.RegisterOSModule(
		func(os rig.OSVersion) bool {
			return os.ID == "debian"
		},
		func() any {
			return &Debian{Linux: configurer.Linux{Installer: pkgman.AptInstaller{}}}
		},
	)
}
