package linux

import (
	"github.com/k0sproject/rig"
	"github.com/k0sproject/rig/os/registry"
	"github.com/nacternals/roboshop/configurer"
	"github.com/nacternals/roboshop/pkg/pkgman"
)

// Archlinux provides OS support for Archlinux systems
type Archlinux struct {
	configurer.Linux
}

var _ configurer.Configurer = (*Archlinux)(nil)

func init() {
	registry.RegisterOSModule(
		func(os rig.OSVersion) bool {
			return os.ID == "arch" || os.IDLike == "arch"
		},
		func() any {
			return &Archlinux{Linux: configurer.Linux{Installer: pkgman.PacmanInstaller{}}}
		},
	)
}
