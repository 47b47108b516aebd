package linux

import (
	"github.com/k0sproject/rig"
	"github.com/k0sproject/rig/os/registry"
	"github.com/nacternals/roboshop/configurer"
	"github.com/nacternals/roboshop/pkg/pkgman"
)

// SLES provides OS support for SUSE Linux Enterprise Server and openSUSE
type SLES struct {
	configurer.Linux
}

var _ configurer.Configurer = (*SLES)(nil)

func init() {
	registry.RegisterOSModule(
		func(os rig.OSVersion) bool {
			return os.ID == "sles" || os.ID == "opensuse" || os.ID == "opensuse-leap" || os.ID == "opensuse-tumbleweed"
		},
		func() any {
			return &SLES{Linux: configurer.Linux{Installer: pkgman.ZypperInstaller{}}}
		},
	)
}
