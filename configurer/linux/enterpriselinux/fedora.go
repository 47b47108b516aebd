package enterpriselinux

import (
	"github.com/k0sproject/rig"
	"github.com/k0sproject/rig/os/registry"
	"github.com/nacternals/roboshop/configurer"
	"github.com/nacternals/roboshop/configurer/linux"
)

// Fedora provides OS support for Fedora
type Fedora struct {
	linux.EnterpriseLinux
}

var _ configurer.Configurer = (*Fedora)(nil)

func init() {
	registry.RegisterOSModule(
		func(os rig.OSVersion) bool {
			return os.ID == "fedora"
		},
		func() any {
			return &Fedora{}
		},
	)
}
