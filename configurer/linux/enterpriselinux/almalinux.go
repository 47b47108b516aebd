package enterpriselinux

import (
	"github.com/k0sproject/rig"
	"github.com/k0sproject/rig/os/registry"
	"github.com/nacternals/roboshop/configurer"
	"github.com/nacternals/roboshop/configurer/linux"
)

// AlmaLinux provides OS support for AlmaLinux
type AlmaLinux struct {
	linux.EnterpriseLinux
}

var _ configurer.Configurer = (*AlmaLinux)(nil)

func init() {
	registry.RegisterOSModule(
		func(os rig.OSVersion) bool {
			return os.ID == "almalinux"
		},
		func() any {
			return &AlmaLinux{}
		},
	)
}
