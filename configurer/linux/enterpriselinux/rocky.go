package enterpriselinux

import (
	"github.com/k0sproject/rig"
	"github.com/k0sproject/rig/os/registry"
	"github.com/nacternals/roboshop/configurer"
	"github.com/nacternals/roboshop/configurer/linux"
)

// RockyLinux provides OS support for Rocky Linux
type RockyLinux struct {
	linux.EnterpriseLinux
}

var _ configurer.Configurer = (*RockyLinux)(nil)

func init() {
	registry.RegisterOSModule(
		func(os rig.OSVersion) bool {
			return os.ID == "rocky"
		},
		func() any {
			return &RockyLinux{}
		},
	)
}
