package enterpriselinux

import (
	"github.com/k0sproject/rig"
	"github.com/k0sproject/rig/os/registry"
	"github.com/nacternals/roboshop/configurer"
	"github.com/nacternals/roboshop/configurer/linux"
)

// RHEL provides OS support for Red Hat Enterprise Linux
type RHEL struct {
	linux.EnterpriseLinux
}

var _ configurer.Configurer = (*RHEL)(nil)

func init() {
	registry.RegisterOSModule(
		func(os rig.OSVersion) bool {
			return os.ID == "rhel"
		},
		func() any {
			return &RHEL{}
		},
	)
}
