package enterpriselinux

import (
	"github.com/k0sproject/rig"
	"github.com/k0sproject/rig/os/registry"
	"github.com/nacternals/roboshop/configurer"
	"github.com/nacternals/roboshop/configurer/linux"
)

// AmazonLinux provides OS support for Amazon Linux
type AmazonLinux struct {
	linux.EnterpriseLinux
}

var _ configurer.Configurer = (*AmazonLinux)(nil)

func init() {
	registry.RegisterOSModule(
		func(os rig.OSVersion) bool {
			return os.ID == "amzn"
		},
		func() any {
			return &AmazonLinux{}
		},
	)
}
