package linux

import (
	"github.com/alessio/shellescape"
	"github.com/k0sproject/rig"
	"github.com/k0sproject/rig/exec"
	"github.com/k0sproject/rig/os"
	"github.com/k0sproject/rig/os/registry"
	"github.com/nacternals/roboshop/configurer"
	"github.com/nacternals/roboshop/pkg/pkgman"
)

// Alpine provides OS support for Alpine Linux
type Alpine struct {
	configurer.Linux
}

var _ configurer.Configurer = (*Alpine)(nil)

func init() {
	registry.RegisterOSModule(
		func(os rig.OSVersion) bool {
			return os.ID == "alpine"
		},
		func() any {
			return &Alpine{Linux: configurer.Linux{Installer: pkgman.ApkInstaller{}}}
		},
	)
}

// CreateServiceUser adds a system user with busybox adduser
func (l *Alpine) CreateServiceUser(h os.Host, name, home string) error {
	return h.Execf("adduser -S -D -H -h %s -s /sbin/nologin %s", shellescape.Quote(home), shellescape.Quote(name), exec.Sudo(h))
}
