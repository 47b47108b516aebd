package linux

import (
	"github.com/nacternals/roboshop/configurer"
)

// EnterpriseLinux is a base module for RHEL-like distributions. The package
// manager is probed (dnf preferred over yum) instead of pinned because both
// generations are in active use across the family.
type EnterpriseLinux struct {
	configurer.Linux
}
