//go:build !windows

package cache

import (
	"os"
	"path"

	"github.com/adrg/xdg"
)

// Dir returns the directory where roboshop temporary files, downloaded
// artifacts and logs are stored. Root gets the system-wide cache, everyone
// else a per-user one.
func Dir() string {
	if os.Geteuid() == 0 {
		return "/var/cache/roboshop"
	}
	return path.Join(xdg.CacheHome, "roboshop")
}
