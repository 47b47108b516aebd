//go:build windows

package cache

import (
	"path"

	"github.com/adrg/xdg"
)

// Dir returns the directory where roboshop temporary files, downloaded
// artifacts and logs are stored.
func Dir() string {
	return path.Join(xdg.CacheHome, "roboshop")
}
