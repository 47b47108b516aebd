package housekeep

import (
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
)

// Prune removes files directly under dir that match the glob pattern and
// have not been modified within maxAge. Returns the removed paths.
func Prune(dir, pattern string, maxAge time.Duration) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-maxAge)
	var removed []string

	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil {
			log.Warnf("failed to remove %s: %s", path, err)
			continue
		}
		log.Debugf("removed %s", path)
		removed = append(removed, path)
	}

	return removed, nil
}
