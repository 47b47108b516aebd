package cache

import (
	"fmt"
	"os"
	"path"
)

// EnsureDir creates the directory when missing and verifies it can be
// written to
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil && !os.IsExist(err) {
		return err
	}
	if err := writable(dir); err != nil {
		return fmt.Errorf("not writable: %s", dir)
	}
	return nil
}

// File returns the path to a file under the cache dir
func File(parts ...string) string {
	parts = append([]string{Dir()}, parts...)
	return path.Join(parts...)
}

// GetFile returns the path to a cached file. An error is returned when the
// file is missing or empty, a zero-size file is a leftover from an
// interrupted download.
func GetFile(parts ...string) (string, error) {
	fpath := File(parts...)

	stat, err := os.Stat(fpath)
	if err != nil {
		return fpath, err
	}

	if stat.Size() == 0 {
		return fpath, fmt.Errorf("cached file size is 0")
	}

	return fpath, nil
}

// GetOrCreate returns the path to a cached file, calling create to populate
// it when it is missing
func GetOrCreate(create func(string) error, parts ...string) (string, error) {
	fpath, err := GetFile(parts...)
	if err != nil {
		if err := EnsureDir(path.Dir(fpath)); err != nil {
			return "", err
		}
		if err := create(fpath); err != nil {
			return "", err
		}
	}

	return fpath, nil
}
