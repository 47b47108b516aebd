//go:build windows

package cache

import "os"

func writable(dir string) error {
	f, err := os.CreateTemp(dir, ".writecheck")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
