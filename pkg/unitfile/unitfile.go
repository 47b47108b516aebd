// Package unitfile deploys systemd unit files onto hosts. Existing unit
// files are never overwritten in place: a differing unit is first backed
// up next to itself with a timestamp suffix, then replaced and activated
// through a daemon-reload, enable, restart sequence.
package unitfile

import (
	"fmt"
	"time"
)

// System is the minimal host surface the deployer needs
type System interface {
	ServiceScriptPath(name string) string
	FileExist(path string) bool
	ReadFile(path string) (string, error)
	WriteFile(path, content, perm string) error
	CopyFile(src, dst string) error
	DaemonReload() error
	EnableService(name string) error
	RestartService(name string) error
}

// BackupStamp is the timestamp layout used for unit file backup suffixes
const BackupStamp = "20060102T150405"

// Deployer installs unit files through a System
type Deployer struct {
	System System

	// Clock is used for backup timestamps, defaults to time.Now
	Clock func() time.Time
}

func (d *Deployer) now() time.Time {
	if d.Clock == nil {
		return time.Now()
	}
	return d.Clock()
}

// Deploy writes the unit file for a service. When a unit with different
// content already exists it is backed up first. Returns true when the unit
// file on the host changed.
func (d *Deployer) Deploy(name, content string) (bool, error) {
	path := d.System.ServiceScriptPath(name)

	if d.System.FileExist(path) {
		old, err := d.System.ReadFile(path)
		if err != nil {
			return false, fmt.Errorf("read existing unit %s: %w", path, err)
		}
		if old == content {
			return false, nil
		}
		backup := fmt.Sprintf("%s.%s", path, d.now().Format(BackupStamp))
		if err := d.System.CopyFile(path, backup); err != nil {
			return false, fmt.Errorf("back up unit %s: %w", path, err)
		}
	}

	if err := d.System.WriteFile(path, content, "0644"); err != nil {
		return false, fmt.Errorf("write unit %s: %w", path, err)
	}

	return true, nil
}

// Activate makes systemd pick up the unit and (re)starts it. The order is
// fixed: reload first so systemd sees the new content, then enable, then
// restart.
func (d *Deployer) Activate(name string) error {
	if err := d.System.DaemonReload(); err != nil {
		return fmt.Errorf("daemon-reload: %w", err)
	}
	if err := d.System.EnableService(name); err != nil {
		return fmt.Errorf("enable %s: %w", name, err)
	}
	if err := d.System.RestartService(name); err != nil {
		return fmt.Errorf("restart %s: %w", name, err)
	}
	return nil
}
