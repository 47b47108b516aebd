package configurer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/alessio/shellescape"
	"github.com/k0sproject/rig/exec"
	"github.com/k0sproject/rig/os"
	"github.com/nacternals/roboshop/pkg/pkgman"
)

// Linux is a base module for linux OS support packages. The distribution
// specific packages in configurer/linux embed it and override what differs.
type Linux struct {
	Installer pkgman.Installer

	pmu sync.Mutex
}

// Kind returns the OS kind
func (l *Linux) Kind() string {
	return "linux"
}

// PackageManager returns the host's package manager adapter. When the
// distribution module did not pin one, the host is probed once and the
// result cached for the lifetime of the configurer.
func (l *Linux) PackageManager(h os.Host) (pkgman.Installer, error) {
	l.pmu.Lock()
	defer l.pmu.Unlock()

	if l.Installer == nil {
		installer, err := pkgman.Detect(h)
		if err != nil {
			return nil, err
		}
		l.Installer = installer
	}

	return l.Installer, nil
}

// InstallPackage installs packages using the host's package manager
func (l *Linux) InstallPackage(h os.Host, pkg ...string) error {
	installer, err := l.PackageManager(h)
	if err != nil {
		return err
	}
	return installer.Install(h, pkg...)
}

// PackageIsInstalled returns true when the named package is installed
func (l *Linux) PackageIsInstalled(h os.Host, pkg string) bool {
	installer, err := l.PackageManager(h)
	if err != nil {
		return false
	}
	return installer.IsInstalled(h, pkg)
}

// CheckPrivilege returns an error if the user does not have access to elevated privileges
func (l *Linux) CheckPrivilege(h os.Host) error {
	return h.Exec("true", exec.Sudo(h))
}

// StartService starts a service
func (l *Linux) StartService(h os.Host, s string) error {
	return h.Execf("systemctl start %s", shellescape.Quote(s), exec.Sudo(h))
}

// StopService stops a service
func (l *Linux) StopService(h os.Host, s string) error {
	return h.Execf("systemctl stop %s", shellescape.Quote(s), exec.Sudo(h))
}

// RestartService restarts a service. Restart rather than start so that unit
// file changes always take effect.
func (l *Linux) RestartService(h os.Host, s string) error {
	return h.Execf("systemctl restart %s", shellescape.Quote(s), exec.Sudo(h))
}

// EnableService enables a service to start on boot
func (l *Linux) EnableService(h os.Host, s string) error {
	return h.Execf("systemctl enable %s", shellescape.Quote(s), exec.Sudo(h))
}

// DisableService disables a service from starting on boot
func (l *Linux) DisableService(h os.Host, s string) error {
	return h.Execf("systemctl disable %s", shellescape.Quote(s), exec.Sudo(h))
}

// ServiceIsRunning returns true when the service is running
func (l *Linux) ServiceIsRunning(h os.Host, s string) bool {
	return h.Execf("systemctl is-active --quiet %s", shellescape.Quote(s), exec.Sudo(h)) == nil
}

// ServiceScriptPath returns the path to a service unit file
func (l *Linux) ServiceScriptPath(s string) string {
	return "/etc/systemd/system/" + s + ".service"
}

// DaemonReload reloads the init system's unit cache
func (l *Linux) DaemonReload(h os.Host) error {
	return h.Exec("systemctl daemon-reload", exec.Sudo(h))
}

// WriteFile writes file content to the host with the given permissions
func (l *Linux) WriteFile(h os.Host, path string, data string, permissions string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}
	return h.Execf("install -D -m %s /dev/stdin %s", permissions, shellescape.Quote(path), exec.Stdin(data), exec.Sudo(h))
}

// ReadFile returns file content from the host
func (l *Linux) ReadFile(h os.Host, path string) (string, error) {
	return h.ExecOutputf("cat %s 2> /dev/null", shellescape.Quote(path), exec.Sudo(h), exec.HideOutput())
}

// FileExist checks if a file exists on the host
func (l *Linux) FileExist(h os.Host, path string) bool {
	return h.Execf("test -e %s", shellescape.Quote(path), exec.Sudo(h)) == nil
}

// DeleteFile deletes a file from the host
func (l *Linux) DeleteFile(h os.Host, path string) error {
	return h.Execf("rm -f %s", shellescape.Quote(path), exec.Sudo(h))
}

// CopyFile copies a file on the host, preserving mode and ownership
func (l *Linux) CopyFile(h os.Host, src, dst string) error {
	return h.Execf("cp -p %s %s", shellescape.Quote(src), shellescape.Quote(dst), exec.Sudo(h))
}

// MoveFile moves a file on the host
func (l *Linux) MoveFile(h os.Host, src, dst string) error {
	return h.Execf("mv %s %s", shellescape.Quote(src), shellescape.Quote(dst), exec.Sudo(h))
}

// MkDir creates a directory (including intermediates)
func (l *Linux) MkDir(h os.Host, dir string) error {
	return h.Execf("mkdir -p %s", shellescape.Quote(dir), exec.Sudo(h))
}

// Chmod updates file permissions
func (l *Linux) Chmod(h os.Host, path, chmod string) error {
	return h.Execf("chmod %s %s", chmod, shellescape.Quote(path), exec.Sudo(h))
}

// Chown updates file ownership recursively
func (l *Linux) Chown(h os.Host, path, owner string) error {
	return h.Execf("chown -R %s %s", shellescape.Quote(owner), shellescape.Quote(path), exec.Sudo(h))
}

// CommandExist returns true when the command is found on the host's PATH
func (l *Linux) CommandExist(h os.Host, cmd string) bool {
	return h.Execf("command -v %s > /dev/null 2>&1", shellescape.Quote(cmd)) == nil
}

// Hostname resolves the short hostname
func (l *Linux) Hostname(h os.Host) string {
	n, _ := h.ExecOutput("hostname -s")
	return n
}

// MachineID returns the host's machine id
func (l *Linux) MachineID(h os.Host) (string, error) {
	return h.ExecOutput("cat /etc/machine-id || cat /var/lib/dbus/machine-id")
}

// Arch returns the host processor architecture in go style
func (l *Linux) Arch(h os.Host) (string, error) {
	arch, err := h.ExecOutput("uname -m")
	if err != nil {
		return "", err
	}
	switch arch {
	case "x86_64":
		return "amd64", nil
	case "aarch64":
		return "arm64", nil
	case "armv7l", "armv8l", "aarch32", "arm32", "armhfp", "arm-32":
		return "arm", nil
	default:
		return arch, nil
	}
}

// Sha256Sum returns the sha256 checksum of a file on the host
func (l *Linux) Sha256Sum(h os.Host, path string) (string, error) {
	out, err := h.ExecOutputf("sha256sum -b %s", shellescape.Quote(path), exec.Sudo(h), exec.HideOutput())
	if err != nil {
		return "", err
	}
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return "", fmt.Errorf("no checksum in sha256sum output for %s", path)
	}
	return fields[0], nil
}

// ExtractArchive extracts a zip archive into the destination directory,
// overwriting existing files
func (l *Linux) ExtractArchive(h os.Host, archive, destination string) error {
	return h.Execf("unzip -o %s -d %s", shellescape.Quote(archive), shellescape.Quote(destination), exec.Sudo(h))
}

// UserExists checks if a user account exists on the host
func (l *Linux) UserExists(h os.Host, name string) bool {
	return h.Execf("id -u %s > /dev/null 2>&1", shellescape.Quote(name)) == nil
}

// CreateServiceUser adds a system user account for running an application
// service. No login shell, home at the application directory.
func (l *Linux) CreateServiceUser(h os.Host, name, home string) error {
	return h.Execf(
		"useradd --system --no-create-home --home-dir %s --shell /sbin/nologin %s",
		shellescape.Quote(home), shellescape.Quote(name),
		exec.Sudo(h),
	)
}

// UpdateEnvironment updates the hosts's environment variables
func (l *Linux) UpdateEnvironment(h os.Host, env map[string]string) error {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s=%s\n", k, env[k])
	}

	return h.Execf("tee -a /etc/environment > /dev/null", exec.Stdin(sb.String()), exec.Sudo(h))
}

// DiskUsagePercent returns the used percentage of the filesystem holding the path
func (l *Linux) DiskUsagePercent(h os.Host, path string) (int, error) {
	out, err := h.ExecOutputf("df --output=pcent %s | tail -1", shellescape.Quote(path))
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(out), "%"))
}

// MemoryUsagePercent returns the used percentage of host memory
func (l *Linux) MemoryUsagePercent(h os.Host) (int, error) {
	out, err := h.ExecOutput("free | awk '/^Mem:/ {printf \"%d\", $3/$2*100}'")
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(out))
}

// MongoClientCommand returns the mongodb shell binary available on the host
func (l *Linux) MongoClientCommand(h os.Host) (string, error) {
	for _, candidate := range []string{"mongosh", "mongo"} {
		if l.CommandExist(h, candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no mongodb client found on host")
}

// MySQLClientCommand returns the mysql client binary available on the host
func (l *Linux) MySQLClientCommand(h os.Host) (string, error) {
	for _, candidate := range []string{"mysql", "mariadb"} {
		if l.CommandExist(h, candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no mysql client found on host")
}
