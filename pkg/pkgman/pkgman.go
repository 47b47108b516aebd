// Package pkgman hides the differences between distribution package managers
// behind a small Installer interface implemented once per manager kind.
package pkgman

import (
	"errors"
	"fmt"

	"github.com/k0sproject/rig/os"
)

// Kind identifies a supported package manager
type Kind string

const (
	Dnf    Kind = "dnf"
	Yum    Kind = "yum"
	Apt    Kind = "apt"
	Zypper Kind = "zypper"
	Pacman Kind = "pacman"
	Apk    Kind = "apk"
)

// ErrUnsupported is returned by Detect when no known package manager binary
// is found on the host
var ErrUnsupported = errors.New("unsupported system: no supported package manager found")

// Installer performs package operations using one package manager kind
type Installer interface {
	Kind() Kind
	// Install installs the named packages. Package repositories being
	// unreachable or a bogus package name both fail the install; there is no
	// retry, the caller is expected to abort.
	Install(h os.Host, names ...string) error
	// IsInstalled reports whether a package is currently installed. A failing
	// query is reported as "not installed" - the underlying query commands
	// exit non-zero both for missing packages and for malformed names, and
	// callers only use the answer to skip redundant installs, where a false
	// negative leads to a harmless re-install.
	IsInstalled(h os.Host, name string) bool
}

// probe order matters: dnf shadows yum on modern rpm systems and both may be
// present as shims
var detectOrder = []struct {
	binary  string
	builder func() Installer
}{
	{"dnf", func() Installer { return DnfInstaller{} }},
	{"yum", func() Installer { return YumInstaller{} }},
	{"apt-get", func() Installer { return AptInstaller{} }},
	{"zypper", func() Installer { return ZypperInstaller{} }},
	{"pacman", func() Installer { return PacmanInstaller{} }},
	{"apk", func() Installer { return ApkInstaller{} }},
}

// Detect probes the host for package manager binaries in priority order and
// returns an Installer for the first one found, or ErrUnsupported when none
// of them is present. The result is valid for the lifetime of the host
// connection; callers cache it instead of re-probing.
func Detect(h os.Host) (Installer, error) {
	for _, candidate := range detectOrder {
		if h.Exec(fmt.Sprintf("command -v %s > /dev/null 2>&1", candidate.binary)) == nil {
			return candidate.builder(), nil
		}
	}
	return nil, ErrUnsupported
}
