package pkgman

import (
	"strings"

	"github.com/alessio/shellescape"
	"github.com/k0sproject/rig/exec"
	"github.com/k0sproject/rig/os"
)

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = shellescape.Quote(n)
	}
	return strings.Join(quoted, " ")
}

// DnfInstaller manages packages with dnf on modern rpm based systems
type DnfInstaller struct{}

func (DnfInstaller) Kind() Kind {
	return Dnf
}

func (DnfInstaller) Install(h os.Host, names ...string) error {
	return h.Exec("dnf install -y "+quoteAll(names), exec.Sudo(h))
}

func (DnfInstaller) IsInstalled(h os.Host, name string) bool {
	return h.Exec("rpm -q "+shellescape.Quote(name), exec.HideOutput()) == nil
}

// YumInstaller manages packages with yum on older rpm based systems
type YumInstaller struct{}

func (YumInstaller) Kind() Kind {
	return Yum
}

func (YumInstaller) Install(h os.Host, names ...string) error {
	return h.Exec("yum install -y "+quoteAll(names), exec.Sudo(h))
}

func (YumInstaller) IsInstalled(h os.Host, name string) bool {
	return h.Exec("rpm -q "+shellescape.Quote(name), exec.HideOutput()) == nil
}

// AptInstaller manages packages with apt-get on debian based systems. The
// package index is refreshed before every install because a stale index makes
// apt-get fail on packages that moved.
type AptInstaller struct{}

func (AptInstaller) Kind() Kind {
	return Apt
}

func (AptInstaller) Install(h os.Host, names ...string) error {
	if err := h.Exec("apt-get update -y", exec.Sudo(h)); err != nil {
		return err
	}
	return h.Exec("DEBIAN_FRONTEND=noninteractive apt-get install -y "+quoteAll(names), exec.Sudo(h))
}

func (AptInstaller) IsInstalled(h os.Host, name string) bool {
	return h.Exec("dpkg -s "+shellescape.Quote(name), exec.HideOutput()) == nil
}

// ZypperInstaller manages packages with zypper on SUSE systems
type ZypperInstaller struct{}

func (ZypperInstaller) Kind() Kind {
	return Zypper
}

func (ZypperInstaller) Install(h os.Host, names ...string) error {
	return h.Exec("zypper -n install "+quoteAll(names), exec.Sudo(h))
}

func (ZypperInstaller) IsInstalled(h os.Host, name string) bool {
	return h.Exec("rpm -q "+shellescape.Quote(name), exec.HideOutput()) == nil
}

// PacmanInstaller manages packages with pacman on arch based systems
type PacmanInstaller struct{}

func (PacmanInstaller) Kind() Kind {
	return Pacman
}

func (PacmanInstaller) Install(h os.Host, names ...string) error {
	return h.Exec("pacman -Sy --noconfirm "+quoteAll(names), exec.Sudo(h))
}

func (PacmanInstaller) IsInstalled(h os.Host, name string) bool {
	return h.Exec("pacman -Qi "+shellescape.Quote(name), exec.HideOutput()) == nil
}

// ApkInstaller manages packages with apk on alpine systems
type ApkInstaller struct{}

func (ApkInstaller) Kind() Kind {
	return Apk
}

func (ApkInstaller) Install(h os.Host, names ...string) error {
	return h.Exec("apk add --no-cache "+quoteAll(names), exec.Sudo(h))
}

func (ApkInstaller) IsInstalled(h os.Host, name string) bool {
	return h.Exec("apk info -e "+shellescape.Quote(name), exec.HideOutput()) == nil
}
