package pkgman

import (
	"fmt"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/k0sproject/rig/exec"
	"github.com/stretchr/testify/require"
)

// mockHost records executed commands and fails any command matching failOn
type mockHost struct {
	commands []string
	failOn   []string
}

func (m *mockHost) fails(cmd string) bool {
	for _, f := range m.failOn {
		if strings.Contains(cmd, f) {
			return true
		}
	}
	return false
}

func (m *mockHost) Upload(source, destination string, perm fs.FileMode, opts ...exec.Option) error {
	return nil
}

func (m *mockHost) Exec(cmd string, opts ...exec.Option) error {
	m.commands = append(m.commands, cmd)
	if m.fails(cmd) {
		return fmt.Errorf("command failed: %s", cmd)
	}
	return nil
}

func (m *mockHost) ExecOutput(cmd string, opts ...exec.Option) (string, error) {
	return "", m.Exec(cmd)
}

func (m *mockHost) Execf(cmd string, args ...any) error {
	return m.Exec(fmt.Sprintf(cmd, args...))
}

func (m *mockHost) ExecOutputf(cmd string, args ...any) (string, error) {
	return m.ExecOutput(fmt.Sprintf(cmd, args...))
}

func (m *mockHost) ExecStreams(cmd string, stdin io.ReadCloser, stdout io.Writer, stderr io.Writer, opts ...exec.Option) (exec.Waiter, error) {
	return nil, nil
}

func (m *mockHost) String() string {
	return "mockhost"
}

func (m *mockHost) Sudo(cmd string) (string, error) {
	return cmd, nil
}

func TestDetectPriorityOrder(t *testing.T) {
	// dnf and yum both present, dnf must win
	h := &mockHost{failOn: []string{"command -v apt-get", "command -v zypper", "command -v pacman", "command -v apk"}}
	installer, err := Detect(h)
	require.NoError(t, err)
	require.Equal(t, Dnf, installer.Kind())
	require.Equal(t, "command -v dnf > /dev/null 2>&1", h.commands[0])
}

func TestDetectFallsThrough(t *testing.T) {
	h := &mockHost{failOn: []string{"command -v dnf", "command -v yum", "command -v apt-get", "command -v zypper", "command -v pacman"}}
	installer, err := Detect(h)
	require.NoError(t, err)
	require.Equal(t, Apk, installer.Kind())
	require.Len(t, h.commands, 6)
}

func TestDetectUnsupported(t *testing.T) {
	h := &mockHost{failOn: []string{"command -v"}}
	installer, err := Detect(h)
	require.ErrorIs(t, err, ErrUnsupported)
	require.Nil(t, installer)
	// probing must be the only activity on the host
	for _, cmd := range h.commands {
		require.Contains(t, cmd, "command -v")
	}
}

func TestInstallCommands(t *testing.T) {
	cases := []struct {
		installer Installer
		want      []string
	}{
		{DnfInstaller{}, []string{"dnf install -y curl unzip"}},
		{YumInstaller{}, []string{"yum install -y curl unzip"}},
		{AptInstaller{}, []string{"apt-get update -y", "DEBIAN_FRONTEND=noninteractive apt-get install -y curl unzip"}},
		{ZypperInstaller{}, []string{"zypper -n install curl unzip"}},
		{PacmanInstaller{}, []string{"pacman -Sy --noconfirm curl unzip"}},
		{ApkInstaller{}, []string{"apk add --no-cache curl unzip"}},
	}

	for _, c := range cases {
		t.Run(string(c.installer.Kind()), func(t *testing.T) {
			h := &mockHost{}
			require.NoError(t, c.installer.Install(h, "curl", "unzip"))
			require.Equal(t, c.want, h.commands)
		})
	}
}

func TestQueryCommands(t *testing.T) {
	cases := []struct {
		installer Installer
		want      string
	}{
		{DnfInstaller{}, "rpm -q nginx"},
		{YumInstaller{}, "rpm -q nginx"},
		{AptInstaller{}, "dpkg -s nginx"},
		{ZypperInstaller{}, "rpm -q nginx"},
		{PacmanInstaller{}, "pacman -Qi nginx"},
		{ApkInstaller{}, "apk info -e nginx"},
	}

	for _, c := range cases {
		t.Run(string(c.installer.Kind()), func(t *testing.T) {
			h := &mockHost{}
			require.True(t, c.installer.IsInstalled(h, "nginx"))
			require.Equal(t, []string{c.want}, h.commands)
		})
	}
}

func TestQueryFailureMeansNotInstalled(t *testing.T) {
	h := &mockHost{failOn: []string{"rpm -q"}}
	require.False(t, DnfInstaller{}.IsInstalled(h, "nginx"))
}

func TestInstallQuotesNames(t *testing.T) {
	h := &mockHost{}
	require.NoError(t, DnfInstaller{}.Install(h, "evil; rm -rf /"))
	require.Equal(t, []string{"dnf install -y 'evil; rm -rf /'"}, h.commands)
}
