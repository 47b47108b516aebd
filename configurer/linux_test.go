package configurer

import (
	"fmt"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/k0sproject/rig"
	"github.com/k0sproject/rig/exec"
	"github.com/stretchr/testify/require"
)

// mockHost records executed commands and answers them from canned outputs.
// Commands matching failOn return an error.
type mockHost struct {
	commands []string
	outputs  map[string]string
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
	if err := m.Exec(cmd); err != nil {
		return "", err
	}
	for k, v := range m.outputs {
		if strings.Contains(cmd, k) {
			return v, nil
		}
	}
	return "", nil
}

func (m *mockHost) Execf(cmd string, args ...any) error {
	opts, fmtArgs := rig.GroupParams(args...)
	return m.Exec(fmt.Sprintf(cmd, fmtArgs...), opts...)
}

func (m *mockHost) ExecOutputf(cmd string, args ...any) (string, error) {
	opts, fmtArgs := rig.GroupParams(args...)
	return m.ExecOutput(fmt.Sprintf(cmd, fmtArgs...), opts...)
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

func TestServiceScriptPath(t *testing.T) {
	l := &Linux{}
	require.Equal(t, "/etc/systemd/system/catalogue.service", l.ServiceScriptPath("catalogue"))
}

func TestServiceCommands(t *testing.T) {
	l := &Linux{}
	h := &mockHost{}
	require.NoError(t, l.EnableService(h, "mongod"))
	require.NoError(t, l.RestartService(h, "mongod"))
	require.NoError(t, l.DaemonReload(h))
	require.Equal(t, []string{
		"systemctl enable mongod",
		"systemctl restart mongod",
		"systemctl daemon-reload",
	}, h.commands)
}

func TestServiceIsRunning(t *testing.T) {
	l := &Linux{}
	h := &mockHost{}
	require.True(t, l.ServiceIsRunning(h, "redis"))
	h.failOn = []string{"is-active"}
	require.False(t, l.ServiceIsRunning(h, "redis"))
}

func TestArch(t *testing.T) {
	l := &Linux{}
	for uname, expected := range map[string]string{
		"x86_64":  "amd64",
		"aarch64": "arm64",
		"armv7l":  "arm",
		"riscv64": "riscv64",
	} {
		h := &mockHost{outputs: map[string]string{"uname -m": uname}}
		arch, err := l.Arch(h)
		require.NoError(t, err)
		require.Equal(t, expected, arch)
	}
}

func TestWriteFileRequiresPath(t *testing.T) {
	l := &Linux{}
	require.Error(t, l.WriteFile(&mockHost{}, "", "content", "0644"))
}

func TestDiskUsagePercent(t *testing.T) {
	l := &Linux{}
	h := &mockHost{outputs: map[string]string{"df --output=pcent": " 42%\n"}}
	pct, err := l.DiskUsagePercent(h, "/")
	require.NoError(t, err)
	require.Equal(t, 42, pct)
}

func TestMemoryUsagePercent(t *testing.T) {
	l := &Linux{}
	h := &mockHost{outputs: map[string]string{"free |": "87"}}
	pct, err := l.MemoryUsagePercent(h)
	require.NoError(t, err)
	require.Equal(t, 87, pct)
}

func TestSha256Sum(t *testing.T) {
	l := &Linux{}
	h := &mockHost{outputs: map[string]string{"sha256sum": "deadbeef *catalogue.zip"}}
	sum, err := l.Sha256Sum(h, "/tmp/roboshop/catalogue.zip")
	require.NoError(t, err)
	require.Equal(t, "deadbeef", sum)

	h = &mockHost{}
	_, err = l.Sha256Sum(h, "/tmp/roboshop/catalogue.zip")
	require.ErrorContains(t, err, "no checksum")
}

func TestMongoClientCommand(t *testing.T) {
	l := &Linux{}

	h := &mockHost{}
	client, err := l.MongoClientCommand(h)
	require.NoError(t, err)
	require.Equal(t, "mongosh", client)

	h = &mockHost{failOn: []string{"command -v mongosh"}}
	client, err = l.MongoClientCommand(h)
	require.NoError(t, err)
	require.Equal(t, "mongo", client)

	h = &mockHost{failOn: []string{"command -v"}}
	_, err = l.MongoClientCommand(h)
	require.Error(t, err)
}

func TestMySQLClientCommand(t *testing.T) {
	l := &Linux{}
	h := &mockHost{failOn: []string{"command -v mysql "}}
	client, err := l.MySQLClientCommand(h)
	require.NoError(t, err)
	require.Equal(t, "mariadb", client)
}
