package unitfile

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeSystem struct {
	files map[string]string
	ops   []string
	fail  string
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{files: make(map[string]string)}
}

func (f *fakeSystem) op(name string) error {
	f.ops = append(f.ops, name)
	if f.fail != "" && strings.HasPrefix(name, f.fail) {
		return errors.New("induced failure")
	}
	return nil
}

func (f *fakeSystem) ServiceScriptPath(name string) string {
	return "/etc/systemd/system/" + name + ".service"
}

func (f *fakeSystem) FileExist(path string) bool {
	_, ok := f.files[path]
	return ok
}

func (f *fakeSystem) ReadFile(path string) (string, error) {
	return f.files[path], nil
}

func (f *fakeSystem) WriteFile(path, content, perm string) error {
	if err := f.op("write " + path); err != nil {
		return err
	}
	f.files[path] = content
	return nil
}

func (f *fakeSystem) CopyFile(src, dst string) error {
	if err := f.op("copy " + src + " " + dst); err != nil {
		return err
	}
	f.files[dst] = f.files[src]
	return nil
}

func (f *fakeSystem) DaemonReload() error {
	return f.op("daemon-reload")
}

func (f *fakeSystem) EnableService(name string) error {
	return f.op("enable " + name)
}

func (f *fakeSystem) RestartService(name string) error {
	return f.op("restart " + name)
}

func testClock() time.Time {
	return time.Date(2023, 6, 1, 12, 30, 45, 0, time.UTC)
}

func TestDeployNewUnit(t *testing.T) {
	sys := newFakeSystem()
	d := &Deployer{System: sys, Clock: testClock}

	changed, err := d.Deploy("cart", "[Unit]\n")
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, "[Unit]\n", sys.files["/etc/systemd/system/cart.service"])
	require.Equal(t, []string{"write /etc/systemd/system/cart.service"}, sys.ops)
}

func TestDeployUnchangedUnitIsNoop(t *testing.T) {
	sys := newFakeSystem()
	sys.files["/etc/systemd/system/cart.service"] = "[Unit]\n"
	d := &Deployer{System: sys, Clock: testClock}

	changed, err := d.Deploy("cart", "[Unit]\n")
	require.NoError(t, err)
	require.False(t, changed)
	require.Empty(t, sys.ops)
}

func TestDeployBacksUpChangedUnit(t *testing.T) {
	sys := newFakeSystem()
	sys.files["/etc/systemd/system/cart.service"] = "old"
	d := &Deployer{System: sys, Clock: testClock}

	changed, err := d.Deploy("cart", "new")
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, "old", sys.files["/etc/systemd/system/cart.service.20230601T123045"])
	require.Equal(t, "new", sys.files["/etc/systemd/system/cart.service"])
	require.Equal(t, []string{
		"copy /etc/systemd/system/cart.service /etc/systemd/system/cart.service.20230601T123045",
		"write /etc/systemd/system/cart.service",
	}, sys.ops)
}

func TestDeployBackupFailureAborts(t *testing.T) {
	sys := newFakeSystem()
	sys.files["/etc/systemd/system/cart.service"] = "old"
	sys.fail = "copy"
	d := &Deployer{System: sys, Clock: testClock}

	_, err := d.Deploy("cart", "new")
	require.Error(t, err)
	require.Equal(t, "old", sys.files["/etc/systemd/system/cart.service"], "unit should be untouched when backup fails")
}

func TestActivateOrder(t *testing.T) {
	sys := newFakeSystem()
	d := &Deployer{System: sys}

	require.NoError(t, d.Activate("cart"))
	require.Equal(t, []string{"daemon-reload", "enable cart", "restart cart"}, sys.ops)
}

func TestActivateStopsOnReloadFailure(t *testing.T) {
	sys := newFakeSystem()
	sys.fail = "daemon-reload"
	d := &Deployer{System: sys}

	require.Error(t, d.Activate("cart"))
	require.Equal(t, []string{"daemon-reload"}, sys.ops)
}

func TestRender(t *testing.T) {
	out, err := Render("User=${SERVICE_USER}\nHost=${MONGODB_HOST}\n", map[string]string{
		"SERVICE_USER": "roboshop",
		"MONGODB_HOST": "10.0.0.1",
	})
	require.NoError(t, err)
	require.Equal(t, "User=roboshop\nHost=10.0.0.1\n", out)
}

func TestRenderUnsetVariableFails(t *testing.T) {
	_, err := Render("Host=${MYSQL_HOST}\n", map[string]string{})
	require.Error(t, err)
}
