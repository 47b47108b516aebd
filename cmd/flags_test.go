package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/nacternals/roboshop/phase"
)

func testContext(t *testing.T, configPath string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("config", "", "")
	set.Int("concurrency", 0, "")
	set.Int("concurrent-uploads", 0, "")

	app := cli.NewApp()
	ctx := cli.NewContext(app, set, nil)
	ctx.Context = context.Background()
	require.NoError(t, ctx.Set("config", configPath))
	return ctx
}

func TestInitConfigExpandsEnvironment(t *testing.T) {
	t.Setenv("ROBOSHOP_TEST_ADDR", "10.0.0.9")

	path := filepath.Join(t.TempDir(), "roboshop.yaml")
	stackYAML := `apiVersion: roboshop.nacternals.io/v1beta1
kind: Stack
spec:
  hosts:
    - ssh:
        address: ${ROBOSHOP_TEST_ADDR}
        user: root
      roles:
        - mongodb
`
	require.NoError(t, os.WriteFile(path, []byte(stackYAML), 0o644))

	ctx := testContext(t, path)
	require.NoError(t, initConfig(ctx))
	require.Contains(t, ctx.String("config"), "address: 10.0.0.9")

	require.NoError(t, initManager(ctx))
	manager, ok := ctx.Context.Value(ctxManagerKey{}).(*phase.Manager)
	require.True(t, ok)
	require.Equal(t, "10.0.0.9", manager.Config.Spec.Hosts.First().Address())
}

func TestInitManagerRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roboshop.yaml")
	stackYAML := `apiVersion: example.com/v1
kind: Stack
spec:
  hosts:
    - ssh:
        address: 10.0.0.1
      roles:
        - mongodb
`
	require.NoError(t, os.WriteFile(path, []byte(stackYAML), 0o644))

	ctx := testContext(t, path)
	require.NoError(t, initConfig(ctx))
	require.ErrorContains(t, initManager(ctx), "invalid")
}

func TestConfigReaderMissingFile(t *testing.T) {
	_, err := configReader(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
}
