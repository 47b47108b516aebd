package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildHosts(t *testing.T) {
	addresses := []string{
		"10.0.0.1",
		"",
		"10.0.0.2",
		"10.0.0.3",
	}
	hosts := buildHosts(addresses, "test", "foo")
	require.Len(t, hosts, 3)
	require.Equal(t, "test", hosts.First().SSH.User)
	require.Equal(t, "foo", *hosts.First().SSH.KeyPath)

	require.Equal(t, datastoreRoles, hosts[0].Roles)

	var appRoleCount int
	for _, h := range hosts[1:] {
		require.NotEmpty(t, h.Roles)
		appRoleCount += len(h.Roles)
	}
	require.Equal(t, len(appRoles), appRoleCount)
}

func TestBuildHostsSingle(t *testing.T) {
	hosts := buildHosts([]string{"10.0.0.1"}, "", "")
	require.Len(t, hosts, 1)
	require.Len(t, hosts[0].Roles, len(datastoreRoles)+len(appRoles))
}

func TestBuildHostsWithComments(t *testing.T) {
	addresses := []string{
		"# datastores",
		"10.0.0.1",
		"# apps",
		"10.0.0.2# second host",
		"10.0.0.3 # last host",
	}
	hosts := buildHosts(addresses, "", "")
	require.Len(t, hosts, 3)
	require.Equal(t, "10.0.0.1", hosts[0].Address())
	require.Equal(t, "10.0.0.2", hosts[1].Address())
	require.Equal(t, "10.0.0.3", hosts[2].Address())
}
