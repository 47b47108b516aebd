package v1beta1

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestStackUnmarshal(t *testing.T) {
	data := []byte(`
apiVersion: roboshop.nacternals.io/v1beta1
kind: Stack
spec:
  hosts:
    - ssh:
        address: 10.0.0.1
        user: root
      roles:
        - mongodb
        - redis
    - ssh:
        address: 10.0.0.2
        user: root
      roles:
        - catalogue
  artifacts:
    baseURL: https://example.com/builds
    version: 1.0.0
`)
	s := &Stack{}
	require.NoError(t, yaml.Unmarshal(data, s))
	require.NoError(t, s.Validate())

	require.Equal(t, "roboshop", s.Metadata.Name)
	require.Len(t, s.Spec.Hosts, 2)
	require.Equal(t, "10.0.0.1", s.Spec.Hosts[0].Address())
	require.True(t, s.Spec.Hosts[0].HasRole("redis"))
	require.Equal(t, "https://example.com/builds", s.Spec.Artifacts.BaseURL)
	require.NotEmpty(t, s.Spec.Services, "built-in service catalog should be populated")
}

func TestStackValidation(t *testing.T) {
	t.Run("wrong api version", func(t *testing.T) {
		s := &Stack{}
		require.NoError(t, yaml.Unmarshal([]byte("apiVersion: example.com/v1\nkind: Stack\nspec:\n  hosts:\n    - roles: [web]\n"), s))
		require.ErrorContains(t, s.Validate(), "apiVersion")
	})

	t.Run("no hosts", func(t *testing.T) {
		s := &Stack{}
		require.NoError(t, yaml.Unmarshal([]byte("apiVersion: roboshop.nacternals.io/v1beta1\nkind: Stack\nspec: {}\n"), s))
		require.ErrorContains(t, s.Validate(), "hosts")
	})
}

func TestEndpoints(t *testing.T) {
	data := []byte(`
apiVersion: roboshop.nacternals.io/v1beta1
kind: Stack
spec:
  hosts:
    - ssh:
        address: 10.0.0.1
        user: root
      roles:
        - mongodb
    - ssh:
        address: 10.0.0.2
        user: root
      roles:
        - catalogue
`)
	s := &Stack{}
	require.NoError(t, yaml.Unmarshal(data, s))

	env := s.Spec.Endpoints()
	require.Equal(t, "10.0.0.1", env["MONGODB_HOST"])
	require.Equal(t, "10.0.0.2", env["CATALOGUE_HOST"])
	require.NotContains(t, env, "MYSQL_HOST")
}
