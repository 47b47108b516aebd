package phase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1"
	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1/stack"
)

func uploadTestConfig(h *stack.Host, checksums map[string]string) *v1beta1.Stack {
	return &v1beta1.Stack{
		Spec: &stack.Spec{
			Hosts:     stack.Hosts{h},
			Artifacts: &stack.Artifacts{Checksums: checksums},
		},
	}
}

func TestVerifyUploadMatch(t *testing.T) {
	mc := &mockConfigurer{sums: map[string]string{"/tmp/roboshop/web.zip": "deadbeef"}}
	h := &stack.Host{Roles: []string{"web"}, Configurer: mc}

	p := &UploadArtifacts{}
	p.Config = uploadTestConfig(h, map[string]string{"web.zip": "deadbeef"})

	require.NoError(t, p.verifyUpload(h, "web.zip", "/tmp/roboshop/web.zip"))
	require.Equal(t, []string{"/tmp/roboshop/web.zip"}, mc.sumCalls)
}

func TestVerifyUploadMismatch(t *testing.T) {
	mc := &mockConfigurer{sums: map[string]string{"/tmp/roboshop/web.zip": "cafebabe"}}
	h := &stack.Host{Roles: []string{"web"}, Configurer: mc}

	p := &UploadArtifacts{}
	p.Config = uploadTestConfig(h, map[string]string{"web.zip": "deadbeef"})

	err := p.verifyUpload(h, "web.zip", "/tmp/roboshop/web.zip")
	require.ErrorContains(t, err, "sha256 mismatch")
}

func TestVerifyUploadNoChecksumConfigured(t *testing.T) {
	mc := &mockConfigurer{}
	h := &stack.Host{Roles: []string{"web"}, Configurer: mc}

	p := &UploadArtifacts{}
	p.Config = uploadTestConfig(h, nil)

	require.NoError(t, p.verifyUpload(h, "web.zip", "/tmp/roboshop/web.zip"))
	require.Empty(t, mc.sumCalls)
}
