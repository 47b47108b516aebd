package stack

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUploadFileValidate(t *testing.T) {
	u := UploadFile{Source: "nginx.conf", DestinationDir: "/etc/nginx", PermMode: "0644"}
	require.NoError(t, u.Validate())

	u.PermMode = "0x29"
	require.Error(t, u.Validate())

	u = UploadFile{DestinationDir: "/etc/nginx"}
	require.Error(t, u.Validate())
}

func TestUploadFileString(t *testing.T) {
	require.Equal(t, "web content", UploadFile{Name: "web content", Source: "static/**"}.String())
	require.Equal(t, "static/**", UploadFile{Source: "static/**"}.String())
}

func TestUploadFileResolve(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("hello"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "site.css"), []byte("body{}"), 0o644))

	u := UploadFile{Source: filepath.Join(dir, "**", "*.css")}
	sources, err := u.Resolve()
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "css", "site.css")}, sources)

	u = UploadFile{Source: filepath.Join(dir, "*.txt")}
	_, err = u.Resolve()
	require.ErrorContains(t, err, "no files found")
}
