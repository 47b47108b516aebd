package paths

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDir(t *testing.T) {
	testCases := []struct {
		path     string
		expected string
	}{
		{"/etc/systemd/system/catalogue.service", "/etc/systemd/system"},
		{"/etc/systemd//system", "/etc/systemd"},
		{"/app/catalogue/", "/app/catalogue"},
		{"app/catalogue", "app"},
		{"/app", "/"},
		{"app", "."},
		{"/", "/"},
		{"", "."},
		{"schema.js", "."},
		{"./schema.js", "."},
		{"../sibling.js", ".."},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			require.Equal(t, tc.expected, Dir(tc.path))
		})
	}
}
