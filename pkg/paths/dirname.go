// Package paths contains helpers for manipulating remote host file paths
// without involving the local OS path separator like path/filepath does.
package paths

import (
	"regexp"
	"strings"
)

var multiSlash = regexp.MustCompile("/{2,}")

// Dir is like filepath.Dir but always treats forward slash as the separator.
// A path with a trailing slash is treated as a directory and returned with
// the slash trimmed.
func Dir(path string) string {
	p := multiSlash.ReplaceAllString(path, "/")

	if p == "/" {
		return "/"
	}
	if strings.HasSuffix(p, "/") {
		return strings.TrimSuffix(p, "/")
	}
	idx := strings.LastIndex(p, "/")
	switch idx {
	case 0:
		return "/"
	case -1:
		return "."
	default:
		return p[:idx]
	}
}
