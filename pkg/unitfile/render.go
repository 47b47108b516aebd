package unitfile

import (
	"fmt"
	"sort"

	"github.com/a8m/envsubst/parse"
)

// Render substitutes ${VAR} style placeholders in a unit file template from
// the given environment. Unset variables are an error so that a template
// referencing an unplaced service endpoint fails loudly instead of writing
// a broken unit.
func Render(template string, env map[string]string) (string, error) {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(env))
	for _, k := range keys {
		pairs = append(pairs, k+"="+env[k])
	}

	parser := parse.New("unitfile", pairs, &parse.Restrictions{NoUnset: true})
	content, err := parser.Parse(template)
	if err != nil {
		return "", fmt.Errorf("render unit template: %w", err)
	}
	return content, nil
}
