package stack

import (
	"fmt"

	"github.com/jellydator/validation"
)

var hookActions = []string{"apply", "reset"}
var hookStages = []string{"before", "after"}

// Hooks is a list of hooks such as:
//
//	hooks:
//	  apply:
//	    before:
//	      - ls -al
//	    after:
//	      - rm -f health.txt
type Hooks map[string]map[string][]string

// ForActionStage returns hooks for a given action and stage
func (h Hooks) ForActionStage(action, stage string) []string {
	if len(h) == 0 {
		return nil
	}
	if stages, ok := h[action]; ok {
		return stages[stage]
	}
	return nil
}

// Validate rejects unknown hook actions and stages
func (h Hooks) Validate() error {
	for action, stages := range h {
		if err := validation.Validate(action, validation.In(toInterfaceSlice(hookActions)...)); err != nil {
			return fmt.Errorf("unknown hook action %q", action)
		}
		for stage := range stages {
			if err := validation.Validate(stage, validation.In(toInterfaceSlice(hookStages)...)); err != nil {
				return fmt.Errorf("unknown hook stage %q for action %q", stage, action)
			}
		}
	}
	return nil
}

func toInterfaceSlice(strs []string) []interface{} {
	out := make([]interface{}, len(strs))
	for i, s := range strs {
		out[i] = s
	}
	return out
}
