package phase

import (
	"context"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/k0sproject/rig/exec"
	log "github.com/sirupsen/logrus"

	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1"
	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1/stack"
)

// RunHooks executes the per-host lifecycle hooks of an action stage,
// e.g. action "apply" with stage "before".
type RunHooks struct {
	GenericPhase

	Action string
	Stage  string

	hosts stack.Hosts
}

// Title for the phase
func (p *RunHooks) Title() string {
	titler := cases.Title(language.AmericanEnglish)
	return fmt.Sprintf("Run %s %s Hooks", titler.String(p.Stage), titler.String(p.Action))
}

// Prepare the phase
func (p *RunHooks) Prepare(config *v1beta1.Stack) error {
	p.Config = config
	p.hosts = config.Spec.Hosts.Filter(func(h *stack.Host) bool {
		return len(h.Hook(p.Action, p.Stage)) > 0
	})
	return nil
}

// ShouldRun is true when there are hooks to run
func (p *RunHooks) ShouldRun() bool {
	return len(p.hosts) > 0
}

// Run the phase
func (p *RunHooks) Run(ctx context.Context) error {
	return p.parallelDo(ctx, p.hosts, p.runHooks)
}

func (p *RunHooks) runHooks(_ context.Context, h *stack.Host) error {
	for _, cmd := range h.Hook(p.Action, p.Stage) {
		log.Debugf("%s: running hook: %s", h, cmd)
		if err := h.Exec(cmd, exec.Sudo(h)); err != nil {
			return fmt.Errorf("hook %q failed: %w", cmd, err)
		}
	}
	return nil
}
