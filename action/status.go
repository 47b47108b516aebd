package action

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nacternals/roboshop/phase"
	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1/stack"
)

// Status reports the per-host, per-role service state without changing
// anything on the hosts
type Status struct {
	// Manager is the phase manager
	Manager *phase.Manager
	Out     io.Writer
}

// Run the Status action
func (s Status) Run(ctx context.Context) error {
	s.Manager.AddPhase(
		&phase.Connect{},
		&phase.DetectOS{},
	)

	if err := s.Manager.Run(ctx); err != nil {
		return err
	}

	defer func() {
		for _, h := range s.Manager.Config.Spec.Hosts {
			h.Disconnect()
		}
	}()

	w := tabwriter.NewWriter(s.Out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "HOST\tROLE\tUNIT\tSTATE")

	err := s.Manager.Config.Spec.Hosts.Each(ctx, func(_ context.Context, h *stack.Host) error {
		for _, role := range h.Roles {
			svc := s.Manager.Config.Spec.ServiceForRole(role)
			if svc == nil || svc.Unit == "" {
				fmt.Fprintf(w, "%s\t%s\t-\t-\n", h, role)
				continue
			}
			state := "not running"
			if h.Configurer.ServiceIsRunning(h, svc.Unit) {
				state = "running"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", h, role, svc.Unit, state)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return w.Flush()
}
