package action

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/k0sproject/rig/exec"
	log "github.com/sirupsen/logrus"

	"github.com/nacternals/roboshop/phase"
	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1/stack"
	"github.com/nacternals/roboshop/pkg/housekeep"
	"github.com/nacternals/roboshop/pkg/paths"
)

// Housekeep prunes aged roboshop log files from the local cache directory
// and, when a host configuration is available, aged unit file backups from
// the hosts. Only one housekeeping run is allowed at a time; a second one
// yields without treating the held lock as a failure.
type Housekeep struct {
	// Manager is the phase manager, nil for local-only housekeeping
	Manager *phase.Manager
	// LockPath is the lock file guarding concurrent runs
	LockPath string
	// LogDir is the local directory holding roboshop log files
	LogDir string
	// MaxAge is the retention period for pruned files
	MaxAge time.Duration
}

// Run the Housekeep action
func (h Housekeep) Run(ctx context.Context) error {
	lock, err := housekeep.Acquire(h.LockPath)
	if errors.Is(err, housekeep.ErrLockHeld) {
		log.Infof("another housekeeping run is in progress, nothing to do")
		return nil
	}
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			log.Warnf("failed to release housekeeping lock: %s", err)
		}
	}()

	removed, err := housekeep.Prune(h.LogDir, "roboshop-*.log", h.MaxAge)
	if err != nil {
		return fmt.Errorf("prune log files: %w", err)
	}
	log.Infof("removed %d aged log files from %s", len(removed), h.LogDir)

	if h.Manager == nil {
		return nil
	}

	h.Manager.AddPhase(
		&phase.Connect{},
		&phase.DetectOS{},
	)
	if err := h.Manager.Run(ctx); err != nil {
		return err
	}

	defer func() {
		for _, host := range h.Manager.Config.Spec.Hosts {
			host.Disconnect()
		}
	}()

	days := int(h.MaxAge.Hours() / 24)
	if days < 1 {
		days = 1
	}

	return h.Manager.Config.Spec.Hosts.ParallelEach(ctx, 0, func(_ context.Context, host *stack.Host) error {
		unitDir := paths.Dir(host.Configurer.ServiceScriptPath("roboshop"))
		cmd := fmt.Sprintf("find %s -maxdepth 1 -name '*.service.*' -mtime +%d -delete", unitDir, days)
		if err := host.Exec(cmd, exec.Sudo(host)); err != nil {
			return fmt.Errorf("prune unit backups: %w", err)
		}
		log.Infof("%s: pruned unit file backups older than %d days", host, days)
		return nil
	})
}
