package action

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/nacternals/roboshop/phase"
	"github.com/nacternals/roboshop/pkg/alert"
	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1/stack"
)

// Alert checks disk and memory usage on all hosts and mails a report of
// the hosts that are over their thresholds
type Alert struct {
	// Manager is the phase manager
	Manager *phase.Manager
	// DiskThreshold overrides the configured disk usage threshold when > 0
	DiskThreshold int
	// MemThreshold overrides the configured memory usage threshold when > 0
	MemThreshold int
	// DryRun reports the breaches without sending mail
	DryRun bool
}

func (a Alert) thresholds() (int, int) {
	disk, mem := 80, 90
	if alerts := a.Manager.Config.Spec.Alerts; alerts != nil {
		if alerts.DiskThreshold > 0 {
			disk = alerts.DiskThreshold
		}
		if alerts.MemThreshold > 0 {
			mem = alerts.MemThreshold
		}
	}
	if a.DiskThreshold > 0 {
		disk = a.DiskThreshold
	}
	if a.MemThreshold > 0 {
		mem = a.MemThreshold
	}
	return disk, mem
}

// Run the Alert action
func (a Alert) Run(ctx context.Context) error {
	a.Manager.AddPhase(
		&phase.Connect{},
		&phase.DetectOS{},
	)

	if err := a.Manager.Run(ctx); err != nil {
		return err
	}

	defer func() {
		for _, h := range a.Manager.Config.Spec.Hosts {
			h.Disconnect()
		}
	}()

	diskThreshold, memThreshold := a.thresholds()

	var mu sync.Mutex
	var breaches []alert.Breach

	err := a.Manager.Config.Spec.Hosts.ParallelEach(ctx, 0, func(_ context.Context, h *stack.Host) error {
		disk, err := h.Configurer.DiskUsagePercent(h, "/")
		if err != nil {
			return err
		}
		mem, err := h.Configurer.MemoryUsagePercent(h)
		if err != nil {
			return err
		}
		log.Infof("%s: disk %d%%, memory %d%%", h, disk, mem)

		mu.Lock()
		defer mu.Unlock()
		if disk > diskThreshold {
			breaches = append(breaches, alert.Breach{Host: h.String(), Resource: "disk", Usage: disk, Threshold: diskThreshold})
		}
		if mem > memThreshold {
			breaches = append(breaches, alert.Breach{Host: h.String(), Resource: "memory", Usage: mem, Threshold: memThreshold})
		}
		return nil
	})
	if err != nil {
		return err
	}

	if len(breaches) == 0 {
		log.Info("all hosts are within their thresholds")
		return nil
	}

	for _, b := range breaches {
		log.Warn(b.String())
	}

	if a.DryRun {
		log.Info("dry-run: not sending alert mail")
		return nil
	}

	alerts := a.Manager.Config.Spec.Alerts
	if alerts == nil || alerts.To == "" {
		log.Warn("no alert recipient configured, not sending mail")
		return nil
	}

	mailer := &alert.Mailer{
		Host:    alerts.RelayHost,
		Port:    alerts.RelayPort,
		From:    alerts.From,
		To:      alerts.To,
		EnvFile: alerts.EnvFile,
	}

	return mailer.Send(a.Manager.Config.Spec.StackName(), breaches)
}
