package phase

import (
	"context"

	"github.com/logrusorgru/aurora"
	log "github.com/sirupsen/logrus"

	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1"
)

// Force makes the validation phases advisory instead of fatal
var Force bool

// Colorize is an instance of "aurora", disable colors with aurora.NewAurora(false)
var Colorize = aurora.NewAurora(false)

type phase interface {
	Run(ctx context.Context) error
	Title() string
}

type withconfig interface {
	Prepare(*v1beta1.Stack) error
}

type conditional interface {
	ShouldRun() bool
}

// beforehook receives the phase title before the phase runs
type beforehook interface {
	Before(string) error
}

// afterhook receives the phase result after the phase has run
type afterhook interface {
	After(error) error
}

type withcleanup interface {
	CleanUp()
}

type withmanager interface {
	SetManager(*Manager)
}

// Manager executes phases to provision the stack
type Manager struct {
	phases []phase
	Config *v1beta1.Stack

	Concurrency       int
	ConcurrentUploads int
}

// NewManager creates a new Manager
func NewManager(config *v1beta1.Stack) *Manager {
	return &Manager{
		Config:            config,
		Concurrency:       30,
		ConcurrentUploads: 5,
	}
}

// AddPhase adds a Phase to Manager
func (m *Manager) AddPhase(p ...phase) {
	m.phases = append(m.phases, p...)
}

// Run executes all the added Phases in order
func (m *Manager) Run(ctx context.Context) error {
	var ran []phase
	var result error

	defer func() {
		if result != nil {
			for i := len(ran) - 1; i >= 0; i-- {
				if c, ok := ran[i].(withcleanup); ok {
					c.CleanUp()
				}
			}
		}
	}()

	for _, p := range m.phases {
		title := p.Title()

		if p, ok := p.(withmanager); ok {
			p.SetManager(m)
		}

		if p, ok := p.(withconfig); ok {
			log.Debugf("preparing phase '%s'", title)
			if err := p.Prepare(m.Config); err != nil {
				return err
			}
		}

		if p, ok := p.(conditional); ok {
			if !p.ShouldRun() {
				log.Debugf("skipping phase '%s'", title)
				continue
			}
		}

		if p, ok := p.(beforehook); ok {
			if err := p.Before(title); err != nil {
				log.Debugf("before hook failed '%s'", err.Error())
				return err
			}
		}

		text := Colorize.Green("==> Running phase: %s").String()
		log.Infof(text, title)
		ran = append(ran, p)
		result = p.Run(ctx)

		if p, ok := p.(afterhook); ok {
			if err := p.After(result); err != nil {
				log.Debugf("after hook failed: '%s' (phase result: %v)", err.Error(), result)
			}
		}

		if result != nil {
			return result
		}
	}

	return nil
}
