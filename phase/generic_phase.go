package phase

import (
	"context"

	"github.com/nacternals/roboshop/analytics"
	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1"
	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1/stack"
)

// GenericPhase is a basic phase which gets a config via prepare, sets it into p.Config
type GenericPhase struct {
	analytics.Phase

	Config  *v1beta1.Stack
	manager *Manager
}

// GetConfig is an accessor to phase Config
func (p *GenericPhase) GetConfig() *v1beta1.Stack {
	return p.Config
}

// Prepare the phase
func (p *GenericPhase) Prepare(c *v1beta1.Stack) error {
	p.Config = c
	return nil
}

// SetManager adds a reference to the phase manager
func (p *GenericPhase) SetManager(m *Manager) {
	p.manager = m
}

func (p *GenericPhase) parallelDo(ctx context.Context, hosts stack.Hosts, funcs ...func(context.Context, *stack.Host) error) error {
	var limit int
	if p.manager != nil {
		limit = p.manager.Concurrency
	}
	return hosts.ParallelEach(ctx, limit, funcs...)
}

func (p *GenericPhase) parallelDoUpload(ctx context.Context, hosts stack.Hosts, funcs ...func(context.Context, *stack.Host) error) error {
	var limit int
	if p.manager != nil {
		limit = p.manager.ConcurrentUploads
	}
	return hosts.ParallelEach(ctx, limit, funcs...)
}
