package phase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1"
)

type conditionalPhase struct {
	shouldrunCalled bool
	runCalled       bool
}

func (p *conditionalPhase) Title() string {
	return "conditional phase"
}

func (p *conditionalPhase) ShouldRun() bool {
	p.shouldrunCalled = true
	return false
}

func (p *conditionalPhase) Run(_ context.Context) error {
	p.runCalled = true
	return nil
}

func TestConditionalPhase(t *testing.T) {
	m := Manager{}
	p := &conditionalPhase{}
	m.AddPhase(p)
	require.NoError(t, m.Run(context.Background()))
	require.False(t, p.runCalled, "run was called")
	require.True(t, p.shouldrunCalled, "shouldrun was not called")
}

type configPhase struct {
	receivedConfig bool
}

func (p *configPhase) Title() string {
	return "config phase"
}

func (p *configPhase) Prepare(c *v1beta1.Stack) error {
	p.receivedConfig = c != nil
	return nil
}

func (p *configPhase) Run(_ context.Context) error {
	return nil
}

func TestConfigPhase(t *testing.T) {
	m := Manager{Config: &v1beta1.Stack{}}
	p := &configPhase{}
	m.AddPhase(p)
	require.NoError(t, m.Run(context.Background()))
	require.True(t, p.receivedConfig, "config was not received")
}

type hookedPhase struct {
	beforeCalled bool
	afterCalled  bool
	err          error
}

func (p *hookedPhase) Title() string {
	return "hooked phase"
}

func (p *hookedPhase) Before(_ string) error {
	p.beforeCalled = true
	return nil
}

func (p *hookedPhase) After(err error) error {
	p.afterCalled = true
	p.err = err
	return nil
}

func (p *hookedPhase) Run(_ context.Context) error {
	return fmt.Errorf("run failed")
}

func TestHookedPhase(t *testing.T) {
	m := Manager{}
	p := &hookedPhase{}
	m.AddPhase(p)
	require.Error(t, m.Run(context.Background()))
	require.True(t, p.beforeCalled, "before hook was not called")
	require.True(t, p.afterCalled, "after hook was not called")
	require.EqualError(t, p.err, "run failed")
}

type namedPhase struct {
	name string
	fail bool
	log  *[]string
}

func (p *namedPhase) Title() string {
	return p.name
}

func (p *namedPhase) Run(_ context.Context) error {
	*p.log = append(*p.log, p.name)
	if p.fail {
		return fmt.Errorf("%s failed", p.name)
	}
	return nil
}

func (p *namedPhase) CleanUp() {
	*p.log = append(*p.log, "cleanup "+p.name)
}

func TestFailFast(t *testing.T) {
	var log []string
	m := Manager{}
	m.AddPhase(
		&namedPhase{name: "first", log: &log},
		&namedPhase{name: "second", fail: true, log: &log},
		&namedPhase{name: "third", log: &log},
	)
	err := m.Run(context.Background())
	require.EqualError(t, err, "second failed")
	require.Equal(t, []string{"first", "second", "cleanup second", "cleanup first"}, log)
}
