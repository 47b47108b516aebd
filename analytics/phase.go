package analytics

import (
	"sync"
	"time"
)

// Phase collects per-phase datapoints that get published as a
// phase-success or phase-failure event once the phase finishes.
type Phase struct {
	mu    sync.Mutex
	props map[string]interface{}
	start time.Time
}

// IncProp increases a numeric datapoint, creating one if it didn't exist
func (p *Phase) IncProp(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	val, _ := p.props[key].(uint32)
	p.props[key] = val + 1
}

// SetProp sets a value to a datapoint by key
func (p *Phase) SetProp(key string, value interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.props[key] = value
}

// Before resets the datapoints and records the phase start time
func (p *Phase) Before(title string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.props = map[string]interface{}{"name": title}
	p.start = time.Now()

	return nil
}

// After publishes the collected datapoints along with the phase outcome
func (p *Phase) After(result error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.props["duration"] = time.Since(p.start)

	event := "phase-success"
	if result != nil {
		event = "phase-failure"
	}

	return Client.Publish(event, p.props)
}
