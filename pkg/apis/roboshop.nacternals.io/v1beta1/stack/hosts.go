package stack

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gammazero/workerpool"
)

// Hosts are a collection of Hosts
type Hosts []*Host

// First returns the first host or nil
func (hosts Hosts) First() *Host {
	if len(hosts) == 0 {
		return nil
	}
	return hosts[0]
}

// Find returns the first matching host or nil
func (hosts Hosts) Find(filter func(h *Host) bool) *Host {
	for _, h := range hosts {
		if filter(h) {
			return h
		}
	}
	return nil
}

// Filter returns a filtered collection of Hosts
func (hosts Hosts) Filter(filter func(h *Host) bool) Hosts {
	result := make(Hosts, 0, len(hosts))
	for _, h := range hosts {
		if filter(h) {
			result = append(result, h)
		}
	}
	return result
}

// WithRole returns the hosts carrying the given role
func (hosts Hosts) WithRole(role string) Hosts {
	return hosts.Filter(func(h *Host) bool {
		return h.HasRole(role)
	})
}

// Roles returns the distinct roles placed on the hosts, in placement order
func (hosts Hosts) Roles() []string {
	var roles []string
	seen := make(map[string]bool)
	for _, h := range hosts {
		for _, r := range h.Roles {
			if !seen[r] {
				seen[r] = true
				roles = append(roles, r)
			}
		}
	}
	return roles
}

// Each runs a function on every host in order, stopping at the first error
func (hosts Hosts) Each(ctx context.Context, filters ...func(context.Context, *Host) error) error {
	for _, h := range hosts {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, f := range filters {
			if err := f(ctx, h); err != nil {
				return fmt.Errorf("%s: %w", h, err)
			}
		}
	}
	return nil
}

// ParallelEach runs a function on every host concurrently with a bounded
// worker pool. Any errors are combined into one and all hosts are visited
// even when some of them fail.
func (hosts Hosts) ParallelEach(ctx context.Context, limit int, filters ...func(context.Context, *Host) error) error {
	if limit <= 0 || limit > len(hosts) {
		limit = len(hosts)
	}
	if limit == 0 {
		return nil
	}

	pool := workerpool.New(limit)
	var (
		mu   sync.Mutex
		errs []string
	)

	for _, f := range filters {
		f := f
		for _, h := range hosts {
			h := h
			pool.Submit(func() {
				if err := ctx.Err(); err != nil {
					return
				}
				if err := f(ctx, h); err != nil {
					mu.Lock()
					errs = append(errs, fmt.Sprintf("%s: %s", h, err.Error()))
					mu.Unlock()
				}
			})
		}
		pool.StopWait()
		if len(errs) > 0 {
			return fmt.Errorf("failed on %d hosts:\n - %s", len(errs), strings.Join(errs, "\n - "))
		}
		pool = workerpool.New(limit)
	}
	pool.Stop()

	return nil
}
