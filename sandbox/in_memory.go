package sandbox

import (
	"context"
	"fmt"
	"sync"

	"github.com/formforge/formforge/core"
	"github.com/formforge/formforge/internal/util"
)

// InMemoryProvisioner hands out process-local sandbox handles. It tracks
// live handles so tests can assert that every acquired handle was released.
type InMemoryProvisioner struct {
	mu   sync.Mutex
	live map[string]map[string]any
}

// NewInMemoryProvisioner constructs an empty in-memory provisioner.
func NewInMemoryProvisioner() *InMemoryProvisioner {
	return &InMemoryProvisioner{live: make(map[string]map[string]any)}
}

// Acquire implements core.ResourceProvisioner.
func (p *InMemoryProvisioner) Acquire(ctx context.Context, config map[string]any) (*core.ResourceHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	id := "sbx-" + util.NewID()
	p.live[id] = config
	return &core.ResourceHandle{ID: id}, nil
}

// Release implements core.ResourceProvisioner.
func (p *InMemoryProvisioner) Release(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.live[id]; !ok {
		return fmt.Errorf("sandbox: unknown handle %q", id)
	}
	delete(p.live, id)
	return nil
}

// LiveCount returns the number of handles acquired but not yet released.
func (p *InMemoryProvisioner) LiveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.live)
}
