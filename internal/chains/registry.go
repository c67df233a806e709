// Package chains provides a static chain-id to display-name registry. Names
// feed user-facing messages only; an unknown id never blocks an evaluation.
package chains

import "sync"

// Registry maps chain identifiers to display names.
type Registry struct {
	mu    sync.RWMutex
	names map[int64]string
}

// New builds a registry seeded with common networks.
func New() *Registry {
	return &Registry{
		names: map[int64]string{
			1:     "Ethereum",
			10:    "Optimism",
			56:    "BNB Smart Chain",
			137:   "Polygon",
			8453:  "Base",
			42161: "Arbitrum One",
			43114: "Avalanche",
		},
	}
}

// Register adds or replaces a chain name.
func (r *Registry) Register(chainID int64, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[chainID] = name
}

// Resolve returns the display name for a chain id.
func (r *Registry) Resolve(chainID int64) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.names[chainID]
	return name, ok
}
