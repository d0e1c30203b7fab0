package rules

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/ctclostio/tabletop-engine/internal/engine"
)

// Registry holds every rule module the process knows about, keyed by
// ID. It is read far more often than written (one registration per
// module at startup, lookups when a caller selects a module), so it is
// backed by a lock-free concurrent map rather than a mutex-guarded one.
type Registry struct {
	modules *xsync.MapOf[string, engine.RuleModule]
}

func NewRegistry() *Registry {
	return &Registry{modules: xsync.NewMapOf[string, engine.RuleModule]()}
}

// NewDefaultRegistry returns a registry pre-populated with the
// baseline d20 ruleset, the only module guaranteed to exist in every
// deployment.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewBaseline())
	return r
}

// Register adds a rule module, overwriting any prior module with the
// same ID.
func (r *Registry) Register(m engine.RuleModule) {
	r.modules.Store(m.ID(), m)
}

// Get returns the rule module for id, or an error if none is
// registered under that ID.
func (r *Registry) Get(id string) (engine.RuleModule, error) {
	m, ok := r.modules.Load(id)
	if !ok {
		return nil, fmt.Errorf("rules: no module registered with id %q", id)
	}
	return m, nil
}

// IDs returns every registered module ID, in no particular order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, r.modules.Size())
	r.modules.Range(func(id string, _ engine.RuleModule) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}
