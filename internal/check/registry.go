package check

import (
	"errors"
	"fmt"
	"sync"

	"jsfront/internal/ast"
)

var ErrFrozen = errors.New("check: registry is frozen")

type subscriber struct {
	rule    string
	onEnter Callback
	onExit  Callback
}

// Registry keeps rules in registration order. The same rule registered twice
// is dispatched twice per matching node. After Freeze it is read-only and may
// be shared by concurrent traversals.
type Registry struct {
	mu     sync.Mutex
	rules  []*funcRule
	frozen bool
	table  [ast.KindCount][]subscriber
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a rule implementing EnterRule, ExitRule or both.
func (r *Registry) Register(rule Rule) error {
	if rule == nil {
		return errors.New("check: nil rule")
	}
	fr := &funcRule{id: rule.ID(), kinds: rule.Kinds()}
	if er, ok := rule.(EnterRule); ok {
		fr.onEnter = er.Enter
	}
	if xr, ok := rule.(ExitRule); ok {
		fr.onExit = xr.Exit
	}
	return r.add(fr)
}

// RegisterFunc adds a rule built from plain callbacks; either may be nil.
func (r *Registry) RegisterFunc(id string, kinds []ast.Selector, onEnter, onExit Callback) error {
	return r.add(&funcRule{id: id, kinds: kinds, onEnter: onEnter, onExit: onExit})
}

func (r *Registry) add(fr *funcRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case r.frozen:
		return fmt.Errorf("%w: cannot register %q", ErrFrozen, fr.id)
	case fr.id == "":
		return errors.New("check: rule id is empty")
	case len(fr.kinds) == 0:
		return fmt.Errorf("check: rule %q subscribes to no node kinds", fr.id)
	case fr.onEnter == nil && fr.onExit == nil:
		return fmt.Errorf("check: rule %q has neither enter nor exit callback", fr.id)
	}
	if len(ast.Expand(fr.kinds...)) == 0 {
		return fmt.Errorf("check: rule %q selects no valid node kind", fr.id)
	}
	r.rules = append(r.rules, fr)
	return nil
}

// Freeze builds the per-kind subscription table. It is idempotent.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return
	}
	for _, fr := range r.rules {
		for _, k := range ast.Expand(fr.kinds...) {
			r.table[k] = append(r.table[k], subscriber{rule: fr.id, onEnter: fr.onEnter, onExit: fr.onExit})
		}
	}
	r.frozen = true
}

func (r *Registry) Frozen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frozen
}

// IDs returns rule ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, len(r.rules))
	for i, fr := range r.rules {
		ids[i] = fr.id
	}
	return ids
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rules)
}

func (r *Registry) subscribers(k ast.Kind) []subscriber {
	return r.table[k]
}
