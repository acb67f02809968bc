// Package rules holds the analysis rules shipped with jsfront.
package rules

import (
	"fmt"
	"slices"

	"jsfront/internal/check"
)

// Described is implemented by every shipped rule.
type Described interface {
	check.Rule
	Description() string
}

var constructors = []func() Described{
	func() Described { return &evalRule{} },
	func() Described { return &unusedArgumentRule{} },
	func() Described { return &debuggerRule{} },
	func() Described { return &modelPropertyRule{} },
}

// All returns fresh instances of every rule.
func All() []Described {
	out := make([]Described, 0, len(constructors))
	for _, ctor := range constructors {
		out = append(out, ctor())
	}
	return out
}

// IDs lists rule ids in registration order.
func IDs() []string {
	ids := make([]string, 0, len(constructors))
	for _, r := range All() {
		ids = append(ids, r.ID())
	}
	return ids
}

// ByID returns a fresh instance of the rule with the given id.
func ByID(id string) (Described, bool) {
	for _, r := range All() {
		if r.ID() == id {
			return r, true
		}
	}
	return nil, false
}

// NewRegistry registers the selected rules (all of them when ids is empty)
// and freezes the registry.
func NewRegistry(ids []string) (*check.Registry, error) {
	reg := check.NewRegistry()
	for _, r := range All() {
		if len(ids) > 0 && !slices.Contains(ids, r.ID()) {
			continue
		}
		if err := reg.Register(r); err != nil {
			return nil, err
		}
	}
	for _, id := range ids {
		if _, ok := ByID(id); !ok {
			return nil, fmt.Errorf("unknown rule %q", id)
		}
	}
	reg.Freeze()
	return reg, nil
}
