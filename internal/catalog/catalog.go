// Package catalog is the in-memory CardCatalog implementation: the read
// side of one-piece card data, keyed by card id.
package catalog

import (
	"github.com/optcgx/engine/internal/engine"
	"github.com/optcgx/engine/internal/parser"
)

// Registry is an in-memory, read-only engine.CardCatalog backed by a
// map built once at startup from the card list this package compiles.
type Registry struct {
	byID     map[string]*engine.CardDefinition
	all      []*engine.CardDefinition
	warnings []error
}

// NewRegistry builds a Registry from a list of card definitions,
// panicking on a duplicate id since that can only be a data bug caught
// at startup, never at runtime. A definition with no pre-compiled
// effect list falls back to compiling its printed text; text the
// parser cannot handle leaves the card effect-free, with the failure
// recorded as a warning — the printed stats still function.
func NewRegistry(defs []*engine.CardDefinition) *Registry {
	r := &Registry{byID: make(map[string]*engine.CardDefinition, len(defs))}
	for _, d := range defs {
		if _, dup := r.byID[d.ID]; dup {
			panic("catalog: duplicate card id " + d.ID)
		}
		if len(d.Effects) == 0 && d.Text != "" {
			effects, err := parser.Compile(d.ID, d.Text)
			if err != nil {
				r.warnings = append(r.warnings, err)
			} else {
				d.Effects = effects
			}
		}
		r.byID[d.ID] = d
		r.all = append(r.all, d)
	}
	return r
}

// Get returns the definition for a card id.
func (r *Registry) Get(cardID string) (*engine.CardDefinition, bool) {
	d, ok := r.byID[cardID]
	return d, ok
}

// All returns every card definition the registry knows, in load order.
func (r *Registry) All() []*engine.CardDefinition {
	return r.all
}

// Warnings returns the parser failures recorded while building the
// registry, one per card whose printed text could not be compiled.
func (r *Registry) Warnings() []error {
	return r.warnings
}

// Default builds the Registry over this package's built-in card set.
func Default() *Registry {
	return NewRegistry(AllCards())
}
