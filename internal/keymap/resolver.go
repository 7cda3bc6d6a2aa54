package keymap

import "slices"

// Resolver maps key strings to actions, scoped by binding context.
type Resolver struct {
	byContext map[string]map[string]Action
	byAction  map[Action][]string
}

// NewResolver creates a resolver from bindings. A key bound twice in the
// same context resolves to the later binding.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		byContext: make(map[string]map[string]Action),
		byAction:  make(map[Action][]string),
	}
	for _, b := range bindings {
		keys := r.byContext[b.Context]
		if keys == nil {
			keys = make(map[string]Action)
			r.byContext[b.Context] = keys
		}
		for _, k := range b.Keys {
			keys[k] = b.Action
			if !slices.Contains(r.byAction[b.Action], k) {
				r.byAction[b.Action] = append(r.byAction[b.Action], k)
			}
		}
	}
	return r
}

// Resolve returns the action bound to key in the first context that has
// one. With no contexts given, every context is searched in unspecified
// order. Returns "" when nothing matches.
func (r *Resolver) Resolve(key string, contexts ...string) Action {
	if len(contexts) == 0 {
		for _, keys := range r.byContext {
			if a, ok := keys[key]; ok {
				return a
			}
		}
		return ""
	}
	for _, ctx := range contexts {
		if a, ok := r.byContext[ctx][key]; ok {
			return a
		}
	}
	return ""
}

// KeysFor returns the keys bound to an action, first binding first.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}
