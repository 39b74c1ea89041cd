package rotation

import (
	"math/rand"
	"sync"
)

const (
	ScopeTeam    = "team"
	ScopeProcess = "process"
)

// Registry hands out one Picker per team key, or a single shared one when the
// scope is ScopeProcess.
type Registry struct {
	mutex     sync.Mutex
	scope     string
	newSource func() rand.Source
	pickers   map[string]*Picker
}

// NewRegistry builds a registry. newSource may be nil, pickers then seed from the clock.
func NewRegistry(scope string, newSource func() rand.Source) *Registry {
	if scope != ScopeProcess {
		scope = ScopeTeam
	}
	return &Registry{
		scope:     scope,
		newSource: newSource,
		pickers:   make(map[string]*Picker),
	}
}

func (r *Registry) Scope() string {
	return r.scope
}

func (r *Registry) For(teamKey string) *Picker {
	if r.scope == ScopeProcess {
		teamKey = ""
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if p, ok := r.pickers[teamKey]; ok {
		return p
	}
	var src rand.Source
	if r.newSource != nil {
		src = r.newSource()
	}
	p := NewPicker(src)
	r.pickers[teamKey] = p
	return p
}
