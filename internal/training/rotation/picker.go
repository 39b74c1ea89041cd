package rotation

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/katyrose28/workoutsched/internal/training/catalog"
)

// recentWindow is how many of the latest picks of a group are avoided.
const recentWindow = 2

// Picker chooses exercises for a muscle group while avoiding the ones picked
// most recently for the same group. Safe for concurrent use.
type Picker struct {
	mutex   sync.Mutex
	rnd     *rand.Rand
	history map[string][]string
}

func NewPicker(src rand.Source) *Picker {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Picker{
		rnd:     rand.New(src),
		history: make(map[string][]string),
	}
}

func groupKey(group string) string {
	return strings.ToLower(strings.TrimSpace(group))
}

// Pick returns one candidate name, or "" when there are no candidates.
// The chosen name is appended to the group's history.
func (p *Picker) Pick(group string, candidates []catalog.Exercise) string {
	if len(candidates) == 0 {
		return ""
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	key := groupKey(group)
	recent := p.recentLocked(key)

	pool := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if !recent[c.Name] {
			pool = append(pool, c.Name)
		}
	}
	if len(pool) == 0 {
		for _, c := range candidates {
			pool = append(pool, c.Name)
		}
	}

	choice := pool[p.rnd.Intn(len(pool))]
	p.history[key] = append(p.history[key], choice)
	return choice
}

func (p *Picker) recentLocked(key string) map[string]bool {
	h := p.history[key]
	if len(h) > recentWindow {
		h = h[len(h)-recentWindow:]
	}
	recent := make(map[string]bool, len(h))
	for _, name := range h {
		recent[name] = true
	}
	return recent
}

// History returns a copy of the picks made for a group, oldest first.
func (p *Picker) History(group string) []string {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]string(nil), p.history[groupKey(group)]...)
}
