package rotation_test

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katyrose28/workoutsched/internal/training/catalog"
	"github.com/katyrose28/workoutsched/internal/training/rotation"
)

func exercises(names ...string) []catalog.Exercise {
	out := make([]catalog.Exercise, 0, len(names))
	for _, n := range names {
		out = append(out, catalog.Exercise{Name: n, Base: catalog.Weight(10)})
	}
	return out
}

func TestPicker_AvoidsLastTwo(t *testing.T) {
	p := rotation.NewPicker(rand.NewSource(42))
	candidates := exercises("a", "b", "c", "d")

	for i := 0; i < 200; i++ {
		before := p.History("Delts")
		got := p.Pick("Delts", candidates)

		from := len(before) - 2
		if from < 0 {
			from = 0
		}
		assert.NotContains(t, before[from:], got, "pick %d", i)
	}
	assert.Len(t, p.History("Delts"), 200)
}

func TestPicker_FallsBackToFullPool(t *testing.T) {
	p := rotation.NewPicker(rand.NewSource(1))
	candidates := exercises("a", "b")

	first := p.Pick("Back", candidates)
	second := p.Pick("Back", candidates)
	assert.NotEqual(t, first, second)

	// both names are recent now, pool falls back to all candidates
	third := p.Pick("Back", candidates)
	assert.Contains(t, []string{"a", "b"}, third)

	single := exercises("only")
	for i := 0; i < 5; i++ {
		assert.Equal(t, "only", p.Pick("Solo", single))
	}
}

func TestPicker_GroupKeyNormalized(t *testing.T) {
	p := rotation.NewPicker(rand.NewSource(7))
	got := p.Pick("  Upper Back ", exercises("x", "y", "z"))
	assert.Equal(t, []string{got}, p.History("upper back"))
}

func TestPicker_Empty(t *testing.T) {
	p := rotation.NewPicker(nil)
	assert.Equal(t, "", p.Pick("Delts", nil))
	assert.Empty(t, p.History("Delts"))
}

func TestPicker_Concurrent(t *testing.T) {
	p := rotation.NewPicker(nil)
	candidates := exercises("a", "b", "c")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				p.Pick("Chest", candidates)
			}
		}()
	}
	wg.Wait()
	assert.Len(t, p.History("Chest"), 400)
}

func TestRegistry_Scopes(t *testing.T) {
	teams := rotation.NewRegistry(rotation.ScopeTeam, nil)
	require.Equal(t, rotation.ScopeTeam, teams.Scope())
	assert.Same(t, teams.For("red"), teams.For("red"))
	assert.NotSame(t, teams.For("red"), teams.For("blue"))

	process := rotation.NewRegistry(rotation.ScopeProcess, func() rand.Source { return rand.NewSource(3) })
	assert.Same(t, process.For("red"), process.For("blue"))

	unknown := rotation.NewRegistry("galaxy", nil)
	assert.Equal(t, rotation.ScopeTeam, unknown.Scope())
}
