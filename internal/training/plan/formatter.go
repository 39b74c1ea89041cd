package plan

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/katyrose28/workoutsched/internal/training/catalog"
)

// PlannedExercise is one line of a user's day.
// Weight is the working weight (base or the user's own). SuggestedWeight is
// the week 1 "try" weight, or the halved weight in the deload week.
type PlannedExercise struct {
	Slot            string   `json:"slot"`
	Name            string   `json:"name"`
	Weight          *float64 `json:"weight,omitempty"`
	SuggestedWeight *float64 `json:"suggested_weight,omitempty"`
	Tag             string   `json:"tag,omitempty"`
	Deload          bool     `json:"deload,omitempty"`
	Display         string   `json:"display"`
}

const progressionStep = 5.0

// FormatForUser renders one exercise with the user's weight and the rule of
// the week's phase.
func FormatForUser(
	cat *catalog.Catalog,
	exerciseName, slot string,
	week int,
	weights map[string]float64,
) PlannedExercise {
	pe := PlannedExercise{
		Slot:    slot,
		Name:    exerciseName,
		Display: exerciseName,
	}

	var (
		base  catalog.Base
		known bool
	)
	if e, ok := cat.Lookup(exerciseName); ok {
		base, known = e.Base, true
	}
	if w, ok := weights[exerciseName]; ok {
		base, known = catalog.Weight(w), true
	}
	if !known {
		return pe
	}

	if base.IsGear() {
		pe.Tag = base.Tag
		pe.Display = fmt.Sprintf("%s — %s", exerciseName, capitalize(base.Tag))
		return pe
	}

	w := base.Weight
	pe.Weight = &w
	if w == 0 {
		pe.Display = fmt.Sprintf("%s — Bodyweight", exerciseName)
		return pe
	}

	switch week {
	case 1:
		try := w + progressionStep
		pe.SuggestedWeight = &try
		pe.Display = fmt.Sprintf("%s — %s lbs, try %s lbs", exerciseName, FormatWeight(w), FormatWeight(try))
	case 4:
		deload := roundHalfEven(w/2, 1)
		pe.SuggestedWeight = &deload
		pe.Deload = true
		pe.Display = fmt.Sprintf("%s — %s lbs (deload)", exerciseName, FormatWeight(deload))
	default:
		pe.Display = fmt.Sprintf("%s — %s lbs", exerciseName, FormatWeight(w))
	}
	return pe
}

// BuildUserDay renders a shared base day for one user, in template slot order.
func BuildUserDay(
	cat *catalog.Catalog,
	base BaseDayPlan,
	week, day int,
	weights map[string]float64,
) []PlannedExercise {
	out := make([]PlannedExercise, 0, len(base))
	for _, slot := range orderedSlots(base, day) {
		out = append(out, FormatForUser(cat, base[slot], slot, week, weights))
	}
	return out
}

// FormatWeight prints a weight without a trailing ".0": 100, 57.5.
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

func roundHalfEven(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.RoundToEven(v*pow) / pow
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
