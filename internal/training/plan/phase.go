package plan

import "fmt"

type Phase struct {
	Week  int    `json:"week"`
	Name  string `json:"name"`
	Reps  string `json:"reps"`
	Label string `json:"label"`
}

var phases = []Phase{
	newPhase(1, "Build", "4–6"),
	newPhase(2, "Strength", "6–8"),
	newPhase(3, "Hypertrophy", "8–10"),
	newPhase(4, "Deload / Endurance", "12–15"),
}

func newPhase(week int, name, reps string) Phase {
	return Phase{
		Week:  week,
		Name:  name,
		Reps:  reps,
		Label: fmt.Sprintf("%s Phase (%s reps)", name, reps),
	}
}

func PhaseFor(week int) (Phase, bool) {
	if !ValidWeek(week) {
		return Phase{}, false
	}
	return phases[week-1], true
}

// Phases returns the program phases in week order.
func Phases() []Phase {
	return append([]Phase(nil), phases...)
}
