package plan

import (
	"sort"

	"github.com/katyrose28/workoutsched/internal/training/catalog"
)

const (
	Weeks       = 4
	DaysPerWeek = 4
)

// BaseDayPlan maps a slot label to the exercise chosen for it. It carries no
// user specific data and is shared by everyone on the same team key.
type BaseDayPlan map[string]string

// Picker picks one exercise out of the candidates of a rotation group.
type Picker interface {
	Pick(group string, candidates []catalog.Exercise) string
}

type slotBinding struct {
	slot  string
	group string
}

// The rotation group of a slot is its label, so e.g. "Upper Back" rotates
// across Back Lats on day 1 and Back Mids on day 3.
var dayTemplates = map[int][]slotBinding{
	1: {
		{"Delts", catalog.GroupDelts},
		{"Chest", catalog.GroupChest},
		{"Biceps", catalog.GroupBiceps},
		{"Butt", catalog.GroupButt},
		{"Upper Back", catalog.GroupBackLats},
		{"Abs/Upper", catalog.GroupAbsUpper},
	},
	2: {
		{"Triceps", catalog.GroupTriceps},
		{"Chest", catalog.GroupChest},
		{"Abs/Lower", catalog.GroupAbsLower},
		{"Back", catalog.GroupBackLower},
		{"Calves", catalog.GroupCalves},
		{"Thighs", catalog.GroupThighs},
	},
	3: {
		{"Delts", catalog.GroupDelts},
		{"Chest", catalog.GroupChest},
		{"Biceps", catalog.GroupBiceps},
		{"Butt", catalog.GroupButt},
		{"Upper Back", catalog.GroupBackMids},
		{"Abs/Upper", catalog.GroupAbsCombo},
	},
	4: {
		{"Triceps", catalog.GroupTriceps},
		{"Chest", catalog.GroupChest},
		{"Abs/Lower", catalog.GroupAbsLower},
		{"Back", catalog.GroupBackCombo},
		{"Calves", catalog.GroupCalves},
		{"Thighs", catalog.GroupThighs},
	},
}

func ValidWeek(week int) bool {
	return week >= 1 && week <= Weeks
}

func ValidDay(day int) bool {
	return day >= 1 && day <= DaysPerWeek
}

// Slots returns the ordered slot labels of a day, nil for an unknown day.
func Slots(day int) []string {
	template, ok := dayTemplates[day]
	if !ok {
		return nil
	}
	slots := make([]string, 0, len(template))
	for _, b := range template {
		slots = append(slots, b.slot)
	}
	return slots
}

// SlotGroup returns the catalog group bound to a slot on the given day.
func SlotGroup(day int, slot string) (string, bool) {
	for _, b := range dayTemplates[day] {
		if b.slot == slot {
			return b.group, true
		}
	}
	return "", false
}

// GenerateBaseDay picks one exercise per slot of the day template. Every call
// advances the picker history, so two calls rarely agree. An out of range
// week or day yields an empty plan.
func GenerateBaseDay(picker Picker, cat *catalog.Catalog, week, day int) BaseDayPlan {
	plan := BaseDayPlan{}
	if !ValidWeek(week) || !ValidDay(day) {
		return plan
	}

	for _, b := range dayTemplates[day] {
		candidates, _ := cat.Group(b.group)
		if name := picker.Pick(b.slot, candidates); name != "" {
			plan[b.slot] = name
		}
	}
	return plan
}

// orderedSlots lists the slots of plan in template order, then any extra
// slots alphabetically.
func orderedSlots(plan BaseDayPlan, day int) []string {
	ordered := make([]string, 0, len(plan))
	seen := make(map[string]bool, len(plan))
	for _, slot := range Slots(day) {
		if _, ok := plan[slot]; ok {
			ordered = append(ordered, slot)
			seen[slot] = true
		}
	}

	var extra []string
	for slot := range plan {
		if !seen[slot] {
			extra = append(extra, slot)
		}
	}
	sort.Strings(extra)
	return append(ordered, extra...)
}
