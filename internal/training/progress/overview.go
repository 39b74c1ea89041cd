package progress

import (
	"context"
	"sort"

	"github.com/katyrose28/workoutsched/internal/training/plan"
)

type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
	// TrendNone is reported for exercises with a single history entry.
	TrendNone Trend = ""
)

type ExerciseProgress struct {
	Exercise       string  `json:"exercise"`
	PersonalRecord float64 `json:"personal_record"`
	LastWeight     float64 `json:"last_weight"`
	Entries        int     `json:"entries"`
	Trend          Trend   `json:"trend,omitempty"`
}

type WeekProgress struct {
	Week      int `json:"week"`
	Completed int `json:"completed"`
	Possible  int `json:"possible"`
}

type Overview struct {
	User      string             `json:"user"`
	Weeks     []WeekProgress     `json:"weeks"`
	Exercises []ExerciseProgress `json:"exercises"`
}

// Overview summarizes completed workouts per week and the weight progression
// of every exercise with at least one logged weight.
func (s *Service) Overview(ctx context.Context, user string) (*Overview, error) {
	completion, err := s.Progress(ctx, user)
	if err != nil {
		return nil, err
	}
	history, err := s.WeightHistory(ctx, user)
	if err != nil {
		return nil, err
	}

	return &Overview{
		User:      userOrEmpty(user),
		Weeks:     WeekCounts(completion),
		Exercises: exerciseProgress(history),
	}, nil
}

// WeekCounts counts completed days per week. Malformed keys and days outside
// the program are ignored.
func WeekCounts(completion Completion) []WeekProgress {
	counts := make([]WeekProgress, plan.Weeks)
	for i := range counts {
		counts[i] = WeekProgress{Week: i + 1, Possible: plan.DaysPerWeek}
	}
	for key := range completion {
		week, day, ok := ParseCompletionKey(key)
		if !ok || !plan.ValidWeek(week) || !plan.ValidDay(day) {
			continue
		}
		counts[week-1].Completed++
	}
	return counts
}

func exerciseProgress(history WeightHistory) []ExerciseProgress {
	out := make([]ExerciseProgress, 0, len(history))
	for name, entries := range history {
		if len(entries) == 0 {
			continue
		}
		ep := ExerciseProgress{
			Exercise:   name,
			Entries:    len(entries),
			LastWeight: entries[len(entries)-1].Weight,
		}
		for _, e := range entries {
			if e.Weight > ep.PersonalRecord {
				ep.PersonalRecord = e.Weight
			}
		}
		if len(entries) > 1 {
			prev := entries[len(entries)-2].Weight
			switch {
			case ep.LastWeight > prev:
				ep.Trend = TrendUp
			case ep.LastWeight < prev:
				ep.Trend = TrendDown
			default:
				ep.Trend = TrendFlat
			}
		}
		out = append(out, ep)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Exercise < out[j].Exercise
	})
	return out
}

func userOrEmpty(user string) string {
	key, _ := userKey(user)
	return key
}
