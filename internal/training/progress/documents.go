package progress

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	CompletionTimeLayout = "2006-01-02 15:04:05"
	HistoryTimeLayout    = "2006-01-02 15:04:05"
	SetsPerExercise      = 3
)

// historyMinuteLayout is how history dates were written before they kept seconds.
const historyMinuteLayout = "2006-01-02 15:04"

// Weights are the user's own working weights per exercise name.
type Weights map[string]float64

type HistoryEntry struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

func (e HistoryEntry) Time() (time.Time, error) {
	t, err := time.ParseInLocation(HistoryTimeLayout, e.Date, time.Local)
	if err != nil {
		return time.ParseInLocation(historyMinuteLayout, e.Date, time.Local)
	}
	return t, nil
}

type WeightHistory map[string][]HistoryEntry

// Completion maps "Week W Day D" to the time the workout was marked done.
type Completion map[string]string

// SetProgress maps "week{W}_day{D}" to per exercise set checkboxes.
type SetProgress map[string]map[string][SetsPerExercise]bool

type Meta struct {
	Team string `json:"team,omitempty"`
}

func CompletionKey(week, day int) string {
	return fmt.Sprintf("Week %d Day %d", week, day)
}

// ParseCompletionKey is the inverse of CompletionKey. Anything CompletionKey
// would not have written, padded numbers and extra spaces included, is rejected.
func ParseCompletionKey(key string) (week, day int, ok bool) {
	parts := strings.Fields(key)
	if len(parts) != 4 || parts[0] != "Week" || parts[2] != "Day" {
		return 0, 0, false
	}
	week, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	day, err = strconv.Atoi(parts[3])
	if err != nil || CompletionKey(week, day) != key {
		return 0, 0, false
	}
	return week, day, true
}

func SetProgressKey(week, day int) string {
	return fmt.Sprintf("week%d_day%d", week, day)
}
