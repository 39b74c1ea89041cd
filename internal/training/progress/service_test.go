package progress_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/katyrose28/workoutsched/internal/store"
	"github.com/katyrose28/workoutsched/internal/telemetry/metrics"
	"github.com/katyrose28/workoutsched/internal/training/progress"
	"github.com/katyrose28/workoutsched/pkg"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newTestService(t *testing.T) (*progress.Service, *fakeClock, *metrics.Manager, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := store.NewFileStore(dir)
	require.NoError(t, err)

	clock := &fakeClock{now: time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)}
	metricsManager := metrics.NewTestManager()
	return progress.NewService(s, metricsManager).WithClock(clock.Now), clock, metricsManager, dir
}

func TestWeights_RoundTrip(t *testing.T) {
	svc, _, metricsManager, _ := newTestService(t)
	ctx := context.Background()
	user := gofakeit.FirstName()

	weights, err := svc.Weights(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, weights)

	require.NoError(t, svc.UpdateWeight(ctx, user, "Bench Press", 105))
	require.NoError(t, svc.UpdateWeight(ctx, user, "Squat", 117.5))

	weights, err = svc.Weights(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, progress.Weights{"Bench Press": 105, "Squat": 117.5}, weights)

	// user names are normalized
	weights, err = svc.Weights(ctx, "  "+strings.ToUpper(user)+" ")
	require.NoError(t, err)
	assert.Len(t, weights, 2)

	assert.Equal(t, float64(2), testutil.ToFloat64(metricsManager.CounterWeightUpdates))
}

func TestUpdateWeight_Validation(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.UpdateWeight(ctx, "", "Squat", 100), progress.ErrEmptyUser)
	assert.ErrorIs(t, svc.UpdateWeight(ctx, "ana", "", 100), progress.ErrEmptyExercise)
	for _, w := range []float64{0, -5, 101, 2.4} {
		assert.ErrorIs(t, svc.UpdateWeight(ctx, "ana", "Squat", w), progress.ErrInvalidWeight, "%v", w)
	}
	assert.True(t, progress.ValidWeight(2.5))
	assert.True(t, progress.ValidWeight(57.5))
}

func TestWeightHistory_Dedup(t *testing.T) {
	svc, clock, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.UpdateWeight(ctx, "ana", "Squat", 120))
	clock.now = clock.now.Add(10 * time.Minute)
	require.NoError(t, svc.UpdateWeight(ctx, "ana", "Squat", 120))

	history, err := svc.WeightHistory(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, history["Squat"], 1)
	assert.Equal(t, "2026-03-02 10:00:00", history["Squat"][0].Date)

	// a different weight is always logged
	require.NoError(t, svc.UpdateWeight(ctx, "ana", "Squat", 125))
	// same weight as the first one, but more than an hour later
	clock.now = clock.now.Add(2 * time.Hour)
	require.NoError(t, svc.UpdateWeight(ctx, "ana", "Squat", 120))

	history, err = svc.WeightHistory(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, history["Squat"], 3)
	assert.Equal(t, []float64{120, 125, 120}, []float64{
		history["Squat"][0].Weight, history["Squat"][1].Weight, history["Squat"][2].Weight,
	})
}

func TestWeightHistory_DedupKeepsSeconds(t *testing.T) {
	svc, clock, _, _ := newTestService(t)
	ctx := context.Background()

	clock.now = time.Date(2026, 3, 2, 10, 0, 50, 0, time.Local)
	require.NoError(t, svc.UpdateWeight(ctx, "ana", "Squat", 135))
	clock.now = clock.now.Add(59*time.Minute + 30*time.Second)
	require.NoError(t, svc.UpdateWeight(ctx, "ana", "Squat", 135))

	history, err := svc.WeightHistory(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, history["Squat"], 1)
	assert.Equal(t, "2026-03-02 10:00:50", history["Squat"][0].Date)
}

func TestHistoryEntry_TimeAcceptsMinuteLayout(t *testing.T) {
	logged, err := progress.HistoryEntry{Date: "2026-03-02 10:05"}.Time()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 10, 5, 0, 0, time.Local), logged)

	logged, err = progress.HistoryEntry{Date: "2026-03-02 10:05:07"}.Time()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 10, 5, 7, 0, time.Local), logged)

	_, err = progress.HistoryEntry{Date: "yesterday"}.Time()
	assert.Error(t, err)
}

func TestMarkUnmark_RestoresState(t *testing.T) {
	svc, _, metricsManager, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.MarkDone(ctx, "ana", 2, 1))
	before, err := svc.Progress(ctx, "ana")
	require.NoError(t, err)

	require.NoError(t, svc.MarkDone(ctx, "ana", 3, 4))
	done, err := svc.IsDone(ctx, "ana", 3, 4)
	require.NoError(t, err)
	assert.True(t, done)

	require.NoError(t, svc.UnmarkDone(ctx, "ana", 3, 4))
	after, err := svc.Progress(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, "2026-03-02 10:00:00", after["Week 2 Day 1"])

	// unmarking twice writes nothing and counts nothing
	require.NoError(t, svc.UnmarkDone(ctx, "ana", 3, 4))
	assert.Equal(t, float64(2), testutil.ToFloat64(metricsManager.CounterWorkoutsCompleted))
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterWorkoutsUndone))
}

func TestMarkDone_Validation(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.MarkDone(ctx, "ana", 0, 1), progress.ErrInvalidWeek)
	assert.ErrorIs(t, svc.MarkDone(ctx, "ana", 1, 5), progress.ErrInvalidDay)
	assert.ErrorIs(t, svc.MarkDone(ctx, " ", 1, 1), progress.ErrEmptyUser)
}

func TestProgress_CorruptDocumentIsEmpty(t *testing.T) {
	svc, _, _, dir := newTestService(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ana_progress.json"), []byte("{{{"), 0o644))
	completion, err := svc.Progress(ctx, "ana")
	require.NoError(t, err)
	assert.Empty(t, completion)

	// and it gets overwritten by the next write
	require.NoError(t, svc.MarkDone(ctx, "ana", 1, 1))
	completion, err = svc.Progress(ctx, "ana")
	require.NoError(t, err)
	assert.Len(t, completion, 1)
}

func TestToggleSet(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	counts, err := svc.ToggleSet(ctx, "ana", 1, 2, "Kickback", 0, true)
	require.NoError(t, err)
	assert.Equal(t, progress.SetCounts{Done: 1, Total: 3}, counts)

	_, err = svc.ToggleSet(ctx, "ana", 1, 2, "Kickback", 2, true)
	require.NoError(t, err)
	counts, err = svc.ToggleSet(ctx, "ana", 1, 2, "Wide", 1, true)
	require.NoError(t, err)
	assert.Equal(t, progress.SetCounts{Done: 3, Total: 6}, counts)

	counts, err = svc.ToggleSet(ctx, "ana", 1, 2, "Kickback", 0, false)
	require.NoError(t, err)
	assert.Equal(t, progress.SetCounts{Done: 2, Total: 6}, counts)

	sets, err := svc.SetProgress(ctx, "ana", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, [3]bool{false, false, true}, sets["Kickback"])
	assert.Equal(t, [3]bool{false, true, false}, sets["Wide"])

	other, err := svc.SetProgress(ctx, "ana", 1, 3)
	require.NoError(t, err)
	assert.Empty(t, other)

	_, err = svc.ToggleSet(ctx, "ana", 1, 2, "Kickback", 3, true)
	assert.ErrorIs(t, err, progress.ErrInvalidSet)
	_, err = svc.ToggleSet(ctx, "ana", 1, 2, "Kickback", -1, true)
	assert.ErrorIs(t, err, progress.ErrInvalidSet)
}

func TestCountSets(t *testing.T) {
	dayProgress := map[string][3]bool{
		"Squat": {true, true, true},
		"Wide":  {true, false, false},
	}
	assert.Equal(t, progress.SetCounts{Done: 4, Total: 9}, progress.CountSets(dayProgress, []string{"Squat", "Wide", "Bridges"}))
}

func TestTeamsAndUsers(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetTeam(ctx, "Ana", "Morning Crew"))
	require.NoError(t, svc.SetTeam(ctx, "Bo", "morning crew "))
	require.NoError(t, svc.SetTeam(ctx, "Cy", ""))
	require.NoError(t, svc.MarkDone(ctx, "Dee", 1, 1))
	require.NoError(t, svc.UpdateWeight(ctx, "Eve", "Squat", 100))

	team, err := svc.Team(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, "morning_crew", team)

	team, err = svc.Team(ctx, "cy")
	require.NoError(t, err)
	assert.Equal(t, "", team)

	users, err := svc.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ana", "bo", "cy", "dee", "eve"}, users)

	teams, err := svc.Teams(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"morning_crew"}, teams)
}

func TestSchedulerKey(t *testing.T) {
	assert.Equal(t, "morning_crew", progress.SchedulerKey("Ana", " Morning Crew"))
	assert.Equal(t, "ana", progress.SchedulerKey(" Ana ", ""))

	name := gofakeit.Name()
	assert.Equal(t, pkg.NormalizeKey(name), progress.SchedulerKey(name, "   "))
}

func TestCompletionKey(t *testing.T) {
	assert.Equal(t, "Week 2 Day 3", progress.CompletionKey(2, 3))

	week, day, ok := progress.ParseCompletionKey("Week 2 Day 3")
	require.True(t, ok)
	assert.Equal(t, 2, week)
	assert.Equal(t, 3, day)

	for _, bad := range []string{
		"", "Week 2", "Week x Day 1", "Week 1 Day y", "Month 1 Day 1", "Week 1 Day 1 extra",
		"Week 01 Day 1", "Week +1 Day 01", " Week  1 Day 1 ", "Week 1\tDay 1",
	} {
		_, _, ok := progress.ParseCompletionKey(bad)
		assert.False(t, ok, bad)
	}
	assert.Equal(t, "week1_day2", progress.SetProgressKey(1, 2))
}
