package progress

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/katyrose28/workoutsched/internal/store"
	"github.com/katyrose28/workoutsched/internal/telemetry/metrics"
	"github.com/katyrose28/workoutsched/internal/telemetry/tracing"
	"github.com/katyrose28/workoutsched/internal/training/plan"
	"github.com/katyrose28/workoutsched/pkg"
)

const (
	weightStep        = 2.5
	historyDedupAfter = time.Hour
)

// Service reads and writes the per user documents. Reads never fail on
// missing or broken data, writes return the store error.
type Service struct {
	store          store.Store
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(s store.Store, metricsManager *metrics.Manager) *Service {
	return &Service{
		store:          s,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

// WithClock replaces the time source, used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func userKey(user string) (string, error) {
	key := pkg.NormalizeKey(user)
	if key == "" {
		return "", ErrEmptyUser
	}
	return key, nil
}

func validWeekDay(week, day int) error {
	if !plan.ValidWeek(week) {
		return fmt.Errorf("%w: %d", ErrInvalidWeek, week)
	}
	if !plan.ValidDay(day) {
		return fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}
	return nil
}

func ValidWeight(w float64) bool {
	if w <= 0 || math.IsInf(w, 0) || math.IsNaN(w) {
		return false
	}
	return math.Abs(math.Remainder(w, weightStep)) < 1e-9
}

func (s *Service) Weights(ctx context.Context, user string) (Weights, error) {
	owner, err := userKey(user)
	if err != nil {
		return nil, err
	}
	weights := Weights{}
	store.LoadJSON(ctx, s.store, owner, store.DocWeights, &weights)
	if weights == nil {
		weights = Weights{}
	}
	return weights, nil
}

// UpdateWeight stores the user's new working weight and appends it to the
// exercise history, unless the same weight was logged within the last hour.
func (s *Service) UpdateWeight(ctx context.Context, user, exercise string, weight float64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progress.updateWeight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	owner, err := userKey(user)
	if err != nil {
		return err
	}
	if exercise == "" {
		return ErrEmptyExercise
	}
	if !ValidWeight(weight) {
		return fmt.Errorf("%w: %v", ErrInvalidWeight, weight)
	}

	weights, _ := s.Weights(ctx, owner)
	weights[exercise] = weight
	if err := store.SaveJSON(ctx, s.store, owner, store.DocWeights, weights); err != nil {
		return err
	}

	if err := s.logWeightHistory(ctx, owner, exercise, weight); err != nil {
		return err
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterWeightUpdates.Inc()
	}
	log.Debugf("updated %s to %s lbs for %s", exercise, plan.FormatWeight(weight), owner)
	return nil
}

func (s *Service) logWeightHistory(ctx context.Context, owner, exercise string, weight float64) error {
	history := WeightHistory{}
	store.LoadJSON(ctx, s.store, owner, store.DocWeightHistory, &history)
	if history == nil {
		history = WeightHistory{}
	}

	now := s.now()
	for _, e := range history[exercise] {
		if e.Weight != weight {
			continue
		}
		logged, err := e.Time()
		if err != nil {
			continue
		}
		if now.Sub(logged) < historyDedupAfter {
			return nil
		}
	}

	history[exercise] = append(history[exercise], HistoryEntry{
		Date:   now.Format(HistoryTimeLayout),
		Weight: weight,
	})
	return store.SaveJSON(ctx, s.store, owner, store.DocWeightHistory, history)
}

func (s *Service) WeightHistory(ctx context.Context, user string) (WeightHistory, error) {
	owner, err := userKey(user)
	if err != nil {
		return nil, err
	}
	history := WeightHistory{}
	store.LoadJSON(ctx, s.store, owner, store.DocWeightHistory, &history)
	if history == nil {
		history = WeightHistory{}
	}
	return history, nil
}

func (s *Service) Progress(ctx context.Context, user string) (Completion, error) {
	owner, err := userKey(user)
	if err != nil {
		return nil, err
	}
	completion := Completion{}
	store.LoadJSON(ctx, s.store, owner, store.DocProgress, &completion)
	if completion == nil {
		completion = Completion{}
	}
	return completion, nil
}

func (s *Service) MarkDone(ctx context.Context, user string, week, day int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progress.markDone")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := validWeekDay(week, day); err != nil {
		return err
	}
	completion, err := s.Progress(ctx, user)
	if err != nil {
		return err
	}

	completion[CompletionKey(week, day)] = s.now().Format(CompletionTimeLayout)
	if err := store.SaveJSON(ctx, s.store, pkg.NormalizeKey(user), store.DocProgress, completion); err != nil {
		return err
	}
	if s.metricsManager != nil {
		s.metricsManager.CounterWorkoutsCompleted.Inc()
	}
	return nil
}

// UnmarkDone removes the completion of a workout. Unmarking a workout that
// was never done is a no-op and writes nothing.
func (s *Service) UnmarkDone(ctx context.Context, user string, week, day int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progress.unmarkDone")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := validWeekDay(week, day); err != nil {
		return err
	}
	completion, err := s.Progress(ctx, user)
	if err != nil {
		return err
	}

	key := CompletionKey(week, day)
	if _, ok := completion[key]; !ok {
		return nil
	}
	delete(completion, key)
	if err := store.SaveJSON(ctx, s.store, pkg.NormalizeKey(user), store.DocProgress, completion); err != nil {
		return err
	}
	if s.metricsManager != nil {
		s.metricsManager.CounterWorkoutsUndone.Inc()
	}
	return nil
}

func (s *Service) IsDone(ctx context.Context, user string, week, day int) (bool, error) {
	completion, err := s.Progress(ctx, user)
	if err != nil {
		return false, err
	}
	_, ok := completion[CompletionKey(week, day)]
	return ok, nil
}

// SetProgress returns the set checkboxes of one day.
func (s *Service) SetProgress(ctx context.Context, user string, week, day int) (map[string][SetsPerExercise]bool, error) {
	if err := validWeekDay(week, day); err != nil {
		return nil, err
	}
	sp, err := s.loadSetProgress(ctx, user)
	if err != nil {
		return nil, err
	}
	dayProgress := sp[SetProgressKey(week, day)]
	if dayProgress == nil {
		dayProgress = map[string][SetsPerExercise]bool{}
	}
	return dayProgress, nil
}

func (s *Service) loadSetProgress(ctx context.Context, user string) (SetProgress, error) {
	owner, err := userKey(user)
	if err != nil {
		return nil, err
	}
	sp := SetProgress{}
	store.LoadJSON(ctx, s.store, owner, store.DocSetProgress, &sp)
	if sp == nil {
		sp = SetProgress{}
	}
	return sp, nil
}

type SetCounts struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// CountSets counts checked sets of the given exercises, 3 possible per exercise.
func CountSets(dayProgress map[string][SetsPerExercise]bool, exercises []string) SetCounts {
	counts := SetCounts{Total: len(exercises) * SetsPerExercise}
	for _, name := range exercises {
		for _, done := range dayProgress[name] {
			if done {
				counts.Done++
			}
		}
	}
	return counts
}

// ToggleSet checks or unchecks one set and returns the day's counts over the
// exercises that have set entries.
func (s *Service) ToggleSet(
	ctx context.Context,
	user string,
	week, day int,
	exercise string,
	setIdx int,
	done bool,
) (_ SetCounts, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progress.toggleSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := validWeekDay(week, day); err != nil {
		return SetCounts{}, err
	}
	if exercise == "" {
		return SetCounts{}, ErrEmptyExercise
	}
	if setIdx < 0 || setIdx >= SetsPerExercise {
		return SetCounts{}, fmt.Errorf("%w: %d", ErrInvalidSet, setIdx)
	}

	sp, err := s.loadSetProgress(ctx, user)
	if err != nil {
		return SetCounts{}, err
	}
	key := SetProgressKey(week, day)
	if sp[key] == nil {
		sp[key] = map[string][SetsPerExercise]bool{}
	}
	sets := sp[key][exercise]
	sets[setIdx] = done
	sp[key][exercise] = sets

	if err := store.SaveJSON(ctx, s.store, pkg.NormalizeKey(user), store.DocSetProgress, sp); err != nil {
		return SetCounts{}, err
	}

	names := make([]string, 0, len(sp[key]))
	for name := range sp[key] {
		names = append(names, name)
	}
	return CountSets(sp[key], names), nil
}

func (s *Service) SetTeam(ctx context.Context, user, team string) error {
	owner, err := userKey(user)
	if err != nil {
		return err
	}
	meta := Meta{}
	store.LoadJSON(ctx, s.store, owner, store.DocMeta, &meta)
	meta.Team = pkg.NormalizeKey(team)
	return store.SaveJSON(ctx, s.store, owner, store.DocMeta, meta)
}

// Team returns the user's team, "" when training alone.
func (s *Service) Team(ctx context.Context, user string) (string, error) {
	owner, err := userKey(user)
	if err != nil {
		return "", err
	}
	meta := Meta{}
	store.LoadJSON(ctx, s.store, owner, store.DocMeta, &meta)
	return meta.Team, nil
}

// Users lists everyone with progress, weights or team membership.
func (s *Service) Users(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	for _, doc := range []store.DocType{store.DocProgress, store.DocWeights, store.DocMeta} {
		owners, err := s.store.Owners(ctx, doc)
		if err != nil {
			log.Errorf("list %s owners: %s", doc, err)
			continue
		}
		for _, o := range owners {
			if o != store.SharedOwner {
				seen[o] = true
			}
		}
	}

	users := make([]string, 0, len(seen))
	for u := range seen {
		users = append(users, u)
	}
	sort.Strings(users)
	return users, nil
}

// Teams lists the distinct non empty teams users have joined.
func (s *Service) Teams(ctx context.Context) ([]string, error) {
	owners, err := s.store.Owners(ctx, store.DocMeta)
	if err != nil {
		log.Errorf("list meta owners: %s", err)
		return []string{}, nil
	}
	seen := map[string]bool{}
	for _, o := range owners {
		if team, _ := s.Team(ctx, o); team != "" {
			seen[team] = true
		}
	}
	teams := make([]string, 0, len(seen))
	for t := range seen {
		teams = append(teams, t)
	}
	sort.Strings(teams)
	return teams, nil
}

// SchedulerKey resolves whose shared plans a user follows: the team when one
// is given, the user's own name otherwise.
func SchedulerKey(user, team string) string {
	if key := pkg.NormalizeKey(team); key != "" {
		return key
	}
	return pkg.NormalizeKey(user)
}
