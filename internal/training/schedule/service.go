package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/katyrose28/workoutsched/internal/cache"
	"github.com/katyrose28/workoutsched/internal/store"
	"github.com/katyrose28/workoutsched/internal/telemetry/metrics"
	"github.com/katyrose28/workoutsched/internal/telemetry/tracing"
	"github.com/katyrose28/workoutsched/internal/training/catalog"
	"github.com/katyrose28/workoutsched/internal/training/plan"
	"github.com/katyrose28/workoutsched/internal/training/progress"
	"github.com/katyrose28/workoutsched/internal/training/rotation"
	"github.com/katyrose28/workoutsched/pkg"
)

// SharedPlans is the shared_plans document: "{teamKey}_week{W}_day{D}" to base day.
type SharedPlans map[string]plan.BaseDayPlan

// Rendered is the schedule document of a team key: last rendered day per
// "week{W}" and "day{D}", kept for inspection. Every day view rewrites its
// entry, so it holds the weights of whichever member viewed that day last.
type Rendered map[string]map[string][]plan.PlannedExercise

// Revisions is the plan_revisions document of a team key: a counter per
// "week{W}" bumped on every regeneration. Cached base days are keyed by it,
// so a regeneration done by another process is seen on the next view.
type Revisions map[string]int

func SharedKey(teamKey string, week, day int) string {
	return fmt.Sprintf("%s_week%d_day%d", teamKey, week, day)
}

// CacheKey is the plan cache key of a base day at a given revision.
func CacheKey(teamKey string, week, day, revision int) string {
	return fmt.Sprintf("%s@%d", SharedKey(teamKey, week, day), revision)
}

func weekKey(week int) string {
	return fmt.Sprintf("week%d", week)
}

type DayPlan struct {
	User          string                 `json:"user"`
	TeamKey       string                 `json:"team_key"`
	Week          int                    `json:"week"`
	Day           int                    `json:"day"`
	Phase         plan.Phase             `json:"phase"`
	Exercises     []plan.PlannedExercise `json:"exercises"`
	Done          bool                   `json:"done"`
	Sets          progress.SetCounts     `json:"sets"`
	WeekCompleted int                    `json:"week_completed"`
}

type WeekPlan struct {
	Week  int        `json:"week"`
	Phase plan.Phase `json:"phase"`
	Days  []*DayPlan `json:"days"`
}

type Service struct {
	// guards get-or-generate of shared base days within this process
	mutex sync.Mutex

	store          store.Store
	planCache      *cache.PlanCache
	catalog        *catalog.Catalog
	pickers        *rotation.Registry
	progress       *progress.Service
	metricsManager *metrics.Manager
}

type NewServiceParams struct {
	Store          store.Store
	PlanCache      *cache.PlanCache
	Catalog        *catalog.Catalog
	Pickers        *rotation.Registry
	Progress       *progress.Service
	MetricsManager *metrics.Manager
}

func NewService(params NewServiceParams) *Service {
	return &Service{
		store:          params.Store,
		planCache:      params.PlanCache,
		catalog:        params.Catalog,
		pickers:        params.Pickers,
		progress:       params.Progress,
		metricsManager: params.MetricsManager,
	}
}

// TeamKey picks the schedule a user follows: the given team, else the team
// the user joined, else the user alone.
func (s *Service) TeamKey(ctx context.Context, user, team string) string {
	if pkg.NormalizeKey(team) == "" {
		team, _ = s.progress.Team(ctx, user)
	}
	return progress.SchedulerKey(user, team)
}

func validate(user string, week, day int) error {
	if pkg.NormalizeKey(user) == "" {
		return progress.ErrEmptyUser
	}
	if !plan.ValidWeek(week) {
		return fmt.Errorf("%w: %d", progress.ErrInvalidWeek, week)
	}
	if !plan.ValidDay(day) {
		return fmt.Errorf("%w: %d", progress.ErrInvalidDay, day)
	}
	return nil
}

// BaseDay returns the shared base day of a team key, generating and storing
// it on first access.
func (s *Service) BaseDay(ctx context.Context, teamKey string, week, day int) (_ plan.BaseDayPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "schedule.baseDay")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	key := SharedKey(teamKey, week, day)
	cacheKey := CacheKey(teamKey, week, day, s.revision(ctx, teamKey, week))
	if base, ok := s.cached(cacheKey); ok {
		return base, nil
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	shared := SharedPlans{}
	store.LoadJSON(ctx, s.store, store.SharedOwner, store.DocSharedPlans, &shared)
	if shared == nil {
		shared = SharedPlans{}
	}
	if base := shared[key]; len(base) > 0 {
		s.cache(cacheKey, base)
		return base, nil
	}

	base := plan.GenerateBaseDay(s.pickers.For(teamKey), s.catalog, week, day)
	shared[key] = base
	if err := store.SaveJSON(ctx, s.store, store.SharedOwner, store.DocSharedPlans, shared); err != nil {
		return nil, err
	}
	s.cache(cacheKey, base)

	if s.metricsManager != nil {
		s.metricsManager.CounterPlansGenerated.WithLabelValues(strconv.Itoa(week)).Inc()
	}
	log.Debugf("generated base day %s: %v", key, base)
	return base, nil
}

func (s *Service) revision(ctx context.Context, teamKey string, week int) int {
	revisions := Revisions{}
	store.LoadJSON(ctx, s.store, teamKey, store.DocPlanRevisions, &revisions)
	return revisions[weekKey(week)]
}

func (s *Service) cached(key string) (plan.BaseDayPlan, bool) {
	if s.planCache == nil {
		return nil, false
	}
	raw, ok := s.planCache.Get(key)
	if !ok {
		return nil, false
	}
	var base plan.BaseDayPlan
	if err := json.Unmarshal(raw, &base); err != nil {
		log.Warnf("plan cache: bad entry [%s]: %s", key, err)
		s.planCache.Del(key)
		return nil, false
	}
	return base, true
}

func (s *Service) cache(key string, base plan.BaseDayPlan) {
	if s.planCache == nil {
		return
	}
	raw, err := json.Marshal(base)
	if err != nil {
		return
	}
	s.planCache.Set(key, raw)
}

// DayPlan renders the team's shared day with the user's own weights.
func (s *Service) DayPlan(ctx context.Context, user, teamKey string, week, day int) (_ *DayPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "schedule.dayPlan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := validate(user, week, day); err != nil {
		return nil, err
	}
	owner := pkg.NormalizeKey(user)
	if teamKey = pkg.NormalizeKey(teamKey); teamKey == "" {
		teamKey = owner
	}

	base, err := s.BaseDay(ctx, teamKey, week, day)
	if err != nil {
		return nil, err
	}

	weights, _ := s.progress.Weights(ctx, owner)
	exercises := plan.BuildUserDay(s.catalog, base, week, day, weights)
	phase, _ := plan.PhaseFor(week)

	completion, _ := s.progress.Progress(ctx, owner)
	_, done := completion[progress.CompletionKey(week, day)]
	sets, _ := s.progress.SetProgress(ctx, owner, week, day)
	names := make([]string, 0, len(exercises))
	for _, e := range exercises {
		names = append(names, e.Name)
	}

	dp := &DayPlan{
		User:          owner,
		TeamKey:       teamKey,
		Week:          week,
		Day:           day,
		Phase:         phase,
		Exercises:     exercises,
		Done:          done,
		Sets:          progress.CountSets(sets, names),
		WeekCompleted: progress.WeekCounts(completion)[week-1].Completed,
	}

	s.saveRendered(ctx, teamKey, week, day, exercises)
	return dp, nil
}

func (s *Service) saveRendered(ctx context.Context, teamKey string, week, day int, exercises []plan.PlannedExercise) {
	rendered := Rendered{}
	store.LoadJSON(ctx, s.store, teamKey, store.DocSchedule, &rendered)
	if rendered == nil {
		rendered = Rendered{}
	}
	wk := weekKey(week)
	if rendered[wk] == nil {
		rendered[wk] = map[string][]plan.PlannedExercise{}
	}
	rendered[wk][fmt.Sprintf("day%d", day)] = exercises
	if err := store.SaveJSON(ctx, s.store, teamKey, store.DocSchedule, rendered); err != nil {
		log.Errorf("save rendered schedule [%s]: %s", teamKey, err)
	}
}

// WeekPlan renders all four days of a week.
func (s *Service) WeekPlan(ctx context.Context, user, teamKey string, week int) (*WeekPlan, error) {
	if err := validate(user, week, 1); err != nil {
		return nil, err
	}
	phase, _ := plan.PhaseFor(week)
	wp := &WeekPlan{Week: week, Phase: phase}
	for day := 1; day <= plan.DaysPerWeek; day++ {
		dp, err := s.DayPlan(ctx, user, teamKey, week, day)
		if err != nil {
			return nil, err
		}
		wp.Days = append(wp.Days, dp)
	}
	return wp, nil
}

// FullSchedule renders the whole four week program.
func (s *Service) FullSchedule(ctx context.Context, user, teamKey string) ([]*WeekPlan, error) {
	weeks := make([]*WeekPlan, 0, plan.Weeks)
	for week := 1; week <= plan.Weeks; week++ {
		wp, err := s.WeekPlan(ctx, user, teamKey, week)
		if err != nil {
			return nil, err
		}
		weeks = append(weeks, wp)
	}
	return weeks, nil
}

// RegenerateWeek drops the team's shared base days of a week, so the next
// view picks fresh exercises. This affects every member of the team.
func (s *Service) RegenerateWeek(ctx context.Context, teamKey string, week int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "schedule.regenerateWeek")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if teamKey = pkg.NormalizeKey(teamKey); teamKey == "" {
		return progress.ErrEmptyUser
	}
	if !plan.ValidWeek(week) {
		return fmt.Errorf("%w: %d", progress.ErrInvalidWeek, week)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	shared := SharedPlans{}
	store.LoadJSON(ctx, s.store, store.SharedOwner, store.DocSharedPlans, &shared)
	if shared == nil {
		shared = SharedPlans{}
	}
	rev := s.revision(ctx, teamKey, week)
	for day := 1; day <= plan.DaysPerWeek; day++ {
		delete(shared, SharedKey(teamKey, week, day))
		if s.planCache != nil {
			s.planCache.Del(CacheKey(teamKey, week, day, rev))
		}
	}
	if err := store.SaveJSON(ctx, s.store, store.SharedOwner, store.DocSharedPlans, shared); err != nil {
		return err
	}

	// bumped after the plans are gone, so no process can cache a dropped
	// plan under the new revision
	revisions := Revisions{}
	store.LoadJSON(ctx, s.store, teamKey, store.DocPlanRevisions, &revisions)
	if revisions == nil {
		revisions = Revisions{}
	}
	revisions[weekKey(week)] = rev + 1
	if err := store.SaveJSON(ctx, s.store, teamKey, store.DocPlanRevisions, revisions); err != nil {
		return err
	}

	rendered := Rendered{}
	if store.LoadJSON(ctx, s.store, teamKey, store.DocSchedule, &rendered) {
		delete(rendered, weekKey(week))
		if err := store.SaveJSON(ctx, s.store, teamKey, store.DocSchedule, rendered); err != nil {
			return err
		}
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterWeeksRegenerated.Inc()
	}
	log.Infof("regenerated week %d for [%s]", week, teamKey)
	return nil
}
