package training

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/katyrose28/workoutsched/internal/middleware"
	"github.com/katyrose28/workoutsched/internal/telemetry/metrics"
	"github.com/katyrose28/workoutsched/internal/telemetry/tracing"
	"github.com/katyrose28/workoutsched/internal/training/catalog"
	"github.com/katyrose28/workoutsched/internal/training/leaderboard"
	"github.com/katyrose28/workoutsched/internal/training/plan"
	"github.com/katyrose28/workoutsched/internal/training/progress"
	"github.com/katyrose28/workoutsched/internal/training/schedule"
	"github.com/katyrose28/workoutsched/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=training_test

type scheduleService interface {
	TeamKey(ctx context.Context, user, team string) string
	DayPlan(ctx context.Context, user, teamKey string, week, day int) (*schedule.DayPlan, error)
	WeekPlan(ctx context.Context, user, teamKey string, week int) (*schedule.WeekPlan, error)
	FullSchedule(ctx context.Context, user, teamKey string) ([]*schedule.WeekPlan, error)
	RegenerateWeek(ctx context.Context, teamKey string, week int) error
}

type progressService interface {
	Weights(ctx context.Context, user string) (progress.Weights, error)
	UpdateWeight(ctx context.Context, user, exercise string, weight float64) error
	WeightHistory(ctx context.Context, user string) (progress.WeightHistory, error)
	MarkDone(ctx context.Context, user string, week, day int) error
	UnmarkDone(ctx context.Context, user string, week, day int) error
	Overview(ctx context.Context, user string) (*progress.Overview, error)
	SetProgress(ctx context.Context, user string, week, day int) (map[string][progress.SetsPerExercise]bool, error)
	ToggleSet(ctx context.Context, user string, week, day int, exercise string, setIdx int, done bool) (progress.SetCounts, error)
	SetTeam(ctx context.Context, user, team string) error
}

type leaderboardBuilder interface {
	Build(ctx context.Context) (*leaderboard.Board, error)
}

type WeightsResponse struct {
	User    string           `json:"user"`
	Weights progress.Weights `json:"weights"`
}

type UpdateWeightRequest struct {
	Exercise string  `json:"exercise"`
	Weight   float64 `json:"weight"`
}

type WeightHistoryResponse struct {
	User    string                 `json:"user"`
	History progress.WeightHistory `json:"history"`
}

type DoneResponse struct {
	User string `json:"user"`
	Week int    `json:"week"`
	Day  int    `json:"day"`
	Done bool   `json:"done"`
}

type SetsResponse struct {
	User   string                                    `json:"user"`
	Week   int                                       `json:"week"`
	Day    int                                       `json:"day"`
	Sets   map[string][progress.SetsPerExercise]bool `json:"sets"`
	Counts progress.SetCounts                        `json:"counts"`
}

type ToggleSetRequest struct {
	Exercise string `json:"exercise"`
	Set      int    `json:"set"`
	Done     bool   `json:"done"`
}

type TeamRequest struct {
	Team string `json:"team"`
}

type TeamResponse struct {
	User    string `json:"user"`
	TeamKey string `json:"team_key"`
}

type RegenerateResponse struct {
	TeamKey string `json:"team_key"`
	Week    int    `json:"week"`
}

type LeaderboardResponse struct {
	*leaderboard.Board
	Checklists map[string][plan.Weeks]string `json:"checklists"`
	// Rank of the ?user= query param, 0 when absent or unknown.
	Rank int `json:"rank,omitempty"`
}

type Handler struct {
	schedule    scheduleService
	progress    progressService
	leaderboard leaderboardBuilder
	catalog     *catalog.Catalog
}

func NewHandler(
	schedule scheduleService,
	progress progressService,
	leaderboard leaderboardBuilder,
	catalog *catalog.Catalog,
) *Handler {
	return &Handler{
		schedule:    schedule,
		progress:    progress,
		leaderboard: leaderboard,
		catalog:     catalog,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	writesPerMin int,
) {
	r := mainRouter.PathPrefix("/training").Subrouter()

	r.HandleFunc("/users/{user}/week/{week}/day/{day}", handler.HandleDayPlan).Methods("GET", "OPTIONS").Name("day-plan")
	r.HandleFunc("/users/{user}/week/{week}", handler.HandleWeekPlan).Methods("GET", "OPTIONS").Name("week-plan")
	r.HandleFunc("/users/{user}/schedule", handler.HandleFullSchedule).Methods("GET", "OPTIONS").Name("full-schedule")
	r.HandleFunc("/teams/{team}/week/{week}/regenerate", handler.HandleRegenerateWeek).Methods("POST", "OPTIONS").Name("regenerate-week")

	r.HandleFunc("/users/{user}/weights", handler.HandleWeights).Methods("GET", "OPTIONS").Name("weights")
	r.HandleFunc("/users/{user}/weights", handler.HandleUpdateWeight).Methods("PUT", "OPTIONS").Name("update-weight")
	r.HandleFunc("/users/{user}/weights/history", handler.HandleWeightHistory).Methods("GET", "OPTIONS").Name("weight-history")

	r.HandleFunc("/users/{user}/week/{week}/day/{day}/done", handler.HandleMarkDone).Methods("POST", "OPTIONS").Name("mark-done")
	r.HandleFunc("/users/{user}/week/{week}/day/{day}/done", handler.HandleUnmarkDone).Methods("DELETE", "OPTIONS").Name("unmark-done")
	r.HandleFunc("/users/{user}/progress", handler.HandleProgress).Methods("GET", "OPTIONS").Name("progress")

	r.HandleFunc("/users/{user}/week/{week}/day/{day}/sets", handler.HandleSets).Methods("GET", "OPTIONS").Name("sets")
	r.HandleFunc("/users/{user}/week/{week}/day/{day}/sets", handler.HandleToggleSet).Methods("PUT", "OPTIONS").Name("toggle-set")
	r.HandleFunc("/users/{user}/team", handler.HandleSetTeam).Methods("PUT", "OPTIONS").Name("set-team")

	r.HandleFunc("/leaderboard", handler.HandleLeaderboard).Methods("GET", "OPTIONS").Name("leaderboard")
	r.HandleFunc("/catalog", handler.HandleCatalog).Methods("GET", "OPTIONS").Name("catalog")
	r.HandleFunc("/phases", handler.HandlePhases).Methods("GET", "OPTIONS").Name("phases")

	r.Use(middleware.RateLimit(rateLimiter, "training", writesPerMin, metricsManager))
}

func (handler *Handler) HandleDayPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.dayPlan")
	defer span.End()

	user, week, day, ok := userWeekDay(w, r)
	if !ok {
		return
	}

	teamKey := handler.schedule.TeamKey(ctx, user, r.URL.Query().Get("team"))
	dp, err := handler.schedule.DayPlan(ctx, user, teamKey, week, day)
	if err != nil {
		log.Errorf("day plan [%s] week %d day %d: %s", user, week, day, err)
		http.Error(w, "failed to get day plan", errStatus(err))
		return
	}
	writeJSON(w, dp, http.StatusOK)
}

func (handler *Handler) HandleWeekPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.weekPlan")
	defer span.End()

	user, ok := pathUser(w, r)
	if !ok {
		return
	}
	week, ok := pathInt(w, r, "week")
	if !ok {
		return
	}

	teamKey := handler.schedule.TeamKey(ctx, user, r.URL.Query().Get("team"))
	wp, err := handler.schedule.WeekPlan(ctx, user, teamKey, week)
	if err != nil {
		log.Errorf("week plan [%s] week %d: %s", user, week, err)
		http.Error(w, "failed to get week plan", errStatus(err))
		return
	}
	writeJSON(w, wp, http.StatusOK)
}

func (handler *Handler) HandleFullSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.fullSchedule")
	defer span.End()

	user, ok := pathUser(w, r)
	if !ok {
		return
	}

	teamKey := handler.schedule.TeamKey(ctx, user, r.URL.Query().Get("team"))
	weeks, err := handler.schedule.FullSchedule(ctx, user, teamKey)
	if err != nil {
		log.Errorf("full schedule [%s]: %s", user, err)
		http.Error(w, "failed to get schedule", errStatus(err))
		return
	}
	writeJSON(w, weeks, http.StatusOK)
}

func (handler *Handler) HandleRegenerateWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.regenerateWeek")
	defer span.End()

	teamKey := pkg.NormalizeKey(mux.Vars(r)["team"])
	if teamKey == "" {
		http.Error(w, "error, team empty", http.StatusBadRequest)
		return
	}
	week, ok := pathInt(w, r, "week")
	if !ok {
		return
	}

	if err := handler.schedule.RegenerateWeek(ctx, teamKey, week); err != nil {
		log.Errorf("regenerate week %d for [%s]: %s", week, teamKey, err)
		http.Error(w, "failed to regenerate week", errStatus(err))
		return
	}
	writeJSON(w, RegenerateResponse{TeamKey: teamKey, Week: week}, http.StatusOK)
}

func (handler *Handler) HandleWeights(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.weights")
	defer span.End()

	user, ok := pathUser(w, r)
	if !ok {
		return
	}
	weights, err := handler.progress.Weights(ctx, user)
	if err != nil {
		http.Error(w, "failed to get weights", errStatus(err))
		return
	}
	writeJSON(w, WeightsResponse{User: user, Weights: weights}, http.StatusOK)
}

func (handler *Handler) HandleUpdateWeight(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.updateWeight")
	defer span.End()

	user, ok := pathUser(w, r)
	if !ok {
		return
	}
	var req UpdateWeightRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := handler.progress.UpdateWeight(ctx, user, req.Exercise, req.Weight); err != nil {
		log.Errorf("update weight [%s] %s=%v: %s", user, req.Exercise, req.Weight, err)
		http.Error(w, "failed to update weight", errStatus(err))
		return
	}

	weights, _ := handler.progress.Weights(ctx, user)
	writeJSON(w, WeightsResponse{User: user, Weights: weights}, http.StatusOK)
}

func (handler *Handler) HandleWeightHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.weightHistory")
	defer span.End()

	user, ok := pathUser(w, r)
	if !ok {
		return
	}
	history, err := handler.progress.WeightHistory(ctx, user)
	if err != nil {
		http.Error(w, "failed to get weight history", errStatus(err))
		return
	}
	writeJSON(w, WeightHistoryResponse{User: user, History: history}, http.StatusOK)
}

func (handler *Handler) HandleMarkDone(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.markDone")
	defer span.End()

	user, week, day, ok := userWeekDay(w, r)
	if !ok {
		return
	}
	if err := handler.progress.MarkDone(ctx, user, week, day); err != nil {
		log.Errorf("mark done [%s] week %d day %d: %s", user, week, day, err)
		http.Error(w, "failed to mark workout done", errStatus(err))
		return
	}
	writeJSON(w, DoneResponse{User: user, Week: week, Day: day, Done: true}, http.StatusOK)
}

func (handler *Handler) HandleUnmarkDone(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.unmarkDone")
	defer span.End()

	user, week, day, ok := userWeekDay(w, r)
	if !ok {
		return
	}
	if err := handler.progress.UnmarkDone(ctx, user, week, day); err != nil {
		log.Errorf("unmark done [%s] week %d day %d: %s", user, week, day, err)
		http.Error(w, "failed to unmark workout", errStatus(err))
		return
	}
	writeJSON(w, DoneResponse{User: user, Week: week, Day: day, Done: false}, http.StatusOK)
}

func (handler *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.progress")
	defer span.End()

	user, ok := pathUser(w, r)
	if !ok {
		return
	}
	overview, err := handler.progress.Overview(ctx, user)
	if err != nil {
		http.Error(w, "failed to get progress", errStatus(err))
		return
	}
	writeJSON(w, overview, http.StatusOK)
}

func (handler *Handler) HandleSets(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.sets")
	defer span.End()

	user, week, day, ok := userWeekDay(w, r)
	if !ok {
		return
	}
	sets, err := handler.progress.SetProgress(ctx, user, week, day)
	if err != nil {
		http.Error(w, "failed to get set progress", errStatus(err))
		return
	}

	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	writeJSON(w, SetsResponse{
		User:   user,
		Week:   week,
		Day:    day,
		Sets:   sets,
		Counts: progress.CountSets(sets, names),
	}, http.StatusOK)
}

func (handler *Handler) HandleToggleSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.toggleSet")
	defer span.End()

	user, week, day, ok := userWeekDay(w, r)
	if !ok {
		return
	}
	var req ToggleSetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	counts, err := handler.progress.ToggleSet(ctx, user, week, day, req.Exercise, req.Set, req.Done)
	if err != nil {
		log.Errorf("toggle set [%s] week %d day %d %s #%d: %s", user, week, day, req.Exercise, req.Set, err)
		http.Error(w, "failed to toggle set", errStatus(err))
		return
	}
	writeJSON(w, counts, http.StatusOK)
}

func (handler *Handler) HandleSetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.setTeam")
	defer span.End()

	user, ok := pathUser(w, r)
	if !ok {
		return
	}
	var req TeamRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := handler.progress.SetTeam(ctx, user, req.Team); err != nil {
		log.Errorf("set team [%s] -> [%s]: %s", user, req.Team, err)
		http.Error(w, "failed to set team", errStatus(err))
		return
	}
	writeJSON(w, TeamResponse{
		User:    user,
		TeamKey: progress.SchedulerKey(user, req.Team),
	}, http.StatusOK)
}

func (handler *Handler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.leaderboard")
	defer span.End()

	board, err := handler.leaderboard.Build(ctx)
	if err != nil {
		log.Errorf("build leaderboard: %s", err)
		http.Error(w, "failed to build leaderboard", http.StatusInternalServerError)
		return
	}

	resp := LeaderboardResponse{
		Board:      board,
		Checklists: make(map[string][plan.Weeks]string, len(board.Entries)),
	}
	for _, e := range board.Entries {
		resp.Checklists[e.User] = e.Checklist()
	}
	if user := pkg.NormalizeKey(r.URL.Query().Get("user")); user != "" {
		resp.Rank, _ = board.Rank(user)
	}
	writeJSON(w, resp, http.StatusOK)
}

func (handler *Handler) HandleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, handler.catalog.Groups(), http.StatusOK)
}

func (handler *Handler) HandlePhases(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, plan.Phases(), http.StatusOK)
}

func pathUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	user := pkg.NormalizeKey(mux.Vars(r)["user"])
	if user == "" {
		http.Error(w, "error, user empty", http.StatusBadRequest)
		return "", false
	}
	return user, true
}

func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := mux.Vars(r)[name]
	if raw == "" {
		http.Error(w, "error, "+name+" empty", http.StatusBadRequest)
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		http.Error(w, "error, "+name+" NaN", http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

func userWeekDay(w http.ResponseWriter, r *http.Request) (user string, week, day int, ok bool) {
	if user, ok = pathUser(w, r); !ok {
		return "", 0, 0, false
	}
	if week, ok = pathInt(w, r, "week"); !ok {
		return "", 0, 0, false
	}
	if day, ok = pathInt(w, r, "day"); !ok {
		return "", 0, 0, false
	}
	return user, week, day, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), pkg.ContentType.JSON) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Errorf("%s %s, unmarshal json params: %s", r.Method, r.URL.Path, err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	resp, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal response: %s", err)
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resp, status)
}

// errStatus maps input errors to 400, everything else is a storage failure.
func errStatus(err error) int {
	for _, target := range []error{
		progress.ErrEmptyUser,
		progress.ErrEmptyExercise,
		progress.ErrInvalidWeek,
		progress.ErrInvalidDay,
		progress.ErrInvalidWeight,
		progress.ErrInvalidSet,
	} {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}
