package leaderboard

import (
	"context"
	"math"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/katyrose28/workoutsched/internal/telemetry/metrics"
	"github.com/katyrose28/workoutsched/internal/telemetry/tracing"
	"github.com/katyrose28/workoutsched/internal/training/plan"
	"github.com/katyrose28/workoutsched/internal/training/progress"
)

const IndividualTeam = "(Individual)"

const workoutsPerUser = plan.Weeks * plan.DaysPerWeek

type Entry struct {
	User           string          `json:"user"`
	Team           string          `json:"team"`
	TotalCompleted int             `json:"total_completed"`
	PerWeek        [plan.Weeks]int `json:"per_week"`
}

// Checklist renders each week as four boxes, one per possible workout.
func (e Entry) Checklist() [plan.Weeks]string {
	var out [plan.Weeks]string
	for i, done := range e.PerWeek {
		done = max(0, min(plan.DaysPerWeek, done))
		out[i] = strings.Repeat("✅", done) + strings.Repeat("⬜", plan.DaysPerWeek-done)
	}
	return out
}

type TeamTotal struct {
	Team  string `json:"team"`
	Total int    `json:"total"`
}

// Board is the ranked snapshot of everyone's progress. CompletionRate is the
// percentage of all possible workouts done, one decimal.
type Board struct {
	Entries        []Entry     `json:"entries"`
	TeamTotals     []TeamTotal `json:"team_totals"`
	Users          int         `json:"users"`
	TotalCompleted int         `json:"total_completed"`
	CompletionRate float64     `json:"completion_rate"`
}

// Rank returns the 1-based position of user, matched case-insensitively.
func (b *Board) Rank(user string) (int, bool) {
	for i, e := range b.Entries {
		if strings.EqualFold(e.User, strings.TrimSpace(user)) {
			return i + 1, true
		}
	}
	return 0, false
}

// progressReader is satisfied by *progress.Service.
type progressReader interface {
	Users(ctx context.Context) ([]string, error)
	Progress(ctx context.Context, user string) (progress.Completion, error)
	Team(ctx context.Context, user string) (string, error)
}

type Builder struct {
	progress       progressReader
	metricsManager *metrics.Manager
}

func NewBuilder(progress progressReader, metricsManager *metrics.Manager) *Builder {
	return &Builder{
		progress:       progress,
		metricsManager: metricsManager,
	}
}

// Build reads every user's progress and ranks by completed workouts, then name.
func (b *Builder) Build(ctx context.Context) (_ *Board, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "leaderboard.build")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	users, err := b.progress.Users(ctx)
	if err != nil {
		return nil, err
	}

	board := &Board{
		Entries:    make([]Entry, 0, len(users)),
		TeamTotals: []TeamTotal{},
		Users:      len(users),
	}
	teamTotals := map[string]int{}

	for _, user := range users {
		completion, err := b.progress.Progress(ctx, user)
		if err != nil {
			log.Warnf("leaderboard: progress of [%s]: %s", user, err)
			continue
		}
		team, _ := b.progress.Team(ctx, user)
		if team == "" {
			team = IndividualTeam
		}

		entry := Entry{User: user, Team: team}
		for i, wc := range progress.WeekCounts(completion) {
			entry.PerWeek[i] = wc.Completed
			entry.TotalCompleted += wc.Completed
		}
		board.Entries = append(board.Entries, entry)
		board.TotalCompleted += entry.TotalCompleted
		teamTotals[team] += entry.TotalCompleted
	}

	sort.SliceStable(board.Entries, func(i, j int) bool {
		a, c := board.Entries[i], board.Entries[j]
		if a.TotalCompleted != c.TotalCompleted {
			return a.TotalCompleted > c.TotalCompleted
		}
		return strings.ToLower(a.User) < strings.ToLower(c.User)
	})

	for team, total := range teamTotals {
		board.TeamTotals = append(board.TeamTotals, TeamTotal{Team: team, Total: total})
	}
	sort.Slice(board.TeamTotals, func(i, j int) bool {
		a, c := board.TeamTotals[i], board.TeamTotals[j]
		if a.Total != c.Total {
			return a.Total > c.Total
		}
		return a.Team < c.Team
	})

	board.CompletionRate = CompletionRate(board.TotalCompleted, board.Users)
	return board, nil
}

// CompletionRate is done / (users * 16) as a percentage rounded to one decimal.
func CompletionRate(done, users int) float64 {
	if users <= 0 {
		return 0
	}
	rate := float64(done*100) / float64(users*workoutsPerUser)
	return math.RoundToEven(rate*10) / 10
}

// RefreshGauges rebuilds the board and publishes it as prometheus gauges.
func (b *Builder) RefreshGauges(ctx context.Context) error {
	board, err := b.Build(ctx)
	if err != nil {
		return err
	}
	if b.metricsManager == nil {
		return nil
	}
	b.metricsManager.GaugeUsers.Set(float64(board.Users))
	b.metricsManager.GaugeCompletionRate.Set(board.CompletionRate)
	b.metricsManager.GaugeTeamWorkoutsTotal.Reset()
	for _, tt := range board.TeamTotals {
		b.metricsManager.GaugeTeamWorkoutsTotal.WithLabelValues(tt.Team).Set(float64(tt.Total))
	}
	return nil
}
