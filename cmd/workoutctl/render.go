package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/katyrose28/workoutsched/internal/training/leaderboard"
	"github.com/katyrose28/workoutsched/internal/training/plan"
	"github.com/katyrose28/workoutsched/internal/training/schedule"
)

var (
	lavender = lipgloss.Color("#b4befe")
	sapphire = lipgloss.Color("#74c7ec")
	green    = lipgloss.Color("#a6e3a1")
	peach    = lipgloss.Color("#fab387")
	subtext  = lipgloss.Color("#a6adc8")
	surface  = lipgloss.Color("#45475a")

	title = lipgloss.NewStyle().Foreground(sapphire).Bold(true)
	muted = lipgloss.NewStyle().Foreground(subtext)
	hot   = lipgloss.NewStyle().Foreground(peach).Bold(true)
	done  = lipgloss.NewStyle().Foreground(green)

	pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(surface).
		Padding(0, 1)
	paneDone = pane.BorderForeground(lavender)
)

func renderDay(dp *schedule.DayPlan) string {
	var b strings.Builder
	header := fmt.Sprintf("Day %d", dp.Day)
	if dp.Done {
		header += " " + done.Render("✓ done")
	}
	b.WriteString(title.Render(header))
	for _, e := range dp.Exercises {
		b.WriteString("\n")
		b.WriteString(muted.Render(e.Slot+": ") + e.Display)
	}
	if dp.Done {
		return paneDone.Render(b.String())
	}
	return pane.Render(b.String())
}

func renderWeek(wp *schedule.WeekPlan) string {
	blocks := []string{title.Render(fmt.Sprintf("Week %d · %s", wp.Week, wp.Phase.Label))}
	for _, dp := range wp.Days {
		blocks = append(blocks, renderDay(dp))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func renderLeaderboard(board *leaderboard.Board, highlight string) string {
	if len(board.Entries) == 0 {
		return muted.Render("no workouts logged yet")
	}

	rank, _ := board.Rank(highlight)
	lines := []string{title.Render("Leaderboard")}
	for i, e := range board.Entries {
		checklist := e.Checklist()
		line := fmt.Sprintf("%2d. %-16s %-14s %2d/%d  %s",
			i+1, e.User, e.Team, e.TotalCompleted, plan.Weeks*plan.DaysPerWeek,
			strings.Join(checklist[:], " "),
		)
		if i+1 == rank {
			line = hot.Render(line + "  ← you")
		}
		lines = append(lines, line)
	}

	lines = append(lines, "", title.Render("Teams"))
	for _, t := range board.TeamTotals {
		lines = append(lines, fmt.Sprintf("    %-16s %d", t.Team, t.Total))
	}
	lines = append(lines, "", muted.Render(fmt.Sprintf(
		"%d users · %d workouts · %.1f%% complete",
		board.Users, board.TotalCompleted, board.CompletionRate,
	)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderUsers(
	ctx context.Context,
	users, teams []string,
	teamOf func(ctx context.Context, user string) (string, error),
) string {
	lines := []string{title.Render(fmt.Sprintf("Users (%d)", len(users)))}
	for _, u := range users {
		team, _ := teamOf(ctx, u)
		if team == "" {
			team = leaderboard.IndividualTeam
		}
		lines = append(lines, fmt.Sprintf("  %-16s %s", u, muted.Render(team)))
	}
	lines = append(lines, "", title.Render(fmt.Sprintf("Teams (%d)", len(teams))))
	for _, t := range teams {
		lines = append(lines, "  "+t)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("⏱ %02d:%02d", int(d/time.Minute), int(d%time.Minute/time.Second))
}
