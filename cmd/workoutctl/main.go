package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katyrose28/workoutsched/internal/logging"
	"github.com/katyrose28/workoutsched/internal/resttimer"
	"github.com/katyrose28/workoutsched/internal/training/plan"
	"github.com/katyrose28/workoutsched/pkg"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	env        string
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "workoutctl",
		Short:         "Operator tool for the workout scheduler",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			log.SetOutput(os.Stderr)
			log.SetLevel(logging.GetLevel(flags.logLevel))
		},
	}
	root.PersistentFlags().StringVar(&flags.env, "env", "development", "environment [prod | production | dev | development]")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "./config.toml", "path for the TOML config file")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "log level")

	root.AddCommand(newScheduleCmd(flags))
	root.AddCommand(newLeaderboardCmd(flags))
	root.AddCommand(newUsersCmd(flags))
	root.AddCommand(newRegenerateCmd(flags))
	root.AddCommand(newTimerCmd())
	return root
}

func newScheduleCmd(flags *rootFlags) *cobra.Command {
	var user, team string
	var week int

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print a user's schedule, one week or all four",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if pkg.NormalizeKey(user) == "" {
				return fmt.Errorf("--user is required")
			}
			ctx := cmd.Context()
			a, err := loadApp(ctx, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			teamKey := a.schedule.TeamKey(ctx, user, team)
			if week != 0 {
				wp, err := a.schedule.WeekPlan(ctx, user, teamKey, week)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderWeek(wp))
				return nil
			}

			weeks, err := a.schedule.FullSchedule(ctx, user, teamKey)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), title.Render(fmt.Sprintf("%d-week schedule for %s (%s)", plan.Weeks, user, teamKey)))
			for _, wp := range weeks {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderWeek(wp))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user name")
	cmd.Flags().StringVar(&team, "team", "", "team name (defaults to the user's team)")
	cmd.Flags().IntVar(&week, "week", 0, "week 1-4, all weeks when omitted")
	return cmd
}

func newLeaderboardCmd(flags *rootFlags) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the leaderboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := loadApp(ctx, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			board, err := a.leaderboard.Build(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderLeaderboard(board, user))
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "highlight this user")
	return cmd
}

func newUsersCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List known users and teams",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := loadApp(ctx, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			users, err := a.progress.Users(ctx)
			if err != nil {
				return err
			}
			teams, err := a.progress.Teams(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderUsers(ctx, users, teams, a.progress.Team))
			return nil
		},
	}
}

func newRegenerateCmd(flags *rootFlags) *cobra.Command {
	var team string
	var week int

	cmd := &cobra.Command{
		Use:   "regenerate",
		Short: "Drop a team's shared plans for one week so they are picked again",
		RunE: func(cmd *cobra.Command, _ []string) error {
			teamKey := pkg.NormalizeKey(team)
			if teamKey == "" {
				return fmt.Errorf("--team is required")
			}
			ctx := cmd.Context()
			a, err := loadApp(ctx, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.schedule.RegenerateWeek(ctx, teamKey, week); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "week %d of [%s] will be regenerated on next view\n", week, teamKey)
			return nil
		},
	}
	cmd.Flags().StringVar(&team, "team", "", "team key (or user name for individuals)")
	cmd.Flags().IntVar(&week, "week", 0, "week 1-4")
	return cmd
}

func newTimerCmd() *cobra.Command {
	var minutes, seconds int

	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Run a rest timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			err := resttimer.Run(ctx, resttimer.Split(minutes, seconds), time.Second, func(remaining time.Duration) {
				if remaining == 0 {
					_, _ = fmt.Fprintln(out, "\r"+hot.Render("Rest over, next set!"))
					return
				}
				_, _ = fmt.Fprint(out, "\r"+renderRemaining(remaining))
			})
			if errors.Is(err, context.Canceled) {
				_, _ = fmt.Fprintln(out, "\ntimer stopped")
				return nil
			}
			return err
		},
	}
	cmd.Flags().IntVar(&minutes, "min", 1, "minutes")
	cmd.Flags().IntVar(&seconds, "sec", 30, "seconds")
	return cmd
}
