//go:build integration

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katyrose28/workoutsched/internal/training"
	"github.com/katyrose28/workoutsched/internal/training/progress"
	"github.com/katyrose28/workoutsched/internal/training/schedule"
	"github.com/katyrose28/workoutsched/pkg"
)

func (s *IntegrationTestSuite) doRequest(ctx context.Context, method, path string, body any, target any) int {
	t := s.T()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if target != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.Unmarshal(respBytes, target), string(respBytes))
	}
	return resp.StatusCode
}

func exerciseNames(dp schedule.DayPlan) []string {
	names := make([]string, 0, len(dp.Exercises))
	for _, e := range dp.Exercises {
		names = append(names, e.Name)
	}
	return names
}

func (s *IntegrationTestSuite) TestTraining_TeamSharesBaseDay() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	team := gofakeit.Color() + " " + gofakeit.Animal()
	ana, bo := gofakeit.FirstName()+"a", gofakeit.FirstName()+"b"
	for _, u := range []string{ana, bo} {
		status := s.doRequest(ctx, "PUT", fmt.Sprintf("/training/users/%s/team", u), training.TeamRequest{Team: team}, nil)
		require.Equal(t, http.StatusOK, status)
	}

	var anaDay, boDay schedule.DayPlan
	require.Equal(t, http.StatusOK, s.doRequest(ctx, "GET", fmt.Sprintf("/training/users/%s/week/2/day/3", ana), nil, &anaDay))
	require.Equal(t, http.StatusOK, s.doRequest(ctx, "GET", fmt.Sprintf("/training/users/%s/week/2/day/3", bo), nil, &boDay))

	assert.Equal(t, pkg.NormalizeKey(team), anaDay.TeamKey)
	assert.Equal(t, anaDay.TeamKey, boDay.TeamKey)
	assert.Len(t, anaDay.Exercises, 6)
	assert.Equal(t, exerciseNames(anaDay), exerciseNames(boDay))

	var count int
	require.NoError(t, s.DB.QueryRowContext(ctx,
		`SELECT count(*) FROM workout_document WHERE owner = $1 AND doc_type = $2`,
		"_shared", "shared_plans",
	).Scan(&count))
	assert.Equal(t, 1, count)
}

func (s *IntegrationTestSuite) TestTraining_WeightsAndDeload() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	user := pkg.NormalizeKey(gofakeit.Username())

	var day schedule.DayPlan
	require.Equal(t, http.StatusOK, s.doRequest(ctx, "GET", fmt.Sprintf("/training/users/%s/week/4/day/1", user), nil, &day))
	var weighted string
	for _, e := range day.Exercises {
		if e.Weight != nil && *e.Weight > 0 {
			weighted = e.Name
			break
		}
	}
	if weighted == "" {
		t.Skip("no weighted exercise picked for this day")
	}

	var weights training.WeightsResponse
	status := s.doRequest(ctx, "PUT", fmt.Sprintf("/training/users/%s/weights", user),
		training.UpdateWeightRequest{Exercise: weighted, Weight: 115}, &weights)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 115.0, weights.Weights[weighted])

	status = s.doRequest(ctx, "PUT", fmt.Sprintf("/training/users/%s/weights", user),
		training.UpdateWeightRequest{Exercise: weighted, Weight: 116}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	require.Equal(t, http.StatusOK, s.doRequest(ctx, "GET", fmt.Sprintf("/training/users/%s/week/4/day/1", user), nil, &day))
	for _, e := range day.Exercises {
		if e.Name == weighted {
			assert.Contains(t, e.Display, "57.5 lbs (deload)")
		}
	}

	var history training.WeightHistoryResponse
	require.Equal(t, http.StatusOK, s.doRequest(ctx, "GET", fmt.Sprintf("/training/users/%s/weights/history", user), nil, &history))
	assert.Len(t, history.History[weighted], 1)
}

func (s *IntegrationTestSuite) TestTraining_DoneSetsAndLeaderboard() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	user := pkg.NormalizeKey(gofakeit.Username())
	for _, wd := range [][2]int{{1, 1}, {1, 2}, {2, 1}} {
		status := s.doRequest(ctx, "POST", fmt.Sprintf("/training/users/%s/week/%d/day/%d/done", user, wd[0], wd[1]), nil, nil)
		require.Equal(t, http.StatusOK, status)
	}

	var overview progress.Overview
	require.Equal(t, http.StatusOK, s.doRequest(ctx, "GET", fmt.Sprintf("/training/users/%s/progress", user), nil, &overview))
	require.Len(t, overview.Weeks, 4)
	assert.Equal(t, 2, overview.Weeks[0].Completed)
	assert.Equal(t, 1, overview.Weeks[1].Completed)

	var counts progress.SetCounts
	status := s.doRequest(ctx, "PUT", fmt.Sprintf("/training/users/%s/week/1/day/1/sets", user),
		training.ToggleSetRequest{Exercise: "Dips", Set: 1, Done: true}, &counts)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, progress.SetCounts{Done: 1, Total: 3}, counts)

	var board struct {
		Entries []struct {
			User           string `json:"user"`
			TotalCompleted int    `json:"total_completed"`
		} `json:"entries"`
		Rank int `json:"rank"`
	}
	require.Equal(t, http.StatusOK, s.doRequest(ctx, "GET", "/training/leaderboard?user="+user, nil, &board))
	require.NotZero(t, board.Rank)
	assert.Equal(t, user, board.Entries[board.Rank-1].User)
	assert.Equal(t, 3, board.Entries[board.Rank-1].TotalCompleted)

	status = s.doRequest(ctx, "DELETE", fmt.Sprintf("/training/users/%s/week/2/day/1/done", user), nil, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, http.StatusOK, s.doRequest(ctx, "GET", fmt.Sprintf("/training/users/%s/progress", user), nil, &overview))
	assert.Equal(t, 0, overview.Weeks[1].Completed)
}

func (s *IntegrationTestSuite) TestTraining_RegenerateWeek() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	user := pkg.NormalizeKey(gofakeit.Username())
	var week schedule.WeekPlan
	require.Equal(t, http.StatusOK, s.doRequest(ctx, "GET", fmt.Sprintf("/training/users/%s/week/3", user), nil, &week))
	require.Len(t, week.Days, 4)

	var regen training.RegenerateResponse
	status := s.doRequest(ctx, "POST", fmt.Sprintf("/training/teams/%s/week/3/regenerate", user), nil, &regen)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, user, regen.TeamKey)

	require.Equal(t, http.StatusOK, s.doRequest(ctx, "GET", fmt.Sprintf("/training/users/%s/week/3", user), nil, &week))
	for _, dp := range week.Days {
		assert.Len(t, dp.Exercises, 6)
	}

	status = s.doRequest(ctx, "GET", fmt.Sprintf("/training/users/%s/week/5/day/1", user), nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}
