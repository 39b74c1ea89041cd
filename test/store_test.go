//go:build integration

package test

import (
	"context"
	"net"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katyrose28/workoutsched/internal/store"
)

func (s *IntegrationTestSuite) TestRedisStore() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	rs := store.NewRedisStore(store.NewRedisClient(store.NewRedisClientParams{
		Addr: net.JoinHostPort("localhost", s.redisPort),
	}))
	defer func() {
		require.NoError(t, rs.Close())
	}()

	data, err := rs.Load(ctx, "nobody", store.DocWeights)
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, rs.Save(ctx, "ana", store.DocWeights, []byte(`{"Dips":0}`)))
	require.NoError(t, rs.Save(ctx, "bo", store.DocWeights, []byte(`{}`)))
	data, err = rs.Load(ctx, "ana", store.DocWeights)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Dips":0}`, string(data))

	owners, err := rs.Owners(ctx, store.DocWeights)
	require.NoError(t, err)
	assert.Equal(t, []string{"ana", "bo"}, owners)
}

func (s *IntegrationTestSuite) TestPostgresDocumentsAreJSONB() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	status := s.doRequest(ctx, "PUT", "/training/users/pg_user/team", map[string]string{"team": "Iron Crew"}, nil)
	require.Equal(t, 200, status)

	var team string
	require.NoError(t, s.DB.QueryRowContext(ctx,
		`SELECT data->>'team' FROM workout_document WHERE owner = $1 AND doc_type = $2`,
		"pg_user", string(store.DocMeta),
	).Scan(&team))
	assert.Equal(t, "iron_crew", team)
}
