package store

import (
	"context"
	"errors"
	"testing"

	"twitch_vatsim_stats/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, ""), mr
}

func TestRedisStore_GetDefaults(t *testing.T) {
	st, _ := newTestRedisStore(t)

	settings, err := st.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, settings.ClientID)
	assert.Equal(t, []string{}, settings.Scopes)
}

func TestRedisStore_UpdateAndGet(t *testing.T) {
	ctx := context.Background()
	st, mr := newTestRedisStore(t)

	_, err := st.Update(ctx, func(s *models.Settings) error {
		s.AccessToken = "access"
		s.UserID = "42"
		s.TokenExpiresAt = 1700000000
		return nil
	})
	require.NoError(t, err)
	assert.True(t, mr.Exists(DefaultRedisKey))

	settings, err := st.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access", settings.AccessToken)
	assert.Equal(t, "42", settings.UserID)
	assert.Equal(t, int64(1700000000), settings.TokenExpiresAt)
}

func TestRedisStore_UpdateAbortsOnError(t *testing.T) {
	ctx := context.Background()
	st, mr := newTestRedisStore(t)

	_, err := st.Update(ctx, func(s *models.Settings) error {
		s.ClientID = "first"
		return nil
	})
	require.NoError(t, err)
	before, err := mr.Get(DefaultRedisKey)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = st.Update(ctx, func(s *models.Settings) error {
		s.ClientID = "second"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	after, err := mr.Get(DefaultRedisKey)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
