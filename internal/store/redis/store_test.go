package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewWithClient(client), mr
}

func TestStore_LoadMissing(t *testing.T) {
	s, _ := newTestStore(t)

	body, err := s.Load(context.Background(), "user_state")
	require.NoError(t, err)
	assert.Nil(t, body)
}

func TestStore_SaveAndLoad(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "active_quests", []byte(`[{"id":"q-1-0"}]`)))
	require.NoError(t, s.Save(ctx, "active_quests", []byte(`[]`)))

	body, err := s.Load(ctx, "active_quests")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))

	raw, err := mr.Get("learnquest:doc:active_quests")
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestNew_ConnectsAndPings(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := DefaultConfig()
	cfg.Addr = mr.Addr()

	s, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Save(context.Background(), "user_state", []byte(`{}`)))
	assert.True(t, mr.Exists("learnquest:doc:user_state"))
}
