package parsecache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/faridmehrhesam/kusto-language/lexer"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	_, ok := store.GetTokens(ctx, "missing")
	require.False(t, ok)

	require.NoError(t, store.PutTokens(ctx, "k", map[string]int{"a": 1}))
	value, ok := store.GetTokens(ctx, "k")
	require.True(t, ok)
	require.Equal(t, map[string]interface{}{"a": float64(1)}, value)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Millisecond)
	ctx := context.Background()
	require.NoError(t, store.PutTokens(ctx, "k", "v"))
	time.Sleep(5 * time.Millisecond)
	_, ok := store.GetTokens(ctx, "k")
	require.False(t, ok)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	store := &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		prefix: "kusto:",
		ttl:    time.Minute,
	}
	ctx := context.Background()

	_, ok := store.GetTokens(ctx, "missing")
	require.False(t, ok)

	require.NoError(t, store.PutTokens(ctx, "k", []string{"tok1", "tok2"}))
	value, ok := store.GetTokens(ctx, "k")
	require.True(t, ok)
	require.Equal(t, []interface{}{"tok1", "tok2"}, value)
}

func TestKeyIsStableAndConfigSensitive(t *testing.T) {
	a := Key("where x == 1", lexer.DefaultConfig())
	b := Key("where x == 1", lexer.DefaultConfig())
	require.Equal(t, a, b)

	c := Key("where x == 1", lexer.DefaultConfig().WithAllowLiteralsWithLineBreaks(true))
	require.NotEqual(t, a, c)

	d := Key("where x == 2", lexer.DefaultConfig())
	require.NotEqual(t, a, d)
}
