package events

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func receive(t *testing.T, ch <-chan Change) Change {
	t.Helper()
	select {
	case c, ok := <-ch:
		require.True(t, ok, "channel closed")
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
		return Change{}
	}
}

func assertNothing(t *testing.T, ch <-chan Change) {
	t.Helper()
	select {
	case c := <-ch:
		t.Fatalf("unexpected change %+v", c)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLocalBroker_FanOut(t *testing.T) {
	ctx := context.Background()
	b := NewLocalBroker()
	defer b.Close()

	acme, cancelAcme, err := b.Subscribe(ctx, "acme")
	require.NoError(t, err)
	defer cancelAcme()
	all, cancelAll, err := b.Subscribe(ctx, "")
	require.NoError(t, err)
	defer cancelAll()
	beta, cancelBeta, err := b.Subscribe(ctx, "beta")
	require.NoError(t, err)
	defer cancelBeta()

	require.NoError(t, b.Publish(ctx, Change{ClientID: "acme", Date: "2026-01-05", Kind: KindPunchIn}))

	got := receive(t, acme)
	assert.Equal(t, "2026-01-05", got.Date)
	assert.False(t, got.At.IsZero())
	assert.Equal(t, KindPunchIn, receive(t, all).Kind)
	assertNothing(t, beta)
}

func TestLocalBroker_Unsubscribe(t *testing.T) {
	ctx, cancelCtx := context.WithCancel(context.Background())
	b := NewLocalBroker()

	ch, cancel, err := b.Subscribe(context.Background(), "acme")
	require.NoError(t, err)
	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)

	ch, _, err = b.Subscribe(ctx, "acme")
	require.NoError(t, err)
	cancelCtx()
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, b.Close())
	ch, _, err = b.Subscribe(context.Background(), "acme")
	require.NoError(t, err)
	_, ok = <-ch
	assert.False(t, ok, "subscriptions after close are already closed")
}

func TestLocalBroker_CloseEndsLiveSubscriptions(t *testing.T) {
	b := NewLocalBroker()

	acme, cancelAcme, err := b.Subscribe(context.Background(), "acme")
	require.NoError(t, err)
	all, _, err := b.Subscribe(context.Background(), "")
	require.NoError(t, err)

	closed := make(chan error, 1)
	go func() { closed <- b.Close() }()
	select {
	case err := <-closed:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Close did not return after stopping its watchers")
	}

	_, ok := <-acme
	assert.False(t, ok)
	_, ok = <-all
	assert.False(t, ok)

	b.mu.RLock()
	assert.Empty(t, b.subscribers)
	b.mu.RUnlock()

	assert.NotPanics(t, cancelAcme, "unsubscribing after close is a no-op")
	assert.NoError(t, b.Publish(context.Background(), Change{ClientID: "acme", Kind: KindEdit}))
}

func TestLocalBroker_SlowSubscriberDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	b := NewLocalBroker()
	defer b.Close()

	_, cancel, err := b.Subscribe(ctx, "acme")
	require.NoError(t, err)
	defer cancel()

	for i := 0; i < subscriberBuffer*2; i++ {
		require.NoError(t, b.Publish(ctx, Change{ClientID: "acme", Kind: KindEdit}))
	}
}

func newRedisBroker(t *testing.T) (*RedisBroker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	b := NewRedisBroker(rdb, zap.NewNop())
	t.Cleanup(func() { b.Close() })
	return b, mr
}

func TestRedisBroker_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	// two brokers stand in for two processes sharing one server
	first := NewRedisBroker(redis.NewClient(&redis.Options{Addr: mr.Addr()}), zap.NewNop())
	defer first.Close()
	second := NewRedisBroker(redis.NewClient(&redis.Options{Addr: mr.Addr()}), zap.NewNop())
	defer second.Close()

	a, cancelA, err := first.Subscribe(ctx, "acme")
	require.NoError(t, err)
	defer cancelA()
	b, cancelB, err := second.Subscribe(ctx, "acme")
	require.NoError(t, err)
	defer cancelB()

	require.NoError(t, second.Publish(ctx, Change{ClientID: "acme", Date: "2026-01-06", Kind: KindOff}))

	got := receive(t, a)
	assert.Equal(t, "acme", got.ClientID)
	assert.Equal(t, "2026-01-06", got.Date)
	assert.Equal(t, KindOff, got.Kind)
	assert.Equal(t, KindOff, receive(t, b).Kind)
}

func TestRedisBroker_PatternSubscribe(t *testing.T) {
	ctx := context.Background()
	b, _ := newRedisBroker(t)

	all, cancel, err := b.Subscribe(ctx, "")
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, b.Publish(ctx, Change{ClientID: "beta", Kind: KindNote}))
	assert.Equal(t, "beta", receive(t, all).ClientID)
}

func TestRedisBroker_MalformedPayload(t *testing.T) {
	ctx := context.Background()
	b, mr := newRedisBroker(t)

	ch, cancel, err := b.Subscribe(ctx, "acme")
	require.NoError(t, err)
	defer cancel()

	mr.Publish(ChannelFor("acme"), "not json")
	require.NoError(t, b.Publish(ctx, Change{ClientID: "acme", Kind: KindEdit}))

	assert.Equal(t, KindEdit, receive(t, ch).Kind)
}

func TestRedisBroker_CancelClosesChannel(t *testing.T) {
	b, _ := newRedisBroker(t)

	ch, cancel, err := b.Subscribe(context.Background(), "acme")
	require.NoError(t, err)
	cancel()

	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}
