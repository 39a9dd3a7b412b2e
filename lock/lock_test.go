package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterUnder(t *testing.T, l Locker) int {
	t.Helper()

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			unlock, err := l.Lock(ctx, "post-1")
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			v := counter
			time.Sleep(time.Millisecond)
			counter = v + 1
		}()
	}
	wg.Wait()
	return counter
}

func TestLocalSerialisesSameKey(t *testing.T) {
	l := NewLocal()
	assert.Equal(t, 20, counterUnder(t, l))
	assert.Empty(t, l.locks)
}

func TestLocalHonoursContext(t *testing.T) {
	l := NewLocal()
	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	other, err := l.Lock(context.Background(), "other")
	require.NoError(t, err)
	other()
}

func newRedisLocker(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, time.Second), mr
}

func TestRedisSerialisesSameKey(t *testing.T) {
	l, mr := newRedisLocker(t)
	assert.Equal(t, 20, counterUnder(t, l))
	assert.False(t, mr.Exists(keyPrefix+"post-1"))
}

func TestRedisReleaseKeepsForeignLease(t *testing.T) {
	l, mr := newRedisLocker(t)

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	// lease expired and was taken by someone else
	require.NoError(t, mr.Set(keyPrefix+"k", "someone-else"))
	unlock()

	got, err := mr.Get(keyPrefix + "k")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestRedisTimesOutWhileHeld(t *testing.T) {
	l, _ := newRedisLocker(t)

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, ErrNotAcquired)
}

func TestNopNeverBlocks(t *testing.T) {
	unlock, err := Nop{}.Lock(context.Background(), "k")
	require.NoError(t, err)
	unlock()
}
