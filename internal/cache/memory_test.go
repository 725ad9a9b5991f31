package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags"`
}

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(clockwork.NewFakeClock())

	want := samplePayload{Name: "ISS", Count: 7, Tags: []string{"crew"}}
	require.NoError(t, c.SetJSON(ctx, "people_in_space", want, time.Hour))

	var got samplePayload
	ok, err := c.GetJSON(ctx, "people_in_space", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	ok, err = c.GetJSON(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache_Expiration(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	c := NewMemoryCache(clock)

	require.NoError(t, c.SetJSON(ctx, "iss_position", 42, 5*time.Second))

	clock.Advance(4 * time.Second)
	var got int
	ok, err := c.GetJSON(ctx, "iss_position", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 42, got)

	clock.Advance(time.Second)
	ok, err = c.GetJSON(ctx, "iss_position", &got)
	require.NoError(t, err)
	assert.False(t, ok, "entry must be absent once ttl elapsed")
	assert.Equal(t, 0, c.Len(), "expired entry is evicted on access")
}

func TestMemoryCache_Delete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(clockwork.NewFakeClock())

	require.NoError(t, c.SetJSON(ctx, "upcoming_launches_10", []int{1}, time.Hour))
	require.NoError(t, c.SetJSON(ctx, "upcoming_launches_50", []int{1, 2}, time.Hour))
	require.NoError(t, c.Delete(ctx, "upcoming_launches_10", "upcoming_launches_50", "never_set"))

	var got []int
	ok, err := c.GetJSON(ctx, "upcoming_launches_10", &got)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_ReturnsIndependentCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(clockwork.NewFakeClock())

	original := samplePayload{Name: "before", Tags: []string{"a"}}
	require.NoError(t, c.SetJSON(ctx, "k", original, time.Hour))

	// Мутация исходного значения не должна просачиваться в кэш
	original.Tags[0] = "mutated"

	var first samplePayload
	_, err := c.GetJSON(ctx, "k", &first)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, first.Tags)

	first.Tags[0] = "mutated-again"
	var second samplePayload
	_, err = c.GetJSON(ctx, "k", &second)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, second.Tags)
}

func TestMemoryCache_DeleteExpired(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	c := NewMemoryCache(clock)

	require.NoError(t, c.SetJSON(ctx, "short", 1, time.Second))
	require.NoError(t, c.SetJSON(ctx, "long", 2, time.Hour))

	clock.Advance(2 * time.Second)
	assert.Equal(t, 1, c.DeleteExpired())
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_ = c.SetJSON(ctx, "shared", samplePayload{Name: "v", Count: n}, time.Minute)

				var got samplePayload
				ok, err := c.GetJSON(ctx, "shared", &got)
				if err != nil {
					t.Errorf("GetJSON: %v", err)
					return
				}
				if ok && got.Name != "v" {
					t.Errorf("partially written value: %+v", got)
					return
				}
				if j%50 == 0 {
					_ = c.Delete(ctx, "shared")
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestMemoryCache_Janitor(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewFakeClock()
	c := NewMemoryCache(clock)
	require.NoError(t, c.SetJSON(ctx, "flyovers_40.0000_-75.0000_5", []int{1}, time.Second))

	c.StartJanitor(ctx, time.Minute)
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Minute)

	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 10*time.Millisecond)
}
