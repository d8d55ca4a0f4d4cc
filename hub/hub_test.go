package hub

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newHub(t *testing.T, opts ...Option) *Hub {
	t.Helper()
	h, err := New(opts...)
	require.NoError(t, err)
	return h
}

func TestNew_Defaults(t *testing.T) {
	h := newHub(t)

	assert.Equal(t, 0, h.Subscribers())
	assert.Equal(t, int64(0), h.Dropped())
}

func TestNew_InvalidOptions(t *testing.T) {
	_, err := New(WithBufferSize(0))
	assert.Error(t, err)

	_, err = New(WithClock(nil))
	assert.Error(t, err)
}

func TestHub_FireDeliversEvent(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	h := newHub(t, WithClock(func() time.Time { return at }))

	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	h.Fire("draw.deleted", "payload")

	select {
	case ev := <-ch:
		assert.Equal(t, "draw.deleted", ev.Name)
		assert.Equal(t, "payload", ev.Payload)
		assert.Equal(t, at, ev.FiredAt)
		assert.NotEmpty(t, ev.ID)
	case <-time.After(time.Second):
		t.Fatal("Subscribe() channel did not receive event")
	}
}

func TestHub_FanOut(t *testing.T) {
	h := newHub(t)

	ch1 := h.Subscribe()
	ch2 := h.Subscribe()
	defer h.Unsubscribe(ch1)
	defer h.Unsubscribe(ch2)

	h.Fire("draw.render", nil)

	ev1 := <-ch1
	ev2 := <-ch2
	assert.Equal(t, ev1.ID, ev2.ID, "subscribers should see the same event")
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	h := newHub(t)

	ch := h.Subscribe()
	h.Unsubscribe(ch)
	h.Unsubscribe(ch) // second call is a no-op

	_, ok := <-ch
	assert.False(t, ok, "channel should be closed")
	assert.Equal(t, 0, h.Subscribers())
}

func TestHub_UnsubscribeStopsDelivery(t *testing.T) {
	h := newHub(t)

	ch1 := h.Subscribe()
	ch2 := h.Subscribe()
	defer h.Unsubscribe(ch2)
	h.Unsubscribe(ch1)

	h.Fire("draw.deleted", nil)

	assert.Len(t, ch2, 1)
	assert.Equal(t, 1, h.Subscribers())
}

func TestHub_SlowSubscriberDropsAndCounts(t *testing.T) {
	h := newHub(t, WithBufferSize(2))

	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	for i := 0; i < 5; i++ {
		h.Fire("draw.render", i)
	}

	assert.Len(t, ch, 2)
	assert.Equal(t, int64(3), h.Dropped())
	assert.Equal(t, 0, (<-ch).Payload, "oldest events are kept")
}

func TestHub_ConcurrentAccess(t *testing.T) {
	h := newHub(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				h.Fire("draw.render", j)
			}
		}()
		go func() {
			defer wg.Done()
			ch := h.Subscribe()
			time.Sleep(5 * time.Millisecond)
			h.Unsubscribe(ch)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, h.Subscribers())
}
