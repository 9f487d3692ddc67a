package toast

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushAssignsUniqueIDsAndKeepsOrder(t *testing.T) {
	q := NewQueue(time.Minute)
	defer q.Close()

	a := q.Push(Success, "Tenant created", "")
	b := q.Push(Error, "Create failed", "duplicate code")
	assert.NotEqual(t, a, b)

	items := q.Snapshot()
	require.Len(t, items, 2)
	assert.Equal(t, a, items[0].ID)
	assert.Equal(t, b, items[1].ID)
	assert.Equal(t, Error, items[1].Kind)
	assert.Equal(t, "duplicate code", items[1].Message)
}

func TestDismissRemovesExactlyOne(t *testing.T) {
	q := NewQueue(time.Minute)
	defer q.Close()

	a := q.Push(Info, "one", "")
	b := q.Push(Info, "two", "")
	c := q.Push(Info, "three", "")

	q.Dismiss(b)

	items := q.Snapshot()
	require.Len(t, items, 2)
	assert.Equal(t, a, items[0].ID)
	assert.Equal(t, c, items[1].ID)

	// Unknown id is a no-op
	q.Dismiss("not-there")
	assert.Len(t, q.Snapshot(), 2)
}

func TestAutoExpiry(t *testing.T) {
	q := NewQueue(20 * time.Millisecond)
	defer q.Close()

	q.Push(Success, "done", "")
	require.Len(t, q.Snapshot(), 1)

	assert.Eventually(t, func() bool {
		return len(q.Snapshot()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestDismissBeforeExpiry(t *testing.T) {
	q := NewQueue(50 * time.Millisecond)
	defer q.Close()

	a := q.Push(Info, "short lived", "")
	q.Dismiss(a)
	assert.Empty(t, q.Snapshot())

	// The stopped timer must not fire on a later entry
	q.Push(Info, "survivor", "")
	time.Sleep(10 * time.Millisecond)
	assert.Len(t, q.Snapshot(), 1)
}

func TestConcurrentPushesAllRetained(t *testing.T) {
	q := NewQueue(time.Minute)
	defer q.Close()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			q.Push(Info, "tick", "")
		}()
	}
	wg.Wait()

	assert.Len(t, q.Snapshot(), n)
}

func TestZeroTTLFallsBackToDefault(t *testing.T) {
	q := NewQueue(0)
	defer q.Close()
	assert.Equal(t, DefaultTTL, q.ttl)
}
