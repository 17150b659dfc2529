package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Store-wide counters, exposed on the stats endpoint.
var (
	OrdersPlaced       Counter
	TransitionsApplied Counter
	TransitionsFailed  Counter
	FeedEvents         Counter
	ExportsGenerated   Counter
)

func Snapshot() map[string]uint64 {
	return map[string]uint64{
		"orders_placed":       OrdersPlaced.Load(),
		"transitions_applied": TransitionsApplied.Load(),
		"transitions_failed":  TransitionsFailed.Load(),
		"feed_events":         FeedEvents.Load(),
		"exports_generated":   ExportsGenerated.Load(),
	}
}
