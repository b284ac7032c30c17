package loop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func advance(s *Scheduler, frames int) {
	for i := 0; i < frames; i++ {
		s.Advance()
	}
}

func TestSchedulerAfter(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.After(3, func() { fired++ })

	advance(s, 2)
	assert.Equal(t, 0, fired)
	assert.Equal(t, 1, s.Pending())

	s.Advance()
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, s.Pending())

	advance(s, 10)
	assert.Equal(t, 1, fired, "tasks run once")
}

func TestSchedulerOrder(t *testing.T) {
	s := NewScheduler()
	var order []string

	s.After(2, func() { order = append(order, "b") })
	s.After(1, func() { order = append(order, "a") })
	s.After(2, func() { order = append(order, "c") })

	advance(s, 2)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	fired := false
	h := s.After(1, func() { fired = true })

	assert.True(t, s.Cancel(h))
	assert.False(t, s.Cancel(h))
	s.Advance()
	assert.False(t, fired)
}

func TestSchedulerInvalidate(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.After(5, func() { fired++ })
	s.After(1, func() { fired++ })

	s.Invalidate()
	advance(s, 10)
	assert.Equal(t, 0, fired)
	assert.Equal(t, uint64(1), s.Epoch())

	// New tasks after invalidation still run.
	s.After(1, func() { fired++ })
	s.Advance()
	assert.Equal(t, 1, fired)
}

func TestSchedulerInvalidateFromTask(t *testing.T) {
	s := NewScheduler()
	var order []int

	s.After(1, func() {
		order = append(order, 1)
		s.Invalidate()
	})
	s.After(1, func() { order = append(order, 2) })

	s.Advance()
	assert.Equal(t, []int{1}, order, "a task invalidating the scheduler stops later tasks in the same frame")
}

func TestSchedulerNestedSchedule(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.After(1, func() {
		s.After(0, func() { fired++ })
	})

	s.Advance()
	assert.Equal(t, 0, fired, "tasks scheduled while running wait for the next frame")
	s.Advance()
	assert.Equal(t, 1, fired)
}

func TestTicker(t *testing.T) {
	tests := []struct {
		interval int
		frames   int
		expected int
	}{
		{1, 5, 5},
		{4, 8, 2},
		{4, 7, 1},
		{40, 39, 0},
		{0, 3, 3}, // clamped to 1
	}

	for _, tc := range tests {
		tk := NewTicker(tc.interval)
		fired := 0
		for i := 0; i < tc.frames; i++ {
			if tk.Advance() {
				fired++
			}
		}
		if fired != tc.expected {
			t.Errorf("Ticker(%d) over %d frames fired %d times, expected %d", tc.interval, tc.frames, fired, tc.expected)
		}
	}
}

func TestTickerSetInterval(t *testing.T) {
	tk := NewTicker(40)
	for i := 0; i < 10; i++ {
		tk.Advance()
	}

	tk.SetInterval(4)
	assert.Equal(t, 4, tk.Interval())
	assert.True(t, tk.Advance(), "a shorter interval fires once the counter passes it")

	tk.Reset()
	assert.False(t, tk.Advance())
}
