// Package loop drives the board in frames: a periodic descent Ticker and a
// Scheduler of one-shot delayed tasks.
//
// Everything is single-threaded. Time only moves when the owner calls
// Advance, so a paused owner freezes every pending task by not calling it.
package loop

import "sort"

// Handle identifies a scheduled task.
type Handle uint64

type task struct {
	id    Handle
	due   uint64
	epoch uint64
	fn    func()
}

// Scheduler runs callbacks after a delay measured in frames.
// Each task is stamped with the epoch current when it was scheduled;
// Invalidate moves to a new epoch so that older tasks never run.
type Scheduler struct {
	now   uint64
	epoch uint64
	seq   Handle
	tasks []task
}

// NewScheduler creates an empty scheduler at frame 0.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After schedules fn to run once, delay frames from now.
// A delay below 1 runs on the next Advance.
func (s *Scheduler) After(delay int, fn func()) Handle {
	if delay < 1 {
		delay = 1
	}
	s.seq++
	s.tasks = append(s.tasks, task{
		id:    s.seq,
		due:   s.now + uint64(delay),
		epoch: s.epoch,
		fn:    fn,
	})
	return s.seq
}

// Cancel removes a pending task. It reports whether the task was pending.
func (s *Scheduler) Cancel(h Handle) bool {
	for i, t := range s.tasks {
		if t.id == h {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Invalidate drops every pending task and starts a new epoch.
func (s *Scheduler) Invalidate() {
	s.epoch++
	s.tasks = s.tasks[:0]
}

// Advance moves time forward one frame and runs every task that is due,
// ordered by due frame then scheduling order. Tasks scheduled by a running
// task are never run in the same call.
func (s *Scheduler) Advance() {
	s.now++

	var due []task
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.due <= s.now {
			due = append(due, t)
		} else {
			kept = append(kept, t)
		}
	}
	s.tasks = kept

	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].id < due[j].id
	})

	epoch := s.epoch
	for _, t := range due {
		// A task may have invalidated the scheduler.
		if t.epoch != epoch || s.epoch != epoch {
			continue
		}
		t.fn()
	}
}

// Pending returns the number of tasks waiting to run.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Epoch returns the current epoch.
func (s *Scheduler) Epoch() uint64 {
	return s.epoch
}

// Now returns the number of frames advanced so far.
func (s *Scheduler) Now() uint64 {
	return s.now
}
