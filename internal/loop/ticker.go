package loop

// Ticker fires once every Interval frames.
type Ticker struct {
	interval int
	count    int
}

// NewTicker creates a ticker with the given interval (at least 1).
func NewTicker(interval int) *Ticker {
	t := &Ticker{}
	t.SetInterval(interval)
	return t
}

// SetInterval changes the period. The frame counter is kept, so a shorter
// interval can fire on the very next Advance.
func (t *Ticker) SetInterval(interval int) {
	if interval < 1 {
		interval = 1
	}
	t.interval = interval
}

// Interval returns the current period in frames.
func (t *Ticker) Interval() int {
	return t.interval
}

// Reset restarts the frame counter.
func (t *Ticker) Reset() {
	t.count = 0
}

// Advance counts one frame and reports whether the ticker fired.
func (t *Ticker) Advance() bool {
	t.count++
	if t.count >= t.interval {
		t.count = 0
		return true
	}
	return false
}
