package config

// Progression calculates the descent interval, level and line-clear points
// from the scoring and timing settings.
type Progression struct {
	timing  TimingConfig
	scoring ScoringConfig
}

// NewProgression creates a progression for cfg.
func NewProgression(cfg BlocksConfig) Progression {
	return Progression{timing: cfg.Timing, scoring: cfg.Scoring}
}

// IsEnabled returns whether levels change the descent speed.
func (p Progression) IsEnabled() bool {
	return p.timing.LevelStep > 0
}

// IntervalFor returns the descent interval at the given level.
func (p Progression) IntervalFor(level int) int {
	gained := max(level-p.StartLevel(), 0)
	interval := p.timing.BaseInterval - gained*p.timing.LevelStep
	return max(interval, p.timing.MinInterval, 1)
}

// LevelsCrossed returns how many level thresholds lie in (oldScore, newScore].
func (p Progression) LevelsCrossed(oldScore, newScore int) int {
	t := p.scoring.LevelThreshold
	if t <= 0 || newScore <= oldScore {
		return 0
	}
	return newScore/t - oldScore/t
}

// ClearPoints returns the points for clearing n rows in one settle:
// base * 2^(n+1).
func (p Progression) ClearPoints(n int) int {
	if n <= 0 {
		return 0
	}
	return p.scoring.BasePoints << (n + 1)
}

// StartLevel returns the level a run begins at.
func (p Progression) StartLevel() int {
	if p.scoring.StartLevel < 1 {
		return 1
	}
	return p.scoring.StartLevel
}
