// Package savegame keeps the local progress record (best score, best level,
// lines and games played) in the per-user data directory via gdata.
package savegame

import (
	"fmt"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/blockfall/internal/core"
)

const (
	recordObject   = "progress"
	recordProperty = "record"
)

// Record is the persisted summary of every run played on this machine.
type Record struct {
	BestScore   int       `yaml:"best_score"`
	BestLevel   int       `yaml:"best_level"`
	TotalLines  int       `yaml:"total_lines"`
	GamesPlayed int       `yaml:"games_played"`
	LastScore   int       `yaml:"last_score"`
	UpdatedAt   time.Time `yaml:"updated_at"`
}

// Store reads and writes the progress record.
type Store struct {
	m   *gdata.Manager
	now func() time.Time
}

// Open opens the data directory for appName, creating it if needed.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("savegame: cannot open data dir: %w", err)
	}
	return &Store{m: m, now: time.Now}, nil
}

// Load returns the stored record. A missing record is the zero Record.
func (s *Store) Load() (Record, error) {
	var r Record
	if !s.m.ObjectPropExists(recordObject, recordProperty) {
		return r, nil
	}
	data, err := s.m.LoadObjectProp(recordObject, recordProperty)
	if err != nil {
		return r, fmt.Errorf("savegame: cannot load record: %w", err)
	}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("savegame: cannot parse record: %w", err)
	}
	return r, nil
}

// Record folds one finished run into the stored record and saves it.
func (s *Store) Record(p core.Progress) (Record, error) {
	r, err := s.Load()
	if err != nil {
		return r, err
	}

	r.GamesPlayed++
	r.TotalLines += p.Lines
	r.LastScore = p.Score
	r.BestScore = max(r.BestScore, p.Score)
	r.BestLevel = max(r.BestLevel, p.Level)
	r.UpdatedAt = s.now().UTC().Truncate(time.Second)

	data, err := yaml.Marshal(r)
	if err != nil {
		return r, fmt.Errorf("savegame: cannot encode record: %w", err)
	}
	if err := s.m.SaveObjectProp(recordObject, recordProperty, data); err != nil {
		return r, fmt.Errorf("savegame: cannot save record: %w", err)
	}
	return r, nil
}
