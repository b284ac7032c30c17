package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/geometry"
	"github.com/vovakirdan/blockfall/internal/piece"
)

// recorder captures every notification for assertions.
type recorder struct {
	gameOvers int
	pauses    int
	saves     []Progress
	scores    []int
	levels    []int
	next      []piece.Kind
	cleared   []int
	settled   int
	spawned   []piece.Kind
	shifted   [][2]int
	order     []string // "settle" and "shift" in delivery order
}

func (r *recorder) OnGameOver() { r.gameOvers++ }
func (r *recorder) OnRequestSave(p Progress) { r.saves = append(r.saves, p) }
func (r *recorder) OnRequestPause() { r.pauses++ }
func (r *recorder) OnScoreChanged(score int) { r.scores = append(r.scores, score) }
func (r *recorder) OnLevelChanged(level int) { r.levels = append(r.levels, level) }
func (r *recorder) OnNextPieceChanged(kind piece.Kind) { r.next = append(r.next, kind) }
func (r *recorder) OnRowCleared(row int) { r.cleared = append(r.cleared, row) }
func (r *recorder) OnCellSettled(int, int, piece.Kind) {
	r.settled++
	r.order = append(r.order, "settle")
}
func (r *recorder) OnPieceSpawned(kind piece.Kind) { r.spawned = append(r.spawned, kind) }
func (r *recorder) OnRowShifted(from, to int) {
	r.shifted = append(r.shifted, [2]int{from, to})
	r.order = append(r.order, "shift")
}

func testConfig() config.BlocksConfig {
	cfg := config.DefaultBlocksConfig()
	cfg.Timing.SpawnDelay = 2
	cfg.Timing.ShiftDelay = 1
	return cfg
}

// newTestBoard builds a 12x20 board (plus buffer row) fed by a fixed sequence.
func newTestBoard(t *testing.T, kinds ...piece.Kind) (*Board, *recorder) {
	t.Helper()
	geom := geometry.New(
		geometry.Region{W: 12, H: 20},
		geometry.Layout{Columns: 12, WidthFraction: 1, HeightFraction: 1, MinRows: 8},
	)
	require.Equal(t, 20, geom.TopRow())

	rec := &recorder{}
	b := New(testConfig(), geom, piece.NewSequence(kinds...), rec, Options{Strict: true})
	return b, rec
}

// startAndSpawn starts the run and advances until the first piece is active.
func startAndSpawn(t *testing.T, b *Board) piece.Piece {
	t.Helper()
	require.True(t, b.Start())
	for i := 0; i < 10; i++ {
		if _, ok := b.Active(); ok {
			break
		}
		b.Advance()
	}
	p, ok := b.Active()
	require.True(t, ok, "piece should spawn after the spawn delay")
	return p
}

// dropToSettle runs descent checks until the active piece settles.
func dropToSettle(t *testing.T, b *Board) {
	t.Helper()
	for i := 0; i < 100; i++ {
		if _, ok := b.Active(); !ok {
			return
		}
		b.Move(Down)
	}
	t.Fatal("piece never settled")
}

func fillRow(b *Board, row int, skip ...int) {
	skipped := make(map[int]bool)
	for _, c := range skip {
		skipped[c] = true
	}
	for col := 0; col < b.geom.NumColumns(); col++ {
		if !skipped[col] {
			b.occ.Occupy(col, row, 1)
		}
	}
}

func TestStartSchedulesSpawn(t *testing.T) {
	b, rec := newTestBoard(t, piece.T, piece.O)

	assert.Equal(t, NotStarted, b.State())
	require.True(t, b.Start())
	assert.False(t, b.Start(), "second start is rejected")
	assert.Equal(t, InPlay, b.State())
	assert.Equal(t, []piece.Kind{piece.T}, rec.next)

	_, ok := b.Active()
	assert.False(t, ok, "no piece before the spawn delay")
	assert.False(t, b.Move(Left), "moves without an active piece are rejected")
	assert.False(t, b.Rotate())

	b.Advance()
	b.Advance()
	p, ok := b.Active()
	require.True(t, ok)
	assert.Equal(t, piece.T, p.Kind)
	assert.Equal(t, 20, p.Row)
	assert.Equal(t, piece.O, b.Next())
	assert.Equal(t, []piece.Kind{piece.T}, rec.spawned)
	assert.Equal(t, uint64(1), b.Progress().Run)
}

func TestMoveRightThreeTimes(t *testing.T) {
	b, _ := newTestBoard(t, piece.I)
	p := startAndSpawn(t, b)
	origin := p.Col

	for i := 0; i < 3; i++ {
		require.True(t, b.Move(Right))
	}
	p, _ = b.Active()
	assert.Equal(t, origin+3, p.Col)

	// One more still fits, the next hits the wall.
	assert.True(t, b.Move(Right))
	assert.False(t, b.Move(Right))
	p, _ = b.Active()
	assert.Equal(t, b.geom.LastColumn(), p.Col+3)
}

func TestMoveRejectedByOccupiedCell(t *testing.T) {
	b, _ := newTestBoard(t, piece.I)
	p := startAndSpawn(t, b)

	// Block the cell right of the I piece in the spawn row.
	b.occ.Occupy(p.Col+4, p.Row, 1)

	assert.False(t, b.Move(Right))
	after, _ := b.Active()
	assert.Equal(t, p, after, "rejected move leaves the piece untouched")

	assert.True(t, b.Move(Left))
}

func TestMoveLeftStopsAtWall(t *testing.T) {
	b, _ := newTestBoard(t, piece.O)
	startAndSpawn(t, b)

	moves := 0
	for b.Move(Left) {
		moves++
		require.Less(t, moves, 20)
	}
	p, _ := b.Active()
	minCol, _, _, _ := p.Bounds()
	assert.Equal(t, 0, minCol)
}

func TestTickDescends(t *testing.T) {
	b, _ := newTestBoard(t, piece.T)
	p := startAndSpawn(t, b)

	b.Tick()
	after, ok := b.Active()
	require.True(t, ok)
	assert.Equal(t, p.Row-1, after.Row)
	assert.Equal(t, p.Col, after.Col)
}

func TestSingleRowClear(t *testing.T) {
	b, rec := newTestBoard(t, piece.I)
	p := startAndSpawn(t, b)
	require.Equal(t, 4, p.Col)

	// Bottom row full except where the I piece lands.
	fillRow(b, 0, 4, 5, 6, 7)

	dropToSettle(t, b)

	assert.Equal(t, []int{0}, rec.cleared)
	assert.Equal(t, 0, b.Occupancy().RowCount(0))
	assert.Equal(t, 0, b.Occupancy().Len())
	assert.Equal(t, 20, b.Score())
	assert.Equal(t, 1, b.Lines())
	assert.Equal(t, 4, rec.settled)
	assert.Equal(t, []int{20}, rec.scores)
}

func TestNoClearWhenRowIncomplete(t *testing.T) {
	b, rec := newTestBoard(t, piece.I)
	startAndSpawn(t, b)

	fillRow(b, 0, 3, 4, 5, 6, 7)
	dropToSettle(t, b)

	assert.Empty(t, rec.cleared)
	assert.Equal(t, 11, b.Occupancy().RowCount(0))
	assert.Equal(t, 0, b.Score())
}

func TestClearWithGapShiftsEachRowByClearedBelow(t *testing.T) {
	b, rec := newTestBoard(t, piece.I)
	startAndSpawn(t, b)

	fillRow(b, 0, 0)
	b.occ.Occupy(5, 1, 1)
	fillRow(b, 2, 0)
	b.occ.Occupy(3, 3, 1)

	// Vertical I down column 0 fills rows 0-3.
	require.True(t, b.Rotate())
	for b.Move(Left) {
	}
	p, _ := b.Active()
	minCol, _, _, _ := p.Bounds()
	require.Equal(t, 0, minCol)

	dropToSettle(t, b)

	assert.Equal(t, []int{0, 2}, rec.cleared)
	assert.Equal(t, 40, b.Score())
	assert.Equal(t, 2, b.Lines())

	// Row 1 drops one row, row 3 drops two.
	assert.Equal(t, []int{0, 1}, b.Occupancy().Rows())
	assert.Equal(t, []int{0, 5}, b.Occupancy().Columns(0))
	assert.Equal(t, []int{0, 3}, b.Occupancy().Columns(1))
	assert.Equal(t, len(b.Occupancy().Cells()), b.Occupancy().Len())

	assert.Empty(t, rec.shifted, "shift notifications are delayed")
	b.Advance()
	assert.Equal(t, [][2]int{{1, 0}, {3, 1}}, rec.shifted)
}

func TestPendingShiftsDeliveredBeforeNextSettle(t *testing.T) {
	geom := geometry.New(
		geometry.Region{W: 12, H: 20},
		geometry.Layout{Columns: 12, WidthFraction: 1, HeightFraction: 1, MinRows: 8},
	)
	cfg := testConfig()
	cfg.Timing.SpawnDelay = 1
	cfg.Timing.ShiftDelay = 15
	rec := &recorder{}
	b := New(cfg, geom, piece.NewSequence(piece.I, piece.O), rec, Options{Strict: true})

	startAndSpawn(t, b)
	fillRow(b, 0, 4, 5, 6, 7)
	b.occ.Occupy(0, 1, 1)

	dropToSettle(t, b)
	require.Equal(t, []int{0}, rec.cleared)
	assert.Empty(t, rec.shifted, "shift is still pending")

	b.Advance()
	p, ok := b.Active()
	require.True(t, ok, "next piece spawns before the shift delay elapses")
	require.Equal(t, piece.O, p.Kind)

	dropToSettle(t, b)
	assert.Equal(t, [][2]int{{1, 0}}, rec.shifted)
	assert.Equal(t, []string{
		"settle", "settle", "settle", "settle",
		"shift",
		"settle", "settle", "settle", "settle",
	}, rec.order)

	for i := 0; i < 20; i++ {
		b.Advance()
	}
	assert.Len(t, rec.shifted, 1, "a flushed shift is not delivered again")
}

func TestGameOverDeliversPendingShifts(t *testing.T) {
	b, rec := newTestBoard(t, piece.I)
	startAndSpawn(t, b)
	fillRow(b, 0, 4, 5, 6, 7)
	b.occ.Occupy(0, 1, 1)
	dropToSettle(t, b)
	require.Empty(t, rec.shifted)

	b.gameOver()
	assert.Equal(t, [][2]int{{1, 0}}, rec.shifted)
	assert.Equal(t, 1, rec.gameOvers)
}

func TestLevelUp(t *testing.T) {
	b, rec := newTestBoard(t, piece.I)
	startAndSpawn(t, b)
	b.score = 80

	fillRow(b, 0, 4, 5, 6, 7)
	dropToSettle(t, b)

	assert.Equal(t, 100, b.Score())
	assert.Equal(t, 2, b.Level())
	assert.Equal(t, []int{2}, rec.levels)
	assert.Equal(t, 35, b.Interval(), "the next spawn uses the faster level interval")
}

func TestDropIsFastFall(t *testing.T) {
	b, _ := newTestBoard(t, piece.O)
	p := startAndSpawn(t, b)

	require.True(t, b.Move(Drop))
	assert.Equal(t, 4, b.Interval())

	for i := 0; i < 4; i++ {
		b.Advance()
	}
	after, ok := b.Active()
	require.True(t, ok, "drop is not a teleport")
	assert.Equal(t, p.Row-1, after.Row)

	dropToSettle(t, b)
	assert.Equal(t, 40, b.Interval(), "settling restores the level interval")
}

func TestGameOverWhenBlockedInBufferRow(t *testing.T) {
	b, rec := newTestBoard(t, piece.I)
	p := startAndSpawn(t, b)

	// Stack reaches right under the spawn row.
	for col := p.Col; col < p.Col+4; col++ {
		b.occ.Occupy(col, p.Row-1, 1)
	}

	b.Tick()
	assert.Equal(t, GameOver, b.State())
	assert.Equal(t, 1, rec.gameOvers)
	assert.Equal(t, 1, rec.pauses)
	require.Len(t, rec.saves, 1)
	assert.Equal(t, Progress{Run: 1, Score: 0, Level: 1, Lines: 0}, rec.saves[0])

	cells := b.Occupancy().Len()
	b.Tick()
	b.Advance()
	assert.False(t, b.Move(Left))
	assert.False(t, b.Pause())

	assert.Equal(t, 1, rec.gameOvers, "game over fires exactly once")
	assert.Equal(t, cells, b.Occupancy().Len())
	after, _ := b.Active()
	assert.Equal(t, p, after)
}

func TestGameOverOnSpawnOverlap(t *testing.T) {
	b, rec := newTestBoard(t, piece.O)
	require.True(t, b.Start())
	b.occ.Occupy(5, 20, 1)

	b.Advance()
	b.Advance()

	assert.Equal(t, GameOver, b.State())
	assert.Equal(t, 1, rec.gameOvers)
	assert.Empty(t, rec.spawned)
}

func TestResetCancelsPendingSpawn(t *testing.T) {
	b, rec := newTestBoard(t, piece.T)
	require.True(t, b.Start())
	b.Advance()

	b.Reset()
	assert.Equal(t, NotStarted, b.State())
	require.True(t, b.Start())

	// The stale spawn was due on the next frame; the new one a frame later.
	b.Advance()
	assert.Empty(t, rec.spawned)
	for i := 0; i < 5; i++ {
		b.Advance()
	}
	assert.Len(t, rec.spawned, 1)
}

func TestResetClearsRun(t *testing.T) {
	b, rec := newTestBoard(t, piece.I)
	startAndSpawn(t, b)
	fillRow(b, 0, 4, 5, 6, 7)
	b.occ.Occupy(0, 1, 1)
	dropToSettle(t, b)
	require.Equal(t, 20, b.Score())
	require.Equal(t, 1, b.Occupancy().Len())

	b.Reset()

	assert.Equal(t, NotStarted, b.State())
	assert.Equal(t, 0, b.Score())
	assert.Equal(t, 0, b.Lines())
	assert.Equal(t, 1, b.Level())
	assert.Equal(t, 0, b.Occupancy().Len())
	assert.Equal(t, 40, b.Interval())
	_, ok := b.Active()
	assert.False(t, ok)

	require.Len(t, rec.saves, 1)
	assert.Equal(t, 20, rec.saves[0].Score)
	assert.Equal(t, 0, rec.scores[len(rec.scores)-1])
	assert.Equal(t, 1, rec.levels[len(rec.levels)-1])
}

func TestPauseDefersSpawn(t *testing.T) {
	b, rec := newTestBoard(t, piece.S)
	require.True(t, b.Start())
	b.Advance()

	require.True(t, b.Pause())
	assert.False(t, b.Pause())
	for i := 0; i < 50; i++ {
		b.Advance()
	}
	assert.Empty(t, rec.spawned)

	require.True(t, b.Resume())
	assert.False(t, b.Resume())
	b.Advance()
	assert.Equal(t, []piece.Kind{piece.S}, rec.spawned)
}

func TestRotate(t *testing.T) {
	b, _ := newTestBoard(t, piece.I)
	p := startAndSpawn(t, b)

	// Vertical I would cover column p.Col+1 down to row 17.
	b.occ.Occupy(p.Col+1, 18, 1)
	assert.False(t, b.Rotate())

	b.occ.Reset()
	assert.True(t, b.Rotate())
	after, _ := b.Active()
	assert.Equal(t, 1, after.Rotation)
}

func TestRotateClampsIntoColumns(t *testing.T) {
	b, _ := newTestBoard(t, piece.I)
	startAndSpawn(t, b)
	require.True(t, b.Rotate())
	for b.Move(Right) {
	}

	// Back to horizontal against the right wall.
	require.True(t, b.Rotate())
	p, _ := b.Active()
	_, maxCol, _, _ := p.Bounds()
	assert.Equal(t, b.geom.LastColumn(), maxCol)
}

func TestObserversFanOut(t *testing.T) {
	a, c := &recorder{}, &recorder{}
	obs := Observers{a, NopObserver{}, c}

	obs.OnRowCleared(3)
	obs.OnGameOver()

	for _, r := range []*recorder{a, c} {
		assert.Equal(t, []int{3}, r.cleared)
		assert.Equal(t, 1, r.gameOvers)
	}
}

func TestStrictInvariantPanics(t *testing.T) {
	b, _ := newTestBoard(t, piece.I)
	assert.PanicsWithValue(t, "board: test [row 3]", func() { b.invariant("test", "row", 3) })

	b.strict = false
	assert.NotPanics(t, func() { b.invariant("test", "row", 3) })
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{NotStarted, "NotStarted"},
		{InPlay, "InPlay"},
		{Paused, "Paused"},
		{GameOver, "GameOver"},
		{State(9), "Unknown"},
	}
	for _, tc := range tests {
		if tc.state.String() != tc.expected {
			t.Errorf("State(%d).String() = %q, expected %q", tc.state, tc.state.String(), tc.expected)
		}
	}
}
