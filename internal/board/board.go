// Package board is the falling-block simulation: the active piece, its
// movement against walls and settled cells, settling, line clears, row
// shifts, scoring and level progression.
//
// A Board is driven one frame at a time through Advance and reports what
// happened through an Observer. It owns no timers of its own and is not
// safe for concurrent use.
package board

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/geometry"
	"github.com/vovakirdan/blockfall/internal/loop"
	"github.com/vovakirdan/blockfall/internal/occupancy"
	"github.com/vovakirdan/blockfall/internal/piece"
)

// State is the lifecycle state of a board.
type State int

const (
	NotStarted State = iota
	InPlay
	Paused
	GameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case InPlay:
		return "InPlay"
	case Paused:
		return "Paused"
	case GameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Direction is a movement command for the active piece.
type Direction int

const (
	Left Direction = iota
	Right
	Down // One immediate descent check
	Drop // Fast fall until the next spawn
)

// pendingShift is a row move the observer has not been told about yet.
type pendingShift struct {
	handle   loop.Handle
	from, to int
}

// Options tunes diagnostics.
type Options struct {
	Logger *log.Logger
	// Strict turns internal invariant violations into panics.
	Strict bool
}

// Board is one falling-block simulation.
type Board struct {
	cfg    config.BlocksConfig
	prog   config.Progression
	geom   geometry.Geometry
	rnd    piece.Randomizer
	obs    Observer
	logger *log.Logger
	strict bool

	occ    *occupancy.Map
	sched  *loop.Scheduler
	ticker *loop.Ticker

	state     State
	active    piece.Piece
	hasActive bool
	next      piece.Kind

	score         int
	level         int
	lines         int
	levelInterval int
	run           uint64

	shifts []*pendingShift // Oldest first
}

// New creates a board in the NotStarted state.
// A nil observer is replaced with NopObserver.
func New(cfg config.BlocksConfig, geom geometry.Geometry, rnd piece.Randomizer, obs Observer, opts Options) *Board {
	if obs == nil {
		obs = NopObserver{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	prog := config.NewProgression(cfg)
	b := &Board{
		cfg:    cfg,
		prog:   prog,
		geom:   geom,
		rnd:    rnd,
		obs:    obs,
		logger: logger,
		strict: opts.Strict,
		occ:    occupancy.New(),
		sched:  loop.NewScheduler(),
		level:  prog.StartLevel(),
	}
	b.levelInterval = prog.IntervalFor(b.level)
	b.ticker = loop.NewTicker(b.levelInterval)
	return b
}

// Start begins a run. The first piece appears after the spawn delay.
func (b *Board) Start() bool {
	if b.state != NotStarted {
		return false
	}
	b.state = InPlay
	b.run++
	b.next = b.rnd.Next()
	b.obs.OnNextPieceChanged(b.next)
	b.logger.Debug("run started", "run", b.run, "next", b.next)
	b.scheduleSpawn()
	return true
}

// Pause freezes the board. Pending spawns and shifts wait for Resume.
func (b *Board) Pause() bool {
	if b.state != InPlay {
		return false
	}
	b.state = Paused
	return true
}

// Resume continues a paused board.
func (b *Board) Resume() bool {
	if b.state != Paused {
		return false
	}
	b.state = InPlay
	return true
}

// Reset abandons the current run and returns to NotStarted.
// Pending tasks are cancelled and a save is requested for the run.
func (b *Board) Reset() {
	b.sched.Invalidate()
	b.shifts = nil
	b.obs.OnRequestSave(b.Progress())

	b.occ.Reset()
	b.hasActive = false
	b.active = piece.Piece{}

	b.level = b.prog.StartLevel()
	b.levelInterval = b.prog.IntervalFor(b.level)
	b.ticker.SetInterval(b.levelInterval)
	b.ticker.Reset()

	b.score = 0
	b.lines = 0
	b.state = NotStarted

	b.obs.OnScoreChanged(b.score)
	b.obs.OnLevelChanged(b.level)
}

// Advance runs one frame: due scheduled tasks first, then the descent ticker.
// Nothing happens unless the board is in play.
func (b *Board) Advance() {
	if b.state != InPlay {
		return
	}
	b.sched.Advance()
	if b.state != InPlay || !b.hasActive {
		return
	}
	if b.ticker.Advance() {
		b.Tick()
	}
}

// Move applies a movement command to the active piece.
// It returns false when there is no active piece or the move is rejected.
func (b *Board) Move(dir Direction) bool {
	if b.state != InPlay || !b.hasActive {
		return false
	}

	switch dir {
	case Left:
		return b.shift(-1)
	case Right:
		return b.shift(1)
	case Down:
		b.Tick()
		return true
	case Drop:
		b.ticker.SetInterval(b.cfg.Timing.DropInterval)
		return true
	}
	return false
}

// shift moves the active piece sideways only if every cell stays in bounds
// and lands on a free cell.
func (b *Board) shift(dc int) bool {
	cand := b.active.Moved(dc, 0)
	for _, c := range cand.Cells() {
		if !b.geom.InColumns(c.Col) || b.occ.IsOccupied(c.Col, c.Row) {
			return false
		}
	}
	b.active = b.clampColumns(cand)
	return true
}

// Rotate turns the active piece to its next rotation state, nudged back
// inside the walls. It is rejected if any cell would leave the rows or
// overlap a settled cell.
func (b *Board) Rotate() bool {
	if b.state != InPlay || !b.hasActive {
		return false
	}
	cand := b.clampColumns(b.active.Rotated())
	for _, c := range cand.Cells() {
		if !b.geom.InColumns(c.Col) || !b.geom.InRows(c.Row) || b.occ.IsOccupied(c.Col, c.Row) {
			return false
		}
	}
	b.active = cand
	return true
}

// clampColumns nudges p inward one column at a time until every cell is
// inside the board.
func (b *Board) clampColumns(p piece.Piece) piece.Piece {
	for i := 0; i <= b.geom.NumColumns()+4; i++ {
		minCol, maxCol, _, _ := p.Bounds()
		switch {
		case minCol < 0:
			p = p.Moved(1, 0)
		case maxCol > b.geom.LastColumn():
			p = p.Moved(-1, 0)
		default:
			return p
		}
	}
	b.invariant("piece wider than board", "kind", p.Kind, "columns", b.geom.NumColumns())
	return p
}

// Tick is one descent check. The piece either moves down a row, settles,
// or ends the game when it is blocked while still in the buffer row.
func (b *Board) Tick() {
	if b.state != InPlay || !b.hasActive {
		return
	}

	cells := b.active.Cells()
	blocked, atBottom := false, false
	for _, c := range cells {
		if c.Row <= 0 {
			atBottom = true
			continue
		}
		if b.occ.IsOccupied(c.Col, c.Row-1) {
			blocked = true
		}
	}

	switch {
	case blocked:
		for _, c := range cells {
			if c.Row >= b.geom.TopRow() {
				b.gameOver()
				return
			}
		}
		b.settle()
	case atBottom:
		b.settle()
	default:
		b.active = b.active.Moved(0, -1)
	}
}

// settle writes the active piece into the occupancy map, clears full rows
// and schedules the next spawn.
func (b *Board) settle() {
	// Observers must see the rows where they now are before new cells land.
	b.flushShifts()

	kind := b.active.Kind
	for _, c := range b.active.Cells() {
		if !b.geom.InColumns(c.Col) || !b.geom.InRows(c.Row) {
			b.invariant("settled cell outside grid", "col", c.Col, "row", c.Row)
			continue
		}
		if !b.occ.Occupy(c.Col, c.Row, occupancy.Tag(kind)) {
			b.invariant("settled cell already occupied", "col", c.Col, "row", c.Row)
			continue
		}
		b.obs.OnCellSettled(c.Col, c.Row, kind)
	}
	b.hasActive = false
	b.active = piece.Piece{}

	b.clearLines()
	if b.state == InPlay {
		b.scheduleSpawn()
	}
}

// clearLines removes every full row, awards points, raises the level and
// moves the surviving rows down.
func (b *Board) clearLines() {
	columns := b.geom.NumColumns()
	rows := b.occ.Rows()

	var cleared []int
	isCleared := make(map[int]bool)
	for _, row := range rows {
		n := b.occ.RowCount(row)
		if n > columns {
			b.invariant("row holds more cells than columns", "row", row, "count", n)
		}
		if n != columns {
			continue
		}
		cleared = append(cleared, row)
		isCleared[row] = true
		b.obs.OnRowCleared(row)
		b.occ.ClearRow(row)
	}
	if len(cleared) == 0 {
		return
	}

	n := len(cleared)
	b.lines += n
	old := b.score
	b.score += b.prog.ClearPoints(n)
	b.obs.OnScoreChanged(b.score)
	b.logger.Debug("rows cleared", "rows", cleared, "score", b.score)

	if crossed := b.prog.LevelsCrossed(old, b.score); crossed > 0 {
		b.level += crossed
		b.levelInterval = b.prog.IntervalFor(b.level)
		b.obs.OnLevelChanged(b.level)
		b.logger.Debug("level up", "level", b.level, "interval", b.levelInterval)
	}

	// Each surviving row drops by the number of cleared rows below it.
	type move struct{ from, to int }
	var moves []move
	lowest := cleared[0]
	for _, row := range rows {
		if row <= lowest || isCleared[row] {
			continue
		}
		below := 0
		for _, c := range cleared {
			if c < row {
				below++
			}
		}
		moves = append(moves, move{from: row, to: row - below})
	}

	for i := len(cleared) - 1; i >= 0; i-- {
		if err := b.occ.ShiftRowsDown(cleared[i], 1); err != nil {
			b.invariant("row shift collided", "err", err)
		}
	}

	for _, m := range moves {
		ps := &pendingShift{from: m.from, to: m.to}
		ps.handle = b.sched.After(b.cfg.Timing.ShiftDelay, func() { b.runShift(ps) })
		b.shifts = append(b.shifts, ps)
	}
}

// runShift delivers one delayed row move unless it was already flushed.
func (b *Board) runShift(ps *pendingShift) {
	i := slices.Index(b.shifts, ps)
	if i < 0 || b.state != InPlay {
		return
	}
	b.shifts = slices.Delete(b.shifts, i, i+1)
	b.obs.OnRowShifted(ps.from, ps.to)
}

// flushShifts delivers every pending row move now, in scheduling order.
func (b *Board) flushShifts() {
	shifts := b.shifts
	b.shifts = nil
	for _, ps := range shifts {
		b.sched.Cancel(ps.handle)
		b.obs.OnRowShifted(ps.from, ps.to)
	}
}

// scheduleSpawn restores the level interval and queues the next piece.
func (b *Board) scheduleSpawn() {
	b.ticker.SetInterval(b.levelInterval)
	b.ticker.Reset()
	b.sched.After(b.cfg.Timing.SpawnDelay, b.spawn)
}

// spawn makes the announced piece active at the top of the board.
// A piece that overlaps settled cells as it appears ends the game.
func (b *Board) spawn() {
	if b.state != InPlay || b.hasActive {
		return
	}

	p := piece.Spawn(b.next, b.geom.NumColumns(), b.geom.TopRow())
	b.next = b.rnd.Next()
	b.obs.OnNextPieceChanged(b.next)

	b.active = b.clampColumns(p)
	b.hasActive = true
	b.ticker.Reset()

	for _, c := range b.active.Cells() {
		if b.occ.IsOccupied(c.Col, c.Row) {
			b.gameOver()
			return
		}
	}
	b.obs.OnPieceSpawned(p.Kind)
}

// gameOver stops the run and asks the platform to save and pause.
func (b *Board) gameOver() {
	if b.state == GameOver {
		return
	}
	b.state = GameOver
	b.flushShifts()
	b.sched.Invalidate()
	b.logger.Info("game over", "run", b.run, "score", b.score, "level", b.level, "lines", b.lines)

	b.obs.OnGameOver()
	b.obs.OnRequestSave(b.Progress())
	b.obs.OnRequestPause()
}

// invariant reports an internal inconsistency between the board and its
// geometry or occupancy map.
func (b *Board) invariant(msg string, keyvals ...any) {
	b.logger.Error("board invariant violated: "+msg, keyvals...)
	if b.strict {
		panic(fmt.Sprintf("board: %s %v", msg, keyvals))
	}
}

// State returns the lifecycle state.
func (b *Board) State() State { return b.state }

// Active returns the active piece, if any.
func (b *Board) Active() (piece.Piece, bool) { return b.active, b.hasActive }

// Next returns the kind that will spawn next.
func (b *Board) Next() piece.Kind { return b.next }

// Score returns the score of the current run.
func (b *Board) Score() int { return b.score }

// Level returns the current level.
func (b *Board) Level() int { return b.level }

// Lines returns the rows cleared this run.
func (b *Board) Lines() int { return b.lines }

// Interval returns the current descent interval in frames.
func (b *Board) Interval() int { return b.ticker.Interval() }

// Geometry returns the grid the board was built on.
func (b *Board) Geometry() geometry.Geometry { return b.geom }

// Occupancy returns a read-only view of the settled cells.
func (b *Board) Occupancy() occupancy.View { return b.occ }

// Progress returns the snapshot a save request would carry.
func (b *Board) Progress() Progress {
	return Progress{Run: b.run, Score: b.score, Level: b.level, Lines: b.lines}
}

// Frame returns the number of frames advanced while in play.
func (b *Board) Frame() uint64 { return b.sched.Now() }
