package blocks

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/board"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/piece"
)

const blockRune = '█'

// kindColors maps each tetromino to its classic color.
var kindColors = map[piece.Kind]core.Color{
	piece.I: core.ColorCyan,
	piece.O: core.ColorYellow,
	piece.T: core.ColorMagenta,
	piece.S: core.ColorGreen,
	piece.Z: core.ColorRed,
	piece.J: core.ColorBlue,
	piece.L: core.ColorOrange,
}

// Render draws the current game state into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.board == nil {
		return
	}

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderFrame(dst)
	g.renderSettled(dst)
	g.renderActive(dst)
	g.renderNext(dst)

	switch g.board.State() {
	case board.NotStarted:
		g.renderOverlay(dst, "Blockfall", "Press Enter to start")
	case board.Paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	case board.GameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score %d - press R to restart", g.board.Score()))
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s | Score: %d  Level: %d  Lines: %d",
		g.Title(), g.board.Score(), g.board.Level(), g.board.Lines())
	dst.DrawText(0, 0, hud)

	for x := range dst.Width() {
		dst.SetColored(x, 1, '─', core.ColorGray)
	}
}

// toScreen converts a region position (y up) into screen coordinates.
func (g *Game) toScreen(x, yUp int) (sx, sy int) {
	return x * 2, hudHeight + g.regionH - 1 - yUp
}

// boardRect returns the screen rectangle of the visible board, border included.
func (g *Game) boardRect() core.Rect {
	left, top := g.toScreen(g.geom.OffsetX, g.geom.OffsetY+g.geom.Height()-1)
	return core.NewRect(left-1, top-1, g.geom.Width()*2+2, g.geom.Height()+2)
}

func (g *Game) renderFrame(dst *core.Screen) {
	dst.DrawBox(g.boardRect(), core.ColorGray)
}

// drawCell fills one board cell. Cells in the buffer row are not drawn.
func (g *Game) drawCell(dst *core.Screen, col, row int, r rune, c core.Color) {
	if row >= g.geom.TopRow() || !g.geom.InColumns(col) || row < 0 {
		return
	}
	ox, oy := g.geom.CellOrigin(col, row)
	size := g.geom.CellSize
	for dy := 0; dy < size; dy++ {
		sx, sy := g.toScreen(ox, oy+dy)
		for dx := 0; dx < size*2; dx++ {
			dst.SetColored(sx+dx, sy, r, c)
		}
	}
}

func (g *Game) renderSettled(dst *core.Screen) {
	for k, kind := range g.layer.cells {
		g.drawCell(dst, k.col, k.row, blockRune, kindColors[kind])
	}
	for row := range g.layer.flashes {
		for col := 0; col < g.geom.NumColumns(); col++ {
			g.drawCell(dst, col, row, '▒', core.ColorBrightWhite)
		}
	}
}

func (g *Game) renderActive(dst *core.Screen) {
	p, ok := g.board.Active()
	if !ok {
		return
	}
	for _, c := range p.Cells() {
		g.drawCell(dst, c.Col, c.Row, blockRune, kindColors[p.Kind])
	}
}

// renderNext draws the upcoming piece to the right of the board.
func (g *Game) renderNext(dst *core.Screen) {
	kind := g.layer.next
	if !kind.Valid() {
		return
	}
	frame := g.boardRect()
	area := core.NewRect(frame.Right()+2, frame.Y, 8, 6)
	if !dst.Bounds().ContainsRect(area) {
		return
	}
	x, y := area.X, area.Y
	dst.DrawText(x, y, "Next:")

	preview := piece.Spawn(kind, 4, 0)
	preview.Col = 0
	for _, c := range preview.Cells() {
		px := x + c.Col*2
		py := y + 2 - c.Row
		dst.SetColored(px, py, blockRune, kindColors[kind])
		dst.SetColored(px+1, py, blockRune, kindColors[kind])
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	boxW := maxLen + 4
	boxH := 5
	box := dst.Bounds().CenterIn(boxW, boxH)

	dst.FillRect(box.Inset(1), ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
