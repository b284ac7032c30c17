package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/savegame"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tableFrame = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

// RenderScoreTable renders leaderboard entries as a static table.
func RenderScoreTable(title string, entries []storage.ScoreEntry) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")

	if len(entries) == 0 {
		sb.WriteString(dimStyle.Render("No scores yet."))
		sb.WriteString("\n")
		return sb.String()
	}

	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(e.Score),
			strconv.Itoa(e.Level),
			strconv.Itoa(e.Lines),
			e.CreatedAt.Format("2006-01-02 15:04"),
		}
	}

	t := createTable(rows)
	sb.WriteString(tableFrame.Render(t.View()))
	sb.WriteString("\n")
	return sb.String()
}

// RenderRecord renders the long-term progress record.
func RenderRecord(r savegame.Record) string {
	if r.GamesPlayed == 0 {
		return dimStyle.Render("No runs recorded.") + "\n"
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Progress"))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  Runs played: %d\n", r.GamesPlayed)
	fmt.Fprintf(&sb, "  Best score:  %d\n", r.BestScore)
	fmt.Fprintf(&sb, "  Best level:  %d\n", r.BestLevel)
	fmt.Fprintf(&sb, "  Total lines: %d\n", r.TotalLines)
	fmt.Fprintf(&sb, "  Last score:  %d\n", r.LastScore)
	if !r.UpdatedAt.IsZero() {
		fmt.Fprintf(&sb, "  Last played: %s\n", r.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return sb.String()
}

func createTable(rows []table.Row) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Level", Width: 6},
		{Title: "Lines", Width: 6},
		{Title: "Date", Width: 17},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}
