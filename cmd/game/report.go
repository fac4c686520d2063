package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1siamBot/terrain-rts/engine/core"
	"github.com/1siamBot/terrain-rts/engine/sim"
)

// Report is the outcome of a headless run
type Report struct {
	Session string
	Ticks   int
	Seconds float64
	Outcome string
	Rows    []ReportRow
}

// ReportRow is one team's line
type ReportRow struct {
	Team    string
	Alive   int
	Spawned int
	Losses  int
	Attacks int
	Dealt   float64
	Taken   float64
}

var reportHeader = []string{"Team", "Alive", "Spawned", "Losses", "Attacks", "Dealt", "Taken"}

func NewReport(s *sim.Simulation, ticks int) Report {
	r := Report{
		Session: s.Session.String(),
		Ticks:   ticks,
		Seconds: float64(ticks) / s.Config.Sim.TickRate,
		Outcome: "undecided",
	}
	if team, ok := s.Winner(); ok {
		r.Outcome = team.String() + " wins"
	}
	for _, team := range []core.Team{core.TeamPlayer, core.TeamAI} {
		ts := s.Stats.Team(team)
		r.Rows = append(r.Rows, ReportRow{
			Team:    team.String(),
			Alive:   s.Alive(team),
			Spawned: ts.Spawned,
			Losses:  ts.Losses,
			Attacks: ts.Attacks,
			Dealt:   ts.DamageDealt,
			Taken:   ts.DamageTaken,
		})
	}
	return r
}

func (r Report) cells() [][]string {
	out := [][]string{reportHeader}
	for _, row := range r.Rows {
		out = append(out, []string{
			row.Team,
			fmt.Sprint(row.Alive),
			fmt.Sprint(row.Spawned),
			fmt.Sprint(row.Losses),
			fmt.Sprint(row.Attacks),
			fmt.Sprintf("%.0f", row.Dealt),
			fmt.Sprintf("%.0f", row.Taken),
		})
	}
	return out
}

func (r Report) summary() string {
	return fmt.Sprintf("session %s | %d ticks (%.1fs) | %s", r.Session, r.Ticks, r.Seconds, r.Outcome)
}

// String renders the report as plain aligned text
func (r Report) String() string {
	cells := r.cells()
	widths := columnWidths(cells)
	var b strings.Builder
	b.WriteString("Battle report\n")
	b.WriteString(r.summary())
	b.WriteString("\n\n")
	for _, row := range cells {
		for i, c := range row {
			fmt.Fprintf(&b, "%-*s  ", widths[i], c)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), " \n") + "\n"
}

// Render styles the report for a terminal
func (r Report) Render() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	metaStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	teamStyles := map[string]lipgloss.Style{
		core.TeamPlayer.String(): lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		core.TeamAI.String():     lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
	}

	cells := r.cells()
	widths := columnWidths(cells)
	lines := make([]string, 0, len(cells))
	for i, row := range cells {
		parts := make([]string, len(row))
		for j, c := range row {
			parts[j] = lipgloss.NewStyle().Width(widths[j] + 2).Render(c)
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
		switch {
		case i == 0:
			line = headerStyle.Render(line)
		default:
			if st, ok := teamStyles[row[0]]; ok {
				line = st.Render(line)
			}
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Battle report"),
		metaStyle.Render(r.summary()),
		tableStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)),
	)
}

func columnWidths(cells [][]string) []int {
	widths := make([]int, len(reportHeader))
	for _, row := range cells {
		for i, c := range row {
			if len(c) > widths[i] {
				widths[i] = len(c)
			}
		}
	}
	return widths
}
