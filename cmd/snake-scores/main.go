// Command snake-scores prints the saved high score tables and lifetime stats
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"snake-arcade/game/manager"
	"snake-arcade/game/types"
	"snake-arcade/leaderboard"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	title   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	cell    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Padding(0, 1)
	header  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true).Padding(0, 1)
	first   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Padding(0, 1)
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	borders = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

func main() {
	def := types.DefaultConfig()
	dataDir := flag.String("data", def.DataDir, "Directory holding scores and stats")
	modeName := flag.String("mode", "", "Only show one mode: slow, normal, fast")
	reset := flag.Bool("reset", false, "Clear every high score table")
	flag.Parse()

	cfg := def.Copy()
	cfg.DataDir = *dataDir

	modes := types.Modes
	if *modeName != "" {
		mode, err := types.ParseMode(*modeName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(2)
		}
		modes = []types.SpeedMode{mode}
	}

	board := leaderboard.New(leaderboard.NewFileKV(cfg.StorePath()))
	board.Load()

	if *reset {
		board.Reset()
		manager.NewStatsManager(cfg.StatsPath()).ResetHighScores()
		fmt.Println("High scores cleared.")
		return
	}

	stats := manager.NewStatsManager(cfg.StatsPath())
	fmt.Print(render(board, stats, modes))
}

func render(board *leaderboard.Leaderboard, stats *manager.StatsManager, modes []types.SpeedMode) string {
	var b strings.Builder
	for _, mode := range modes {
		b.WriteString(title.Render(fmt.Sprintf("%s mode", strings.ToUpper(mode.String()))))
		b.WriteString("\n")
		b.WriteString(scoreTable(board.Entries(mode)))
		b.WriteString("\n\n")
	}
	b.WriteString(summary(stats))
	b.WriteString("\n")
	return b.String()
}

func scoreTable(entries []leaderboard.Entry) string {
	if len(entries) == 0 {
		return dim.Render("  no scores yet")
	}

	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		date := "-"
		if !e.Date.IsZero() {
			date = e.Date.Local().Format("2006-01-02")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			e.Name,
			fmt.Sprintf("%d", e.Score),
			date,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borders).
		BorderHeader(true).
		BorderRow(false).
		Headers("#", "Name", "Score", "Date").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case row == 0:
				return first
			}
			return cell
		})
	return t.Render()
}

func summary(stats *manager.StatsManager) string {
	played := stats.GamesPlayed()
	if played == 0 {
		return dim.Render("No games played yet.")
	}
	lines := []string{
		fmt.Sprintf("Games played: %d", played),
		fmt.Sprintf("Average of last %d: %.1f", len(stats.ScoreHistory()), stats.AverageScore()),
	}
	for _, mode := range types.Modes {
		if hs := stats.HighScore(mode); hs > 0 {
			lines = append(lines, fmt.Sprintf("Best %s: %d", mode, hs))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
