package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"lifeboard/pkg/core"
	"lifeboard/pkg/sims/life"
)

var (
	runGenerations int
	runEvery       int

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Advance the board headlessly and print it",
		RunE:  runHeadless,
	}

	liveCellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f8f8f2")).Background(lipgloss.Color("#282a36"))
	deadCellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#44475a")).Background(lipgloss.Color("#282a36"))
)

func init() {
	f := runCmd.Flags()
	f.IntVarP(&runGenerations, "generations", "n", 10, "generations to advance")
	f.IntVar(&runEvery, "every", 0, "also print every N generations (0 prints only the final board)")
}

func runHeadless(cmd *cobra.Command, _ []string) error {
	if runGenerations < 0 {
		return fmt.Errorf("generations must be >= 0, got %d", runGenerations)
	}
	cfg, err := boardConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(false)
	if err != nil {
		return err
	}
	defer log.Close()

	engine, err := life.NewEngineFromConfig(cfg, life.Options{Logger: log.Logger})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	color := out == io.Writer(os.Stdout) && isTerminal(os.Stdout)
	for i := 1; i <= runGenerations; i++ {
		engine.SingleStep()
		if runEvery > 0 && i%runEvery == 0 && i != runGenerations {
			printBoard(out, engine, color)
		}
	}
	printBoard(out, engine, color)
	return nil
}

func printBoard(w io.Writer, e *life.Engine, color bool) {
	snap := e.Snapshot()
	fmt.Fprintf(w, "generation %d  population %d\n", e.Generation(), snap.Population())
	fmt.Fprint(w, renderText(snap, color))
}

// renderText draws one line per row with # for live cells and . for dead.
func renderText(s core.Snapshot, color bool) string {
	var b strings.Builder
	for y := 0; y < s.H; y++ {
		var row strings.Builder
		for x := 0; x < s.W; x++ {
			if s.Alive(x, y) {
				row.WriteByte('#')
			} else {
				row.WriteByte('.')
			}
		}
		if color {
			b.WriteString(colorRow(row.String()))
		} else {
			b.WriteString(row.String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func colorRow(row string) string {
	var b strings.Builder
	for _, r := range row {
		if r == '#' {
			b.WriteString(liveCellStyle.Render("#"))
		} else {
			b.WriteString(deadCellStyle.Render("."))
		}
	}
	return b.String()
}
