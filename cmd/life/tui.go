package main

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"lifeboard/internal/tui"
	"lifeboard/pkg/core"
	"lifeboard/pkg/sims/life"
)

var (
	errNotTerminal = errors.New("life tui needs an interactive terminal")

	tuiCmd = &cobra.Command{
		Use:   "tui",
		Short: "Edit and run the board in the terminal",
		RunE:  runTUI,
	}
)

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errNotTerminal
	}
	cfg, err := boardConfig(cmd)
	if err != nil {
		return err
	}
	// Console logging would draw over the board.
	log, err := newLogger(true)
	if err != nil {
		return err
	}
	defer log.Close()

	engine, err := life.NewEngineFromConfig(cfg, life.Options{Logger: log.Logger})
	if err != nil {
		return err
	}
	defer engine.Stop()

	var coin core.Coin
	if cfg.Seed != 0 {
		coin = core.NewRNG(cfg.Seed)
	}
	model := tui.New(engine, coin)
	defer model.Close()

	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	return err
}
