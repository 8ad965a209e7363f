package main

import (
	"fmt"
	"os"

	"hexlens/internal/buffer"
	"hexlens/internal/config"
	"hexlens/internal/logger"
	"hexlens/internal/viewer"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hexlens FILE")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		cfg = config.DefaultConfig()
	}

	if err := logger.Init(cfg.Log.File, cfg.Log.Debug); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer logger.Close()

	buf, err := buffer.Open(os.Args[1])
	if err != nil {
		logger.Error("open failed", "file", os.Args[1], "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("file opened", "file", buf.Filename(), "size", buf.Size())

	model := viewer.NewModel(buf, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		logger.Error("program failed", "err", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
