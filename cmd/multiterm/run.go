package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/wallon-qodo/multi-term-sub000/internal/app"
	"github.com/wallon-qodo/multi-term-sub000/internal/config"
	"github.com/wallon-qodo/multi-term-sub000/internal/snapshot"
)

// newLogger returns a debug-level file logger when --debug is set, otherwise
// a silent one. The TUI owns the terminal, so logs never go to stderr.
func newLogger() (*log.Logger, func()) {
	if !debugMode {
		return log.New(io.Discard), func() {}
	}

	logPath := filepath.Join(xdg.StateHome, "multiterm", "debug.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err == nil {
		if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			logger := log.NewWithOptions(f, log.Options{
				ReportTimestamp: true,
				Level:           log.DebugLevel,
			})
			return logger, func() { _ = f.Close() }
		}
	}
	return log.New(io.Discard), func() {}
}

func runLocal() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("multiterm must be run in a terminal")
	}

	logger, closeLogger := newLogger()
	defer closeLogger()

	userConfig, err := config.LoadUserConfig()
	if err != nil {
		logger.Warn("failed to load config, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}

	var restore *snapshot.Snapshot
	if userConfig.General.RestoreOnStart {
		restore, err = snapshot.Load(snapshot.StatePath())
		if err != nil {
			logger.Warn("failed to load snapshot", "err", err)
		}
	}

	m, err := app.NewMux(app.Options{
		Config:       userConfig,
		Logger:       logger,
		SnapshotPath: snapshot.StatePath(),
		Restore:      restore,
	})
	if err != nil {
		return err
	}

	// Seed the viewport from the terminal before the first resize message.
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		m.Width = w
		m.Height = h
	}

	p := tea.NewProgram(m, tea.WithoutSignalHandler())

	stopWatch, err := config.Watch(config.ConfigPath(),
		func(cfg *config.Config) {
			p.Send(app.ConfigReloadedMsg{Config: cfg})
		},
		func(err error) {
			logger.Error("config watch error", "err", err)
		})
	if err != nil {
		logger.Warn("config hot reload disabled", "err", err)
	} else {
		defer stopWatch()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	finalModel, err := p.Run()

	if finalMux, ok := finalModel.(*app.Mux); ok && userConfig.General.RestoreOnStart {
		_ = finalMux.SaveSnapshot()
	}

	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
