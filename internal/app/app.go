package app

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/atomicstack/widget-remote/internal/backend"
	"github.com/atomicstack/widget-remote/internal/command"
	"github.com/atomicstack/widget-remote/internal/layout"
	"github.com/atomicstack/widget-remote/internal/logging"
	"github.com/atomicstack/widget-remote/internal/logging/events"
	"github.com/atomicstack/widget-remote/internal/server"
	"github.com/atomicstack/widget-remote/internal/toolkit/memory"
	"github.com/atomicstack/widget-remote/internal/toolkit/tviewkit"
)

// Config describes the options of a serving process.
type Config struct {
	Listen         string
	Headless       bool
	Layout         string
	RedrawInterval time.Duration
	Version        string
}

// host is what a toolkit must offer to be served.
type host interface {
	command.Host
	Redraw()
}

// Run opens the dialog and serves it on cfg.Listen until ctx is done or,
// with a terminal UI, until the user quits.
func Run(ctx context.Context, cfg Config) error {
	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Listen, err)
	}
	return Serve(ctx, cfg, ln)
}

// Serve is Run on an existing listener. It closes ln.
func Serve(ctx context.Context, cfg Config, ln net.Listener) error {
	dialog, err := loadLayout(cfg.Layout)
	if err != nil {
		ln.Close()
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		h   host
		tui *tviewkit.Host
	)
	if cfg.Headless {
		h, err = memory.FromLayout(dialog)
	} else {
		tui, err = tviewkit.FromLayout(dialog)
		h = tui
	}
	if err != nil {
		ln.Close()
		return fmt.Errorf("build dialog: %w", err)
	}

	pump := backend.NewPump(cfg.RedrawInterval, h.Redraw)
	defer func() {
		pump.Stop()
		pump.Wait()
	}()

	bus := command.New(h, pump.Request)
	srv := server.New(bus, cfg.Version)

	addr := ln.Addr().String()
	events.App.Listen(addr, cfg.Headless)
	appLog := logging.Logger("app")
	appLog.Info().
		Str("addr", addr).
		Str("dialog", dialog.Title).
		Int("widgets", len(dialog.Widgets)).
		Bool("headless", cfg.Headless).
		Msg("serving dialog")

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ctx, ln) }()

	if tui != nil {
		uiErr := tui.Run(ctx)
		cancel()
		srvErr := <-errCh
		events.App.Stop("ui closed")
		if uiErr != nil {
			return fmt.Errorf("terminal ui: %w", uiErr)
		}
		return srvErr
	}

	err = <-errCh
	events.App.Stop("context done")
	return err
}

func loadLayout(path string) (layout.Dialog, error) {
	if path == "" {
		return layout.Default(), nil
	}
	return layout.Load(path)
}
