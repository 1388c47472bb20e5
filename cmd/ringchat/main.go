// Command ringchat is a terminal chat against a simulated peer.
//
// Outgoing messages appear immediately and are confirmed or failed by the
// simulated transport after a random delay. Failed messages can be sent
// again with /retry.
//
// Usage:
//
//	ringchat [flags]
//
// Flags:
//
//	-min-delay duration      Shortest delivery delay (default 700ms)
//	-max-delay duration      Longest delivery delay (default 1.6s)
//	-fail-rate float         Probability that a delivery fails (default 0.15)
//	-peer-interval duration  Time between peer messages (default 4.2s)
//	-peer-lines string       Glob of text files with peer lines, one per line
//	-seed uint               Seed for the simulation (0 picks a random seed)
//	-ids string              Identifier scheme: counter, uuid (default counter)
//	-trace string            Path to write store events as JSON lines
//	-log string              Path to write logs (the TUI owns the terminal)
//	-log-level string        Log level: debug, info, warn, error (default info)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fwojciec/ringchat"
	bt "github.com/fwojciec/ringchat/bubbletea"
	ringjson "github.com/fwojciec/ringchat/json"
	"github.com/fwojciec/ringchat/sim"
)

// eventBuffer is the capacity of the channel carrying transport events into
// the TUI.
const eventBuffer = 256

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ringchat: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, closeLog, err := openLogger(opts.logPath, opts.logLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	ids, err := newIDSource(opts.ids)
	if err != nil {
		return err
	}
	store := ringchat.NewStore(ringchat.WithIDSource(ids), ringchat.WithLogger(logger))

	if opts.tracePath != "" {
		f, err := os.Create(opts.tracePath)
		if err != nil {
			return fmt.Errorf("create trace: %w", err)
		}
		defer f.Close()
		trace := ringjson.NewTrace(f)
		store.Subscribe(trace.Listen)
		defer func() {
			if err := trace.Err(); err != nil {
				logger.Error("trace incomplete", "error", err)
			}
		}()
	}

	cfg, err := opts.simConfig(os.DirFS("."))
	if err != nil {
		return err
	}
	cfg.Logger = logger
	transport := sim.New(cfg)
	bridge := ringchat.NewBridge(store, transport, ringchat.WithBridgeLogger(logger))

	events, stopForward := bt.Forward(transport, eventBuffer)
	defer stopForward()
	transport.Start()
	defer transport.Stop()

	logger.Info("starting", "ids", opts.ids, "fail_rate", cfg.FailRate, "peer_lines", len(cfg.PeerLines))
	if err := bt.Run(ctx, bt.New(bridge, events, ringchat.DefaultTheme())); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	logger.Info("stopped", "messages", store.Len())
	return nil
}

// openLogger returns a text logger writing to path, or a discarding logger
// when path is empty.
func openLogger(path, level string) (*slog.Logger, func(), error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl}))
	return logger, func() { f.Close() }, nil
}
