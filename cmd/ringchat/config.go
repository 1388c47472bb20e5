package main

import (
	"flag"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/fwojciec/ringchat"
	"github.com/fwojciec/ringchat/sim"
	"github.com/fwojciec/ringchat/uuid"
)

// options holds the parsed command line.
type options struct {
	minDelay     time.Duration
	maxDelay     time.Duration
	failRate     float64
	peerInterval time.Duration
	peerLines    string
	seed         uint64
	ids          string
	tracePath    string
	logPath      string
	logLevel     string
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("ringchat", flag.ContinueOnError)
	fs.DurationVar(&o.minDelay, "min-delay", sim.DefaultMinDelay, "Shortest delivery delay")
	fs.DurationVar(&o.maxDelay, "max-delay", sim.DefaultMaxDelay, "Longest delivery delay")
	fs.Float64Var(&o.failRate, "fail-rate", sim.DefaultFailRate, "Probability that a delivery fails")
	fs.DurationVar(&o.peerInterval, "peer-interval", sim.DefaultPeerInterval, "Time between peer messages")
	fs.StringVar(&o.peerLines, "peer-lines", "", "Glob of text files with peer lines, one per line")
	fs.Uint64Var(&o.seed, "seed", 0, "Seed for the simulation (0 picks a random seed)")
	fs.StringVar(&o.ids, "ids", "counter", "Identifier scheme: counter, uuid")
	fs.StringVar(&o.tracePath, "trace", "", "Path to write store events as JSON lines")
	fs.StringVar(&o.logPath, "log", "", "Path to write logs")
	fs.StringVar(&o.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return o, nil
}

// simConfig validates the simulation flags and loads peer lines from fsys.
func (o options) simConfig(fsys iofs.FS) (sim.Config, error) {
	switch {
	case o.minDelay <= 0:
		return sim.Config{}, fmt.Errorf("-min-delay must be positive, got %s: %w", o.minDelay, ringchat.ErrValidation)
	case o.maxDelay < o.minDelay:
		return sim.Config{}, fmt.Errorf("-max-delay %s is below -min-delay %s: %w", o.maxDelay, o.minDelay, ringchat.ErrValidation)
	case o.failRate < 0 || o.failRate > 1:
		return sim.Config{}, fmt.Errorf("-fail-rate must be within [0, 1], got %g: %w", o.failRate, ringchat.ErrValidation)
	case o.peerInterval <= 0:
		return sim.Config{}, fmt.Errorf("-peer-interval must be positive, got %s: %w", o.peerInterval, ringchat.ErrValidation)
	}

	cfg := sim.Config{
		MinDelay:     o.minDelay,
		MaxDelay:     o.maxDelay,
		FailRate:     o.failRate,
		PeerInterval: o.peerInterval,
		PeerLines:    sim.DefaultPeerLines,
	}
	if o.peerLines != "" {
		lines, err := sim.LoadLines(fsys, o.peerLines)
		if err != nil {
			return sim.Config{}, fmt.Errorf("peer lines: %w", err)
		}
		cfg.PeerLines = lines
	}
	if o.seed != 0 {
		cfg.Rand = rand.New(rand.NewPCG(o.seed, o.seed))
	}
	return cfg, nil
}

func newIDSource(kind string) (ringchat.IDSource, error) {
	switch kind {
	case "counter":
		return ringchat.NewCounterIDs(nil), nil
	case "uuid":
		return uuid.IDs{}, nil
	default:
		return nil, fmt.Errorf("unknown id scheme %q: must be \"counter\" or \"uuid\"", kind)
	}
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}
