// Package config holds the settings shared by the maze visualizer drivers.
// Defaults describe a 31x21 maze stepped every 15ms with a 3s pause between
// the two searches.
package config

import (
	"flag"
	"net"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/pdrpinto/mazesearch"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Cols, Rows int
	// CellSize is the rendered edge of one cell, in pixels.
	CellSize int
	// StepInterval is the minimum time between two search steps.
	StepInterval time.Duration
	// Cooldown is the pause after each search finishes.
	Cooldown time.Duration
	// FPS is the rate at which drivers tick a round.
	FPS int
	// Seed fixes the first maze of a session; 0 draws seeds from the clock.
	Seed      int64
	Generator mazesearch.Generator
	Addr      string
}

func Default() Config {
	return Config{
		Cols:         31,
		Rows:         21,
		CellSize:     24,
		StepInterval: 15 * time.Millisecond,
		Cooldown:     3 * time.Second,
		FPS:          60,
		Generator:    mazesearch.Backtracker,
		Addr:         ":8080",
	}
}

func (c Config) Validate() error {
	switch {
	case c.Cols < 1 || c.Rows < 1:
		return errors.Wrapf(ErrInvalid, "grid %dx%d", c.Cols, c.Rows)
	case c.CellSize < 4:
		return errors.Wrapf(ErrInvalid, "cell size %d below 4", c.CellSize)
	case c.StepInterval <= 0:
		return errors.Wrapf(ErrInvalid, "step interval %v", c.StepInterval)
	case c.Cooldown < 0:
		return errors.Wrapf(ErrInvalid, "cooldown %v", c.Cooldown)
	case c.FPS < 1:
		return errors.Wrapf(ErrInvalid, "fps %d", c.FPS)
	}
	if _, err := c.Generator.MarshalText(); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	return nil
}

// FrameInterval is the tick period implied by FPS.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// RegisterFlags binds the fields to fs, using the current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Cols, "cols", c.Cols, "maze width in cells")
	fs.IntVar(&c.Rows, "rows", c.Rows, "maze height in cells")
	fs.IntVar(&c.CellSize, "cell_size", c.CellSize, "rendered cell size in pixels")
	fs.DurationVar(&c.StepInterval, "step_interval", c.StepInterval, "time between two search steps")
	fs.DurationVar(&c.Cooldown, "cooldown", c.Cooldown, "pause after each search")
	fs.IntVar(&c.FPS, "fps", c.FPS, "driver tick rate")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the first maze; 0 picks one from the clock")
	fs.TextVar(&c.Generator, "generator", c.Generator, "maze generator: backtracker or kruskal")
	fs.StringVar(&c.Addr, "addr", c.Addr, "listen address")
}

// ApplyEnv overrides fields from the environment. PORT replaces the port of
// Addr, as on most hosting platforms.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	port, ok := lookup("PORT")
	if !ok || port == "" {
		return nil
	}
	if _, err := strconv.Atoi(port); err != nil {
		return errors.Wrapf(ErrInvalid, "PORT %q", port)
	}
	host, _, err := net.SplitHostPort(c.Addr)
	if err != nil {
		host = ""
	}
	c.Addr = net.JoinHostPort(host, port)
	return nil
}
