// Command mazebench compares uniform cost and A* over many generated mazes
// and reports how much of the maze each one explores.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/pdrpinto/mazesearch"
	"github.com/pdrpinto/mazesearch/internal/config"
)

type stats struct {
	Runs int
	// ExpandedRatio is the mean of AStar.Expanded / UniformCost.Expanded.
	ExpandedRatio float64
	// Fewer counts runs where A* expanded strictly fewer nodes.
	Fewer int
	// SamePath counts runs where both found paths of the same length.
	SamePath int
}

func bench(ctx context.Context, cfg config.Config, runs, workers int, logger *log.Logger) (stats, error) {
	if runs < 1 {
		return stats{}, errors.Errorf("runs %d below 1", runs)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	jobs := make([]mazesearch.Job, runs)
	for i := range jobs {
		jobs[i] = mazesearch.Job{Cols: cfg.Cols, Rows: cfg.Rows, Seed: cfg.Seed + int64(i), Generator: cfg.Generator}
	}

	var options []mazesearch.Option
	if workers > 0 {
		options = append(options, mazesearch.WithWorkers(workers))
	}
	comparisons, err := mazesearch.CompareBatch(ctx, jobs, options...)
	if err != nil {
		return stats{}, err
	}

	s := stats{Runs: runs}
	for i, c := range comparisons {
		uc, as := c.UniformCost.Result, c.AStar.Result
		ratio := 1.0
		if uc.Expanded > 0 {
			ratio = float64(as.Expanded) / float64(uc.Expanded)
		}
		s.ExpandedRatio += ratio
		if as.Expanded < uc.Expanded {
			s.Fewer++
		}
		if uc.Found && as.Found && len(uc.Path) == len(as.Path) {
			s.SamePath++
		}
		logger.WithFields(log.Fields{
			"run":      i,
			"seed":     jobs[i].Seed,
			"dijkstra": uc.Expanded,
			"astar":    as.Expanded,
			"path":     len(as.Path),
		}).Debug("compared")
	}
	s.ExpandedRatio /= float64(runs)
	return s, nil
}

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	runs := flag.Int("runs", 100, "number of mazes to compare on")
	workers := flag.Int("workers", 0, "parallel workers; 0 uses every CPU")
	verbose := flag.Bool("verbose", false, "log every run")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalln(err)
	}
	logger := log.StandardLogger()
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	begin := time.Now()
	s, err := bench(ctx, cfg, *runs, *workers, logger)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
	log.WithFields(log.Fields{
		"runs":           s.Runs,
		"expanded_ratio": s.ExpandedRatio,
		"astar_fewer":    s.Fewer,
		"same_path":      s.SamePath,
		"elapsed":        time.Since(begin),
	}).Info("benchmark finished")
}
