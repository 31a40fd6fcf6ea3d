// Command mazeshot generates one maze, runs both searches over it and writes
// a PNG with their final states side by side.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/pdrpinto/mazesearch"
	"github.com/pdrpinto/mazesearch/internal/config"
	"github.com/pdrpinto/mazesearch/internal/render"
)

func run(cfg config.Config, output string) error {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	m, err := mazesearch.Generate(cfg.Cols, cfg.Rows,
		mazesearch.WithSeed(cfg.Seed), mazesearch.WithGenerator(cfg.Generator))
	if err != nil {
		return errors.Wrap(err, "generating maze")
	}
	start, goal := m.Corners()
	cmp, err := mazesearch.Compare(context.Background(), m, start, goal)
	if err != nil {
		return errors.Wrap(err, "searching maze")
	}
	img, err := render.Comparison(cmp, cfg.CellSize)
	if err != nil {
		return errors.Wrap(err, "drawing maze")
	}
	if err := render.SavePNG(output, img); err != nil {
		return err
	}
	for _, r := range []mazesearch.Run{cmp.UniformCost, cmp.AStar} {
		log.WithFields(log.Fields{
			"algorithm": r.Strategy,
			"expanded":  r.Result.Expanded,
			"steps":     r.Result.Steps,
			"path":      len(r.Result.Path),
			"elapsed":   r.Elapsed,
		}).Info("search finished")
	}
	log.WithFields(log.Fields{"seed": m.Seed(), "output": output}).Info("saved")
	return nil
}

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	output := flag.String("output", "maze.png", "the PNG file to write")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalln(err)
	}
	if err := run(cfg, *output); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}
