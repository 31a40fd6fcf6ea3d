// Package round drives the visualizer loop: generate a maze, run the
// uniform-cost search step by step, pause, run the heuristic search, pause,
// then show a summary until the user asks for another maze.
//
// A Round performs no I/O and owns no goroutines. The caller ticks it from
// its own frame loop and renders the returned Frame.
package round

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/pdrpinto/mazesearch"
	"github.com/pdrpinto/mazesearch/internal/config"
)

// RunSummary is one search's line on the summary screen.
type RunSummary struct {
	Strategy   mazesearch.Strategy `json:"strategy"`
	Elapsed    time.Duration       `json:"elapsed"`
	Steps      int                 `json:"steps"`
	Expanded   int                 `json:"expanded"`
	PathLength int                 `json:"path_length"`
	Found      bool                `json:"found"`
}

type Summary struct {
	UniformCost RunSummary `json:"uniform_cost"`
	Heuristic   RunSummary `json:"heuristic"`
}

// Frame is what a renderer needs after a tick. Snapshot belongs to the
// active or most recently finished search and must be treated as read-only.
type Frame struct {
	Round            string
	Number           int
	Phase            Phase
	Maze             *mazesearch.Maze
	Start, Goal      mazesearch.Cell
	Strategy         mazesearch.Strategy
	Snapshot         mazesearch.StepSnapshot[mazesearch.Cell]
	CooldownProgress float32
	Summary          *Summary
}

type Round struct {
	cfg    config.Config
	logger *log.Logger
	log    *log.Entry

	id     string
	number int
	phase  Phase
	maze   *mazesearch.Maze
	start  mazesearch.Cell
	goal   mazesearch.Cell

	strategy   mazesearch.Strategy
	stepper    *mazesearch.Stepper[mazesearch.Cell]
	snapshot   mazesearch.StepSnapshot[mazesearch.Cell]
	runStarted time.Time
	lastStep   time.Time

	cooldown         *gween.Tween
	cooldownProgress float32
	lastTick         time.Time

	summary   Summary
	triggered bool
}

type Option func(*Round)

// WithLogger replaces the standard logrus logger.
func WithLogger(logger *log.Logger) Option {
	return func(r *Round) { r.logger = logger }
}

// New validates cfg and returns a round waiting to generate its first maze.
func New(cfg config.Config, options ...Option) (*Round, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Round{
		cfg:    cfg,
		logger: log.StandardLogger(),
		phase:  GeneratingMaze,
	}
	for _, option := range options {
		option(r)
	}
	r.log = log.NewEntry(r.logger)
	return r, nil
}

func (r *Round) Phase() Phase { return r.phase }

// Trigger is the user's "new maze" input. It leaves the summary screen, or
// abandons a search in progress. It is ignored during cooldowns.
func (r *Round) Trigger() { r.triggered = true }

// Tick advances the round to now. The active search is stepped at most once
// per tick and at most once per StepInterval.
func (r *Round) Tick(now time.Time) (Frame, error) {
	triggered := r.triggered
	r.triggered = false

	switch r.phase {
	case GeneratingMaze:
		if err := r.generate(now); err != nil {
			return r.frame(), err
		}

	case RunningUniformCost, RunningHeuristic:
		if triggered {
			r.log.WithFields(log.Fields{
				"algorithm": r.strategy,
				"steps":     r.stepper.Steps(),
			}).Warn("search abandoned")
			r.phase = GeneratingMaze
			break
		}
		if err := r.step(now); err != nil {
			return r.frame(), err
		}

	case CooldownAfterUniformCost, CooldownAfterHeuristic:
		if err := r.cool(now); err != nil {
			return r.frame(), err
		}

	case ShowingSummary:
		if triggered {
			r.phase = GeneratingMaze
		}
	}
	return r.frame(), nil
}

func (r *Round) generate(now time.Time) error {
	options := []mazesearch.GenerateOption{mazesearch.WithGenerator(r.cfg.Generator)}
	if r.cfg.Seed != 0 {
		options = append(options, mazesearch.WithSeed(r.cfg.Seed+int64(r.number)))
	}
	m, err := mazesearch.Generate(r.cfg.Cols, r.cfg.Rows, options...)
	if err != nil {
		return errors.Wrap(err, "generating maze")
	}

	r.number++
	r.id = uuid.New().String()
	r.maze = m
	r.start, r.goal = m.Corners()
	r.summary = Summary{}
	r.log = r.logger.WithFields(log.Fields{"round": r.id, "number": r.number})
	r.log.WithFields(log.Fields{
		"seed":      m.Seed(),
		"generator": m.Generator(),
		"cols":      m.Cols(),
		"rows":      m.Rows(),
	}).Info("maze generated")

	return r.begin(mazesearch.UniformCost, RunningUniformCost, now)
}

func (r *Round) begin(strategy mazesearch.Strategy, phase Phase, now time.Time) error {
	stepper, err := mazesearch.NewMazeStepper(strategy, r.maze, r.start, r.goal)
	if err != nil {
		return errors.Wrap(err, strategy.String())
	}
	snapshot, err := stepper.Snapshot()
	if err != nil {
		return errors.Wrap(err, strategy.String())
	}
	r.strategy = strategy
	r.stepper = stepper
	r.snapshot = snapshot
	r.phase = phase
	r.runStarted = now
	r.lastStep = time.Time{}
	r.log.WithField("algorithm", strategy).Info("search started")
	return nil
}

func (r *Round) step(now time.Time) error {
	if !r.lastStep.IsZero() && now.Sub(r.lastStep) < r.cfg.StepInterval {
		return nil
	}
	r.lastStep = now

	snapshot, err := r.stepper.Step()
	if err != nil {
		return errors.Wrap(err, r.strategy.String())
	}
	r.snapshot = snapshot
	if !snapshot.Done {
		return nil
	}

	run := RunSummary{
		Strategy:   r.strategy,
		Elapsed:    now.Sub(r.runStarted),
		Steps:      snapshot.StepIndex,
		Expanded:   snapshot.Expanded,
		PathLength: len(snapshot.Path),
		Found:      snapshot.Found,
	}
	if r.phase == RunningUniformCost {
		r.summary.UniformCost = run
		r.phase = CooldownAfterUniformCost
	} else {
		r.summary.Heuristic = run
		r.phase = CooldownAfterHeuristic
	}
	r.log.WithFields(log.Fields{
		"algorithm": run.Strategy,
		"steps":     run.Steps,
		"expanded":  run.Expanded,
		"path":      run.PathLength,
		"found":     run.Found,
		"elapsed":   run.Elapsed,
	}).Info("search finished")

	r.cooldownProgress = 0
	r.cooldown = nil
	if r.cfg.Cooldown > 0 {
		r.cooldown = gween.New(0, 1, float32(r.cfg.Cooldown.Seconds()), ease.OutQuad)
	}
	r.lastTick = now
	return nil
}

// cool advances the cooldown tween by the wall-clock time since the last
// tick and moves on once it completes.
func (r *Round) cool(now time.Time) error {
	finished := true
	if r.cooldown != nil {
		dt := float32(now.Sub(r.lastTick).Seconds())
		r.cooldownProgress, finished = r.cooldown.Update(dt)
	}
	r.lastTick = now
	if !finished {
		return nil
	}
	r.cooldownProgress = 1

	if r.phase == CooldownAfterUniformCost {
		return r.begin(mazesearch.AStar, RunningHeuristic, now)
	}
	r.phase = ShowingSummary
	r.log.WithFields(log.Fields{
		"dijkstra": r.summary.UniformCost.Elapsed,
		"astar":    r.summary.Heuristic.Elapsed,
	}).Info("round complete")
	return nil
}

func (r *Round) frame() Frame {
	f := Frame{
		Round:            r.id,
		Number:           r.number,
		Phase:            r.phase,
		Maze:             r.maze,
		Start:            r.start,
		Goal:             r.goal,
		Strategy:         r.strategy,
		Snapshot:         r.snapshot,
		CooldownProgress: r.cooldownProgress,
	}
	if r.phase == ShowingSummary {
		summary := r.summary
		f.Summary = &summary
	}
	return f
}
