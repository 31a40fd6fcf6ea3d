package round

import (
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/pdrpinto/mazesearch"
	"github.com/pdrpinto/mazesearch/internal/config"
)

type RoundSuite struct {
	suite.Suite
	cfg  config.Config
	hook *test.Hook
	opts []Option
	now  time.Time
}

func (s *RoundSuite) SetupTest() {
	s.cfg = config.Default()
	s.cfg.Cols, s.cfg.Rows = 2, 1
	s.cfg.StepInterval = 10 * time.Millisecond
	s.cfg.Cooldown = time.Second
	s.cfg.Seed = 5

	logger, hook := test.NewNullLogger()
	s.hook = hook
	s.opts = []Option{WithLogger(logger)}
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *RoundSuite) tick(r *Round, after time.Duration) Frame {
	s.now = s.now.Add(after)
	frame, err := r.Tick(s.now)
	require.NoError(s.T(), err)
	return frame
}

// tickUntil ticks every 20ms until the round reaches phase.
func (s *RoundSuite) tickUntil(r *Round, phase Phase) Frame {
	for i := 0; i < 10000; i++ {
		frame := s.tick(r, 20*time.Millisecond)
		if frame.Phase == phase {
			return frame
		}
	}
	s.FailNow("phase never reached", phase.Name())
	return Frame{}
}

func (s *RoundSuite) TestFullRound() {
	r, err := New(s.cfg, s.opts...)
	require.NoError(s.T(), err)
	require.Equal(s.T(), GeneratingMaze, r.Phase())

	frame := s.tick(r, 0)
	require.Equal(s.T(), RunningUniformCost, frame.Phase)
	require.Equal(s.T(), 1, frame.Number)
	require.NotEmpty(s.T(), frame.Round)
	require.Equal(s.T(), int64(5), frame.Maze.Seed())
	require.Equal(s.T(), mazesearch.Cell{X: 1, Y: 0}, frame.Goal)
	require.Equal(s.T(), mazesearch.NotStarted, frame.Snapshot.State)
	firstRound := frame.Round

	frame = s.tick(r, time.Millisecond)
	require.Equal(s.T(), 1, frame.Snapshot.StepIndex, "first step happens right away")

	frame = s.tick(r, 5*time.Millisecond)
	require.Equal(s.T(), 1, frame.Snapshot.StepIndex, "no step before the interval elapses")

	frame = s.tick(r, 5*time.Millisecond)
	require.Equal(s.T(), CooldownAfterUniformCost, frame.Phase)
	require.True(s.T(), frame.Snapshot.Found)
	require.Len(s.T(), frame.Snapshot.Path, 2)
	require.Nil(s.T(), frame.Summary)

	frame = s.tick(r, 500*time.Millisecond)
	require.Equal(s.T(), CooldownAfterUniformCost, frame.Phase)
	require.Greater(s.T(), frame.CooldownProgress, float32(0))
	require.Less(s.T(), frame.CooldownProgress, float32(1))

	r.Trigger()
	frame = s.tick(r, 100*time.Millisecond)
	require.Equal(s.T(), CooldownAfterUniformCost, frame.Phase, "triggers are ignored while cooling down")

	frame = s.tick(r, 600*time.Millisecond)
	require.Equal(s.T(), RunningHeuristic, frame.Phase)
	require.Equal(s.T(), mazesearch.AStar, frame.Strategy)

	frame = s.tickUntil(r, CooldownAfterHeuristic)
	require.True(s.T(), frame.Snapshot.Found)

	frame = s.tickUntil(r, ShowingSummary)
	require.NotNil(s.T(), frame.Summary)
	for _, run := range []RunSummary{frame.Summary.UniformCost, frame.Summary.Heuristic} {
		require.True(s.T(), run.Found)
		require.Equal(s.T(), 2, run.PathLength)
		require.Equal(s.T(), 1, run.Expanded)
		require.Equal(s.T(), 2, run.Steps)
		require.Positive(s.T(), run.Elapsed)
	}
	require.Equal(s.T(), 11*time.Millisecond, frame.Summary.UniformCost.Elapsed)
	require.Equal(s.T(), mazesearch.AStar, frame.Summary.Heuristic.Strategy)

	frame = s.tick(r, time.Second)
	require.Equal(s.T(), ShowingSummary, frame.Phase, "summary waits for a trigger")

	r.Trigger()
	frame = s.tick(r, time.Millisecond)
	require.Equal(s.T(), GeneratingMaze, frame.Phase)

	frame = s.tick(r, time.Millisecond)
	require.Equal(s.T(), RunningUniformCost, frame.Phase)
	require.Equal(s.T(), 2, frame.Number)
	require.NotEqual(s.T(), firstRound, frame.Round)
	require.Equal(s.T(), int64(6), frame.Maze.Seed())
	require.Nil(s.T(), frame.Summary)
}

func (s *RoundSuite) TestTriggerAbandonsSearch() {
	s.cfg.Cols, s.cfg.Rows = 12, 12
	r, err := New(s.cfg, s.opts...)
	require.NoError(s.T(), err)

	s.tick(r, 0)
	s.tick(r, 20*time.Millisecond)
	s.tick(r, 20*time.Millisecond)

	r.Trigger()
	frame := s.tick(r, 20*time.Millisecond)
	require.Equal(s.T(), GeneratingMaze, frame.Phase)

	var warned bool
	for _, entry := range s.hook.AllEntries() {
		if entry.Level == log.WarnLevel && entry.Message == "search abandoned" {
			warned = true
		}
	}
	require.True(s.T(), warned)

	frame = s.tick(r, 20*time.Millisecond)
	require.Equal(s.T(), RunningUniformCost, frame.Phase)
	require.Equal(s.T(), 2, frame.Number)
}

func (s *RoundSuite) TestZeroCooldown() {
	s.cfg.Cooldown = 0
	r, err := New(s.cfg, s.opts...)
	require.NoError(s.T(), err)

	s.tickUntil(r, CooldownAfterUniformCost)
	frame := s.tick(r, time.Millisecond)
	require.Equal(s.T(), RunningHeuristic, frame.Phase)
	require.Equal(s.T(), float32(1), frame.CooldownProgress)
}

func (s *RoundSuite) TestLogsCarryRoundID() {
	r, err := New(s.cfg, s.opts...)
	require.NoError(s.T(), err)
	frame := s.tick(r, 0)

	last := s.hook.LastEntry()
	require.NotNil(s.T(), last)
	require.Equal(s.T(), frame.Round, last.Data["round"])
	require.Equal(s.T(), mazesearch.UniformCost, last.Data["algorithm"])
}

func (s *RoundSuite) TestSearchStartsFromInitialSnapshot() {
	r, err := New(s.cfg, s.opts...)
	require.NoError(s.T(), err)

	frame := s.tick(r, 0)
	require.Equal(s.T(), RunningUniformCost, frame.Phase)
	require.Equal(s.T(), mazesearch.NotStarted, frame.Snapshot.State)
	require.Equal(s.T(), map[mazesearch.Cell]bool{frame.Start: true}, frame.Snapshot.Open)
	require.Empty(s.T(), frame.Snapshot.Closed)

	frame = s.tickUntil(r, RunningHeuristic)
	require.Equal(s.T(), mazesearch.NotStarted, frame.Snapshot.State)
	require.Equal(s.T(), map[mazesearch.Cell]bool{frame.Start: true}, frame.Snapshot.Open)
}

func (s *RoundSuite) TestInvalidConfig() {
	s.cfg.FPS = 0
	_, err := New(s.cfg, s.opts...)
	require.ErrorIs(s.T(), err, config.ErrInvalid)
}

func TestRoundSuite(t *testing.T) {
	suite.Run(t, new(RoundSuite))
}

func TestPhaseNames(t *testing.T) {
	require.Equal(t, "COOLDOWN", CooldownAfterHeuristic.Name())
	require.Equal(t, "N/A(0)", Phase(0).Name())
	require.True(t, RunningHeuristic.Searching())
	require.False(t, ShowingSummary.Searching())
}
