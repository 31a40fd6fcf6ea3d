package round

import "fmt"

// Phase is the stage of a visualizer round.
type Phase int

const (
	GeneratingMaze Phase = iota + 1
	RunningUniformCost
	CooldownAfterUniformCost
	RunningHeuristic
	CooldownAfterHeuristic
	ShowingSummary
)

func (p Phase) Name() string {
	switch p {
	case GeneratingMaze:
		return "GENERATING_MAZE"
	case RunningUniformCost:
		return "RUNNING_UNIFORM_COST"
	case CooldownAfterUniformCost, CooldownAfterHeuristic:
		return "COOLDOWN"
	case RunningHeuristic:
		return "RUNNING_HEURISTIC"
	case ShowingSummary:
		return "SHOWING_SUMMARY"
	default:
		return fmt.Sprintf("N/A(%d)", p)
	}
}

func (p Phase) String() string { return p.Name() }

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.Name()), nil }

// Searching reports whether a stepper is being advanced in this phase.
func (p Phase) Searching() bool {
	return p == RunningUniformCost || p == RunningHeuristic
}
