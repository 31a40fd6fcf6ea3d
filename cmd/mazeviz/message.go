package main

import (
	"sort"

	"github.com/pdrpinto/mazesearch"
	"github.com/pdrpinto/mazesearch/internal/round"
)

type point = [2]int

// frameMessage is one server -> client websocket message.
type frameMessage struct {
	Round    string              `json:"round"`
	Number   int                 `json:"number"`
	Phase    round.Phase         `json:"phase"`
	Strategy mazesearch.Strategy `json:"strategy"`
	Cols     int                 `json:"cols"`
	Rows     int                 `json:"rows"`
	// Masks holds the open-passage bits of every cell, row-major.
	Masks    []int          `json:"masks"`
	Start    point          `json:"start"`
	Goal     point          `json:"goal"`
	Current  point          `json:"current"`
	Step     int            `json:"step"`
	Open     []point        `json:"open,omitempty"`
	Closed   []point        `json:"closed,omitempty"`
	Path     []point        `json:"path,omitempty"`
	Done     bool           `json:"done"`
	Found    bool           `json:"found"`
	Cooldown float32        `json:"cooldown"`
	Summary  *round.Summary `json:"summary,omitempty"`
}

// clientMessage is one client -> server websocket message.
type clientMessage struct {
	Type string `json:"type"`
}

const clientClick = "click"

func toPoint(c mazesearch.Cell) point { return point{c.X, c.Y} }

// setToList flattens a set into a stable order so consecutive frames diff
// cleanly on the client.
func setToList(set map[mazesearch.Cell]bool) []point {
	res := make([]point, 0, len(set))
	for c, ok := range set {
		if ok {
			res = append(res, toPoint(c))
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i][1] != res[j][1] {
			return res[i][1] < res[j][1]
		}
		return res[i][0] < res[j][0]
	})
	return res
}

func newFrameMessage(f round.Frame) frameMessage {
	msg := frameMessage{
		Round:    f.Round,
		Number:   f.Number,
		Phase:    f.Phase,
		Strategy: f.Strategy,
		Start:    toPoint(f.Start),
		Goal:     toPoint(f.Goal),
		Current:  toPoint(f.Snapshot.Current),
		Step:     f.Snapshot.StepIndex,
		Open:     setToList(f.Snapshot.Open),
		Closed:   setToList(f.Snapshot.Closed),
		Done:     f.Snapshot.Done,
		Found:    f.Snapshot.Found,
		Cooldown: f.CooldownProgress,
		Summary:  f.Summary,
	}
	if m := f.Maze; m != nil {
		msg.Cols, msg.Rows = m.Cols(), m.Rows()
		msg.Masks = make([]int, 0, m.Cols()*m.Rows())
		for y := 0; y < m.Rows(); y++ {
			for x := 0; x < m.Cols(); x++ {
				msg.Masks = append(msg.Masks, int(m.Mask(mazesearch.Cell{X: x, Y: y})))
			}
		}
	}
	for _, c := range f.Snapshot.Path {
		msg.Path = append(msg.Path, toPoint(c))
	}
	return msg
}
