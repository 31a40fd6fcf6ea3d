// Package render rasterizes a maze and the state of a search over it. It is
// a read-only consumer of search snapshots.
package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"github.com/yalue/image_utils"
	"golang.org/x/image/font/basicfont"

	"github.com/pdrpinto/mazesearch"
)

// Palette holds the colours of one drawing.
type Palette struct {
	Background color.Color
	Wall       color.Color
	Cell       color.Color
	Start      color.Color
	Goal       color.Color
	Open       color.Color
	Closed     color.Color
	Path       color.Color
	Text       color.Color
}

// DefaultPalette is a dark theme with blue frontier overlays.
var DefaultPalette = Palette{
	Background: color.RGBA{30, 30, 30, 255},
	Wall:       color.RGBA{10, 10, 10, 255},
	Cell:       color.RGBA{220, 220, 220, 255},
	Start:      color.RGBA{30, 160, 30, 255},
	Goal:       color.RGBA{200, 30, 30, 255},
	Open:       color.RGBA{100, 180, 250, 255},
	Closed:     color.RGBA{90, 90, 200, 255},
	Path:       color.RGBA{240, 200, 65, 255},
	Text:       color.White,
}

const captionHeight = 20

type Options struct {
	CellSize int
	// Caption is drawn in a band under the maze when not empty.
	Caption string
	Palette Palette
}

// State is the part of a search the renderer reads.
type State struct {
	Start, Goal mazesearch.Cell
	Open        map[mazesearch.Cell]bool
	Closed      map[mazesearch.Cell]bool
	Path        []mazesearch.Cell
}

// FromSnapshot adapts a stepper snapshot.
func FromSnapshot(start, goal mazesearch.Cell, snapshot mazesearch.StepSnapshot[mazesearch.Cell]) State {
	return State{
		Start:  start,
		Goal:   goal,
		Open:   snapshot.Open,
		Closed: snapshot.Closed,
		Path:   snapshot.Path,
	}
}

// Size returns the pixel dimensions Draw produces.
func Size(m *mazesearch.Maze, options Options) (width, height int) {
	width = m.Cols() * options.CellSize
	height = m.Rows() * options.CellSize
	if options.Caption != "" {
		height += captionHeight
	}
	return width, height
}

// Draw paints floors, walls, open and closed sets, the path and both
// endpoints, in that order.
func Draw(m *mazesearch.Maze, state State, options Options) (image.Image, error) {
	if m == nil {
		return nil, errors.New("render: nil maze")
	}
	if options.CellSize < 4 {
		return nil, errors.Errorf("render: cell size %d below 4", options.CellSize)
	}
	if options.Palette == (Palette{}) {
		options.Palette = DefaultPalette
	}
	palette := options.Palette
	size := float64(options.CellSize)

	width, height := Size(m, options)
	dc := gg.NewContext(width, height)
	dc.SetColor(palette.Background)
	dc.Clear()

	// Cell floor
	dc.SetColor(palette.Cell)
	dc.DrawRectangle(0, 0, float64(m.Cols())*size, float64(m.Rows())*size)
	dc.Fill()

	// Walls
	wallWidth := size / 6
	if wallWidth < 2 {
		wallWidth = 2
	}
	dc.SetColor(palette.Wall)
	dc.SetLineWidth(wallWidth)
	for y := 0; y < m.Rows(); y++ {
		for x := 0; x < m.Cols(); x++ {
			cell := mazesearch.Cell{X: x, Y: y}
			cx, cy := float64(x)*size, float64(y)*size
			if !m.Open(cell, mazesearch.North) {
				dc.DrawLine(cx, cy, cx+size, cy)
			}
			if !m.Open(cell, mazesearch.West) {
				dc.DrawLine(cx, cy, cx, cy+size)
			}
			if y == m.Rows()-1 && !m.Open(cell, mazesearch.South) {
				dc.DrawLine(cx, cy+size, cx+size, cy+size)
			}
			if x == m.Cols()-1 && !m.Open(cell, mazesearch.East) {
				dc.DrawLine(cx+size, cy, cx+size, cy+size)
			}
		}
	}
	dc.Stroke()

	fillCells := func(cells map[mazesearch.Cell]bool, inset float64, c color.Color) {
		dc.SetColor(c)
		for cell, ok := range cells {
			if ok {
				drawInset(dc, cell, size, inset)
			}
		}
		dc.Fill()
	}
	fillCells(state.Open, 3, palette.Open)
	fillCells(state.Closed, 3, palette.Closed)

	// Path
	dc.SetColor(palette.Path)
	for _, cell := range state.Path {
		drawInset(dc, cell, size, 6)
	}
	dc.Fill()

	// Start/End
	dc.SetColor(palette.Start)
	drawInset(dc, state.Start, size, 4)
	dc.Fill()
	dc.SetColor(palette.Goal)
	drawInset(dc, state.Goal, size, 4)
	dc.Fill()

	if options.Caption != "" {
		dc.SetFontFace(basicfont.Face7x13)
		dc.SetColor(palette.Text)
		dc.DrawStringAnchored(options.Caption, 4, float64(height)-captionHeight/2, 0, 0.5)
	}
	return dc.Image(), nil
}

func drawInset(dc *gg.Context, cell mazesearch.Cell, size, inset float64) {
	if size-2*inset <= 0 {
		inset = 0
	}
	dc.DrawRectangle(float64(cell.X)*size+inset, float64(cell.Y)*size+inset, size-2*inset, size-2*inset)
}

// SideBySide lays panels out left to right with gap pixels between them.
func SideBySide(gap int, panels ...image.Image) (*image.RGBA, error) {
	composite := image_utils.NewCompositeImage()
	x := 0
	for i, panel := range panels {
		bounds := panel.Bounds()
		if err := composite.AddImage(panel, image.Pt(x, 0)); err != nil {
			return nil, errors.Wrapf(err, "adding panel %d", i)
		}
		x += bounds.Dx() + gap
	}
	return image_utils.ToRGBA(composite), nil
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	return errors.Wrap(gg.SavePNG(path, img), "render")
}

// Comparison draws the final state of both searches of c side by side, each
// captioned with its strategy and expansion count.
func Comparison(c mazesearch.Comparison, cellSize int) (*image.RGBA, error) {
	panels := make([]image.Image, 0, 2)
	for _, run := range []mazesearch.Run{c.UniformCost, c.AStar} {
		caption := fmt.Sprintf("%s: expanded %d, path %d", run.Strategy, run.Result.Expanded, len(run.Result.Path))
		if !run.Result.Found {
			caption = fmt.Sprintf("%s: no path, expanded %d", run.Strategy, run.Result.Expanded)
		}
		img, err := Draw(c.Maze, FromSnapshot(c.Start, c.Goal, run.Final), Options{CellSize: cellSize, Caption: caption})
		if err != nil {
			return nil, errors.Wrap(err, run.Strategy.String())
		}
		panels = append(panels, img)
	}
	return SideBySide(cellSize, panels...)
}
