package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/particlesim/internal/dynamo"
)

// Coordinate selects one component of a particle's state.
type Coordinate string

const (
	CoordX  Coordinate = "x"
	CoordY  Coordinate = "y"
	CoordVX Coordinate = "vx"
	CoordVY Coordinate = "vy"
)

func (c Coordinate) value(p dynamo.Particle) (float64, error) {
	switch c {
	case CoordX:
		return p.X, nil
	case CoordY:
		return p.Y, nil
	case CoordVX:
		return p.VX, nil
	case CoordVY:
		return p.VY, nil
	}
	return 0, fmt.Errorf("%w: coordinate %q", dynamo.ErrUnknownParam, string(c))
}

type Point struct{ X, Y float64 }

// PhasePortrait2D holds one particle's path through a 2D slice of its
// phase space.
type PhasePortrait2D struct {
	Index        int
	XAxis, YAxis Coordinate
	Points       []Point
}

// GeneratePhasePortrait collects particle index from every frame that
// contains it.
func GeneratePhasePortrait(frames []dynamo.Snapshot, index int, xAxis, yAxis Coordinate) (*PhasePortrait2D, error) {
	if index < 0 {
		return nil, fmt.Errorf("%w: particle index %d", dynamo.ErrParameterBounds, index)
	}

	portrait := &PhasePortrait2D{
		Index:  index,
		XAxis:  xAxis,
		YAxis:  yAxis,
		Points: make([]Point, 0, len(frames)),
	}

	for _, f := range frames {
		if index >= len(f) {
			continue
		}
		x, err := xAxis.value(f[index])
		if err != nil {
			return nil, err
		}
		y, err := yAxis.value(f[index])
		if err != nil {
			return nil, err
		}
		portrait.Points = append(portrait.Points, Point{X: x, Y: y})
	}

	return portrait, nil
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y
	for _, p := range portrait.Points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// Axes where they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
