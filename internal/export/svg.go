package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/particlesim/internal/dynamo"
)

// SpeedStyle maps a particle's speed to the hue and radius used by the
// browser renderer: hue min(speed*10, 360), radius min(speed*2, 10).
func SpeedStyle(p dynamo.Particle) (hue, radius float64) {
	speed := p.Speed()
	return math.Min(speed*10, 360), math.Min(speed*2, 10)
}

// SnapshotToSVG draws every particle of a snapshot as a filled circle on
// a width x height canvas.
func SnapshotToSVG(s dynamo.Snapshot, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, p := range s {
		hue, r := SpeedStyle(p)
		if r <= 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="hsl(%.0f, 100%%, 50%%)"/>
`, p.X, p.Y, r, hue))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteSVG writes SnapshotToSVG output to w.
func WriteSVG(w io.Writer, s dynamo.Snapshot, width, height int) error {
	_, err := io.WriteString(w, SnapshotToSVG(s, width, height))
	return err
}

// TrajectoryToSVG traces one particle's path across a sequence of frames.
// Frames that do not contain the particle are skipped.
func TrajectoryToSVG(frames []dynamo.Snapshot, index, width, height int, strokeColor string) string {
	points := make([]dynamo.Particle, 0, len(frames))
	for _, f := range frames {
		if index < len(f) {
			points = append(points, f[index])
		}
	}
	if len(points) < 2 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
		}
	}

	sb.WriteString(`"/>
</svg>
`)
	return sb.String()
}
