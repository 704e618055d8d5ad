package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/san-kum/particlesim/internal/dynamo"
)

// Frame is one line of the NDJSON stream.
type Frame struct {
	Step           int             `json:"step"`
	Time           float64         `json:"time"`
	Dt             float64         `json:"dt"`
	SurfaceTension float64         `json:"surface_tension"`
	Particles      json.RawMessage `json:"particles"`
}

// Stream writes newline-delimited JSON frames to w. Each frame is
// the state before a step; sys is stepped once after every frame.
func Stream(ctx context.Context, w io.Writer, sys dynamo.System, frames int) error {
	enc := json.NewEncoder(w)
	step := 0

	var writeErr error
	err := dynamo.New(sys).RunWithCallback(ctx, dynamo.Config{Steps: frames}, func(s dynamo.Snapshot, t float64) bool {
		f := Frame{
			Step:           step,
			Time:           t,
			Dt:             sys.Dt(),
			SurfaceTension: sys.SurfaceTension(),
			Particles:      EncodeOrNull(s),
		}
		if writeErr = enc.Encode(f); writeErr != nil {
			return false
		}
		step++
		return true
	})
	if writeErr != nil {
		return fmt.Errorf("write frame %d: %w", step, writeErr)
	}
	return err
}
