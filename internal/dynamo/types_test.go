package dynamo

import (
	"math"
	"testing"
)

func TestSnapshot_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		snap  Snapshot
		valid bool
	}{
		{"empty", Snapshot{}, true},
		{"normal", Snapshot{{X: 1, Y: 2, VX: 3, VY: 4, Mass: 1}}, true},
		{"NaN position", Snapshot{{X: math.NaN(), Mass: 1}}, false},
		{"+Inf velocity", Snapshot{{VX: math.Inf(1), Mass: 1}}, false},
		{"-Inf velocity", Snapshot{{VY: math.Inf(-1), Mass: 1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snap.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestSnapshot_Clone(t *testing.T) {
	a := Snapshot{{X: 1}}
	b := a.Clone()
	b[0].X = 99
	if a[0].X != 1 {
		t.Error("Clone did not create independent copy")
	}
}

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		d    Diagnostic
		want string
	}{
		{Diagnostic{X: 1, Y: 2, VX: 3, VY: 4}, "Particle 0 - Position: (1.00, 2.00), Velocity: (3.00, 4.00)"},
		{Diagnostic{X: 799.996, Y: 0.004, VX: -1.5, VY: 0.126}, "Particle 0 - Position: (800.00, 0.00), Velocity: (-1.50, 0.13)"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParticleSpeed(t *testing.T) {
	if got := (Particle{VX: 3, VY: 4}).Speed(); got != 5 {
		t.Errorf("Speed() = %v, want 5", got)
	}
}

func TestSimError(t *testing.T) {
	err := SimError{Time: 1.5, Step: 150, Message: "test error"}
	expected := "step 150 (t=1.5000): test error"
	if err.Error() != expected {
		t.Errorf("SimError.Error() = %q, want %q", err.Error(), expected)
	}
}
