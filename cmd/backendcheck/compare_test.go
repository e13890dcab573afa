package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/tilegrav/field"
)

func TestMaxRelativeError(t *testing.T) {
	tests := []struct {
		name  string
		got   []field.Vec2
		want  []field.Vec2
		floor float64
		err   float64
	}{
		{"equal", []field.Vec2{{X: 1, Y: 2}}, []field.Vec2{{X: 1, Y: 2}}, 0, 0},
		{"one percent", []field.Vec2{{X: 99, Y: 0}}, []field.Vec2{{X: 100, Y: 0}}, 0, 0.01},
		{"floor bounds tiny components", []field.Vec2{{X: 0, Y: 1e-6}}, []field.Vec2{{X: 0, Y: 0}}, 1, 1e-6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := maxRelativeError(tt.got, tt.want, tt.floor)
			if math.Abs(got-tt.err) > 1e-9 {
				t.Errorf("maxRelativeError = %v, want %v", got, tt.err)
			}
		})
	}
}

func TestRandomGridDeterministic(t *testing.T) {
	a := randomGrid(4, 5, 9)
	b := randomGrid(4, 5, 9)
	for i := range a.Mass {
		if a.Mass[i] != b.Mass[i] {
			t.Fatalf("mass %d differs: %v vs %v", i, a.Mass[i], b.Mass[i])
		}
	}
}
