package field

import (
	"math"
	"math/rand"
	"testing"
)

func TestNewGridTilePositions(t *testing.T) {
	g := NewGrid(2, 4)

	if g.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", g.Len())
	}

	w, h := g.TileSize()
	if w != 0.25 || h != 0.5 {
		t.Errorf("TileSize() = (%v, %v), want (0.25, 0.5)", w, h)
	}

	// Tile (1, 3) has its top-left corner at (0.75, 0.5)
	p := g.Pos[g.Index(1, 3)]
	if p.X != 0.75 || p.Y != 0.5 {
		t.Errorf("tile (1,3) position = %v, want (0.75, 0.5)", p)
	}
}

func TestLocate(t *testing.T) {
	g := NewGrid(4, 5)

	tests := []struct {
		name     string
		p        Vec2
		row, col int
	}{
		{"origin", Vec2{0, 0}, 0, 0},
		{"far corner", Vec2{1, 1}, 3, 4},
		{"center", Vec2{0.5, 0.5}, 2, 2},
		{"just below edge", Vec2{0.19, 0.24}, 0, 0},
		{"on interior edge", Vec2{0.2, 0.25}, 1, 1},
		{"negative clamps", Vec2{-3, -0.1}, 0, 0},
		{"overshoot clamps", Vec2{7, 1.5}, 3, 4},
		{"huge clamps high", Vec2{1e20, 1e20}, 3, 4},
		{"huge clamps low", Vec2{-1e20, -1e20}, 0, 0},
		{"infinity clamps", Vec2{float32(math.Inf(1)), 0.5}, 2, 4},
		{"negative infinity clamps", Vec2{0.5, float32(math.Inf(-1))}, 0, 2},
		{"NaN lands in first tile", Vec2{float32(math.NaN()), float32(math.NaN())}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col := g.Locate(tt.p)
			if row != tt.row || col != tt.col {
				t.Errorf("Locate(%v) = (%d, %d), want (%d, %d)", tt.p, row, col, tt.row, tt.col)
			}
		})
	}
}

func TestLocateTotality(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	grids := []*Grid{NewGrid(1, 1), NewGrid(1, 2), NewGrid(3, 7), NewGrid(16, 16)}

	for _, g := range grids {
		// Boundaries explicitly, then random interior points
		points := []Vec2{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
		for i := 0; i < 1000; i++ {
			points = append(points, Vec2{rng.Float32(), rng.Float32()})
		}

		for _, p := range points {
			row, col := g.Locate(p)
			if row < 0 || row >= g.Rows() || col < 0 || col >= g.Cols() {
				t.Fatalf("%dx%d grid: Locate(%v) = (%d, %d) out of range",
					g.Rows(), g.Cols(), p, row, col)
			}
		}
	}
}

func TestAggregateConservesMass(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	f := NewField(1000, 100, rng)
	g := NewGrid(8, 8)

	// Several passes: masses must not carry over between aggregations
	for pass := 0; pass < 3; pass++ {
		g.Aggregate(f)

		got := g.TotalMass()
		want := f.TotalMass()
		if math.Abs(got-want) > 1e-6*want {
			t.Fatalf("pass %d: tile mass sum = %v, want %v", pass, got, want)
		}
	}
}

func TestAggregateSingleParticle(t *testing.T) {
	f := NewFieldAt([]Vec2{{0.5, 0.5}}, 100)
	g := NewGrid(1, 1)

	g.Aggregate(f)

	if g.Mass[0] != 100 {
		t.Errorf("tile mass = %v, want 100", g.Mass[0])
	}
}

func TestAggregateBinsIntoCorrectTile(t *testing.T) {
	f := NewFieldAt([]Vec2{{0.1, 0.1}, {0.9, 0.1}, {0.9, 0.9}, {0.95, 0.95}}, 2)
	g := NewGrid(2, 2)

	g.Aggregate(f)

	want := []float32{2, 2, 0, 4}
	for i, m := range g.Mass {
		if m != want[i] {
			t.Errorf("tile %d mass = %v, want %v", i, m, want[i])
		}
	}
}

func TestNewFieldInUnitSquare(t *testing.T) {
	f := NewField(500, 1, rand.New(rand.NewSource(1)))

	for i, p := range f.Pos {
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
			t.Fatalf("particle %d at %v outside unit square", i, p)
		}
		if f.Accel[i] != (Vec2{}) {
			t.Fatalf("particle %d starts with acceleration %v", i, f.Accel[i])
		}
	}
}
