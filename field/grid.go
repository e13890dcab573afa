package field

// Grid is a fixed rows×cols partition of the unit square.
// Tile data is stored flat in row-major order.
type Grid struct {
	rows  int
	cols  int
	tileW float32
	tileH float32

	Pos   []Vec2    // top-left corner, fixed at construction
	Mass  []float32 // re-aggregated every frame
	Force []Vec2    // recomputed every frame
}

// NewGrid creates a grid with the given dimensions. rows and cols must be >= 1.
func NewGrid(rows, cols int) *Grid {
	n := rows * cols
	g := &Grid{
		rows:  rows,
		cols:  cols,
		tileW: 1 / float32(cols),
		tileH: 1 / float32(rows),
		Pos:   make([]Vec2, n),
		Mass:  make([]float32, n),
		Force: make([]Vec2, n),
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.Pos[r*cols+c] = Vec2{X: float32(c) * g.tileW, Y: float32(r) * g.tileH}
		}
	}
	return g
}

// Rows returns the number of tile rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of tile columns.
func (g *Grid) Cols() int { return g.cols }

// Len returns the number of tiles.
func (g *Grid) Len() int { return g.rows * g.cols }

// TileSize returns the width and height of a tile.
func (g *Grid) TileSize() (w, h float32) { return g.tileW, g.tileH }

// Index returns the flat index of a tile.
func (g *Grid) Index(row, col int) int {
	return row*g.cols + col
}

// Locate maps a position to its tile. Positions outside the unit square
// land in the nearest boundary tile.
func (g *Grid) Locate(p Vec2) (row, col int) {
	return cell(p.Y/g.tileH, g.rows), cell(p.X/g.tileW, g.cols)
}

// cell clamps a fractional cell coordinate to [0, n-1] before converting,
// so overflowing and NaN inputs stay in range.
func cell(q float32, n int) int {
	switch {
	case !(q >= 0):
		return 0
	case q >= float32(n):
		return n - 1
	}
	return int(q)
}

// LocateIndex returns the flat index of the tile containing p.
func (g *Grid) LocateIndex(p Vec2) int {
	row, col := g.Locate(p)
	return g.Index(row, col)
}

// ClearMass zeroes every tile mass.
func (g *Grid) ClearMass() {
	for i := range g.Mass {
		g.Mass[i] = 0
	}
}

// Aggregate re-bins the field: tile masses are zeroed and each particle's
// mass is added to the tile it lies in.
func (g *Grid) Aggregate(f *Field) {
	g.ClearMass()
	for _, p := range f.Pos {
		g.Mass[g.LocateIndex(p)] += f.Mass
	}
}

// TotalMass returns the sum of tile masses.
func (g *Grid) TotalMass() float64 {
	var sum float64
	for _, m := range g.Mass {
		sum += float64(m)
	}
	return sum
}
