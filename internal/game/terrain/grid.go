package terrain

import "fmt"

// Grid is a rectangular tile map of terrain IDs backed by a Registry.
// It implements the battlefield query surface the combat engine consumes.
// Out-of-bounds or unknown tiles contribute zero dodge and defense.
type Grid struct {
	reg   *Registry
	tiles [][]string // tiles[y][x]
	w, h  int
}

// NewGrid creates a w×h grid filled with fillID terrain.
//
// Precondition: reg must be non-nil; w and h must be >= 1; fillID must be
// registered in reg.
func NewGrid(reg *Registry, w, h int, fillID string) (*Grid, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("terrain: grid dimensions must be >= 1, got %dx%d", w, h)
	}
	if _, ok := reg.Get(fillID); !ok {
		return nil, fmt.Errorf("terrain: unknown fill terrain %q", fillID)
	}
	tiles := make([][]string, h)
	for y := range tiles {
		row := make([]string, w)
		for x := range row {
			row[x] = fillID
		}
		tiles[y] = row
	}
	return &Grid{reg: reg, tiles: tiles, w: w, h: h}, nil
}

// Set assigns terrain id to tile (x, y).
//
// Precondition: (x, y) must be in bounds; id must be registered.
func (g *Grid) Set(x, y int, id string) error {
	if !g.inBounds(x, y) {
		return fmt.Errorf("terrain: tile (%d,%d) out of bounds for %dx%d grid", x, y, g.w, g.h)
	}
	if _, ok := g.reg.Get(id); !ok {
		return fmt.Errorf("terrain: unknown terrain %q", id)
	}
	g.tiles[y][x] = id
	return nil
}

// At returns the Def for tile (x, y), or (nil, false) when out of bounds
// or the tile's terrain is not registered.
func (g *Grid) At(x, y int) (*Def, bool) {
	if !g.inBounds(x, y) {
		return nil, false
	}
	return g.reg.Get(g.tiles[y][x])
}

// DodgeAt returns the dodge bonus of the terrain at (x, y).
//
// Postcondition: Returns 0 for out-of-bounds or unknown tiles.
func (g *Grid) DodgeAt(x, y int) int {
	if d, ok := g.At(x, y); ok {
		return d.Dodge
	}
	return 0
}

// DefenseAt returns the defense bonus of the terrain at (x, y).
//
// Postcondition: Returns 0 for out-of-bounds or unknown tiles.
func (g *Grid) DefenseAt(x, y int) int {
	if d, ok := g.At(x, y); ok {
		return d.Defense
	}
	return 0
}

// Width returns the grid width in tiles.
func (g *Grid) Width() int { return g.w }

// Height returns the grid height in tiles.
func (g *Grid) Height() int { return g.h }

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}
