// Text map support: worlds can be written out as rune grids and read
// back, which is how fixture maps and the debug surface describe
// terrain. One rune per tile.
package world

import (
	"fmt"
	"os"
	"strings"

	"github.com/karstvale/tile-region-engine/internal/grid"
)

// Map runes. Trees and ore stand on floor; a tile holds at most one
// drawn object.
const (
	RuneFloor      = '.'
	RuneRock       = '#'
	RuneDoorOpen   = '+'
	RuneDoorSealed = 'x'
	RuneTree       = 'T'
	RuneOre        = 'o'
)

// ParseMap builds a world from a rune grid. All lines must be equally
// long and non-empty.
func ParseMap(lines []string) (*World, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("map has no rows")
	}
	cols := len([]rune(lines[0]))
	if cols == 0 {
		return nil, fmt.Errorf("map has empty rows")
	}

	w := New(cols, len(lines))
	for y, line := range lines {
		runes := []rune(line)
		if len(runes) != cols {
			return nil, fmt.Errorf("row %d is %d tiles wide, want %d", y, len(runes), cols)
		}
		for x, r := range runes {
			p := grid.Point{X: x, Y: y}
			switch r {
			case RuneFloor:
			case RuneRock:
				w.solid[w.idx(x, y)] = true
			case RuneDoorOpen:
				w.PlaceDoor(p)
			case RuneDoorSealed:
				w.PlaceDoor(p)
				w.SetDoorOpen(p, false)
			case RuneTree:
				w.PlaceObject(KindTree, p)
			case RuneOre:
				w.PlaceObject(KindOre, p)
			default:
				return nil, fmt.Errorf("unknown map rune %q at (%d,%d)", r, x, y)
			}
		}
	}
	return w, nil
}

// LoadMapFile reads a text map from disk. Blank trailing lines are
// dropped so editors that append a final newline stay harmless.
func LoadMapFile(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map file: %w", err)
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	w, err := ParseMap(lines)
	if err != nil {
		return nil, fmt.Errorf("parse map %s: %w", path, err)
	}
	return w, nil
}

// FormatMap renders the world back into a rune grid. Doors draw over
// their tile, terrain draws over objects, so quarantined objects and
// unknown kinds vanish from the picture. The output round-trips through
// ParseMap for worlds with at most one floor-standing object per tile.
func (w *World) FormatMap() []string {
	kinds := make(map[grid.Point]string, len(w.objects))
	for _, obj := range w.Objects() {
		if _, taken := kinds[obj.Position()]; !taken {
			kinds[obj.Position()] = obj.ObjectKind()
		}
	}

	lines := make([]string, 0, w.rows)
	row := make([]rune, w.cols)
	for y := 0; y < w.rows; y++ {
		for x := 0; x < w.cols; x++ {
			p := grid.Point{X: x, Y: y}
			row[x] = RuneFloor
			if open, isDoor := w.doors[p]; isDoor {
				if open {
					row[x] = RuneDoorOpen
				} else {
					row[x] = RuneDoorSealed
				}
			} else if w.solid[w.idx(x, y)] {
				row[x] = RuneRock
			} else if kind, ok := kinds[p]; ok {
				switch kind {
				case KindTree:
					row[x] = RuneTree
				case KindOre:
					row[x] = RuneOre
				}
			}
		}
		lines = append(lines, string(row))
	}
	return lines
}

// DevMap returns the standing development world: a 40x40 floor with a
// hollow rock square, one door on the square's south edge, a tree
// grove outside and an ore drop locked inside.
func DevMap() *World {
	w := New(40, 40)

	// Hollow 10x10 square, interior 8x8.
	w.BuildWall(grid.Rect{MinX: 15, MinY: 15, MaxX: 24, MaxY: 24})
	w.RemoveWall(grid.Rect{MinX: 16, MinY: 16, MaxX: 23, MaxY: 23})
	w.PlaceDoor(grid.Point{X: 20, Y: 24})

	for _, p := range []grid.Point{{X: 5, Y: 8}, {X: 6, Y: 8}, {X: 5, Y: 9}, {X: 33, Y: 30}} {
		w.PlaceObject(KindTree, p)
	}
	w.PlaceObject(KindOre, grid.Point{X: 18, Y: 18})

	return w
}
