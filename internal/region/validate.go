package region

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/karstvale/tile-region-engine/internal/grid"
)

// Validate re-derives every structural invariant of the snapshot from the
// terrain and reports the first violation found. A violation is always a
// builder bug, never bad input, so tests treat any error as fatal; the
// manager's SelfCheck mode logs it and keeps serving.
func (s *Snapshot) Validate(t Terrain) error {
	cols, rows := t.Size()
	if ic, ir := s.index.Cols(), s.index.Rows(); ic != cols || ir != rows {
		return fmt.Errorf("snapshot is %dx%d but terrain is %dx%d", ic, ir, cols, rows)
	}

	doors := doorIndexSet(t, s.index)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			idx := s.index.TileIndex(x, y)
			id := s.index.RegionAtIndex(idx)
			passable := t.IsPassable(x, y)
			if passable && id == grid.NoRegion {
				return fmt.Errorf("passable tile (%d,%d) has no region", x, y)
			}
			if !passable && id != grid.NoRegion {
				return fmt.Errorf("impassable tile (%d,%d) assigned to region %d", x, y, id)
			}
			if !passable {
				continue
			}
			reg, ok := s.regions[id]
			if !ok {
				return fmt.Errorf("tile (%d,%d) references missing region %d", x, y, id)
			}
			_, isDoor := doors[idx]
			if isDoor && !reg.IsDoor {
				return fmt.Errorf("door tile (%d,%d) owned by non-door region %d", x, y, id)
			}
			if !isDoor && reg.IsDoor {
				return fmt.Errorf("non-door tile (%d,%d) owned by door region %d", x, y, id)
			}
		}
	}

	for id, reg := range s.regions {
		if err := s.validateRegion(id, reg); err != nil {
			return err
		}
	}

	for key, ln := range s.links {
		if err := s.validateLink(key, ln); err != nil {
			return err
		}
	}

	for id, ns := range s.neighbors {
		for _, nb := range ns {
			if !containsRegionID(s.neighbors[nb], id) {
				return fmt.Errorf("neighbor entry %d->%d has no reverse entry", id, nb)
			}
		}
	}

	for id := range s.regions {
		rid, ok := s.roomOf[id]
		if !ok {
			return fmt.Errorf("region %d belongs to no room", id)
		}
		room, ok := s.rooms[rid]
		if !ok {
			return fmt.Errorf("region %d references missing room %d", id, rid)
		}
		if s.regions[id].IsDoor && len(room.Regions) != 1 {
			return fmt.Errorf("door region %d shares room %d with %d other regions", id, rid, len(room.Regions)-1)
		}
	}
	return nil
}

func (s *Snapshot) validateRegion(id grid.RegionID, reg *Region) error {
	if reg.ID != id {
		return fmt.Errorf("region keyed %d carries id %d", id, reg.ID)
	}
	if len(reg.Tiles) == 0 {
		return fmt.Errorf("region %d has no tiles", id)
	}
	if reg.IsDoor && len(reg.Tiles) != 1 {
		return fmt.Errorf("door region %d spans %d tiles", id, len(reg.Tiles))
	}
	bounds := grid.ChunkBounds(reg.Chunk, s.chunkSize, s.index.Cols(), s.index.Rows())
	for _, idx := range reg.Tiles {
		x, y := s.index.Coords(idx)
		if !bounds.Contains(x, y) {
			return fmt.Errorf("region %d tile (%d,%d) escapes chunk %+v", id, x, y, reg.Chunk)
		}
		if !reg.BBox.Contains(x, y) {
			return fmt.Errorf("region %d tile (%d,%d) outside bbox %+v", id, x, y, reg.BBox)
		}
		if got := s.index.RegionAtIndex(idx); got != id {
			return fmt.Errorf("region %d lists tile (%d,%d) owned by %d", id, x, y, got)
		}
	}

	// Every tile must be walkable from the first without leaving the
	// region, otherwise the fill produced a fragmented region.
	seen := mapset.New[int]()
	seen.Put(reg.Tiles[0])
	queue := []int{reg.Tiles[0]}
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		x, y := s.index.Coords(idx)
		for _, d := range cardinal {
			nx, ny := x+d[0], y+d[1]
			if s.index.RegionAt(nx, ny) != id {
				continue
			}
			nidx := s.index.TileIndex(nx, ny)
			if seen.Has(nidx) {
				continue
			}
			seen.Put(nidx)
			queue = append(queue, nidx)
		}
	}
	if seen.Size() != len(reg.Tiles) {
		return fmt.Errorf("region %d is fragmented: %d of %d tiles connected", id, seen.Size(), len(reg.Tiles))
	}
	return nil
}

func (s *Snapshot) validateLink(key uint64, ln Link) error {
	if ln.TileB < ln.TileA {
		return fmt.Errorf("link %d-%d stored in non-canonical order", ln.TileA, ln.TileB)
	}
	if key != pairKey(ln.TileA, ln.TileB) {
		return fmt.Errorf("link %d-%d stored under wrong key", ln.TileA, ln.TileB)
	}
	ax, ay := s.index.Coords(ln.TileA)
	bx, by := s.index.Coords(ln.TileB)
	if intAbs(ax-bx)+intAbs(ay-by) != 1 {
		return fmt.Errorf("link tiles (%d,%d) and (%d,%d) are not 4-adjacent", ax, ay, bx, by)
	}
	if got := s.index.RegionAtIndex(ln.TileA); got != ln.A {
		return fmt.Errorf("link %d-%d records region %d for tile A owned by %d", ln.TileA, ln.TileB, ln.A, got)
	}
	if got := s.index.RegionAtIndex(ln.TileB); got != ln.B {
		return fmt.Errorf("link %d-%d records region %d for tile B owned by %d", ln.TileA, ln.TileB, ln.B, got)
	}
	if ln.A == ln.B {
		return fmt.Errorf("link %d-%d joins region %d to itself", ln.TileA, ln.TileB, ln.A)
	}
	return nil
}

func containsRegionID(ids []grid.RegionID, id grid.RegionID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func intAbs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

