package region

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/karstvale/tile-region-engine/internal/grid"
)

// Snapshot is one immutable decomposition of the world. The manager swaps
// a fresh snapshot in after every rebuild; readers holding an old pointer
// keep querying a consistent view. All query methods fail closed: anything
// off-grid or outside every region reports not-found rather than guessing.
type Snapshot struct {
	index      *grid.Index
	regions    map[grid.RegionID]*Region
	links      map[uint64]Link
	neighbors  map[grid.RegionID][]grid.RegionID
	rooms      map[RoomID]*Room
	roomOf     map[grid.RegionID]RoomID
	chunkSize  int
	generation uint64
}

func newEmptySnapshot(chunkSize int) *Snapshot {
	return &Snapshot{
		index:     grid.NewIndex(0, 0),
		regions:   make(map[grid.RegionID]*Region),
		links:     make(map[uint64]Link),
		neighbors: make(map[grid.RegionID][]grid.RegionID),
		rooms:     make(map[RoomID]*Room),
		roomOf:    make(map[grid.RegionID]RoomID),
		chunkSize: chunkSize,
	}
}

// Size returns the grid dimensions the snapshot was built from.
func (s *Snapshot) Size() (cols, rows int) { return s.index.Cols(), s.index.Rows() }

func (s *Snapshot) ChunkSize() int { return s.chunkSize }

// Generation counts rebuilds; it increases every time the manager swaps in
// a new snapshot.
func (s *Snapshot) Generation() uint64 { return s.generation }

// RegionAt returns the region owning the tile. The second return is false
// for solid or out-of-bounds tiles.
func (s *Snapshot) RegionAt(p grid.Point) (grid.RegionID, bool) {
	id := s.index.RegionAt(p.X, p.Y)
	if id == grid.NoRegion {
		return grid.NoRegion, false
	}
	return id, true
}

// Region returns the region with the given id.
func (s *Snapshot) Region(id grid.RegionID) (*Region, bool) {
	r, ok := s.regions[id]
	return r, ok
}

func (s *Snapshot) RegionCount() int { return len(s.regions) }

// Regions returns every region sorted by id.
func (s *Snapshot) Regions() []*Region {
	out := make([]*Region, 0, len(s.regions))
	for _, r := range s.regions {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Neighbors returns the regions adjacent to id. The returned slice is
// shared; callers must not mutate it.
func (s *Snapshot) Neighbors(id grid.RegionID) []grid.RegionID {
	return s.neighbors[id]
}

func (s *Snapshot) LinkCount() int { return len(s.links) }

// Links returns every recorded crossing sorted by canonical tile pair.
func (s *Snapshot) Links() []Link {
	out := make([]Link, 0, len(s.links))
	for _, ln := range s.links {
		out = append(out, ln)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TileA != out[j].TileA {
			return out[i].TileA < out[j].TileA
		}
		return out[i].TileB < out[j].TileB
	})
	return out
}

// Reachable reports whether a path of linked regions joins the two tiles.
// Same region answers true immediately; otherwise a breadth-first walk
// over the neighbor graph runs until the target region is dequeued or the
// component is exhausted. Either tile being solid or off-grid answers
// false.
func (s *Snapshot) Reachable(a, b grid.Point) bool {
	ra, ok := s.RegionAt(a)
	if !ok {
		return false
	}
	rb, ok := s.RegionAt(b)
	if !ok {
		return false
	}
	if ra == rb {
		return true
	}

	visited := mapset.New[grid.RegionID]()
	visited.Put(ra)
	queue := []grid.RegionID{ra}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == rb {
			return true
		}
		for _, nb := range s.neighbors[cur] {
			if visited.Has(nb) {
				continue
			}
			visited.Put(nb)
			queue = append(queue, nb)
		}
	}
	return false
}

// RoomOf returns the room containing the region.
func (s *Snapshot) RoomOf(id grid.RegionID) (RoomID, bool) {
	rid, ok := s.roomOf[id]
	return rid, ok
}

func (s *Snapshot) RoomCount() int { return len(s.rooms) }

// Rooms returns every room sorted by id.
func (s *Snapshot) Rooms() []*Room {
	out := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Stats summarizes the snapshot.
func (s *Snapshot) Stats() Stats {
	doors := 0
	for _, r := range s.regions {
		if r.IsDoor {
			doors++
		}
	}
	return Stats{
		Cols:        s.index.Cols(),
		Rows:        s.index.Rows(),
		ChunkSize:   s.chunkSize,
		Regions:     len(s.regions),
		DoorRegions: doors,
		Links:       len(s.links),
		Rooms:       len(s.rooms),
		Generation:  s.generation,
	}
}

// TileRegions exports a copy of the flat tile-to-region array for debug
// visualization. Unassigned tiles hold grid.NoRegion.
func (s *Snapshot) TileRegions() []grid.RegionID {
	return s.index.CopyRegions()
}

// ChunkRects returns the clipped tile bounds of every chunk, for debug
// overlays.
func (s *Snapshot) ChunkRects() []grid.Rect {
	cols, rows := s.Size()
	chunks := grid.AllChunks(s.chunkSize, cols, rows)
	out := make([]grid.Rect, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, grid.ChunkBounds(c, s.chunkSize, cols, rows))
	}
	return out
}
