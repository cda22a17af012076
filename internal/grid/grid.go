// Package grid provides tile addressing and the flat tile-to-region index
// that the region builder and all spatial queries run against.
package grid

// RegionID identifies a contiguous group of tiles. IDs are allocated by the
// region manager and are unique within a snapshot.
type RegionID int

// NoRegion marks a tile that belongs to no region: solid tiles, and any
// tile not yet visited by the builder.
const NoRegion RegionID = -1

// Point is a tile coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Index is the forward tile-to-region mapping plus its inverse. The forward
// side is a flat array indexed by y*cols+x so lookups stay allocation-free.
type Index struct {
	cols    int
	rows    int
	regions []RegionID
	tiles   map[RegionID][]int
}

// NewIndex returns an index for a cols-by-rows grid with every tile
// unassigned.
func NewIndex(cols, rows int) *Index {
	total := cols * rows
	regions := make([]RegionID, total)
	for i := range regions {
		regions[i] = NoRegion
	}
	return &Index{
		cols:    cols,
		rows:    rows,
		regions: regions,
		tiles:   make(map[RegionID][]int),
	}
}

func (ix *Index) Cols() int { return ix.cols }
func (ix *Index) Rows() int { return ix.rows }

// Len returns the total tile count.
func (ix *Index) Len() int { return len(ix.regions) }

func (ix *Index) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < ix.cols && y < ix.rows
}

// TileIndex converts a coordinate to its flat array position. Callers must
// bounds-check first.
func (ix *Index) TileIndex(x, y int) int { return y*ix.cols + x }

// Coords converts a flat array position back to a coordinate.
func (ix *Index) Coords(idx int) (int, int) { return idx % ix.cols, idx / ix.cols }

// RegionAt returns the region owning the tile, or NoRegion for solid,
// unassigned, or out-of-bounds tiles.
func (ix *Index) RegionAt(x, y int) RegionID {
	if !ix.InBounds(x, y) {
		return NoRegion
	}
	return ix.regions[ix.TileIndex(x, y)]
}

// RegionAtIndex is RegionAt for a flat position already known to be valid.
func (ix *Index) RegionAtIndex(idx int) RegionID { return ix.regions[idx] }

// Assign records that the tile at idx belongs to id and updates the inverse
// mapping.
func (ix *Index) Assign(idx int, id RegionID) {
	ix.regions[idx] = id
	ix.tiles[id] = append(ix.tiles[id], idx)
}

// ClearRegion unassigns every tile of id and drops it from the inverse
// mapping.
func (ix *Index) ClearRegion(id RegionID) {
	for _, idx := range ix.tiles[id] {
		ix.regions[idx] = NoRegion
	}
	delete(ix.tiles, id)
}

// TilesOf returns the flat positions owned by id in assignment order. The
// returned slice is shared; callers must not mutate it.
func (ix *Index) TilesOf(id RegionID) []int { return ix.tiles[id] }

// RegionCount returns the number of regions with at least one tile.
func (ix *Index) RegionCount() int { return len(ix.tiles) }

// RegionIDs returns every region id present in the index, in no particular
// order.
func (ix *Index) RegionIDs() []RegionID {
	ids := make([]RegionID, 0, len(ix.tiles))
	for id := range ix.tiles {
		ids = append(ids, id)
	}
	return ids
}

// Clone returns a deep copy. Used by incremental rebuilds so the published
// snapshot is never mutated in place.
func (ix *Index) Clone() *Index {
	regions := make([]RegionID, len(ix.regions))
	copy(regions, ix.regions)
	tiles := make(map[RegionID][]int, len(ix.tiles))
	for id, ts := range ix.tiles {
		cp := make([]int, len(ts))
		copy(cp, ts)
		tiles[id] = cp
	}
	return &Index{cols: ix.cols, rows: ix.rows, regions: regions, tiles: tiles}
}

// CopyRegions returns a copy of the flat tile-to-region array, for debug
// exports and visualization.
func (ix *Index) CopyRegions() []RegionID {
	out := make([]RegionID, len(ix.regions))
	copy(out, ix.regions)
	return out
}
