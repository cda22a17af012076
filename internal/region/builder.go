package region

import (
	"github.com/karstvale/tile-region-engine/internal/grid"
)

// Builder turns terrain into regions. Door tiles are claimed first as
// singleton regions, then each chunk is flood-filled independently so no
// region ever spans a chunk boundary.
type Builder struct {
	chunkSize int
	nextID    func() grid.RegionID
}

// NewBuilder returns a builder that allocates region ids through nextID.
func NewBuilder(chunkSize int, nextID func() grid.RegionID) *Builder {
	return &Builder{chunkSize: chunkSize, nextID: nextID}
}

// Build decomposes the whole terrain from scratch.
func (b *Builder) Build(t Terrain) *Snapshot {
	cols, rows := t.Size()
	ix := grid.NewIndex(cols, rows)
	regions := make(map[grid.RegionID]*Region)
	doors := doorIndexSet(t, ix)
	b.claimDoorRegions(t, ix, regions, nil)
	for _, c := range grid.AllChunks(b.chunkSize, cols, rows) {
		b.fillChunk(t, ix, regions, c, doors)
	}
	return assemble(ix, regions, b.chunkSize)
}

// Rebuild redecomposes only the chunks overlapping area, carrying every
// other region over from prev unchanged. Links and rooms are always
// recomputed globally because adjacencies reach across chunk boundaries.
func (b *Builder) Rebuild(t Terrain, prev *Snapshot, area grid.Rect) *Snapshot {
	cols, rows := t.Size()
	cover := grid.ChunkCover(area, b.chunkSize, cols, rows)
	coverSet := make(map[grid.ChunkCoord]struct{}, len(cover))
	rects := make([]grid.Rect, 0, len(cover))
	for _, c := range cover {
		coverSet[c] = struct{}{}
		rects = append(rects, grid.ChunkBounds(c, b.chunkSize, cols, rows))
	}

	ix := prev.index.Clone()
	regions := make(map[grid.RegionID]*Region, len(prev.regions))
	for id, reg := range prev.regions {
		if _, hit := coverSet[reg.Chunk]; hit {
			ix.ClearRegion(id)
			continue
		}
		regions[id] = reg
	}

	doors := doorIndexSet(t, ix)
	b.claimDoorRegions(t, ix, regions, rects)
	for _, c := range cover {
		b.fillChunk(t, ix, regions, c, doors)
	}
	return assemble(ix, regions, b.chunkSize)
}

func assemble(ix *grid.Index, regions map[grid.RegionID]*Region, chunkSize int) *Snapshot {
	links, neighbors := detectLinks(ix, regions)
	rooms, roomOf := buildRooms(regions, neighbors)
	return &Snapshot{
		index:     ix,
		regions:   regions,
		links:     links,
		neighbors: neighbors,
		rooms:     rooms,
		roomOf:    roomOf,
		chunkSize: chunkSize,
	}
}

// claimDoorRegions creates a singleton region for every open door tile, or
// for those inside the given rects when scoping a partial rebuild. Sealed
// doors read as impassable and are skipped, as are coordinates already
// claimed by a duplicate entry.
func (b *Builder) claimDoorRegions(t Terrain, ix *grid.Index, regions map[grid.RegionID]*Region, within []grid.Rect) {
	for _, p := range t.DoorTiles() {
		if !ix.InBounds(p.X, p.Y) {
			continue
		}
		if within != nil && !anyRectContains(within, p.X, p.Y) {
			continue
		}
		if !t.IsPassable(p.X, p.Y) {
			continue
		}
		idx := ix.TileIndex(p.X, p.Y)
		if ix.RegionAtIndex(idx) != grid.NoRegion {
			continue
		}
		id := b.nextID()
		regions[id] = &Region{
			ID:     id,
			Tiles:  []int{idx},
			IsDoor: true,
			Chunk:  grid.ChunkOf(p.X, p.Y, b.chunkSize),
			BBox:   grid.RectAround(p),
		}
		ix.Assign(idx, id)
	}
}

// fillChunk flood-fills every unclaimed passable non-door tile of one
// chunk. The fill is 4-way and never steps outside the chunk bounds.
func (b *Builder) fillChunk(t Terrain, ix *grid.Index, regions map[grid.RegionID]*Region, c grid.ChunkCoord, doors map[int]struct{}) {
	bounds := grid.ChunkBounds(c, b.chunkSize, ix.Cols(), ix.Rows())
	for y := bounds.MinY; y <= bounds.MaxY; y++ {
		for x := bounds.MinX; x <= bounds.MaxX; x++ {
			start := ix.TileIndex(x, y)
			if ix.RegionAtIndex(start) != grid.NoRegion {
				continue
			}
			if !t.IsPassable(x, y) {
				continue
			}
			if _, isDoor := doors[start]; isDoor {
				continue
			}

			id := b.nextID()
			reg := &Region{ID: id, Chunk: c}
			ix.Assign(start, id)
			reg.Tiles = append(reg.Tiles, start)
			// reg.Tiles doubles as the BFS queue; head chases the tail
			// until no unclaimed neighbor remains.
			for head := 0; head < len(reg.Tiles); head++ {
				tx, ty := ix.Coords(reg.Tiles[head])
				for _, d := range cardinal {
					nx, ny := tx+d[0], ty+d[1]
					if !bounds.Contains(nx, ny) {
						continue
					}
					nidx := ix.TileIndex(nx, ny)
					if ix.RegionAtIndex(nidx) != grid.NoRegion {
						continue
					}
					if !t.IsPassable(nx, ny) {
						continue
					}
					if _, isDoor := doors[nidx]; isDoor {
						continue
					}
					ix.Assign(nidx, id)
					reg.Tiles = append(reg.Tiles, nidx)
				}
			}
			reg.BBox = tileBounds(ix, reg.Tiles)
			regions[id] = reg
		}
	}
}

// doorIndexSet maps every door coordinate to its flat position so the fill
// can refuse to enter door tiles.
func doorIndexSet(t Terrain, ix *grid.Index) map[int]struct{} {
	tiles := t.DoorTiles()
	set := make(map[int]struct{}, len(tiles))
	for _, p := range tiles {
		if !ix.InBounds(p.X, p.Y) {
			continue
		}
		set[ix.TileIndex(p.X, p.Y)] = struct{}{}
	}
	return set
}

func anyRectContains(rects []grid.Rect, x, y int) bool {
	for _, r := range rects {
		if r.Contains(x, y) {
			return true
		}
	}
	return false
}

func tileBounds(ix *grid.Index, tiles []int) grid.Rect {
	x0, y0 := ix.Coords(tiles[0])
	box := grid.Rect{MinX: x0, MinY: y0, MaxX: x0, MaxY: y0}
	for _, idx := range tiles[1:] {
		x, y := ix.Coords(idx)
		if x < box.MinX {
			box.MinX = x
		}
		if x > box.MaxX {
			box.MaxX = x
		}
		if y < box.MinY {
			box.MinY = y
		}
		if y > box.MaxY {
			box.MaxY = y
		}
	}
	return box
}
