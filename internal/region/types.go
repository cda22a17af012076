// Package region decomposes a tile world into chunk-bounded contiguous
// regions, records adjacencies between them, and answers reachability and
// membership queries against immutable snapshots.
package region

import (
	"github.com/karstvale/tile-region-engine/internal/grid"
)

// Terrain is the world-model surface the builder reads. Implementations
// must treat out-of-bounds coordinates as impassable.
type Terrain interface {
	// Size returns the grid dimensions in tiles.
	Size() (cols, rows int)
	// IsPassable reports whether the tile can be occupied or crossed.
	IsPassable(x, y int) bool
	// DoorTiles returns the coordinates of every door tile. A sealed
	// door stays in the list but reads as impassable.
	DoorTiles() []grid.Point
}

// Region is a contiguous set of mutually passable tiles confined to one
// chunk. Door tiles always form single-tile regions so connectivity changes
// from opening or sealing a door stay local. Regions are built once and
// never mutated; rebuilds replace them wholesale.
type Region struct {
	ID     grid.RegionID
	Tiles  []int
	IsDoor bool
	Chunk  grid.ChunkCoord
	BBox   grid.Rect
}

// Size returns the tile count.
func (r *Region) Size() int { return len(r.Tiles) }

// Link records one adjacency crossing between two regions. TileA and TileB
// are the flat positions of the adjacent tile pair with TileA < TileB, and
// A and B are their owning regions. The canonical tile order is what keeps
// links deduplicated no matter which side discovered the crossing.
type Link struct {
	A     grid.RegionID `json:"a"`
	B     grid.RegionID `json:"b"`
	TileA int           `json:"tileA"`
	TileB int           `json:"tileB"`
}

// RoomID identifies a room within a snapshot.
type RoomID int

// Room groups regions that connect to each other without crossing a door
// region. Each door region forms its own room.
type Room struct {
	ID      RoomID
	Regions []grid.RegionID
}

// Stats summarizes a snapshot for debug and monitoring surfaces.
type Stats struct {
	Cols        int    `json:"cols"`
	Rows        int    `json:"rows"`
	ChunkSize   int    `json:"chunkSize"`
	Regions     int    `json:"regions"`
	DoorRegions int    `json:"doorRegions"`
	Links       int    `json:"links"`
	Rooms       int    `json:"rooms"`
	Generation  uint64 `json:"generation"`
}

// Logger is the small logging surface the manager needs. zap's
// SugaredLogger satisfies it.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}

var cardinal = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
