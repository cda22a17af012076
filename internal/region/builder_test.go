package region

import (
	"testing"

	"github.com/karstvale/tile-region-engine/internal/grid"
)

// terrainFixture is a mutable in-memory Terrain for tests.
type terrainFixture struct {
	cols, rows int
	solid      map[grid.Point]bool
	doors      []grid.Point
}

func newTerrain(cols, rows int) *terrainFixture {
	return &terrainFixture{cols: cols, rows: rows, solid: make(map[grid.Point]bool)}
}

func (f *terrainFixture) Size() (int, int) { return f.cols, f.rows }

func (f *terrainFixture) IsPassable(x, y int) bool {
	if x < 0 || y < 0 || x >= f.cols || y >= f.rows {
		return false
	}
	return !f.solid[grid.Point{X: x, Y: y}]
}

func (f *terrainFixture) DoorTiles() []grid.Point { return f.doors }

func (f *terrainFixture) wall(x, y int) { f.solid[grid.Point{X: x, Y: y}] = true }

func (f *terrainFixture) wallColumn(x int) {
	for y := 0; y < f.rows; y++ {
		f.wall(x, y)
	}
}

// door carves the tile open and registers it as a door.
func (f *terrainFixture) door(x, y int) {
	delete(f.solid, grid.Point{X: x, Y: y})
	f.doors = append(f.doors, grid.Point{X: x, Y: y})
}

// sealDoor makes a door tile solid while leaving it on the door list, the
// shape a locked door takes in the world model.
func (f *terrainFixture) sealDoor(x, y int) { f.wall(x, y) }

func buildFixture(t *testing.T, f *terrainFixture, chunkSize int) *Snapshot {
	t.Helper()
	next := grid.RegionID(0)
	b := NewBuilder(chunkSize, func() grid.RegionID {
		id := next
		next++
		return id
	})
	snap := b.Build(f)
	if err := snap.Validate(f); err != nil {
		t.Fatalf("snapshot failed validation: %v", err)
	}
	return snap
}

func TestBuildOpenGridSingleRegion(t *testing.T) {
	f := newTerrain(8, 8)
	snap := buildFixture(t, f, 20)

	if got := snap.RegionCount(); got != 1 {
		t.Fatalf("expected 1 region, got %d", got)
	}
	if got := snap.LinkCount(); got != 0 {
		t.Fatalf("expected 0 links, got %d", got)
	}
	first, _ := snap.RegionAt(grid.Point{X: 0, Y: 0})
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			id, ok := snap.RegionAt(grid.Point{X: x, Y: y})
			if !ok || id != first {
				t.Fatalf("expected tile (%d,%d) in region %d, got %d", x, y, first, id)
			}
		}
	}
}

func TestBuildAllSolidYieldsNoRegions(t *testing.T) {
	f := newTerrain(6, 6)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			f.wall(x, y)
		}
	}
	snap := buildFixture(t, f, 20)

	if got := snap.RegionCount(); got != 0 {
		t.Fatalf("expected 0 regions, got %d", got)
	}
	if got := snap.LinkCount(); got != 0 {
		t.Fatalf("expected 0 links, got %d", got)
	}
	if got := snap.RoomCount(); got != 0 {
		t.Fatalf("expected 0 rooms, got %d", got)
	}
}

func TestWallSplitsGridInTwo(t *testing.T) {
	f := newTerrain(40, 40)
	f.wallColumn(20)
	snap := buildFixture(t, f, 40)

	if got := snap.RegionCount(); got != 2 {
		t.Fatalf("expected 2 regions, got %d", got)
	}
	if got := snap.LinkCount(); got != 0 {
		t.Fatalf("expected 0 links across a solid wall, got %d", got)
	}
	left, _ := snap.RegionAt(grid.Point{X: 5, Y: 5})
	right, _ := snap.RegionAt(grid.Point{X: 35, Y: 5})
	if left == right {
		t.Fatalf("expected opposite sides of the wall in different regions, both got %d", left)
	}
	if snap.Reachable(grid.Point{X: 5, Y: 5}, grid.Point{X: 35, Y: 5}) {
		t.Fatalf("expected sides of a solid wall to be unreachable from each other")
	}
	if !snap.Reachable(grid.Point{X: 5, Y: 5}, grid.Point{X: 5, Y: 35}) {
		t.Fatalf("expected tiles on the same side to be reachable")
	}
}

func TestDoorBecomesSingletonAndJoinsSides(t *testing.T) {
	f := newTerrain(40, 40)
	f.wallColumn(20)
	f.door(20, 20)
	snap := buildFixture(t, f, 40)

	if got := snap.RegionCount(); got != 3 {
		t.Fatalf("expected 3 regions, got %d", got)
	}
	doorID, ok := snap.RegionAt(grid.Point{X: 20, Y: 20})
	if !ok {
		t.Fatalf("expected door tile to own a region")
	}
	doorReg, _ := snap.Region(doorID)
	if !doorReg.IsDoor {
		t.Fatalf("expected region %d to be a door region", doorID)
	}
	if got := doorReg.Size(); got != 1 {
		t.Fatalf("expected door region to hold 1 tile, got %d", got)
	}
	if got := snap.LinkCount(); got != 2 {
		t.Fatalf("expected 2 links through the doorway, got %d", got)
	}
	if got := len(snap.Neighbors(doorID)); got != 2 {
		t.Fatalf("expected door region to touch 2 regions, got %d", got)
	}
	if !snap.Reachable(grid.Point{X: 5, Y: 5}, grid.Point{X: 35, Y: 35}) {
		t.Fatalf("expected sides joined by an open door to be reachable")
	}
}

func TestChunkBoundarySplitsOpenAreaWithLinks(t *testing.T) {
	f := newTerrain(40, 10)
	snap := buildFixture(t, f, 20)

	if got := snap.RegionCount(); got != 2 {
		t.Fatalf("expected one region per chunk, got %d", got)
	}
	left, _ := snap.RegionAt(grid.Point{X: 19, Y: 0})
	right, _ := snap.RegionAt(grid.Point{X: 20, Y: 0})
	if left == right {
		t.Fatalf("expected chunk boundary to split regions, both got %d", left)
	}
	// One crossing per boundary row.
	if got := snap.LinkCount(); got != 10 {
		t.Fatalf("expected 10 links along the chunk seam, got %d", got)
	}
	if got := len(snap.Neighbors(left)); got != 1 || snap.Neighbors(left)[0] != right {
		t.Fatalf("expected %d adjacent only to %d, got %v", left, right, snap.Neighbors(left))
	}
	if !snap.Reachable(grid.Point{X: 0, Y: 0}, grid.Point{X: 39, Y: 9}) {
		t.Fatalf("expected chunk-split open area to stay reachable")
	}
}

func TestIsolatedDoorHasNoLinks(t *testing.T) {
	f := newTerrain(5, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			f.wall(x, y)
		}
	}
	f.door(2, 2)
	snap := buildFixture(t, f, 20)

	if got := snap.RegionCount(); got != 1 {
		t.Fatalf("expected the lone door region, got %d regions", got)
	}
	id, ok := snap.RegionAt(grid.Point{X: 2, Y: 2})
	if !ok {
		t.Fatalf("expected walled-in door tile to own a region")
	}
	if got := snap.LinkCount(); got != 0 {
		t.Fatalf("expected isolated door to have 0 links, got %d", got)
	}
	if got := len(snap.Neighbors(id)); got != 0 {
		t.Fatalf("expected isolated door to have no neighbors, got %d", got)
	}
}

func TestSealedDoorTileYieldsNoRegion(t *testing.T) {
	f := newTerrain(5, 1)
	f.door(2, 0)
	f.sealDoor(2, 0)
	snap := buildFixture(t, f, 20)

	if _, ok := snap.RegionAt(grid.Point{X: 2, Y: 0}); ok {
		t.Fatalf("expected sealed door tile to own no region")
	}
	if got := snap.RegionCount(); got != 2 {
		t.Fatalf("expected 2 regions beside the sealed door, got %d", got)
	}
	if snap.Reachable(grid.Point{X: 0, Y: 0}, grid.Point{X: 4, Y: 0}) {
		t.Fatalf("expected sealed door to block reachability")
	}
}

func TestDuplicateDoorEntriesClaimOnce(t *testing.T) {
	f := newTerrain(5, 1)
	f.door(2, 0)
	f.door(2, 0)
	snap := buildFixture(t, f, 20)

	if got := snap.RegionCount(); got != 3 {
		t.Fatalf("expected 3 regions, got %d", got)
	}
	if got := snap.Stats().DoorRegions; got != 1 {
		t.Fatalf("expected 1 door region, got %d", got)
	}
}

func TestOffGridDoorIgnored(t *testing.T) {
	f := newTerrain(4, 4)
	f.doors = append(f.doors, grid.Point{X: 100, Y: 100}, grid.Point{X: -1, Y: 0})
	snap := buildFixture(t, f, 20)

	if got := snap.RegionCount(); got != 1 {
		t.Fatalf("expected 1 region, got %d", got)
	}
	if got := snap.Stats().DoorRegions; got != 0 {
		t.Fatalf("expected 0 door regions, got %d", got)
	}
}

func TestCorridorWithDoorSplitsInThree(t *testing.T) {
	f := newTerrain(5, 3)
	for x := 0; x < 5; x++ {
		f.wall(x, 0)
		f.wall(x, 2)
	}
	f.door(2, 1)
	snap := buildFixture(t, f, 20)

	if got := snap.RegionCount(); got != 3 {
		t.Fatalf("expected 3 regions, got %d", got)
	}
	if got := snap.LinkCount(); got != 2 {
		t.Fatalf("expected 2 links, got %d", got)
	}
	left, _ := snap.RegionAt(grid.Point{X: 0, Y: 1})
	right, _ := snap.RegionAt(grid.Point{X: 4, Y: 1})
	if left == right {
		t.Fatalf("expected corridor ends in different regions, both got %d", left)
	}
	if !snap.Reachable(grid.Point{X: 0, Y: 1}, grid.Point{X: 4, Y: 1}) {
		t.Fatalf("expected corridor ends reachable through the door")
	}
}

func TestRegionBBoxCoversTiles(t *testing.T) {
	f := newTerrain(10, 10)
	f.wallColumn(4)
	snap := buildFixture(t, f, 20)

	id, _ := snap.RegionAt(grid.Point{X: 0, Y: 0})
	reg, _ := snap.Region(id)
	want := grid.Rect{MinX: 0, MinY: 0, MaxX: 3, MaxY: 9}
	if reg.BBox != want {
		t.Fatalf("expected bbox %+v, got %+v", want, reg.BBox)
	}
}
