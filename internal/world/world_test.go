package world

import (
	"testing"

	"github.com/google/uuid"

	"github.com/karstvale/tile-region-engine/internal/grid"
	"github.com/karstvale/tile-region-engine/internal/objects"
	"github.com/karstvale/tile-region-engine/internal/region"
)

var (
	_ region.Terrain = (*World)(nil)
	_ objects.Object = (*Object)(nil)
)

func TestNewWorldAllPassable(t *testing.T) {
	w := New(8, 6)

	cols, rows := w.Size()
	if cols != 8 || rows != 6 {
		t.Fatalf("Size() = %dx%d, want 8x6", cols, rows)
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if !w.IsPassable(x, y) {
				t.Fatalf("fresh world tile (%d,%d) not passable", x, y)
			}
		}
	}
	if w.IsPassable(-1, 0) || w.IsPassable(8, 0) || w.IsPassable(0, 6) {
		t.Error("out-of-bounds tiles must read impassable")
	}
}

func TestBuildWallBlocksAndClips(t *testing.T) {
	w := New(10, 10)

	got := w.BuildWall(grid.Rect{MinX: -5, MinY: -5, MaxX: 2, MaxY: 2})
	want := grid.Rect{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2}
	if got != want {
		t.Fatalf("BuildWall returned %+v, want clipped %+v", got, want)
	}
	if w.IsPassable(1, 1) {
		t.Error("walled tile still passable")
	}
	if !w.IsSolid(0, 0) || w.IsSolid(3, 3) {
		t.Error("solid flags wrong after BuildWall")
	}

	if r := w.BuildWall(grid.Rect{MinX: 20, MinY: 20, MaxX: 30, MaxY: 30}); !r.Empty() {
		t.Errorf("off-grid BuildWall returned non-empty rect %+v", r)
	}

	got = w.RemoveWall(grid.Rect{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2})
	if got != want {
		t.Fatalf("RemoveWall returned %+v, want %+v", got, want)
	}
	if !w.IsPassable(1, 1) {
		t.Error("tile still blocked after RemoveWall")
	}
}

func TestBuildWallRemovesDoors(t *testing.T) {
	w := New(10, 10)
	p := grid.Point{X: 4, Y: 4}

	w.PlaceDoor(p)
	w.BuildWall(grid.Rect{MinX: 3, MinY: 3, MaxX: 5, MaxY: 5})

	if _, ok := w.DoorAt(p); ok {
		t.Error("door survived a wall built over it")
	}
	if w.IsPassable(p.X, p.Y) {
		t.Error("walled-over door tile still passable")
	}
}

func TestDoorLifecycle(t *testing.T) {
	w := New(10, 10)
	p := grid.Point{X: 5, Y: 5}
	w.BuildWall(grid.Rect{MinX: 5, MinY: 0, MaxX: 5, MaxY: 9})

	if r := w.PlaceDoor(p); r != grid.RectAround(p) {
		t.Fatalf("PlaceDoor returned %+v", r)
	}
	if !w.IsPassable(p.X, p.Y) {
		t.Error("fresh door not passable")
	}
	if open, ok := w.DoorAt(p); !ok || !open {
		t.Errorf("DoorAt = (%v,%v), want open door", open, ok)
	}

	w.SetDoorOpen(p, false)
	if w.IsPassable(p.X, p.Y) {
		t.Error("sealed door still passable")
	}
	if len(w.DoorTiles()) != 1 {
		t.Error("sealed door missing from DoorTiles")
	}

	w.SetDoorOpen(p, true)
	if !w.IsPassable(p.X, p.Y) {
		t.Error("reopened door not passable")
	}

	if r := w.RemoveDoor(p); r != grid.RectAround(p) {
		t.Fatalf("RemoveDoor returned %+v", r)
	}
	if len(w.DoorTiles()) != 0 {
		t.Error("removed door still listed")
	}
	if !w.IsPassable(p.X, p.Y) {
		t.Error("removed door should leave floor behind")
	}

	if r := w.SetDoorOpen(grid.Point{X: 1, Y: 1}, false); !r.Empty() {
		t.Errorf("SetDoorOpen without a door returned %+v", r)
	}
	if r := w.RemoveDoor(grid.Point{X: 1, Y: 1}); !r.Empty() {
		t.Errorf("RemoveDoor without a door returned %+v", r)
	}
	if r := w.PlaceDoor(grid.Point{X: -1, Y: 0}); !r.Empty() {
		t.Errorf("off-grid PlaceDoor returned %+v", r)
	}
}

func TestDoorTilesRasterOrder(t *testing.T) {
	w := New(10, 10)
	w.PlaceDoor(grid.Point{X: 7, Y: 3})
	w.PlaceDoor(grid.Point{X: 2, Y: 3})
	w.PlaceDoor(grid.Point{X: 5, Y: 1})

	got := w.DoorTiles()
	want := []grid.Point{{X: 5, Y: 1}, {X: 2, Y: 3}, {X: 7, Y: 3}}
	if len(got) != len(want) {
		t.Fatalf("DoorTiles returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DoorTiles[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestObjectLifecycle(t *testing.T) {
	w := New(10, 10)

	tree, ok := w.PlaceObject(KindTree, grid.Point{X: 2, Y: 3})
	if !ok {
		t.Fatal("PlaceObject failed in bounds")
	}
	if tree.ObjectKind() != KindTree || tree.Position() != (grid.Point{X: 2, Y: 3}) {
		t.Errorf("object fields wrong: kind=%s pos=%+v", tree.ObjectKind(), tree.Position())
	}

	if _, ok := w.PlaceObject(KindOre, grid.Point{X: 10, Y: 0}); ok {
		t.Error("PlaceObject off-grid should fail")
	}

	ore, _ := w.PlaceObject(KindOre, grid.Point{X: 4, Y: 4})

	if got, ok := w.Object(tree.ObjectID()); !ok || got != tree {
		t.Error("Object lookup failed")
	}
	if len(w.Objects()) != 2 {
		t.Fatalf("Objects() = %d entries, want 2", len(w.Objects()))
	}

	removed, ok := w.RemoveObject(ore.ObjectID())
	if !ok || removed != ore {
		t.Error("RemoveObject did not return the removed object")
	}
	if _, ok := w.RemoveObject(uuid.New()); ok {
		t.Error("RemoveObject of unknown id should fail")
	}
	if len(w.Objects()) != 1 {
		t.Error("object count wrong after removal")
	}
}

func TestRestoreObjectKeepsID(t *testing.T) {
	w := New(10, 10)
	id := uuid.New()

	obj, ok := w.RestoreObject(id, KindOre, grid.Point{X: 1, Y: 1})
	if !ok {
		t.Fatal("RestoreObject failed in bounds")
	}
	if obj.ObjectID() != id {
		t.Errorf("restored object id = %s, want %s", obj.ObjectID(), id)
	}
}
