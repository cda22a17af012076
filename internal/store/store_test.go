package store

import (
	"path/filepath"
	"testing"

	"github.com/karstvale/tile-region-engine/internal/grid"
	"github.com/karstvale/tile-region-engine/internal/world"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestHasWorldBeforeAndAfterSave(t *testing.T) {
	db := openTestDB(t)

	if db.HasWorld() {
		t.Fatal("fresh database claims to hold a world")
	}

	if err := db.SaveWorld(world.New(4, 4)); err != nil {
		t.Fatalf("save world: %v", err)
	}

	if !db.HasWorld() {
		t.Fatal("saved world not detected")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)

	w := world.New(20, 15)
	w.BuildWall(grid.Rect{MinX: 5, MinY: 5, MaxX: 8, MaxY: 5})
	openDoor := grid.Point{X: 6, Y: 5}
	sealedDoor := grid.Point{X: 8, Y: 5}
	w.PlaceDoor(openDoor)
	w.PlaceDoor(sealedDoor)
	w.SetDoorOpen(sealedDoor, false)
	tree, _ := w.PlaceObject(world.KindTree, grid.Point{X: 2, Y: 3})
	ore, _ := w.PlaceObject(world.KindOre, grid.Point{X: 19, Y: 14})

	if err := db.SaveWorld(w); err != nil {
		t.Fatalf("save world: %v", err)
	}

	got, err := db.LoadWorld()
	if err != nil {
		t.Fatalf("load world: %v", err)
	}

	cols, rows := got.Size()
	if cols != 20 || rows != 15 {
		t.Fatalf("loaded size %dx%d, want 20x15", cols, rows)
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if got.IsSolid(x, y) != w.IsSolid(x, y) {
				t.Fatalf("solid mismatch at (%d,%d)", x, y)
			}
			if got.IsPassable(x, y) != w.IsPassable(x, y) {
				t.Fatalf("passability mismatch at (%d,%d)", x, y)
			}
		}
	}

	if open, ok := got.DoorAt(openDoor); !ok || !open {
		t.Errorf("open door at %+v loaded as (%v,%v)", openDoor, open, ok)
	}
	if open, ok := got.DoorAt(sealedDoor); !ok || open {
		t.Errorf("sealed door at %+v loaded as (%v,%v)", sealedDoor, open, ok)
	}

	objs := got.Objects()
	if len(objs) != 2 {
		t.Fatalf("loaded %d objects, want 2", len(objs))
	}
	loadedTree, ok := got.Object(tree.ObjectID())
	if !ok {
		t.Fatal("tree lost in round trip")
	}
	if loadedTree.ObjectKind() != world.KindTree || loadedTree.Position() != tree.Position() {
		t.Errorf("tree loaded as kind=%s pos=%+v", loadedTree.ObjectKind(), loadedTree.Position())
	}
	if _, ok := got.Object(ore.ObjectID()); !ok {
		t.Fatal("ore lost in round trip")
	}
}

func TestSaveReplacesPreviousSave(t *testing.T) {
	db := openTestDB(t)

	first := world.New(10, 10)
	first.BuildWall(grid.Rect{MinX: 0, MinY: 0, MaxX: 9, MaxY: 0})
	first.PlaceObject(world.KindTree, grid.Point{X: 1, Y: 1})
	if err := db.SaveWorld(first); err != nil {
		t.Fatalf("first save: %v", err)
	}

	second := world.New(10, 10)
	second.PlaceObject(world.KindOre, grid.Point{X: 2, Y: 2})
	if err := db.SaveWorld(second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := db.LoadWorld()
	if err != nil {
		t.Fatalf("load world: %v", err)
	}

	if got.IsSolid(0, 0) {
		t.Error("wall from the first save survived the second")
	}
	objs := got.Objects()
	if len(objs) != 1 {
		t.Fatalf("loaded %d objects, want 1", len(objs))
	}
	if objs[0].ObjectKind() != world.KindOre {
		t.Errorf("loaded object kind %s, want %s", objs[0].ObjectKind(), world.KindOre)
	}
}

func TestMetaRoundTrip(t *testing.T) {
	db := openTestDB(t)

	if err := db.SaveMeta("seed", "1337"); err != nil {
		t.Fatalf("save meta: %v", err)
	}
	got, err := db.GetMeta("seed")
	if err != nil {
		t.Fatalf("get meta: %v", err)
	}
	if got != "1337" {
		t.Errorf("meta seed = %q, want 1337", got)
	}

	if _, err := db.GetMeta("missing"); err == nil {
		t.Error("expected error reading missing meta key")
	}
}
