// Package world is the demo server's mutable tile world: a solid grid,
// doors with open state, and objects pinned to tiles. Edits return the
// rectangle they touched so the host can rebuild exactly that area.
// The world itself is unsynchronized; the host serializes access.
package world

import (
	"bytes"
	"sort"

	"github.com/google/uuid"

	"github.com/karstvale/tile-region-engine/internal/grid"
)

// noEdit is the rectangle returned by edits that changed nothing.
var noEdit = grid.Rect{MaxX: -1, MaxY: -1}

// Door is a door tile and its open state, as persisted.
type Door struct {
	Pos  grid.Point
	Open bool
}

// Object is a world entity pinned to a tile.
type Object struct {
	id   uuid.UUID
	kind string
	pos  grid.Point
}

func (o *Object) ObjectID() uuid.UUID  { return o.id }
func (o *Object) ObjectKind() string   { return o.kind }
func (o *Object) Position() grid.Point { return o.pos }

// World holds the tile grid state.
type World struct {
	cols, rows int
	solid      []bool
	doors      map[grid.Point]bool
	objects    map[uuid.UUID]*Object
}

// New returns an all-floor world of the given dimensions.
func New(cols, rows int) *World {
	return &World{
		cols:    cols,
		rows:    rows,
		solid:   make([]bool, cols*rows),
		doors:   make(map[grid.Point]bool),
		objects: make(map[uuid.UUID]*Object),
	}
}

// Size returns the grid dimensions in tiles.
func (w *World) Size() (int, int) { return w.cols, w.rows }

func (w *World) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < w.cols && y < w.rows
}

func (w *World) idx(x, y int) int { return y*w.cols + x }

// IsPassable reports whether the tile can be crossed. Sealed doors and
// everything off-grid are impassable.
func (w *World) IsPassable(x, y int) bool {
	if !w.InBounds(x, y) {
		return false
	}
	if open, ok := w.doors[grid.Point{X: x, Y: y}]; ok {
		return open
	}
	return !w.solid[w.idx(x, y)]
}

// IsSolid reports whether the tile is wall or rock. Doors are not solid.
func (w *World) IsSolid(x, y int) bool {
	return w.InBounds(x, y) && w.solid[w.idx(x, y)]
}

// DoorTiles returns every door coordinate, sealed doors included, in
// raster order.
func (w *World) DoorTiles() []grid.Point {
	out := make([]grid.Point, 0, len(w.doors))
	for p := range w.doors {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// DoorAt returns a door's open state. ok is false when no door exists at p.
func (w *World) DoorAt(p grid.Point) (open, ok bool) {
	open, ok = w.doors[p]
	return open, ok
}

// BuildWall turns every tile of the rectangle solid, removing any doors
// inside it. Returns the clipped area actually edited.
func (w *World) BuildWall(r grid.Rect) grid.Rect {
	r = r.Clip(w.cols, w.rows)
	if r.Empty() {
		return noEdit
	}
	for y := r.MinY; y <= r.MaxY; y++ {
		for x := r.MinX; x <= r.MaxX; x++ {
			w.solid[w.idx(x, y)] = true
			delete(w.doors, grid.Point{X: x, Y: y})
		}
	}
	return r
}

// RemoveWall turns every tile of the rectangle back to floor. Doors are
// left alone. Returns the clipped area actually edited.
func (w *World) RemoveWall(r grid.Rect) grid.Rect {
	r = r.Clip(w.cols, w.rows)
	if r.Empty() {
		return noEdit
	}
	for y := r.MinY; y <= r.MaxY; y++ {
		for x := r.MinX; x <= r.MaxX; x++ {
			w.solid[w.idx(x, y)] = false
		}
	}
	return r
}

// PlaceDoor carves an open door into the tile, clearing any solid there.
func (w *World) PlaceDoor(p grid.Point) grid.Rect {
	if !w.InBounds(p.X, p.Y) {
		return noEdit
	}
	w.solid[w.idx(p.X, p.Y)] = false
	w.doors[p] = true
	return grid.RectAround(p)
}

// RemoveDoor deletes the door, leaving floor behind. No-op without a door.
func (w *World) RemoveDoor(p grid.Point) grid.Rect {
	if _, ok := w.doors[p]; !ok {
		return noEdit
	}
	delete(w.doors, p)
	return grid.RectAround(p)
}

// SetDoorOpen opens or seals an existing door. No-op without a door.
func (w *World) SetDoorOpen(p grid.Point, open bool) grid.Rect {
	if _, ok := w.doors[p]; !ok {
		return noEdit
	}
	w.doors[p] = open
	return grid.RectAround(p)
}

// Doors returns every door with its state, in raster order.
func (w *World) Doors() []Door {
	out := make([]Door, 0, len(w.doors))
	for _, p := range w.DoorTiles() {
		out = append(out, Door{Pos: p, Open: w.doors[p]})
	}
	return out
}

// Walls returns every solid coordinate in raster order.
func (w *World) Walls() []grid.Point {
	var out []grid.Point
	for y := 0; y < w.rows; y++ {
		for x := 0; x < w.cols; x++ {
			if w.solid[w.idx(x, y)] {
				out = append(out, grid.Point{X: x, Y: y})
			}
		}
	}
	return out
}

// PlaceObject creates an object of the kind at p. Objects may sit on
// solid tiles; the tracker quarantines them until the tile has a region.
// ok is false only when p is off-grid.
func (w *World) PlaceObject(kind string, p grid.Point) (*Object, bool) {
	return w.RestoreObject(uuid.New(), kind, p)
}

// RestoreObject re-creates an object with a known id, as loaded from the
// store.
func (w *World) RestoreObject(id uuid.UUID, kind string, p grid.Point) (*Object, bool) {
	if !w.InBounds(p.X, p.Y) {
		return nil, false
	}
	obj := &Object{id: id, kind: kind, pos: p}
	w.objects[id] = obj
	return obj, true
}

// RemoveObject deletes the object, returning it for event emission.
func (w *World) RemoveObject(id uuid.UUID) (*Object, bool) {
	obj, ok := w.objects[id]
	if !ok {
		return nil, false
	}
	delete(w.objects, id)
	return obj, true
}

// Object returns the tracked object with the id.
func (w *World) Object(id uuid.UUID) (*Object, bool) {
	obj, ok := w.objects[id]
	return obj, ok
}

// Objects returns every object ordered by id, so saves and iteration
// are deterministic.
func (w *World) Objects() []*Object {
	out := make([]*Object, 0, len(w.objects))
	for _, obj := range w.objects {
		out = append(out, obj)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].id[:], out[j].id[:]) < 0
	})
	return out
}
