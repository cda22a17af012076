package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/karstvale/tile-region-engine/internal/grid"
	"github.com/karstvale/tile-region-engine/internal/objects"
	"github.com/karstvale/tile-region-engine/internal/pathgate"
	"github.com/karstvale/tile-region-engine/internal/protocol"
	"github.com/karstvale/tile-region-engine/internal/region"
	"github.com/karstvale/tile-region-engine/internal/store"
	"github.com/karstvale/tile-region-engine/internal/world"
)

// Host owns the mutable world and serializes every mutation against
// region rebuilds. Reachability and region lookups run lock-free against
// the manager's current snapshot; anything touching the world or the
// object tracker takes the host lock.
type Host struct {
	mu          sync.Mutex
	world       *world.World
	manager     *region.Manager
	tracker     *objects.Tracker
	gate        *pathgate.Gate
	db          *store.DB
	broadcaster Broadcaster
	logger      Logger

	// Set around a manager rebuild so the listener callback can stamp
	// the broadcast; both only move under mu.
	rebuildCause string
	rebuildStart time.Time
}

func NewHost(w *world.World, manager *region.Manager, tracker *objects.Tracker, gate *pathgate.Gate, db *store.DB, broadcaster Broadcaster, logger Logger) *Host {
	return &Host{
		world:       w,
		manager:     manager,
		tracker:     tracker,
		gate:        gate,
		db:          db,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Initialize seeds the tracker with the world's objects and runs the
// first full decomposition. Call once after SetListener.
func (h *Host) Initialize() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, obj := range h.world.Objects() {
		h.tracker.Add(obj)
	}
	h.rebuild("initial", grid.Rect{}, true)
}

// RegionsRebuilt rebuckets the object tracker against the fresh snapshot,
// then tells clients. Runs synchronously inside a manager rebuild, so the
// tracker is never observably stale. Implements region.RebuildListener.
func (h *Host) RegionsRebuilt(snap *region.Snapshot, area grid.Rect) {
	h.tracker.RegionsRebuilt(snap, area)
	h.broadcaster.BroadcastEvent("regionsRebuilt", protocol.RegionsRebuilt{
		Cause:      h.rebuildCause,
		Area:       rectLite(area),
		Stats:      statsLite(snap.Stats()),
		TookMicros: time.Since(h.rebuildStart).Microseconds(),
	})
}

// rebuild runs a manager rebuild with cause bookkeeping. Callers hold mu.
func (h *Host) rebuild(cause string, area grid.Rect, full bool) {
	h.rebuildCause = cause
	h.rebuildStart = time.Now()
	if full {
		h.manager.RebuildAll()
	} else {
		h.manager.RebuildArea(area)
	}
	h.rebuildCause = ""
}

// EditTerrain applies one terrain operation and rebuilds the edited area.
// Door operations use the rectangle's min corner as the door tile.
func (h *Host) EditTerrain(op string, r grid.Rect) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	p := grid.Point{X: r.MinX, Y: r.MinY}
	var edited grid.Rect
	switch op {
	case protocol.OpWall:
		edited = h.world.BuildWall(r)
	case protocol.OpClear:
		edited = h.world.RemoveWall(r)
	case protocol.OpDoor:
		edited = h.world.PlaceDoor(p)
	case protocol.OpRemoveDoor:
		edited = h.world.RemoveDoor(p)
	case protocol.OpOpenDoor:
		edited = h.world.SetDoorOpen(p, true)
	case protocol.OpSealDoor:
		edited = h.world.SetDoorOpen(p, false)
	default:
		return fmt.Errorf("unknown terrain op %q", op)
	}
	if edited.Empty() {
		return fmt.Errorf("terrain op %q touched nothing at %+v", op, r)
	}

	h.logger.Debugf("terrain %s area=%+v", op, edited)
	h.broadcaster.BroadcastEvent("terrainEdited", protocol.TerrainEdited{Op: op, Area: rectLite(edited)})
	h.rebuild("edit", edited, false)
	return nil
}

// RebuildAll forces a full redecomposition.
func (h *Host) RebuildAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rebuild("manual", grid.Rect{}, true)
}

// PlaceObject creates and tracks an object of the kind at p.
func (h *Host) PlaceObject(kind string, p grid.Point) (*world.Object, error) {
	if kind == "" {
		return nil, fmt.Errorf("object kind must not be empty")
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	obj, ok := h.world.PlaceObject(kind, p)
	if !ok {
		return nil, fmt.Errorf("position %+v is outside the grid", p)
	}
	h.tracker.Add(obj)
	h.broadcaster.BroadcastEvent("objectPlaced", protocol.ObjectPlaced{Object: objectLite(obj)})
	return obj, nil
}

// RemoveObject deletes the object everywhere.
func (h *Host) RemoveObject(id uuid.UUID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	obj, ok := h.world.RemoveObject(id)
	if !ok {
		return fmt.Errorf("no object with id %s", id)
	}
	h.tracker.Remove(obj.ObjectID())
	h.broadcaster.BroadcastEvent("objectRemoved", protocol.ObjectRemoved{ID: id.String()})
	return nil
}

// FindNearest returns the closest reachable object of the kind.
func (h *Host) FindNearest(origin grid.Point, kind string) (objects.Object, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tracker.FindNearest(origin, kind, nil)
}

// Reachable reports region-graph connectivity between two tiles.
func (h *Host) Reachable(a, b grid.Point) bool {
	return h.manager.IsReachable(a, b)
}

// Path runs the gated tile search between two tiles.
func (h *Host) Path(a, b grid.Point) ([]grid.Point, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.gate.FindPath(a, b)
}

// Snapshot returns the current region decomposition.
func (h *Host) Snapshot() *region.Snapshot {
	return h.manager.Snapshot()
}

// Stats summarizes the current decomposition.
func (h *Host) Stats() region.Stats {
	return h.manager.Stats()
}

// GateCounters returns how many path queries the gate refused and passed.
func (h *Host) GateCounters() (refused, passed uint64) {
	return h.gate.Refused(), h.gate.Passed()
}

// ObjectCounts tallies tracked objects by kind.
func (h *Host) ObjectCounts() map[string]int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tracker.CountByKind()
}

// TrackerStats returns tracked and quarantined object counts.
func (h *Host) TrackerStats() (tracked, quarantined int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tracker.Len(), h.tracker.Quarantined()
}

// Doors lists every door with its open state.
func (h *Host) Doors() []world.Door {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.world.Doors()
}

// Objects lists every world object.
func (h *Host) Objects() []*world.Object {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.world.Objects()
}

// MapText renders the world as map file lines.
func (h *Host) MapText() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.world.FormatMap()
}

// Persist writes the world to the store.
func (h *Host) Persist() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.db.SaveWorld(h.world)
}

func rectLite(r grid.Rect) protocol.RectLite {
	return protocol.RectLite{MinX: r.MinX, MinY: r.MinY, MaxX: r.MaxX, MaxY: r.MaxY}
}

func statsLite(s region.Stats) protocol.StatsLite {
	return protocol.StatsLite{
		Cols:        s.Cols,
		Rows:        s.Rows,
		ChunkSize:   s.ChunkSize,
		Regions:     s.Regions,
		DoorRegions: s.DoorRegions,
		Links:       s.Links,
		Rooms:       s.Rooms,
		Generation:  s.Generation,
	}
}

func objectLite(obj objects.Object) protocol.ObjectLite {
	p := obj.Position()
	return protocol.ObjectLite{
		ID:   obj.ObjectID().String(),
		Kind: obj.ObjectKind(),
		X:    p.X,
		Y:    p.Y,
	}
}
