// Package objects buckets world objects by the region that owns their
// tile, so nearest-match searches can walk the region graph instead of
// scanning the whole world.
package objects

import (
	"github.com/google/uuid"

	"github.com/karstvale/tile-region-engine/internal/grid"
	"github.com/karstvale/tile-region-engine/internal/region"
)

// Object is the surface the tracker needs from a world entity.
type Object interface {
	ObjectID() uuid.UUID
	ObjectKind() string
	Position() grid.Point
}

// SnapshotSource yields the current region decomposition. The region
// manager satisfies it.
type SnapshotSource interface {
	Snapshot() *region.Snapshot
}

// Tracker maintains the region-to-objects cache. Objects sitting on a tile
// with no region (solid ground, off-grid) are quarantined: tracked but
// invisible to searches until a rebuild gives their tile a region again.
// Mutations must be serialized by the caller alongside region rebuilds.
type Tracker struct {
	src      SnapshotSource
	objects  map[uuid.UUID]Object
	regionOf map[uuid.UUID]grid.RegionID
	byRegion map[grid.RegionID]map[uuid.UUID]Object
}

func NewTracker(src SnapshotSource) *Tracker {
	return &Tracker{
		src:      src,
		objects:  make(map[uuid.UUID]Object),
		regionOf: make(map[uuid.UUID]grid.RegionID),
		byRegion: make(map[grid.RegionID]map[uuid.UUID]Object),
	}
}

// Add starts tracking the object and buckets it under the region owning
// its tile. Re-adding an id rebuckets it.
func (t *Tracker) Add(obj Object) {
	id := obj.ObjectID()
	if _, ok := t.objects[id]; ok {
		t.unbucket(id)
	}
	t.objects[id] = obj
	t.bucket(obj)
}

// Remove stops tracking the object. Unknown ids are a no-op.
func (t *Tracker) Remove(id uuid.UUID) {
	if _, ok := t.objects[id]; !ok {
		return
	}
	t.unbucket(id)
	delete(t.objects, id)
	delete(t.regionOf, id)
}

// Update rebuckets an object after it moved.
func (t *Tracker) Update(obj Object) { t.Add(obj) }

// Len returns the number of tracked objects, quarantined ones included.
func (t *Tracker) Len() int { return len(t.objects) }

// Quarantined returns how many objects currently sit on regionless tiles.
func (t *Tracker) Quarantined() int {
	n := 0
	for _, rid := range t.regionOf {
		if rid == grid.NoRegion {
			n++
		}
	}
	return n
}

// InRegion returns how many objects are bucketed under the region.
func (t *Tracker) InRegion(id grid.RegionID) int { return len(t.byRegion[id]) }

// CountByKind tallies tracked objects per kind for debug surfaces.
func (t *Tracker) CountByKind() map[string]int {
	out := make(map[string]int)
	for _, obj := range t.objects {
		out[obj.ObjectKind()]++
	}
	return out
}

// RegionsRebuilt rebuckets every tracked object against the new snapshot.
// Regions inside the rebuilt area were destroyed and replaced, so their
// cache entries are stale; a full pass also revives quarantined objects
// whose tile gained a region. Implements region.RebuildListener.
func (t *Tracker) RegionsRebuilt(snap *region.Snapshot, _ grid.Rect) {
	t.byRegion = make(map[grid.RegionID]map[uuid.UUID]Object, len(t.byRegion))
	for id, obj := range t.objects {
		rid, ok := snap.RegionAt(obj.Position())
		if !ok {
			t.regionOf[id] = grid.NoRegion
			continue
		}
		t.regionOf[id] = rid
		t.bucketUnder(rid, obj)
	}
}

func (t *Tracker) bucket(obj Object) {
	rid, ok := t.src.Snapshot().RegionAt(obj.Position())
	if !ok {
		t.regionOf[obj.ObjectID()] = grid.NoRegion
		return
	}
	t.regionOf[obj.ObjectID()] = rid
	t.bucketUnder(rid, obj)
}

func (t *Tracker) bucketUnder(rid grid.RegionID, obj Object) {
	b, ok := t.byRegion[rid]
	if !ok {
		b = make(map[uuid.UUID]Object)
		t.byRegion[rid] = b
	}
	b[obj.ObjectID()] = obj
}

func (t *Tracker) unbucket(id uuid.UUID) {
	rid, ok := t.regionOf[id]
	if !ok || rid == grid.NoRegion {
		return
	}
	if b, ok := t.byRegion[rid]; ok {
		delete(b, id)
		if len(b) == 0 {
			delete(t.byRegion, rid)
		}
	}
}
