package objects

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/karstvale/tile-region-engine/internal/grid"
)

// Predicate filters candidate objects. A nil predicate accepts everything.
type Predicate func(Object) bool

// FindNearest returns the closest matching object reachable from origin,
// by Euclidean distance. The search breadth-first expands the region graph
// outward from origin's region, scanning each region's bucket as it is
// visited. Once any match is held, regions whose bounding box cannot
// contain anything closer are pruned instead of expanded, which keeps the
// walk from flooding the whole component for nearby hits. kind filters by
// object kind; empty kind matches all kinds.
//
// Fails closed: an origin on a solid or off-grid tile finds nothing, and
// objects in regions not linked to origin's are never returned no matter
// how geometrically close they are.
func (t *Tracker) FindNearest(origin grid.Point, kind string, pred Predicate) (Object, bool) {
	snap := t.src.Snapshot()
	start, ok := snap.RegionAt(origin)
	if !ok {
		return nil, false
	}

	var best Object
	bestD2 := 0.0

	visited := mapset.New[grid.RegionID]()
	visited.Put(start)
	queue := []grid.RegionID{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		reg, ok := snap.Region(cur)
		if !ok {
			continue
		}
		if best != nil && bboxMinDistSq(origin, reg.BBox) > bestD2 {
			continue
		}

		for _, obj := range t.byRegion[cur] {
			if kind != "" && obj.ObjectKind() != kind {
				continue
			}
			if pred != nil && !pred(obj) {
				continue
			}
			d2 := distSq(origin, obj.Position())
			if best == nil || d2 < bestD2 || (d2 == bestD2 && objectBefore(obj, best)) {
				best = obj
				bestD2 = d2
			}
		}

		for _, nb := range snap.Neighbors(cur) {
			if visited.Has(nb) {
				continue
			}
			visited.Put(nb)
			queue = append(queue, nb)
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

func distSq(a, b grid.Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return dx*dx + dy*dy
}

// bboxMinDistSq returns the squared distance from p to the nearest tile of
// the box, zero when p lies inside it.
func bboxMinDistSq(p grid.Point, box grid.Rect) float64 {
	dx := 0
	if p.X < box.MinX {
		dx = box.MinX - p.X
	} else if p.X > box.MaxX {
		dx = p.X - box.MaxX
	}
	dy := 0
	if p.Y < box.MinY {
		dy = box.MinY - p.Y
	} else if p.Y > box.MaxY {
		dy = p.Y - box.MaxY
	}
	return float64(dx*dx + dy*dy)
}

// objectBefore breaks exact distance ties by id so results do not depend
// on map iteration order.
func objectBefore(a, b Object) bool {
	return a.ObjectID().String() < b.ObjectID().String()
}
