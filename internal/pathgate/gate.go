// Package pathgate fronts a tile-level pathfinder with a region-graph
// reachability check, so searches between disconnected areas are refused
// in constant-ish time instead of flooding the whole explorable world.
package pathgate

import (
	"errors"
	"sync/atomic"

	"github.com/karstvale/tile-region-engine/internal/grid"
)

// ErrUnreachable is returned when the region graph already proves the
// endpoints disconnected and the tile search was skipped.
var ErrUnreachable = errors.New("pathgate: endpoints are not connected")

// ReachabilityChecker answers region-graph reachability. The region
// manager satisfies it.
type ReachabilityChecker interface {
	IsReachable(a, b grid.Point) bool
}

// TilePathfinder computes a concrete tile path between two points known
// to be connected. The gate never calls it for disconnected endpoints.
type TilePathfinder interface {
	FindPath(a, b grid.Point) ([]grid.Point, error)
}

// Gate wraps a TilePathfinder behind the reachability pre-check. It
// keeps counters of refused and delegated queries for the debug
// surface; both are atomics because queries may run alongside each
// other even though mutation stays externally serialized.
type Gate struct {
	regions ReachabilityChecker
	tiles   TilePathfinder
	refused atomic.Uint64
	passed  atomic.Uint64
}

// New wires a gate to its reachability source and downstream
// pathfinder.
func New(regions ReachabilityChecker, tiles TilePathfinder) *Gate {
	return &Gate{regions: regions, tiles: tiles}
}

// FindPath returns a tile path from a to b, or ErrUnreachable without
// invoking the tile search when the region graph rules the pair out.
// Solid and off-grid endpoints fail closed through the same check.
func (g *Gate) FindPath(a, b grid.Point) ([]grid.Point, error) {
	if !g.regions.IsReachable(a, b) {
		g.refused.Add(1)
		return nil, ErrUnreachable
	}
	g.passed.Add(1)
	return g.tiles.FindPath(a, b)
}

// Refused returns how many queries were short-circuited by the
// reachability check.
func (g *Gate) Refused() uint64 { return g.refused.Load() }

// Passed returns how many queries were delegated to the tile
// pathfinder.
func (g *Gate) Passed() uint64 { return g.passed.Load() }
