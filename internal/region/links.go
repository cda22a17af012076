package region

import (
	"sort"

	"github.com/karstvale/tile-region-engine/internal/grid"
)

// detectLinks scans every region's tiles for 4-way neighbors owned by a
// different region. Each crossing is keyed by its canonical tile pair, so
// the pair is recorded exactly once even though both sides walk it. The
// neighbor map carries one directed entry per side of each adjacent region
// pair for O(1) lookup during graph walks.
func detectLinks(ix *grid.Index, regions map[grid.RegionID]*Region) (map[uint64]Link, map[grid.RegionID][]grid.RegionID) {
	links := make(map[uint64]Link)
	for _, reg := range regions {
		for _, idx := range reg.Tiles {
			x, y := ix.Coords(idx)
			for _, d := range cardinal {
				nx, ny := x+d[0], y+d[1]
				other := ix.RegionAt(nx, ny)
				if other == grid.NoRegion || other == reg.ID {
					continue
				}
				lo, hi := idx, ix.TileIndex(nx, ny)
				if hi < lo {
					lo, hi = hi, lo
				}
				key := pairKey(lo, hi)
				if _, seen := links[key]; seen {
					continue
				}
				links[key] = Link{
					A:     ix.RegionAtIndex(lo),
					B:     ix.RegionAtIndex(hi),
					TileA: lo,
					TileB: hi,
				}
			}
		}
	}

	neighbors := make(map[grid.RegionID][]grid.RegionID)
	pairSeen := make(map[uint64]struct{}, len(links))
	for _, ln := range links {
		lo, hi := ln.A, ln.B
		if hi < lo {
			lo, hi = hi, lo
		}
		pk := pairKey(int(lo), int(hi))
		if _, ok := pairSeen[pk]; ok {
			continue
		}
		pairSeen[pk] = struct{}{}
		neighbors[lo] = append(neighbors[lo], hi)
		neighbors[hi] = append(neighbors[hi], lo)
	}
	for _, ns := range neighbors {
		sortRegionIDs(ns)
	}
	return links, neighbors
}

// pairKey packs an ordered pair of non-negative ints into one map key.
func pairKey(lo, hi int) uint64 {
	return uint64(uint32(lo))<<32 | uint64(uint32(hi))
}

func sortRegionIDs(ids []grid.RegionID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
