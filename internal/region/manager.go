package region

import (
	"sync/atomic"
	"time"

	"github.com/karstvale/tile-region-engine/internal/grid"
)

// DefaultChunkSize bounds flood-fill scope when Config leaves it unset.
const DefaultChunkSize = 20

// Config tunes a Manager.
type Config struct {
	// ChunkSize is the flood-fill bound in tiles. Zero selects
	// DefaultChunkSize.
	ChunkSize int
	// Log receives rebuild timing and self-check reports. Nil discards
	// them.
	Log Logger
	// SelfCheck re-validates every snapshot against the terrain after a
	// rebuild and logs any violation. Meant for development builds; the
	// rebuild still publishes.
	SelfCheck bool
}

// RebuildListener is notified after a new snapshot is published. area is
// the clipped tile rectangle whose chunks were redecomposed, the full grid
// for a complete rebuild. Caches keyed by region id hang off this hook.
type RebuildListener interface {
	RegionsRebuilt(snap *Snapshot, area grid.Rect)
}

// Manager owns the build loop and the published snapshot. Mutations
// (Initialize, RebuildAll, RebuildArea, SetListener) must be serialized by
// the caller; queries run lock-free against whatever snapshot is current,
// so readers are never blocked by a rebuild in progress.
type Manager struct {
	terrain    Terrain
	chunkSize  int
	log        Logger
	selfCheck  bool
	nextRegion grid.RegionID
	generation uint64
	listener   RebuildListener
	snap       atomic.Pointer[Snapshot]
}

// NewManager wires a manager to its terrain. No decomposition happens
// until Initialize; queries before that fail closed against an empty
// snapshot.
func NewManager(t Terrain, cfg Config) *Manager {
	chunk := cfg.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	log := cfg.Log
	if log == nil {
		log = nopLogger{}
	}
	m := &Manager{
		terrain:   t,
		chunkSize: chunk,
		log:       log,
		selfCheck: cfg.SelfCheck,
	}
	m.snap.Store(newEmptySnapshot(chunk))
	return m
}

// SetListener registers the post-rebuild hook. Pass nil to remove it.
func (m *Manager) SetListener(l RebuildListener) { m.listener = l }

// Snapshot returns the currently published decomposition.
func (m *Manager) Snapshot() *Snapshot { return m.snap.Load() }

// ChunkSize returns the flood-fill bound in tiles.
func (m *Manager) ChunkSize() int { return m.chunkSize }

// Initialize runs the first full decomposition.
func (m *Manager) Initialize() *Snapshot { return m.RebuildAll() }

// RebuildAll decomposes the whole terrain from scratch and publishes the
// result.
func (m *Manager) RebuildAll() *Snapshot {
	start := time.Now()
	snap := m.builder().Build(m.terrain)
	cols, rows := m.terrain.Size()
	area := grid.Rect{MinX: 0, MinY: 0, MaxX: cols - 1, MaxY: rows - 1}
	m.publish(snap, area, time.Since(start), "full")
	return snap
}

// RebuildArea redecomposes the chunks overlapping area and publishes the
// result. The area is clipped to the grid first; an area with no on-grid
// tiles is a no-op. Regions in untouched chunks survive with their ids
// intact. Falls back to a full rebuild if nothing was built yet or the
// terrain changed size since the last build.
func (m *Manager) RebuildArea(area grid.Rect) *Snapshot {
	prev := m.snap.Load()
	cols, rows := m.terrain.Size()
	clipped := area.Clip(cols, rows)
	if clipped.Empty() {
		return prev
	}
	prevCols, prevRows := prev.Size()
	if prevCols != cols || prevRows != rows {
		return m.RebuildAll()
	}

	start := time.Now()
	snap := m.builder().Rebuild(m.terrain, prev, clipped)
	m.publish(snap, clipped, time.Since(start), "area")
	return snap
}

// IsReachable reports whether a walkable path of linked regions joins the
// two tiles in the current snapshot. Solid or out-of-bounds endpoints
// answer false.
func (m *Manager) IsReachable(a, b grid.Point) bool {
	return m.snap.Load().Reachable(a, b)
}

// RegionAt returns the region owning the tile in the current snapshot.
func (m *Manager) RegionAt(p grid.Point) (grid.RegionID, bool) {
	return m.snap.Load().RegionAt(p)
}

// Stats summarizes the current snapshot.
func (m *Manager) Stats() Stats { return m.snap.Load().Stats() }

func (m *Manager) builder() *Builder {
	return NewBuilder(m.chunkSize, func() grid.RegionID {
		id := m.nextRegion
		m.nextRegion++
		return id
	})
}

func (m *Manager) publish(snap *Snapshot, area grid.Rect, took time.Duration, kind string) {
	m.generation++
	snap.generation = m.generation
	m.snap.Store(snap)
	m.log.Debugf("regions rebuilt kind=%s area=%+v regions=%d links=%d rooms=%d took=%s",
		kind, area, len(snap.regions), len(snap.links), len(snap.rooms), took)
	if m.selfCheck {
		if err := snap.Validate(m.terrain); err != nil {
			m.log.Warnf("snapshot self-check failed: %v", err)
		}
	}
	if m.listener != nil {
		m.listener.RegionsRebuilt(snap, area)
	}
}
