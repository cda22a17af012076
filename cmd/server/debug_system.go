package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/google/uuid"

	"github.com/karstvale/tile-region-engine/internal/grid"
	"github.com/karstvale/tile-region-engine/internal/pathgate"
	"github.com/karstvale/tile-region-engine/internal/protocol"
	"github.com/karstvale/tile-region-engine/internal/ws"
)

// DebugConfig holds debug surface configuration.
type DebugConfig struct {
	Enabled         bool
	AllowEdits      bool
	LogDebugActions bool
}

// GetDebugConfigFromEnv creates debug config from environment variables.
// The surface defaults to enabled; this is a demo server and the map
// viewer depends on it.
func GetDebugConfigFromEnv() DebugConfig {
	return DebugConfig{
		Enabled:         getEnvBool("DEBUG_MODE", true),
		AllowEdits:      getEnvBool("DEBUG_ALLOW_EDITS", true),
		LogDebugActions: getEnvBool("DEBUG_LOG_ACTIONS", false),
	}
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return result
}

// DebugSystem exposes the region engine's state over JSON endpoints and
// accepts terrain and object mutations for testing.
type DebugSystem struct {
	config DebugConfig
	host   *Host
	hub    *ws.Hub
	logger Logger
}

func NewDebugSystem(config DebugConfig, host *Host, hub *ws.Hub, logger Logger) *DebugSystem {
	return &DebugSystem{
		config: config,
		host:   host,
		hub:    hub,
		logger: logger,
	}
}

func (ds *DebugSystem) RegisterDebugRoutes(mux *http.ServeMux) {
	if !ds.config.Enabled {
		return
	}

	// Inspection
	mux.HandleFunc("/debug/stats", ds.handleStats)
	mux.HandleFunc("/debug/regions", ds.handleRegions)
	mux.HandleFunc("/debug/chunks", ds.handleChunks)
	mux.HandleFunc("/debug/links", ds.handleLinks)
	mux.HandleFunc("/debug/rooms", ds.handleRooms)
	mux.HandleFunc("/debug/objects", ds.handleObjects)
	mux.HandleFunc("/debug/map", ds.handleMap)

	// Queries
	mux.HandleFunc("/debug/reachable", ds.handleReachable)
	mux.HandleFunc("/debug/nearest", ds.handleNearest)
	mux.HandleFunc("/debug/path", ds.handlePath)

	// Mutations
	mux.HandleFunc("/debug/terrain", ds.handleTerrain)
	mux.HandleFunc("/debug/rebuild", ds.handleRebuild)
	mux.HandleFunc("/debug/objects/place", ds.handlePlaceObject)
	mux.HandleFunc("/debug/objects/remove", ds.handleRemoveObject)
}

func (ds *DebugSystem) handleStats(w http.ResponseWriter, r *http.Request) {
	refused, passed := ds.host.GateCounters()
	tracked, quarantined := ds.host.TrackerStats()
	writeJSON(w, map[string]any{
		"stats": statsLite(ds.host.Stats()),
		"gate": map[string]uint64{
			"refused": refused,
			"passed":  passed,
		},
		"objects": map[string]any{
			"tracked":     tracked,
			"quarantined": quarantined,
			"byKind":      ds.host.ObjectCounts(),
		},
		"clients": ds.hub.Count(),
	})
}

func (ds *DebugSystem) handleRegions(w http.ResponseWriter, r *http.Request) {
	snap := ds.host.Snapshot()
	cols, rows := snap.Size()

	regions := make([]protocol.RegionLite, 0, snap.RegionCount())
	for _, reg := range snap.Regions() {
		room, _ := snap.RoomOf(reg.ID)
		regions = append(regions, protocol.RegionLite{
			ID:     int(reg.ID),
			IsDoor: reg.IsDoor,
			Size:   reg.Size(),
			Room:   int(room),
			BBox:   rectLite(reg.BBox),
		})
	}

	doors := make([]protocol.DoorLite, 0)
	for _, d := range ds.host.Doors() {
		doors = append(doors, protocol.DoorLite{X: d.Pos.X, Y: d.Pos.Y, Open: d.Open})
	}

	writeJSON(w, map[string]any{
		"cols":       cols,
		"rows":       rows,
		"chunkSize":  snap.ChunkSize(),
		"generation": snap.Generation(),
		"tiles":      snap.TileRegions(),
		"regions":    regions,
		"doors":      doors,
	})
}

func (ds *DebugSystem) handleChunks(w http.ResponseWriter, r *http.Request) {
	snap := ds.host.Snapshot()
	chunks := make([]protocol.RectLite, 0)
	for _, c := range snap.ChunkRects() {
		chunks = append(chunks, rectLite(c))
	}
	writeJSON(w, map[string]any{"chunkSize": snap.ChunkSize(), "chunks": chunks})
}

func (ds *DebugSystem) handleLinks(w http.ResponseWriter, r *http.Request) {
	snap := ds.host.Snapshot()
	links := make([]protocol.LinkLite, 0, snap.LinkCount())
	for _, ln := range snap.Links() {
		links = append(links, protocol.LinkLite{
			A:     int(ln.A),
			B:     int(ln.B),
			TileA: ln.TileA,
			TileB: ln.TileB,
		})
	}
	writeJSON(w, map[string]any{"links": links})
}

func (ds *DebugSystem) handleRooms(w http.ResponseWriter, r *http.Request) {
	snap := ds.host.Snapshot()
	type roomOut struct {
		ID      int   `json:"id"`
		Regions []int `json:"regions"`
	}
	rooms := make([]roomOut, 0, snap.RoomCount())
	for _, room := range snap.Rooms() {
		ids := make([]int, 0, len(room.Regions))
		for _, rid := range room.Regions {
			ids = append(ids, int(rid))
		}
		rooms = append(rooms, roomOut{ID: int(room.ID), Regions: ids})
	}
	writeJSON(w, map[string]any{"rooms": rooms})
}

func (ds *DebugSystem) handleObjects(w http.ResponseWriter, r *http.Request) {
	objs := make([]protocol.ObjectLite, 0)
	for _, obj := range ds.host.Objects() {
		objs = append(objs, objectLite(obj))
	}
	tracked, quarantined := ds.host.TrackerStats()
	writeJSON(w, map[string]any{
		"objects":     objs,
		"tracked":     tracked,
		"quarantined": quarantined,
		"byKind":      ds.host.ObjectCounts(),
	})
}

func (ds *DebugSystem) handleMap(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, line := range ds.host.MapText() {
		fmt.Fprintln(w, line)
	}
}

func (ds *DebugSystem) handleReachable(w http.ResponseWriter, r *http.Request) {
	a, b, ok := pointPairParams(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]any{"reachable": ds.host.Reachable(a, b)})
}

func (ds *DebugSystem) handleNearest(w http.ResponseWriter, r *http.Request) {
	x, okX := intParam(r, "x")
	y, okY := intParam(r, "y")
	if !okX || !okY {
		http.Error(w, "x and y are required integers", http.StatusBadRequest)
		return
	}
	kind := r.URL.Query().Get("kind")

	obj, found := ds.host.FindNearest(grid.Point{X: x, Y: y}, kind)
	out := map[string]any{"found": found}
	if found {
		out["object"] = objectLite(obj)
	}
	writeJSON(w, out)
}

func (ds *DebugSystem) handlePath(w http.ResponseWriter, r *http.Request) {
	a, b, ok := pointPairParams(w, r)
	if !ok {
		return
	}

	path, err := ds.host.Path(a, b)
	switch {
	case errors.Is(err, pathgate.ErrUnreachable):
		writeJSON(w, map[string]any{"found": false, "reason": "unreachable"})
	case errors.Is(err, ErrNoPath):
		writeJSON(w, map[string]any{"found": false, "reason": "no tile path"})
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	default:
		writeJSON(w, map[string]any{"found": true, "path": path, "length": len(path)})
	}
}

func (ds *DebugSystem) handleTerrain(w http.ResponseWriter, r *http.Request) {
	if !ds.checkEditsAllowed(w, r) {
		return
	}

	var req protocol.RequestEditTerrain
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	rect := grid.Rect{MinX: req.MinX, MinY: req.MinY, MaxX: req.MaxX, MaxY: req.MaxY}
	if err := ds.host.EditTerrain(req.Op, rect); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ds.logDebugAction("terrain", map[string]any{"op": req.Op, "rect": rect})
	writeJSON(w, map[string]any{"success": true, "stats": statsLite(ds.host.Stats())})
}

func (ds *DebugSystem) handleRebuild(w http.ResponseWriter, r *http.Request) {
	if !ds.checkEditsAllowed(w, r) {
		return
	}
	ds.host.RebuildAll()
	ds.logDebugAction("rebuild", nil)
	writeJSON(w, map[string]any{"success": true, "stats": statsLite(ds.host.Stats())})
}

func (ds *DebugSystem) handlePlaceObject(w http.ResponseWriter, r *http.Request) {
	if !ds.checkEditsAllowed(w, r) {
		return
	}

	var req protocol.RequestPlaceObject
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	obj, err := ds.host.PlaceObject(req.Kind, grid.Point{X: req.X, Y: req.Y})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ds.logDebugAction("placeObject", map[string]any{"kind": req.Kind, "x": req.X, "y": req.Y})
	writeJSON(w, map[string]any{"success": true, "object": objectLite(obj)})
}

func (ds *DebugSystem) handleRemoveObject(w http.ResponseWriter, r *http.Request) {
	if !ds.checkEditsAllowed(w, r) {
		return
	}

	var req protocol.RequestRemoveObject
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		http.Error(w, "invalid object id", http.StatusBadRequest)
		return
	}

	if err := ds.host.RemoveObject(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	ds.logDebugAction("removeObject", map[string]any{"id": req.ID})
	writeJSON(w, map[string]any{"success": true})
}

func (ds *DebugSystem) checkEditsAllowed(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return false
	}
	if !ds.config.AllowEdits {
		http.Error(w, "debug edits not allowed", http.StatusForbidden)
		return false
	}
	return true
}

func (ds *DebugSystem) logDebugAction(actionType string, params map[string]any) {
	if ds.config.LogDebugActions {
		ds.logger.Infof("debug action %s %+v", actionType, params)
	}
}

func intParam(r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0, false
	}
	return v, true
}

func pointPairParams(w http.ResponseWriter, r *http.Request) (a, b grid.Point, ok bool) {
	ax, okAX := intParam(r, "ax")
	ay, okAY := intParam(r, "ay")
	bx, okBX := intParam(r, "bx")
	by, okBY := intParam(r, "by")
	if !okAX || !okAY || !okBX || !okBY {
		http.Error(w, "ax, ay, bx, by are required integers", http.StatusBadRequest)
		return grid.Point{}, grid.Point{}, false
	}
	return grid.Point{X: ax, Y: ay}, grid.Point{X: bx, Y: by}, true
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
