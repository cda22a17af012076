package region

import (
	"github.com/karstvale/tile-region-engine/internal/grid"
)

// buildRooms groups regions into rooms by walking the neighbor graph
// without ever stepping through a door region. Door regions become
// single-region rooms, which is what lets two rooms share a doorway yet
// stay distinct. Rooms are derived data: recomputed from scratch on every
// rebuild, with ids assigned in ascending seed-region order so the result
// is deterministic.
func buildRooms(regions map[grid.RegionID]*Region, neighbors map[grid.RegionID][]grid.RegionID) (map[RoomID]*Room, map[grid.RegionID]RoomID) {
	ids := make([]grid.RegionID, 0, len(regions))
	for id := range regions {
		ids = append(ids, id)
	}
	sortRegionIDs(ids)

	rooms := make(map[RoomID]*Room)
	roomOf := make(map[grid.RegionID]RoomID, len(regions))
	next := RoomID(0)
	for _, id := range ids {
		if _, done := roomOf[id]; done {
			continue
		}
		room := &Room{ID: next}
		next++

		if regions[id].IsDoor {
			roomOf[id] = room.ID
			room.Regions = []grid.RegionID{id}
			rooms[room.ID] = room
			continue
		}

		queue := []grid.RegionID{id}
		roomOf[id] = room.ID
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			room.Regions = append(room.Regions, cur)
			for _, nb := range neighbors[cur] {
				if regions[nb].IsDoor {
					continue
				}
				if _, done := roomOf[nb]; done {
					continue
				}
				roomOf[nb] = room.ID
				queue = append(queue, nb)
			}
		}
		sortRegionIDs(room.Regions)
		rooms[room.ID] = room
	}
	return rooms, roomOf
}
