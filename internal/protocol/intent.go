package protocol

import "encoding/json"

type IntentEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Terrain edit operations accepted by RequestEditTerrain.
const (
	OpWall       = "wall"
	OpClear      = "clear"
	OpDoor       = "door"
	OpRemoveDoor = "removeDoor"
	OpOpenDoor   = "openDoor"
	OpSealDoor   = "sealDoor"
)

// RequestEditTerrain edits the rectangle. Door operations use only the
// min corner as the door tile.
type RequestEditTerrain struct {
	Op   string `json:"op"`
	MinX int    `json:"minX"`
	MinY int    `json:"minY"`
	MaxX int    `json:"maxX"`
	MaxY int    `json:"maxY"`
}

type RequestRebuild struct {
}

type RequestPlaceObject struct {
	Kind string `json:"kind"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

type RequestRemoveObject struct {
	ID string `json:"id"`
}
