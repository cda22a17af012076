package protocol

type PatchEnvelope struct {
	Sequence uint64 `json:"seq"`
	Type     string `json:"type"`
	Payload  any    `json:"payload"`
}

type RegionsRebuilt struct {
	Cause      string    `json:"cause"`
	Area       RectLite  `json:"area"`
	Stats      StatsLite `json:"stats"`
	TookMicros int64     `json:"tookMicros"`
}

type TerrainEdited struct {
	Op   string   `json:"op"`
	Area RectLite `json:"area"`
}

type ObjectPlaced struct {
	Object ObjectLite `json:"object"`
}

type ObjectRemoved struct {
	ID string `json:"id"`
}
