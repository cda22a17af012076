package protocol

type RectLite struct {
	MinX int `json:"minX"`
	MinY int `json:"minY"`
	MaxX int `json:"maxX"`
	MaxY int `json:"maxY"`
}

type StatsLite struct {
	Cols        int    `json:"cols"`
	Rows        int    `json:"rows"`
	ChunkSize   int    `json:"chunkSize"`
	Regions     int    `json:"regions"`
	DoorRegions int    `json:"doorRegions"`
	Links       int    `json:"links"`
	Rooms       int    `json:"rooms"`
	Generation  uint64 `json:"generation"`
}

type RegionLite struct {
	ID     int      `json:"id"`
	IsDoor bool     `json:"isDoor"`
	Size   int      `json:"size"`
	Room   int      `json:"room"`
	BBox   RectLite `json:"bbox"`
}

type LinkLite struct {
	A     int `json:"a"`
	B     int `json:"b"`
	TileA int `json:"tileA"`
	TileB int `json:"tileB"`
}

type ObjectLite struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

type DoorLite struct {
	X    int  `json:"x"`
	Y    int  `json:"y"`
	Open bool `json:"open"`
}
