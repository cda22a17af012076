package grid

// ChunkCoord addresses one fixed-size chunk of the grid. Chunks exist only
// to bound flood-fill scope; they are not visible to spatial queries.
type ChunkCoord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ChunkOf returns the chunk containing the tile at (x, y).
func ChunkOf(x, y, chunkSize int) ChunkCoord {
	return ChunkCoord{X: x / chunkSize, Y: y / chunkSize}
}

// ChunkBounds returns the tile rectangle of a chunk clipped to a
// cols-by-rows grid, so edge chunks may be smaller than chunkSize.
func ChunkBounds(c ChunkCoord, chunkSize, cols, rows int) Rect {
	r := Rect{
		MinX: c.X * chunkSize,
		MinY: c.Y * chunkSize,
		MaxX: c.X*chunkSize + chunkSize - 1,
		MaxY: c.Y*chunkSize + chunkSize - 1,
	}
	return r.Clip(cols, rows)
}

// ChunkCover returns the chunks overlapping area, clipped to the grid, in
// raster order. An area with no on-grid tiles yields nil.
func ChunkCover(area Rect, chunkSize, cols, rows int) []ChunkCoord {
	area = area.Clip(cols, rows)
	if area.Empty() {
		return nil
	}
	first := ChunkOf(area.MinX, area.MinY, chunkSize)
	last := ChunkOf(area.MaxX, area.MaxY, chunkSize)
	cover := make([]ChunkCoord, 0, (last.X-first.X+1)*(last.Y-first.Y+1))
	for cy := first.Y; cy <= last.Y; cy++ {
		for cx := first.X; cx <= last.X; cx++ {
			cover = append(cover, ChunkCoord{X: cx, Y: cy})
		}
	}
	return cover
}

// AllChunks returns every chunk of a cols-by-rows grid in raster order.
func AllChunks(chunkSize, cols, rows int) []ChunkCoord {
	return ChunkCover(Rect{MinX: 0, MinY: 0, MaxX: cols - 1, MaxY: rows - 1}, chunkSize, cols, rows)
}
