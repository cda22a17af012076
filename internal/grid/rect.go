package grid

// Rect is an inclusive tile rectangle.
type Rect struct {
	MinX int `json:"minX"`
	MinY int `json:"minY"`
	MaxX int `json:"maxX"`
	MaxY int `json:"maxY"`
}

// RectAround returns the 1x1 rectangle covering a single tile.
func RectAround(p Point) Rect {
	return Rect{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
}

// Empty reports whether the rectangle covers no tiles.
func (r Rect) Empty() bool { return r.MaxX < r.MinX || r.MaxY < r.MinY }

func (r Rect) Contains(x, y int) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Width returns the tile count along x; zero for empty rectangles.
func (r Rect) Width() int {
	if r.Empty() {
		return 0
	}
	return r.MaxX - r.MinX + 1
}

// Height returns the tile count along y; zero for empty rectangles.
func (r Rect) Height() int {
	if r.Empty() {
		return 0
	}
	return r.MaxY - r.MinY + 1
}

// Area returns the number of tiles covered.
func (r Rect) Area() int { return r.Width() * r.Height() }

// Clip intersects the rectangle with a cols-by-rows grid. The result is
// empty when the rectangle lies entirely off-grid.
func (r Rect) Clip(cols, rows int) Rect {
	if r.MinX < 0 {
		r.MinX = 0
	}
	if r.MinY < 0 {
		r.MinY = 0
	}
	if r.MaxX > cols-1 {
		r.MaxX = cols - 1
	}
	if r.MaxY > rows-1 {
		r.MaxY = rows - 1
	}
	return r
}

// Union returns the smallest rectangle covering both r and o. An empty side
// yields the other side unchanged.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	if o.MinX < r.MinX {
		r.MinX = o.MinX
	}
	if o.MinY < r.MinY {
		r.MinY = o.MinY
	}
	if o.MaxX > r.MaxX {
		r.MaxX = o.MaxX
	}
	if o.MaxY > r.MaxY {
		r.MaxY = o.MaxY
	}
	return r
}

// Expand grows the rectangle by n tiles on every side.
func (r Rect) Expand(n int) Rect {
	return Rect{MinX: r.MinX - n, MinY: r.MinY - n, MaxX: r.MaxX + n, MaxY: r.MaxY + n}
}
