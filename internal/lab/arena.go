package lab

// cellStatus marks whether a cell takes part in propagation.
type cellStatus uint8

const (
	cellOpen cellStatus = iota
	cellWall
)

// arena holds the fixed grid geometry. The outer ring of cells is wall so
// every open cell has four in-bounds neighbours.
type arena struct {
	width, height int
	status        []cellStatus
}

// newArena builds a grid whose border cells are walls.
func newArena(width, height int) *arena {
	a := &arena{width: width, height: height, status: make([]cellStatus, width*height)}
	for x := 0; x < width; x++ {
		a.status[x] = cellWall
		a.status[(height-1)*width+x] = cellWall
	}
	for y := 0; y < height; y++ {
		a.status[y*width] = cellWall
		a.status[y*width+width-1] = cellWall
	}
	return a
}

// isWall reports whether the coordinates reference a wall cell; anything
// off the grid counts as wall.
func (a *arena) isWall(x, y int) bool {
	if x < 0 || x >= a.width || y < 0 || y >= a.height {
		return true
	}
	return a.status[y*a.width+x] == cellWall
}

// index flattens grid coordinates.
func (a *arena) index(x, y int) int { return y*a.width + x }
