package engine

// Epoch counts engine ticks. Views remember the epoch they were resolved
// in and go stale once it moves on.
type Epoch struct {
	n uint64
}

// Advance marks a tick boundary.
func (e *Epoch) Advance() { e.n++ }

// Current returns the tick count.
func (e *Epoch) Current() uint64 { return e.n }

// Pixels is a read-only RGBA view over engine memory.
type Pixels struct {
	data   []byte
	width  int
	height int
	epoch  uint64
	clock  *Epoch
}

// NewPixels stamps data with the clock's current epoch.
func NewPixels(data []byte, width, height int, clock *Epoch) Pixels {
	return Pixels{data: data, width: width, height: height, epoch: clock.Current(), clock: clock}
}

// Valid reports whether no tick has happened since the view was resolved.
func (p Pixels) Valid() bool {
	return p.clock != nil && p.clock.Current() == p.epoch
}

// Bytes returns the underlying bytes, or nil once the view is stale.
// Callers must not write to or keep the returned slice.
func (p Pixels) Bytes() []byte {
	if !p.Valid() {
		return nil
	}
	return p.data
}

// Len is the byte length the view was resolved with.
func (p Pixels) Len() int { return len(p.data) }

// Size returns the grid the view covers.
func (p Pixels) Size() (int, int) { return p.width, p.height }

// Cells is a writable view over the engine force buffer.
type Cells struct {
	data  []int32
	epoch uint64
	clock *Epoch
}

// NewCells stamps data with the clock's current epoch.
func NewCells(data []int32, clock *Epoch) Cells {
	return Cells{data: data, epoch: clock.Current(), clock: clock}
}

// Valid reports whether no tick has happened since the view was resolved.
func (c Cells) Valid() bool {
	return c.clock != nil && c.clock.Current() == c.epoch
}

// Len is the number of cells in the view.
func (c Cells) Len() int { return len(c.data) }

// Set writes v at index. Writes to a stale view or outside the buffer are
// dropped and reported as false.
func (c Cells) Set(index int, v int32) bool {
	if !c.Valid() || index < 0 || index >= len(c.data) {
		return false
	}
	c.data[index] = v
	return true
}

// Get reads the cell at index; stale or out of range reads return false.
func (c Cells) Get(index int) (int32, bool) {
	if !c.Valid() || index < 0 || index >= len(c.data) {
		return 0, false
	}
	return c.data[index], true
}
