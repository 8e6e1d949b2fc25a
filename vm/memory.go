package vm

import "github.com/deepnoodle-ai/intcode/errz"

// Memory is the address space of a single machine: a flat tape of signed
// integers with no upper bound. Addresses past the current length read as
// zero, and writing past the end grows the tape with zeros.
type Memory struct {
	cells []int64
	limit int64
}

// NewMemory returns a Memory initialized with a copy of image.
func NewMemory(image []int64) *Memory {
	cells := make([]int64, len(image))
	copy(cells, image)
	return &Memory{cells: cells}
}

// Get returns the value stored at addr.
func (m *Memory) Get(addr int64) (int64, error) {
	if addr < 0 {
		return 0, negativeAddress(addr)
	}
	if addr >= int64(len(m.cells)) {
		return 0, nil
	}
	return m.cells[addr], nil
}

// Set stores value at addr, extending the tape as needed. Without a limit,
// a write to a huge address allocates the whole tape up to it; the runtime
// may kill the process when that allocation cannot be satisfied.
func (m *Memory) Set(addr, value int64) error {
	if addr < 0 {
		return negativeAddress(addr)
	}
	if addr >= int64(len(m.cells)) {
		if m.limit > 0 && addr >= m.limit {
			return errz.New(errz.MemoryLimit, "address %d beyond limit of %d cells", addr, m.limit).WithAddr(addr)
		}
		m.grow(addr + 1)
	}
	m.cells[addr] = value
	return nil
}

func (m *Memory) grow(n int64) {
	if n <= int64(cap(m.cells)) {
		m.cells = m.cells[:n]
		return
	}
	size := int64(cap(m.cells)) * 2
	if size < n {
		size = n
	}
	cells := make([]int64, n, size)
	copy(cells, m.cells)
	m.cells = cells
}

// SetLimit caps the number of cells the tape may grow to. Zero means no
// limit. Cells already backed are unaffected.
func (m *Memory) SetLimit(cells int64) {
	m.limit = cells
}

// Len returns the number of cells currently backed by storage.
func (m *Memory) Len() int {
	return len(m.cells)
}

// Snapshot returns a copy of the backed cells.
func (m *Memory) Snapshot() []int64 {
	out := make([]int64, len(m.cells))
	copy(out, m.cells)
	return out
}

func negativeAddress(addr int64) *errz.Fault {
	return errz.New(errz.NegativeAddress, "address %d", addr).WithAddr(addr)
}
