// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package machine

// Memory page geometry. Pages are allocated on first write.
const (
	PAGE_SHIFT = 12                  // Words per page, as a shift.
	PAGE_WORDS = 1 << PAGE_SHIFT     // Words per page.
	PAGE_MASK  = uint32(PAGE_WORDS - 1) // Mask of the in-page word index.
)

type page [PAGE_WORDS]uint32

// Memory is the sparse word store backing both code and data. Every 32-bit
// address holds a 32-bit word; an address never written reads as zero
// without allocating anything.
type Memory struct {
	pages map[uint32]*page
}

// NewMemory creates an empty memory.
func NewMemory() (mem *Memory) {
	mem = &Memory{
		pages: make(map[uint32]*page),
	}

	return
}

// Reset drops every allocated page.
func (mem *Memory) Reset() {
	clear(mem.pages)
}

// Read returns the word at addr, zero if the address was never written.
func (mem *Memory) Read(addr uint32) (value uint32) {
	pg := mem.pages[addr>>PAGE_SHIFT]
	if pg != nil {
		value = pg[addr&PAGE_MASK]
	}

	return
}

// Write stores value at addr, allocating the backing page on first touch.
func (mem *Memory) Write(addr uint32, value uint32) {
	index := addr >> PAGE_SHIFT
	pg := mem.pages[index]
	if pg == nil {
		pg = &page{}
		mem.pages[index] = pg
	}
	pg[addr&PAGE_MASK] = value
}

// ReadRange returns a snapshot of count words starting at addr, reading
// through the same zero-default path as Read.
func (mem *Memory) ReadRange(addr uint32, count int) (values []uint32) {
	values = make([]uint32, count)
	for n := range values {
		values[n] = mem.Read(addr + uint32(n))
	}

	return
}

// Pages returns the number of allocated pages.
func (mem *Memory) Pages() int {
	return len(mem.pages)
}
