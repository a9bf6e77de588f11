package wirebuf

import (
	"sync"
	"sync/atomic"
)

// region is a growable byte slab shared by reference counting. A region does
// not know about cursors; Buffer layers those on top of one reference.
type region struct {
	buf    []byte
	refs   atomic.Int32
	pooled bool
}

var regionPool = &sync.Pool{
	New: func() any {
		return &region{buf: make([]byte, 0, 256), pooled: true}
	},
}

func acquireRegion() *region {
	reg := regionPool.Get().(*region)
	reg.buf = reg.buf[:0]
	reg.refs.Store(1)
	return reg
}

// wrapRegion adopts caller-owned bytes. The region is never pooled: the slab
// belongs to the caller and must not be recycled.
func wrapRegion(data []byte) *region {
	reg := &region{buf: data}
	reg.refs.Store(1)
	return reg
}

func (reg *region) retain() {
	if reg.refs.Add(1) <= 1 {
		panic("wirebuf: retain of released region")
	}
}

// release drops one reference; at zero the slab goes back to the pool.
// Returns true when the region was freed.
func (reg *region) release() bool {
	n := reg.refs.Add(-1)
	if n < 0 {
		panic("wirebuf: region released twice")
	}
	if n > 0 {
		return false
	}
	if reg.pooled {
		regionPool.Put(reg)
	}
	return true
}

func (reg *region) ensureCapacity(minCap int) {
	c := cap(reg.buf)
	if minCap > c {
		if c < 16 {
			c = 16
		}
		for minCap > c {
			c <<= 1
		}
		old := reg.buf
		reg.buf = make([]byte, len(old), c)
		copy(reg.buf, old)
	}
}
