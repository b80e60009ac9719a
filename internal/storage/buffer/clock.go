package buffer

import (
	"github.com/sirupsen/logrus"

	"github.com/bietkhonhungvandi212/framedb/internal/storage/page"
)

// clockAllocator picks the frame to hold a newly requested page using a
// second-chance circular scan: empty frames are taken immediately, a set
// refbit buys the frame one more pass, pinned frames are skipped.
type clockAllocator struct {
	descs      []frameDesc
	pool       []page.Page
	index      *pageIndex
	hand       FrameID
	seenPinned []bool // scratch, reset per sweep
	stats      *Stats
	log        *logrus.Logger
}

func newClockAllocator(descs []frameDesc, pool []page.Page, index *pageIndex, stats *Stats, log *logrus.Logger) *clockAllocator {
	return &clockAllocator{
		descs:      descs,
		pool:       pool,
		index:      index,
		hand:       FrameID(len(descs) - 1), // first advance lands on frame 0
		seenPinned: make([]bool, len(descs)),
		stats:      stats,
		log:        log,
	}
}

func (c *clockAllocator) advance() {
	c.hand = (c.hand + 1) % FrameID(len(c.descs))
}

// allocate returns the id of a frame ready for reuse, writing back the
// victim's contents first when dirty. It fails with ErrBufferExceeded
// once every frame in the pool has been observed pinned in this sweep;
// a frame is only counted once, so a pinned frame revisited after its
// refbit was cleared cannot trip the failure early.
func (c *clockAllocator) allocate() (FrameID, error) {
	for i := range c.seenPinned {
		c.seenPinned[i] = false
	}
	pinned := 0

	for {
		c.advance()
		d := &c.descs[c.hand]

		if !d.valid {
			// empty frames always win over eviction
			return c.hand, nil
		}
		if d.refbit {
			// second chance
			d.refbit = false
			continue
		}
		if d.pinCnt > 0 {
			if !c.seenPinned[c.hand] {
				c.seenPinned[c.hand] = true
				pinned++
				if pinned == len(c.descs) {
					return 0, &BufferError{Op: "allocate frame", Err: ErrBufferExceeded}
				}
			}
			continue
		}

		// victim: unpinned, unreferenced, valid
		if d.dirty {
			if err := d.file.WritePage(&c.pool[c.hand]); err != nil {
				return 0, &BufferError{
					Op:     "write back victim",
					File:   d.file.Filename(),
					PageNo: d.pageNo,
					Frame:  d.frameNo,
					Err:    err,
				}
			}
			d.dirty = false
			c.stats.WriteBacks++
		}

		c.log.WithFields(logrus.Fields{
			"file":  d.file.Filename(),
			"page":  d.pageNo,
			"frame": d.frameNo,
		}).Debug("evicting page")
		c.stats.Evictions++

		c.index.remove(d.file, d.pageNo)
		d.Clear()
		return c.hand, nil
	}
}
