package buffer

import (
	"github.com/sirupsen/logrus"

	"github.com/bietkhonhungvandi212/framedb/internal/storage/page"
	util "github.com/bietkhonhungvandi212/framedb/internal/utils"
)

// Stats counts pool activity since construction.
type Stats struct {
	Hits       uint64
	Misses     uint64
	Evictions  uint64
	WriteBacks uint64
}

// Config configures a Manager.
type Config struct {
	// PoolSize is the number of frames; required, must be positive.
	PoolSize int
	// Logger receives warnings and eviction debug output. Defaults to
	// logrus.StandardLogger().
	Logger *logrus.Logger
}

// Manager is the buffer pool facade. It owns the frame pool, the
// per-frame descriptor table, the page identity index and the clock
// allocator, and delegates all disk I/O to the File collaborator.
//
// The manager is single-threaded: callers needing concurrency must
// serialize access externally.
type Manager struct {
	descs []frameDesc
	pool  []page.Page
	index *pageIndex
	clock *clockAllocator
	stats Stats
	log   *logrus.Logger
}

func NewManager(cfg Config) (*Manager, error) {
	if cfg.PoolSize <= 0 {
		return nil, util.ErrInvalidPoolSize
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	bm := &Manager{
		descs: newDescTable(cfg.PoolSize),
		pool:  make([]page.Page, cfg.PoolSize),
		index: newPageIndex(cfg.PoolSize),
		log:   log,
	}
	bm.clock = newClockAllocator(bm.descs, bm.pool, bm.index, &bm.stats, log)
	return bm, nil
}

// PoolSize returns the number of frames in the pool.
func (bm *Manager) PoolSize() int {
	return len(bm.descs)
}

// Stats returns a snapshot of the pool counters.
func (bm *Manager) Stats() Stats {
	return bm.stats
}

// Page returns a view of the frame's contents. The view is only valid
// while the caller holds a pin on the page resident in that frame; it
// must not be retained past the matching UnpinPage.
func (bm *Manager) Page(frame FrameID) *page.Page {
	return &bm.pool[frame]
}

// ReadPage pins the page in the pool, reading it from the file on a
// miss, and returns the frame it resides in.
func (bm *Manager) ReadPage(f File, pageNo util.PageID) (FrameID, error) {
	if frame, ok := bm.index.lookup(f, pageNo); ok {
		d := &bm.descs[frame]
		d.refbit = true
		d.pinCnt++
		bm.stats.Hits++
		return frame, nil
	}
	bm.stats.Misses++

	frame, err := bm.clock.allocate()
	if err != nil {
		return 0, err
	}

	p, err := f.ReadPage(pageNo)
	if err != nil {
		return 0, &BufferError{Op: "read page", File: f.Filename(), PageNo: pageNo, Frame: frame, Err: err}
	}

	bm.pool[frame] = *p
	bm.index.insert(f, pageNo, frame)
	bm.descs[frame].Set(f, pageNo)
	return frame, nil
}

// UnpinPage releases one pin on the page and records whether the caller
// modified it. Unpinning a page that is not resident is a warned no-op:
// the caller may legitimately unpin after a file-level eviction.
func (bm *Manager) UnpinPage(f File, pageNo util.PageID, dirty bool) error {
	frame, ok := bm.index.lookup(f, pageNo)
	if !ok {
		bm.log.WithFields(logrus.Fields{
			"file": f.Filename(),
			"page": pageNo,
		}).Warn("unpinning a page not resident in the pool")
		return nil
	}

	d := &bm.descs[frame]
	if d.pinCnt == 0 {
		return &BufferError{Op: "unpin page", File: f.Filename(), PageNo: pageNo, Frame: frame, Err: ErrPageNotPinned}
	}
	d.pinCnt--
	if dirty {
		d.dirty = true
	}
	return nil
}

// AllocatePage asks the file for a fresh page, installs it pinned in the
// pool and returns its number and frame.
func (bm *Manager) AllocatePage(f File) (util.PageID, FrameID, error) {
	p, err := f.AllocatePage()
	if err != nil {
		return 0, 0, &BufferError{Op: "allocate page", File: f.Filename(), Err: err}
	}

	frame, err := bm.clock.allocate()
	if err != nil {
		return 0, 0, err
	}

	pageNo := p.PageNumber()
	bm.pool[frame] = *p
	bm.index.insert(f, pageNo, frame)
	bm.descs[frame].Set(f, pageNo)
	return pageNo, frame, nil
}

// FlushFile writes back every dirty page of the file and releases all of
// its frames. The whole file is validated first: a pinned page fails
// with ErrPagePinned, an owned-but-invalid frame with ErrBadBuffer, and
// in either case no frame is touched.
func (bm *Manager) FlushFile(f File) error {
	for i := range bm.descs {
		d := &bm.descs[i]
		if d.file != f {
			continue
		}
		if !d.valid {
			return &BufferError{Op: "flush file", File: f.Filename(), PageNo: d.pageNo, Frame: d.frameNo, Err: ErrBadBuffer}
		}
		if d.pinCnt > 0 {
			return &BufferError{Op: "flush file", File: f.Filename(), PageNo: d.pageNo, Frame: d.frameNo, Err: ErrPagePinned}
		}
	}

	for i := range bm.descs {
		d := &bm.descs[i]
		if d.file != f {
			continue
		}
		if d.dirty {
			if err := f.WritePage(&bm.pool[i]); err != nil {
				return &BufferError{Op: "flush file", File: f.Filename(), PageNo: d.pageNo, Frame: d.frameNo, Err: err}
			}
			d.dirty = false
			bm.stats.WriteBacks++
		}
		bm.index.remove(f, d.pageNo)
		d.Clear()
	}
	return nil
}

// FlushAll flushes every file currently represented in the pool.
func (bm *Manager) FlushAll() error {
	seen := make(map[File]struct{})
	for i := range bm.descs {
		d := &bm.descs[i]
		if !d.valid {
			continue
		}
		if _, ok := seen[d.file]; ok {
			continue
		}
		seen[d.file] = struct{}{}
		if err := bm.FlushFile(d.file); err != nil {
			return err
		}
	}
	return nil
}

// DisposePage evicts the page from the pool if resident (a miss is
// tolerated) and deletes it from the file.
func (bm *Manager) DisposePage(f File, pageNo util.PageID) error {
	if frame, ok := bm.index.lookup(f, pageNo); ok {
		bm.index.remove(f, pageNo)
		bm.descs[frame].Clear()
	}
	if err := f.DeletePage(pageNo); err != nil {
		return &BufferError{Op: "dispose page", File: f.Filename(), PageNo: pageNo, Err: err}
	}
	return nil
}
