package buffer

import (
	"fmt"

	"github.com/bietkhonhungvandi212/framedb/internal/storage/page"
	util "github.com/bietkhonhungvandi212/framedb/internal/utils"
)

// FrameID indexes a slot in the buffer pool.
type FrameID int

// File is the storage collaborator the buffer manager reads through and
// writes back to. Two File values are the same file exactly when they
// compare equal (pointer identity for the usual *file.FileManager).
type File interface {
	ReadPage(pageNo util.PageID) (*page.Page, error)
	WritePage(p *page.Page) error
	AllocatePage() (*page.Page, error)
	DeletePage(pageNo util.PageID) error
	Filename() string
}

// frameDesc holds the bookkeeping state of one buffer frame.
// A frame is evictable only when valid, unpinned and unreferenced.
type frameDesc struct {
	file    File
	pageNo  util.PageID
	frameNo FrameID // own index, fixed at construction
	pinCnt  uint32
	dirty   bool
	valid   bool
	refbit  bool
}

// Set transitions a freshly allocated frame to its resident state:
// pinned once, recently referenced, clean.
func (d *frameDesc) Set(f File, pageNo util.PageID) {
	d.file = f
	d.pageNo = pageNo
	d.pinCnt = 1
	d.dirty = false
	d.valid = true
	d.refbit = true
}

// Clear resets the frame to empty so it can be reused.
func (d *frameDesc) Clear() {
	d.file = nil
	d.pageNo = 0
	d.pinCnt = 0
	d.dirty = false
	d.valid = false
	d.refbit = false
}

func (d *frameDesc) String() string {
	name := "<none>"
	if d.file != nil {
		name = d.file.Filename()
	}
	return fmt.Sprintf("frame %d: file=%s page=%d pin=%d dirty=%v valid=%v ref=%v",
		d.frameNo, name, d.pageNo, d.pinCnt, d.dirty, d.valid, d.refbit)
}

// newDescTable builds the per-frame descriptor table, all frames empty.
func newDescTable(size int) []frameDesc {
	descs := make([]frameDesc, size)
	for i := range descs {
		descs[i].frameNo = FrameID(i)
	}
	return descs
}
