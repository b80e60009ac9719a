package buffer

import (
	util "github.com/bietkhonhungvandi212/framedb/internal/utils"
)

// frameKey identifies a resident page: which file it belongs to and its
// number within that file.
type frameKey struct {
	file   File
	pageNo util.PageID
}

// pageIndex maps (file, pageNo) to the frame holding the page. A miss is
// a normal outcome reported through the comma-ok result, never an error.
type pageIndex struct {
	entries map[frameKey]FrameID
}

func newPageIndex(size int) *pageIndex {
	return &pageIndex{
		entries: make(map[frameKey]FrameID, size),
	}
}

func (ix *pageIndex) lookup(f File, pageNo util.PageID) (FrameID, bool) {
	frame, ok := ix.entries[frameKey{file: f, pageNo: pageNo}]
	return frame, ok
}

func (ix *pageIndex) insert(f File, pageNo util.PageID, frame FrameID) {
	ix.entries[frameKey{file: f, pageNo: pageNo}] = frame
}

// remove drops the entry if present; absence is tolerated.
func (ix *pageIndex) remove(f File, pageNo util.PageID) {
	delete(ix.entries, frameKey{file: f, pageNo: pageNo})
}

func (ix *pageIndex) len() int {
	return len(ix.entries)
}
