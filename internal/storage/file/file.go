package file

import (
	"os"

	"github.com/pkg/errors"

	"github.com/bietkhonhungvandi212/framedb/internal/storage/page"
	util "github.com/bietkhonhungvandi212/framedb/internal/utils"
)

/**
* This module reads and writes pages from / to disk. Pages live at
* offset pageNo * PageSize; allocation reuses deleted page numbers
* before extending the file.
**/
type FileManager struct {
	file     *os.File
	path     string
	numPages int64
	freeList []util.PageID
	freed    map[util.PageID]bool
}

func NewFileManager(path string, initialPages int) (*FileManager, error) {
	if initialPages <= 0 {
		return nil, util.ErrInvalidInitialPages
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return nil, errors.Wrap(err, "open file")
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "stat file")
	}

	fm := &FileManager{
		file:     f,
		path:     path,
		numPages: info.Size() / int64(util.PageSize),
		freed:    make(map[util.PageID]bool),
	}

	if fm.numPages < int64(initialPages) {
		if err := f.Truncate(int64(initialPages) * int64(util.PageSize)); err != nil {
			f.Close()
			return nil, errors.Wrap(err, "extend file")
		}
		fm.numPages = int64(initialPages)
	}

	return fm, nil
}

// Filename returns the path identifying this file, used in diagnostics.
func (fm *FileManager) Filename() string {
	return fm.path
}

// NumPages returns the number of page slots currently in the file.
func (fm *FileManager) NumPages() int64 {
	return fm.numPages
}

/* READ FILE */
func (fm *FileManager) ReadPage(pageNo util.PageID) (*page.Page, error) {
	if fm.file == nil {
		return nil, util.ErrFileClosed
	}
	if int64(pageNo) >= fm.numPages {
		return nil, errors.Wrapf(util.ErrPageOutOfBounds, "page %d, file has %d pages", pageNo, fm.numPages)
	}

	buf := make([]byte, util.PageSize)
	offset := int64(pageNo) * int64(util.PageSize)
	if _, err := fm.file.ReadAt(buf, offset); err != nil {
		return nil, errors.Wrapf(err, "read page %d", pageNo)
	}

	p, err := page.Deserialize(buf)
	if err != nil {
		return nil, errors.Wrapf(err, "deserialize page %d", pageNo)
	}

	if p.Header.Checksum == 0 {
		// never-written slot; stamp it with the requested number
		p.Header.PageNo = pageNo
	} else if p.Header.PageNo != pageNo {
		return nil, errors.Wrapf(util.ErrPageNumberMismatch, "requested %d, slot holds %d", pageNo, p.Header.PageNo)
	}

	return p, nil
}

/* WRITE FILE */
// WritePage stores the page at the offset given by its embedded number,
// extending the file when the number is past the current end.
func (fm *FileManager) WritePage(p *page.Page) error {
	if fm.file == nil {
		return util.ErrFileClosed
	}

	pageNo := p.PageNumber()
	if int64(pageNo) >= fm.numPages {
		newPages := int64(pageNo) + 1
		if err := fm.file.Truncate(newPages * int64(util.PageSize)); err != nil {
			return errors.Wrapf(err, "extend file for page %d", pageNo)
		}
		fm.numPages = newPages
	}

	offset := int64(pageNo) * int64(util.PageSize)
	if _, err := fm.file.WriteAt(p.Serialize(), offset); err != nil {
		return errors.Wrapf(err, "write page %d", pageNo)
	}
	return nil
}

// AllocatePage assigns a fresh page number, materializes an empty page
// on disk and returns it. Deleted page numbers are reused first.
func (fm *FileManager) AllocatePage() (*page.Page, error) {
	if fm.file == nil {
		return nil, util.ErrFileClosed
	}

	var pageNo util.PageID
	if n := len(fm.freeList); n > 0 {
		pageNo = fm.freeList[n-1]
		fm.freeList = fm.freeList[:n-1]
		delete(fm.freed, pageNo)
	} else {
		pageNo = util.PageID(fm.numPages)
	}

	p := &page.Page{Header: page.PageHeader{PageNo: pageNo}}
	if err := fm.WritePage(p); err != nil {
		return nil, errors.Wrapf(err, "allocate page %d", pageNo)
	}
	return p, nil
}

// DeletePage zeroes the page on disk and recycles its number.
// Deleting an already-deleted page is a no-op.
func (fm *FileManager) DeletePage(pageNo util.PageID) error {
	if fm.file == nil {
		return util.ErrFileClosed
	}
	if int64(pageNo) >= fm.numPages {
		return errors.Wrapf(util.ErrPageOutOfBounds, "delete page %d, file has %d pages", pageNo, fm.numPages)
	}
	if fm.freed[pageNo] {
		return nil
	}

	offset := int64(pageNo) * int64(util.PageSize)
	if _, err := fm.file.WriteAt(make([]byte, util.PageSize), offset); err != nil {
		return errors.Wrapf(err, "zero page %d", pageNo)
	}

	fm.freeList = append(fm.freeList, pageNo)
	fm.freed[pageNo] = true
	return nil
}

/**
* CLOSE FUNCTION
**/
func (fm *FileManager) Close() error {
	if fm == nil || fm.file == nil {
		return nil // Idempotent
	}

	var err error
	if e := fm.file.Sync(); e != nil {
		err = errors.Wrap(e, "sync file")
	}
	if e := fm.file.Close(); e != nil && err == nil {
		err = errors.Wrap(e, "close file")
	}
	fm.file = nil
	return err
}
