package page

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	util "github.com/bietkhonhungvandi212/framedb/internal/utils"
)

const (
	HeaderSize = 16 // PageNo(8) + Checksum(8)
)

// Page is the fixed-size block that is read from and written to disk.
type Page struct {
	Header PageHeader
	Data   [util.PageSize - HeaderSize]byte
}

type PageHeader struct {
	PageNo   util.PageID // 8 bytes
	Checksum uint64      // 8 bytes, xxhash64 of Data; 0 means never written
}

// PageNumber returns the page identifier embedded in the header.
func (p *Page) PageNumber() util.PageID {
	return p.Header.PageNo
}

// Serialize packs the page into a byte slice for writing.
// The checksum is recomputed over the payload and stored in the header.
func (p *Page) Serialize() []byte {
	p.Header.Checksum = xxhash.Sum64(p.Data[:])

	buf := make([]byte, util.PageSize)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(p.Header.PageNo))
	binary.LittleEndian.PutUint64(buf[8:16], p.Header.Checksum)
	copy(buf[HeaderSize:], p.Data[:])

	return buf
}

// Deserialize unpacks from bytes and validates the checksum.
// A zero checksum marks a page slot that was never written; such pages
// deserialize to empty contents without verification.
func Deserialize(data []byte) (*Page, error) {
	if len(data) != util.PageSize {
		return nil, errors.Wrapf(util.ErrInvalidPageSize, "got %d bytes", len(data))
	}

	p := &Page{}
	p.Header.PageNo = util.PageID(binary.LittleEndian.Uint64(data[0:8]))
	p.Header.Checksum = binary.LittleEndian.Uint64(data[8:16])
	copy(p.Data[:], data[HeaderSize:])

	if p.Header.Checksum != 0 {
		if sum := xxhash.Sum64(p.Data[:]); sum != p.Header.Checksum {
			return nil, errors.Wrapf(util.ErrChecksumMismatch, "page %d: computed %x, stored %x",
				p.Header.PageNo, sum, p.Header.Checksum)
		}
	}

	return p, nil
}
