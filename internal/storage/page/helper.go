package page

import (
	util "github.com/bietkhonhungvandi212/framedb/internal/utils"
)

func CreateTestPage(pageNo util.PageID, data []byte) *Page {
	p := &Page{
		Header: PageHeader{
			PageNo: pageNo,
		},
	}
	if len(data) > len(p.Data) {
		data = data[:len(p.Data)] // Truncate to fit
	}
	copy(p.Data[:], data)
	return p
}
