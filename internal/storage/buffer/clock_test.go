package buffer

import (
	"testing"

	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bietkhonhungvandi212/framedb/internal/storage/page"
	util "github.com/bietkhonhungvandi212/framedb/internal/utils"
)

// newTestClock builds a pool of the given size where frame i holds page i
// of f, all resident, unpinned and unreferenced.
func newTestClock(f File, size int) (*clockAllocator, *pageIndex, []frameDesc) {
	descs := newDescTable(size)
	pool := make([]page.Page, size)
	index := newPageIndex(size)
	log, _ := logrustest.NewNullLogger()
	stats := &Stats{}

	for i := 0; i < size; i++ {
		pageNo := util.PageID(i)
		descs[i].Set(f, pageNo)
		descs[i].pinCnt = 0
		descs[i].refbit = false
		pool[i].Header.PageNo = pageNo
		index.insert(f, pageNo, FrameID(i))
	}
	return newClockAllocator(descs, pool, index, stats, log), index, descs
}

func TestClockScanOrder(t *testing.T) {
	f := newStubFile("clock.db")
	clock, index, descs := newTestClock(f, 3)

	// hand starts past the last frame, so frames fall in index order
	frame, err := clock.allocate()
	require.NoError(t, err)
	assert.Equal(t, FrameID(0), frame)
	assert.False(t, descs[0].valid, "victim frame cleared")
	_, ok := index.lookup(f, 0)
	assert.False(t, ok, "victim mapping removed")

	frame, err = clock.allocate()
	require.NoError(t, err)
	assert.Equal(t, FrameID(1), frame)
}

func TestClockEmptyFramePriority(t *testing.T) {
	f := newStubFile("clock.db")
	clock, _, descs := newTestClock(f, 3)

	// an empty frame beats eviction even when earlier frames are evictable
	descs[1].Clear()
	clock.hand = 0 // next advance lands on the empty frame

	frame, err := clock.allocate()
	require.NoError(t, err)
	assert.Equal(t, FrameID(1), frame)
	assert.True(t, descs[0].valid, "resident frames untouched")
	assert.True(t, descs[2].valid, "resident frames untouched")
}

func TestClockSecondChance(t *testing.T) {
	f := newStubFile("clock.db")
	clock, _, descs := newTestClock(f, 3)
	descs[0].refbit = true

	frame, err := clock.allocate()
	require.NoError(t, err)
	assert.Equal(t, FrameID(1), frame, "referenced frame gets a pass")
	assert.False(t, descs[0].refbit, "one pass clears the refbit")
	assert.True(t, descs[0].valid, "referenced frame survives the sweep")
}

func TestClockDirtyVictimWrittenBack(t *testing.T) {
	f := newStubFile("clock.db")
	clock, _, descs := newTestClock(f, 3)

	descs[0].dirty = true
	copy(clock.pool[0].Data[:], []byte("modified contents"))

	frame, err := clock.allocate()
	require.NoError(t, err)
	assert.Equal(t, FrameID(0), frame)
	assert.Equal(t, 1, f.writes[0], "dirty victim written back exactly once")
	assert.Contains(t, string(f.pages[0].Data[:17]), "modified contents")
	assert.Equal(t, uint64(1), clock.stats.WriteBacks)
}

func TestClockAllPinned(t *testing.T) {
	f := newStubFile("clock.db")
	clock, index, descs := newTestClock(f, 3)
	for i := range descs {
		descs[i].pinCnt = 1
	}

	_, err := clock.allocate()
	assert.ErrorIs(t, err, ErrBufferExceeded)

	for i := range descs {
		assert.True(t, descs[i].valid, "frame %d untouched", i)
		assert.Equal(t, uint32(1), descs[i].pinCnt, "frame %d pin unchanged", i)
		assert.False(t, descs[i].dirty, "frame %d dirty unchanged", i)
	}
	assert.Equal(t, 3, index.len(), "no mapping dropped")
	assert.Zero(t, f.writes[0]+f.writes[1]+f.writes[2], "no write-back on failure")
}

func TestClockPinnedFrameCountedOnce(t *testing.T) {
	// a pinned frame revisited after refbit clearing must not be counted
	// twice into a premature exhaustion failure
	f := newStubFile("clock.db")
	clock, _, descs := newTestClock(f, 2)
	descs[0].pinCnt = 1
	descs[1].refbit = true

	frame, err := clock.allocate()
	require.NoError(t, err)
	assert.Equal(t, FrameID(1), frame)
}
