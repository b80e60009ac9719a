package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageIndex(t *testing.T) {
	ix := newPageIndex(8)
	f1 := newStubFile("one.db")
	f2 := newStubFile("two.db")

	t.Run("MissIsNormal", func(t *testing.T) {
		_, ok := ix.lookup(f1, 3)
		assert.False(t, ok)
	})

	t.Run("InsertLookup", func(t *testing.T) {
		ix.insert(f1, 3, 0)
		frame, ok := ix.lookup(f1, 3)
		assert.True(t, ok)
		assert.Equal(t, FrameID(0), frame)
	})

	t.Run("SamePageNoDistinctFiles", func(t *testing.T) {
		ix.insert(f2, 3, 1)
		frame1, _ := ix.lookup(f1, 3)
		frame2, ok := ix.lookup(f2, 3)
		assert.True(t, ok)
		assert.Equal(t, FrameID(0), frame1)
		assert.Equal(t, FrameID(1), frame2)
		assert.Equal(t, 2, ix.len())
	})

	t.Run("RemoveToleratesAbsence", func(t *testing.T) {
		ix.remove(f1, 3)
		_, ok := ix.lookup(f1, 3)
		assert.False(t, ok)
		ix.remove(f1, 3) // already gone
		assert.Equal(t, 1, ix.len())
	})
}
