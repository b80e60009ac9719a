package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	util "github.com/bietkhonhungvandi212/framedb/internal/utils"
)

func TestSerializeDeserialize(t *testing.T) {
	t.Run("Roundtrip", func(t *testing.T) {
		p := CreateTestPage(42, []byte("hello page"))
		buf := p.Serialize()
		require.Len(t, buf, util.PageSize)

		got, err := Deserialize(buf)
		require.NoError(t, err)
		assert.Equal(t, util.PageID(42), got.PageNumber())
		assert.Equal(t, p.Data, got.Data)
		assert.NotZero(t, got.Header.Checksum, "serialize should stamp a checksum")
	})

	t.Run("CorruptionDetected", func(t *testing.T) {
		p := CreateTestPage(7, []byte("payload"))
		buf := p.Serialize()
		buf[HeaderSize+3] ^= 0xff // flip a payload bit

		_, err := Deserialize(buf)
		assert.ErrorIs(t, err, util.ErrChecksumMismatch)
	})

	t.Run("NeverWrittenSlot", func(t *testing.T) {
		// an all-zero slot carries checksum 0 and must deserialize clean
		got, err := Deserialize(make([]byte, util.PageSize))
		require.NoError(t, err)
		assert.Equal(t, util.PageID(0), got.PageNumber())
	})

	t.Run("WrongLength", func(t *testing.T) {
		_, err := Deserialize(make([]byte, 100))
		assert.ErrorIs(t, err, util.ErrInvalidPageSize)
	})
}

func TestCreateTestPageTruncates(t *testing.T) {
	big := make([]byte, util.PageSize*2)
	p := CreateTestPage(1, big)
	assert.Equal(t, util.PageID(1), p.PageNumber())
}
