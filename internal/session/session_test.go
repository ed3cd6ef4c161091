package session

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 Bytes"},
		{1, "1 Bytes"},
		{1023, "1023 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1100, "1.07 KB"},
		{2097152, "2 MB"},
		{5 * 1024 * 1024 * 1024, "5 GB"},
		{3 * 1024 * 1024 * 1024 * 1024, "3 TB"},
		{2048 * 1024 * 1024 * 1024 * 1024, "2048 TB"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatSize(tc.bytes))
		})
	}
}

func TestFormatSize_UnitAndRounding(t *testing.T) {
	for _, b := range []int64{1, 700, 1024, 4097, 99999, 1 << 20, 3<<30 + 12345, 1 << 40, 1 << 45} {
		got := FormatSize(b)
		parts := strings.SplitN(got, " ", 2)
		require.Len(t, parts, 2, got)

		i := indexOf(sizeUnits, parts[1])
		require.GreaterOrEqual(t, i, 0, got)

		scale := math.Pow(1024, float64(i))
		assert.LessOrEqual(t, scale, float64(b), got)
		if i < len(sizeUnits)-1 {
			assert.Less(t, float64(b), scale*1024, got)
		}

		v, err := strconv.ParseFloat(parts[0], 64)
		require.NoError(t, err)
		assert.InDelta(t, math.Round(float64(b)/scale*100)/100, v, 1e-9, got)
	}
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func TestState_UploadRequiresBothSelections(t *testing.T) {
	var s State
	assert.False(t, s.CanUpload())

	s.ChooseFile(FileHandle{Name: "a.txt", Size: 3})
	assert.False(t, s.CanUpload())

	s.SelectBucket("docs")
	assert.True(t, s.CanUpload())

	s.ClearFile()
	assert.False(t, s.CanUpload())
	assert.Equal(t, "docs", s.CurrentBucket())
}

func TestState_LastChosenFileWins(t *testing.T) {
	var s State
	s.ChooseFile(FileHandle{Name: "a.txt"})
	s.ChooseFile(FileHandle{Name: "b.txt"})

	h, ok := s.SelectedFile()
	require.True(t, ok)
	assert.Equal(t, "b.txt", h.Name)
}

func TestState_ClearBucketIf(t *testing.T) {
	var s State
	s.SelectBucket("photos")

	assert.False(t, s.ClearBucketIf("docs"))
	assert.Equal(t, "photos", s.CurrentBucket())

	assert.True(t, s.ClearBucketIf("photos"))
	assert.False(t, s.HasBucket())
	assert.False(t, s.ClearBucketIf(""))
}

func TestNewFileHandle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cat.png")
	require.NoError(t, os.WriteFile(path, make([]byte, 2048), 0644))

	h, err := NewFileHandle(path)
	require.NoError(t, err)
	assert.Equal(t, "cat.png", h.Name)
	assert.Equal(t, int64(2048), h.Size)
	assert.Equal(t, "cat.png (2 KB)", h.Label())

	_, err = NewFileHandle(dir)
	assert.ErrorIs(t, err, ErrIsDirectory)

	_, err = NewFileHandle(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInflight(t *testing.T) {
	f := NewInflight()

	assert.True(t, f.Begin(UploadKey))
	assert.False(t, f.Begin(UploadKey))
	assert.True(t, f.Busy(UploadKey))

	assert.True(t, f.Begin(DeleteBucketKey("photos")))
	assert.True(t, f.Begin(DeleteBucketKey("docs")))
	assert.True(t, f.Begin(DeleteFileKey("docs", "a/b.txt")))
	assert.Equal(t, 4, f.Len())

	f.End(UploadKey)
	assert.False(t, f.Busy(UploadKey))
	assert.True(t, f.Begin(UploadKey))
}

func TestInflight_ZeroValue(t *testing.T) {
	var f Inflight
	assert.False(t, f.Busy(CreateBucketKey))
	assert.True(t, f.Begin(CreateBucketKey))
	assert.False(t, f.Begin(CreateBucketKey))
}
