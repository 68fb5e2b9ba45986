package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	tests := map[string]int{
		"":     1,
		"1":    1,
		"3":    3,
		"0":    1,
		"-2":   1,
		"last": 1,
		"2.5":  1,
	}
	for raw, want := range tests {
		assert.Equal(t, want, ParsePage(raw), "raw %q", raw)
	}
}

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 5, 1},
		{4, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{11, 5, 3},
		{10, 0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateTotalPages(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestNewMeta(t *testing.T) {
	t.Run("middle page", func(t *testing.T) {
		m := NewMeta(2, 12, PageSize)
		assert.Equal(t, 2, m.CurrentPage)
		assert.Equal(t, 3, m.TotalPages)
		assert.True(t, m.HasNext)
		assert.True(t, m.HasPrevious)
		assert.Equal(t, 3, m.NextPage)
		assert.Equal(t, 1, m.PreviousPage)
		assert.Equal(t, 5, m.Offset())
	})

	t.Run("beyond last page clamps to last", func(t *testing.T) {
		m := NewMeta(99, 12, PageSize)
		assert.Equal(t, 3, m.CurrentPage)
		assert.False(t, m.HasNext)
		assert.Equal(t, 10, m.Offset())
	})

	t.Run("below first page clamps to first", func(t *testing.T) {
		m := NewMeta(-4, 12, PageSize)
		assert.Equal(t, 1, m.CurrentPage)
		assert.False(t, m.HasPrevious)
		assert.Equal(t, 0, m.Offset())
	})

	t.Run("empty listing has one page", func(t *testing.T) {
		m := NewMeta(1, 0, PageSize)
		assert.Equal(t, 1, m.CurrentPage)
		assert.Equal(t, 1, m.TotalPages)
		assert.False(t, m.HasNext)
		assert.False(t, m.HasPrevious)
	})

	t.Run("zero limit falls back to page size", func(t *testing.T) {
		m := NewMeta(1, 7, 0)
		assert.Equal(t, PageSize, m.Limit)
		assert.Equal(t, 2, m.TotalPages)
	})
}
