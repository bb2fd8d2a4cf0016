package emailbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(n int) []Block {
	ids := NewSequenceGenerator("h")
	blocks := make([]Block, n)
	for i := range blocks {
		blocks[i] = MustNewBlock(BlockTypeText, ids)
	}
	return blocks
}

func TestHistory(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		h := NewHistory(0)
		assert.Equal(t, -1, h.Position())
		_, ok := h.Undo()
		assert.False(t, ok)
		_, ok = h.Redo()
		assert.False(t, ok)
		assert.False(t, h.CanUndo())
		assert.False(t, h.CanRedo())
	})

	t.Run("records copies", func(t *testing.T) {
		h := NewHistory(10)
		doc := snapshot(1)
		h.Record(doc)
		doc[0].(*TextBlock).Text = "after record"
		h.Record(snapshot(2))

		prev, ok := h.Undo()
		require.True(t, ok)
		require.Len(t, prev, 1)
		assert.NotEqual(t, "after record", prev[0].(*TextBlock).Text)

		// returned snapshots are copies too
		prev[0].(*TextBlock).Text = "edited"
		next, _ := h.Redo()
		again, _ := h.Undo()
		assert.Len(t, next, 2)
		assert.NotEqual(t, "edited", again[0].(*TextBlock).Text)
	})

	t.Run("new record drops the redo branch", func(t *testing.T) {
		h := NewHistory(10)
		h.Record(snapshot(0))
		h.Record(snapshot(1))
		h.Record(snapshot(2))
		h.Undo()
		h.Undo()
		assert.True(t, h.CanRedo())

		h.Record(snapshot(5))
		assert.False(t, h.CanRedo())
		assert.Equal(t, 2, h.Len())
		prev, ok := h.Undo()
		require.True(t, ok)
		assert.Len(t, prev, 0)
	})

	t.Run("oldest entries are evicted", func(t *testing.T) {
		h := NewHistory(DefaultHistoryLimit)
		for i := 0; i < 100; i++ {
			h.Record(snapshot(i % 7))
		}
		assert.Equal(t, DefaultHistoryLimit, h.Len())
		assert.Equal(t, DefaultHistoryLimit-1, h.Position())

		steps := 0
		for {
			if _, ok := h.Undo(); !ok {
				break
			}
			steps++
		}
		assert.Equal(t, DefaultHistoryLimit-1, steps)
		assert.Equal(t, 0, h.Position())
	})
}
