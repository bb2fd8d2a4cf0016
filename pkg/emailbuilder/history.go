package emailbuilder

// DefaultHistoryLimit is the number of snapshots kept for undo
const DefaultHistoryLimit = 60

// History is a linear undo/redo stack of document snapshots.
// Snapshots are deep copies going in and coming out.
type History struct {
	entries [][]Block
	cursor  int
	limit   int
}

// NewHistory creates an empty history holding at most limit snapshots
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{cursor: -1, limit: limit}
}

// Record drops any redo branch, appends a copy of doc and evicts the oldest
// snapshot when over the limit.
func (h *History) Record(doc []Block) {
	h.entries = append(h.entries[:h.cursor+1], CloneBlocks(doc))
	if len(h.entries) > h.limit {
		overflow := len(h.entries) - h.limit
		// release evicted snapshots
		for i := 0; i < overflow; i++ {
			h.entries[i] = nil
		}
		h.entries = h.entries[overflow:]
	}
	h.cursor = len(h.entries) - 1
}

// Undo steps back and returns that snapshot, false at the first entry
func (h *History) Undo() ([]Block, bool) {
	if h.cursor <= 0 {
		return nil, false
	}
	h.cursor--
	return CloneBlocks(h.entries[h.cursor]), true
}

// Redo steps forward and returns that snapshot, false at the last entry
func (h *History) Redo() ([]Block, bool) {
	if h.cursor >= len(h.entries)-1 {
		return nil, false
	}
	h.cursor++
	return CloneBlocks(h.entries[h.cursor]), true
}

func (h *History) CanUndo() bool { return h.cursor > 0 }

func (h *History) CanRedo() bool { return h.cursor < len(h.entries)-1 }

// Len returns the number of stored snapshots
func (h *History) Len() int { return len(h.entries) }

// Position returns the index of the current snapshot, -1 when empty
func (h *History) Position() int { return h.cursor }
