package emailbuilder

// SourceKind tells what a drag payload refers to
type SourceKind int

const (
	SourceUnknown SourceKind = iota
	// SourceCatalogType is a block type dragged from the catalog
	SourceCatalogType
	// SourceTopLevel is a block already in the document's top level
	SourceTopLevel
	// SourceNested is a block living inside a column
	SourceNested
)

func (k SourceKind) String() string {
	switch k {
	case SourceCatalogType:
		return "catalog"
	case SourceTopLevel:
		return "top_level"
	case SourceNested:
		return "nested"
	}
	return "unknown"
}

// DropTarget is either a gap between top-level blocks or a column
type DropTarget struct {
	Index     int    `json:"index"`
	ColumnsID string `json:"columns_id,omitempty"`
	ColumnID  string `json:"column_id,omitempty"`
}

// AtGap targets the gap before top-level block i, Len() targets the end
func AtGap(i int) DropTarget { return DropTarget{Index: i} }

// InColumn targets the end of a column
func InColumn(columnsID, columnID string) DropTarget {
	return DropTarget{ColumnsID: columnsID, ColumnID: columnID}
}

func (t DropTarget) isColumn() bool { return t.ColumnsID != "" }

// ResolveSource classifies a drag payload. Catalog types win over ids.
func (e *Editor) ResolveSource(payload string) SourceKind {
	if payload == "" {
		return SourceUnknown
	}
	if IsBlockType(payload) {
		return SourceCatalogType
	}
	if e.indexOf(payload) >= 0 {
		return SourceTopLevel
	}
	if ci, _, _ := e.findNested(payload); ci >= 0 {
		return SourceNested
	}
	return SourceUnknown
}

// findNested locates a block inside a column: container index, column index, block index
func (e *Editor) findNested(id string) (int, int, int) {
	for ci, b := range e.blocks {
		cb, ok := b.(*ColumnsBlock)
		if !ok {
			continue
		}
		for col := range cb.Columns {
			for bi, nested := range cb.Columns[col].Blocks {
				if nested.GetID() == id {
					return ci, col, bi
				}
			}
		}
	}
	return -1, -1, -1
}

// Drop commits a drag and drop gesture and reports whether the document changed.
// Unresolvable payloads and drops onto the block's own position are no-ops.
func (e *Editor) Drop(payload string, target DropTarget) bool {
	if target.isColumn() {
		return e.DropIntoColumn(target.ColumnsID, target.ColumnID, payload)
	}
	if target.Index < 0 || target.Index > len(e.blocks) {
		return false
	}

	switch e.ResolveSource(payload) {
	case SourceCatalogType:
		_, err := e.Add(BlockType(payload), target.Index)
		return err == nil
	case SourceTopLevel:
		return e.Move(e.indexOf(payload), target.Index)
	case SourceNested:
		return e.liftOut(payload, target.Index)
	}
	return false
}

// liftOut moves a nested block out of its column into a top-level gap, keeping its id
func (e *Editor) liftOut(id string, gap int) bool {
	ci, col, bi := e.findNested(id)
	if ci < 0 {
		return false
	}
	updated := e.blocks[ci].clone().(*ColumnsBlock)
	src := &updated.Columns[col]
	nested := src.Blocks[bi]
	src.Blocks = append(src.Blocks[:bi:bi], src.Blocks[bi+1:]...)

	next := append([]Block(nil), e.blocks...)
	next[ci] = updated
	e.commit(insertAt(next, gap, nested))
	e.selected = id
	return true
}
