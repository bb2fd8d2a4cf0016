package emailbuilder

// ChangeFunc receives the document and its exported HTML after every committed change
type ChangeFunc func(blocks []Block, html string)

// EditorOption configures an Editor
type EditorOption func(*Editor)

// WithIDGenerator sets the id source, UUIDGenerator by default
func WithIDGenerator(ids IDGenerator) EditorOption {
	return func(e *Editor) { e.ids = ids }
}

// WithChangeListener registers the host callback run after every committed change
func WithChangeListener(fn ChangeFunc) EditorOption {
	return func(e *Editor) { e.onChange = fn }
}

// WithExportOptions sets the initial export options
func WithExportOptions(opts ExportOptions) EditorOption {
	return func(e *Editor) { e.options = opts }
}

// WithHistoryLimit caps the number of undo snapshots
func WithHistoryLimit(limit int) EditorOption {
	return func(e *Editor) { e.historyLimit = limit }
}

// Editor is the block document store: the ordered top-level blocks, the
// selection and the undo history of one design.
//
// Every committed mutation records a snapshot, re-exports the HTML and calls
// the change listener synchronously. Editor is not safe for concurrent use.
type Editor struct {
	blocks       []Block
	selected     string
	history      *History
	historyLimit int
	ids          IDGenerator
	options      ExportOptions
	onChange     ChangeFunc
	html         string
}

// NewEditor creates an editor over a deep copy of initial, which is validated first.
// The initial state is the first history entry, so undo never goes past it.
func NewEditor(initial []Block, opts ...EditorOption) (*Editor, error) {
	e := &Editor{
		ids:          UUIDGenerator{},
		options:      DefaultExportOptions(),
		historyLimit: DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := ValidateDocument(initial); err != nil {
		return nil, err
	}
	e.options = e.options.Normalize()
	e.blocks = CloneBlocks(initial)
	if e.blocks == nil {
		e.blocks = []Block{}
	}
	e.history = NewHistory(e.historyLimit)
	e.history.Record(e.blocks)
	e.html = Export(e.blocks, e.options)
	return e, nil
}

// Blocks returns a deep copy of the document
func (e *Editor) Blocks() []Block {
	return CloneBlocks(e.blocks)
}

// Len returns the number of top-level blocks
func (e *Editor) Len() int { return len(e.blocks) }

// HTML returns the export of the current document
func (e *Editor) HTML() string { return e.html }

// Options returns the current export options
func (e *Editor) Options() ExportOptions { return e.options }

// Selected returns the id of the selected block, empty when none
func (e *Editor) Selected() string { return e.selected }

func (e *Editor) CanUndo() bool { return e.history.CanUndo() }
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// Select marks a top-level block as selected, an empty id clears the selection.
// Unknown ids are ignored.
func (e *Editor) Select(id string) bool {
	if id == "" {
		e.selected = ""
		return true
	}
	if e.indexOf(id) < 0 {
		return false
	}
	e.selected = id
	return true
}

// Block returns a copy of the top-level block with the given id
func (e *Editor) Block(id string) (Block, bool) {
	i := e.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return CloneBlock(e.blocks[i]), true
}

func (e *Editor) indexOf(id string) int {
	for i, b := range e.blocks {
		if b.GetID() == id {
			return i
		}
	}
	return -1
}

// commit installs next as the document and runs the change pipeline
func (e *Editor) commit(next []Block) {
	e.blocks = next
	e.history.Record(e.blocks)
	e.refresh()
}

// refresh re-exports and notifies without touching history
func (e *Editor) refresh() {
	e.html = Export(e.blocks, e.options)
	if e.onChange != nil {
		e.onChange(CloneBlocks(e.blocks), e.html)
	}
}

func insertAt(blocks []Block, at int, b Block) []Block {
	next := make([]Block, 0, len(blocks)+1)
	next = append(next, blocks[:at]...)
	next = append(next, b)
	return append(next, blocks[at:]...)
}

func removeAt(blocks []Block, at int) []Block {
	next := make([]Block, 0, len(blocks)-1)
	next = append(next, blocks[:at]...)
	return append(next, blocks[at+1:]...)
}

// Add inserts a default block of type t at index at and selects it.
// A negative or out of range index appends.
func (e *Editor) Add(t BlockType, at int) (string, error) {
	b, err := NewBlock(t, e.ids)
	if err != nil {
		return "", err
	}
	if at < 0 || at > len(e.blocks) {
		at = len(e.blocks)
	}
	e.commit(insertAt(e.blocks, at, b))
	e.selected = b.GetID()
	return b.GetID(), nil
}

// Update replaces the top-level block carrying b's id with a copy of b.
// Nested column content is replaced as a whole.
func (e *Editor) Update(b Block) error {
	if err := ValidateBlock(b); err != nil {
		return err
	}
	i := e.indexOf(b.GetID())
	if i < 0 {
		return ErrBlockNotFound
	}
	if e.blocks[i].GetType() != b.GetType() {
		return &ValidationError{BlockID: b.GetID(), Message: "block type cannot change"}
	}
	next := append([]Block(nil), e.blocks...)
	next[i] = CloneBlock(b)
	if err := ValidateDocument(next); err != nil {
		return err
	}
	e.commit(next)
	return nil
}

// Delete removes a top-level block and clears the selection if it pointed at it
func (e *Editor) Delete(id string) bool {
	i := e.indexOf(id)
	if i < 0 {
		return false
	}
	if e.selected == id {
		e.selected = ""
	}
	e.commit(removeAt(e.blocks, i))
	return true
}

// Duplicate inserts a deep copy with fresh ids right after the original and selects it
func (e *Editor) Duplicate(id string) (string, bool) {
	i := e.indexOf(id)
	if i < 0 {
		return "", false
	}
	dup := CloneBlock(e.blocks[i])
	regenerateIDs(dup, e.ids)
	e.commit(insertAt(e.blocks, i+1, dup))
	e.selected = dup.GetID()
	return dup.GetID(), true
}

// Move relocates the block at from into the gap at to, where gap i sits
// before block i and gap Len() after the last block. Invalid indices and
// drops that leave the block where it is change nothing.
func (e *Editor) Move(from, to int) bool {
	n := len(e.blocks)
	if from < 0 || from >= n || to < 0 || to > n {
		return false
	}
	dest := to
	if to > from {
		dest = to - 1
	}
	if dest == from {
		return false
	}
	moved := e.blocks[from]
	e.commit(insertAt(removeAt(e.blocks, from), dest, moved))
	return true
}

// DropIntoColumn places payload at the end of a column of a columns block.
//
// payload is resolved in this order:
//  1. a catalog type: a default block of that type is appended;
//  2. a top-level block id: the block moves into the column under a new id,
//     columns blocks are refused;
//  3. the id of a block in another column of the same columns block: the
//     block moves across and keeps its id.
//
// Anything else is ignored and false is returned.
func (e *Editor) DropIntoColumn(columnsID, columnID, payload string) bool {
	ci := e.indexOf(columnsID)
	if ci < 0 || payload == "" {
		return false
	}
	container, ok := e.blocks[ci].(*ColumnsBlock)
	if !ok {
		return false
	}
	if _, ti := container.FindColumn(columnID); ti < 0 {
		return false
	}

	if IsBlockType(payload) {
		b, err := NewBlock(BlockType(payload), e.ids)
		if err != nil {
			return false
		}
		leaf, ok := b.(LeafBlock)
		if !ok {
			return false
		}
		updated := container.clone().(*ColumnsBlock)
		target, _ := updated.FindColumn(columnID)
		target.Blocks = append(target.Blocks, leaf)
		next := append([]Block(nil), e.blocks...)
		next[ci] = updated
		e.commit(next)
		return true
	}

	if si := e.indexOf(payload); si >= 0 {
		leaf, ok := e.blocks[si].(LeafBlock)
		if !ok {
			return false
		}
		moved := leaf.clone().(LeafBlock)
		moved.SetID(e.ids.NewID())
		updated := container.clone().(*ColumnsBlock)
		target, _ := updated.FindColumn(columnID)
		target.Blocks = append(target.Blocks, moved)
		next := append([]Block(nil), e.blocks...)
		next[ci] = updated
		if e.selected == payload {
			e.selected = ""
		}
		e.commit(removeAt(next, si))
		return true
	}

	updated := container.clone().(*ColumnsBlock)
	target, _ := updated.FindColumn(columnID)
	for i := range updated.Columns {
		src := &updated.Columns[i]
		if src.ID == columnID {
			continue
		}
		for j, nested := range src.Blocks {
			if nested.GetID() != payload {
				continue
			}
			src.Blocks = append(src.Blocks[:j:j], src.Blocks[j+1:]...)
			target.Blocks = append(target.Blocks, nested)
			next := append([]Block(nil), e.blocks...)
			next[ci] = updated
			e.commit(next)
			return true
		}
	}
	return false
}

// Undo restores the previous snapshot. The selection is cleared if its block is gone.
func (e *Editor) Undo() bool {
	prev, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.restore(prev)
	return true
}

// Redo restores the next snapshot
func (e *Editor) Redo() bool {
	next, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.restore(next)
	return true
}

func (e *Editor) restore(blocks []Block) {
	e.blocks = blocks
	if e.selected != "" && e.indexOf(e.selected) < 0 {
		e.selected = ""
	}
	e.refresh()
}

// SetOptions changes the export options. Options are not part of the undo history.
func (e *Editor) SetOptions(opts ExportOptions) {
	e.options = opts.Normalize()
	e.refresh()
}

// Replace swaps the whole document for copies of blocks under fresh ids,
// as when applying a template. It is recorded in history.
func (e *Editor) Replace(blocks []Block) error {
	next := CloneBlocks(blocks)
	for _, b := range next {
		if b == nil {
			return &ValidationError{Message: "nil block"}
		}
		regenerateIDs(b, e.ids)
	}
	if err := ValidateDocument(next); err != nil {
		return err
	}
	if next == nil {
		next = []Block{}
	}
	e.selected = ""
	e.commit(next)
	return nil
}

// Import parses a serialized design and, if valid, replaces the document and
// options with it. A rejected design leaves the editor untouched.
func (e *Editor) Import(data []byte) error {
	design, err := ParseDesign(data, e.ids)
	if err != nil {
		return err
	}
	e.options = design.Options
	e.selected = ""
	e.commit(design.Blocks)
	return nil
}

// ExportDesign serializes the document and options
func (e *Editor) ExportDesign() ([]byte, error) {
	return MarshalDesign(e.blocks, e.options)
}
