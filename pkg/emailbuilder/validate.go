package emailbuilder

import (
	"errors"
	"fmt"
)

// ErrBlockNotFound is returned when an operation names a block the document does not hold
var ErrBlockNotFound = errors.New("block not found")

// ValidationError reports a structurally invalid block or document
type ValidationError struct {
	BlockID string
	Message string
}

func (e *ValidationError) Error() string {
	if e.BlockID == "" {
		return fmt.Sprintf("invalid document: %s", e.Message)
	}
	return fmt.Sprintf("invalid block %s: %s", e.BlockID, e.Message)
}

// ValidateBlock checks the invariants a single block must hold on its own
func ValidateBlock(b Block) error {
	if b == nil {
		return &ValidationError{Message: "nil block"}
	}
	if b.GetID() == "" {
		return &ValidationError{Message: fmt.Sprintf("%s block without id", b.GetType())}
	}
	if !IsBlockType(string(b.GetType())) {
		return &ValidationError{BlockID: b.GetID(), Message: fmt.Sprintf("%v: %q", ErrUnknownBlockType, b.GetType())}
	}
	if !holdsType(b) {
		return &ValidationError{BlockID: b.GetID(), Message: fmt.Sprintf("type %q does not match its content", b.GetType())}
	}
	cb, isColumns := b.(*ColumnsBlock)
	if !isColumns {
		return nil
	}
	if want := b.GetType().ColumnCount(); len(cb.Columns) != want {
		return &ValidationError{BlockID: b.GetID(), Message: fmt.Sprintf("%s needs exactly %d columns, got %d", b.GetType(), want, len(cb.Columns))}
	}
	for _, col := range cb.Columns {
		if col.ID == "" {
			return &ValidationError{BlockID: b.GetID(), Message: "column without id"}
		}
		for _, nested := range col.Blocks {
			if err := ValidateBlock(nested); err != nil {
				return err
			}
		}
	}
	return nil
}

// holdsType reports whether the type tag of b names the struct that carries it
func holdsType(b Block) bool {
	t := b.GetType()
	switch b.(type) {
	case *HeaderBlock:
		return t == BlockTypeHeader
	case *TitleBlock:
		return t == BlockTypeTitle
	case *TextBlock:
		return t == BlockTypeText
	case *HTMLBlock:
		return t == BlockTypeHTML
	case *QuoteBlock:
		return t == BlockTypeQuote
	case *ListBlock:
		return t == BlockTypeList
	case *ButtonBlock:
		return t == BlockTypeButton
	case *ImageBlock:
		return t == BlockTypeImage
	case *DividerBlock:
		return t == BlockTypeDivider
	case *SpacerBlock:
		return t == BlockTypeSpacer
	case *ColumnsBlock:
		return t.IsColumns()
	case *SocialBlock:
		return t == BlockTypeSocial
	case *FooterBlock:
		return t == BlockTypeFooter
	case *VideoBlock:
		return t == BlockTypeVideo
	case *ProductBlock:
		return t == BlockTypeProduct
	case *CountdownBlock:
		return t == BlockTypeCountdown
	}
	return false
}

// ValidateDocument checks every block and that no id is used twice,
// counting columns and nested blocks.
func ValidateDocument(blocks []Block) error {
	seen := make(map[string]struct{})
	for _, b := range blocks {
		if err := ValidateBlock(b); err != nil {
			return err
		}
		for _, id := range collectIDs(b) {
			if _, dup := seen[id]; dup {
				return &ValidationError{BlockID: id, Message: "duplicate id"}
			}
			seen[id] = struct{}{}
		}
	}
	return nil
}

// collectIDs lists the id of b and of everything nested in it
func collectIDs(b Block) []string {
	ids := []string{b.GetID()}
	if cb, ok := b.(*ColumnsBlock); ok {
		for _, col := range cb.Columns {
			ids = append(ids, col.ID)
			for _, nested := range col.Blocks {
				ids = append(ids, nested.GetID())
			}
		}
	}
	return ids
}

// DocumentIDs returns every id used in the document
func DocumentIDs(blocks []Block) []string {
	var ids []string
	for _, b := range blocks {
		ids = append(ids, collectIDs(b)...)
	}
	return ids
}
