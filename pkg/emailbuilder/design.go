package emailbuilder

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// DesignVersion is the version written into serialized designs
const DesignVersion = 2

// Design is the serializable form of an editor: its blocks and export options
type Design struct {
	Blocks  []Block       `json:"blocks"`
	Options ExportOptions `json:"options"`
	Version int           `json:"version"`
}

// DesignError is returned when a serialized design cannot be imported.
// Nothing from a rejected design is applied.
type DesignError struct {
	Reason string
	Err    error
}

func (e *DesignError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid design: %s: %v", e.Reason, e.Err)
	}
	return "invalid design: " + e.Reason
}

func (e *DesignError) Unwrap() error { return e.Err }

// UnmarshalJSON decodes a column, its blocks must be leaf blocks
func (c *Column) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID     string            `json:"id"`
		Blocks []json.RawMessage `json:"blocks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.ID = raw.ID
	c.Blocks = make([]LeafBlock, 0, len(raw.Blocks))
	for _, rb := range raw.Blocks {
		b, err := decodeBlock(rb)
		if err != nil {
			return err
		}
		leaf, ok := b.(LeafBlock)
		if !ok {
			return &ValidationError{BlockID: b.GetID(), Message: "columns cannot be placed inside a column"}
		}
		c.Blocks = append(c.Blocks, leaf)
	}
	return nil
}

// decodeBlock reads the type tag first, then decodes the payload over that
// type's defaults so attributes missing from the payload keep their default.
// A list present in the payload replaces the default list as a whole.
func decodeBlock(data []byte) (Block, error) {
	tag := gjson.GetBytes(data, "type")
	if tag.Type != gjson.String {
		return nil, &ValidationError{Message: "block without type"}
	}
	b, err := NewBlock(BlockType(tag.String()), noIDs{})
	if err != nil {
		return nil, err
	}
	// json reuses slice elements already present, so a list in the payload
	// must not start from the default list
	switch d := b.(type) {
	case *ListBlock:
		if gjson.GetBytes(data, "items").Exists() {
			d.Items = nil
		}
	case *SocialBlock:
		if gjson.GetBytes(data, "links").Exists() {
			d.Links = nil
		}
	case *ColumnsBlock:
		if gjson.GetBytes(data, "columns").Exists() {
			d.Columns = nil
		}
	}
	if err := json.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("failed to decode %s block: %w", tag.String(), err)
	}
	return b, nil
}

// UnmarshalBlock decodes one block keeping its ids
func UnmarshalBlock(data []byte) (Block, error) {
	b, err := decodeBlock(data)
	if err != nil {
		return nil, err
	}
	if err := ValidateBlock(b); err != nil {
		return nil, err
	}
	return b, nil
}

// UnmarshalBlocks decodes a JSON array of blocks keeping their ids.
// It is meant for drafts persisted by this package, imports go through ParseDesign.
func UnmarshalBlocks(data []byte) ([]Block, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	blocks := make([]Block, 0, len(raw))
	for _, rb := range raw {
		b, err := decodeBlock(rb)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	if err := ValidateDocument(blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// MarshalBlocks encodes a block sequence as a JSON array
func MarshalBlocks(blocks []Block) ([]byte, error) {
	if blocks == nil {
		blocks = []Block{}
	}
	return json.Marshal(blocks)
}

// MarshalDesign encodes blocks and options in the current design version
func MarshalDesign(blocks []Block, opts ExportOptions) ([]byte, error) {
	if blocks == nil {
		blocks = []Block{}
	}
	return json.MarshalIndent(Design{Blocks: blocks, Options: opts.Normalize(), Version: DesignVersion}, "", "  ")
}

// ParseDesign decodes a serialized design for import.
//
// Both the {"blocks", "options", "version"} object and a bare block array are
// accepted. Every block, column and nested block gets a fresh id from ids.
// Malformed JSON, unknown block types, broken column structure, an empty
// design or a newer version reject the whole design with a *DesignError.
func ParseDesign(data []byte, ids IDGenerator) (*Design, error) {
	if !gjson.ValidBytes(data) {
		return nil, &DesignError{Reason: "malformed JSON"}
	}

	design := &Design{Options: DefaultExportOptions(), Version: DesignVersion}
	root := gjson.ParseBytes(data)
	blocks := root

	switch {
	case root.IsArray():
	case root.IsObject():
		blocks = root.Get("blocks")
		if !blocks.IsArray() {
			return nil, &DesignError{Reason: "missing blocks array"}
		}
		if v := root.Get("version"); v.Exists() {
			if v.Type != gjson.Number || v.Int() > DesignVersion {
				return nil, &DesignError{Reason: fmt.Sprintf("unsupported version %s", v.Raw)}
			}
		}
		if opts := root.Get("options"); opts.Exists() {
			if err := json.Unmarshal([]byte(opts.Raw), &design.Options); err != nil {
				return nil, &DesignError{Reason: "invalid options", Err: err}
			}
		}
	default:
		return nil, &DesignError{Reason: "expected an object or an array"}
	}

	var decodeErr error
	blocks.ForEach(func(_, value gjson.Result) bool {
		b, err := decodeBlock([]byte(value.Raw))
		if err != nil {
			decodeErr = err
			return false
		}
		regenerateIDs(b, ids)
		design.Blocks = append(design.Blocks, b)
		return true
	})
	if decodeErr != nil {
		return nil, &DesignError{Reason: "invalid block", Err: decodeErr}
	}
	if len(design.Blocks) == 0 {
		return nil, &DesignError{Reason: "design has no blocks"}
	}
	if err := ValidateDocument(design.Blocks); err != nil {
		return nil, &DesignError{Reason: "invalid block", Err: err}
	}

	design.Options = design.Options.Normalize()
	design.Version = DesignVersion
	return design, nil
}
