package emailbuilder

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator hands out block and column identifiers
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator produces random "blk_" prefixed identifiers
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return "blk_" + strings.ReplaceAll(uuid.New().String(), "-", "")
}

// SequenceGenerator produces predictable identifiers, mostly for tests and fixtures
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequenceGenerator returns a generator yielding prefix1, prefix2, ...
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s%d", g.prefix, g.next)
}

// noIDs is used while decoding, where ids come from the payload
type noIDs struct{}

func (noIDs) NewID() string { return "" }

// regenerateIDs assigns fresh ids to b, its columns and their nested blocks
func regenerateIDs(b Block, ids IDGenerator) {
	b.SetID(ids.NewID())
	if cb, ok := b.(*ColumnsBlock); ok {
		for i := range cb.Columns {
			cb.Columns[i].ID = ids.NewID()
			for _, nested := range cb.Columns[i].Blocks {
				nested.SetID(ids.NewID())
			}
		}
	}
}
