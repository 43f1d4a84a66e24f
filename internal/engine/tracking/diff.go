package tracking

import (
	"fmt"

	"github.com/dshills/livemark/internal/engine/block"
	"github.com/dshills/livemark/internal/engine/document"
)

// DiffType indicates how a block differs between two documents.
type DiffType uint8

const (
	// DiffInsert indicates a block only present in the newer document.
	DiffInsert DiffType = iota + 1

	// DiffDelete indicates a block only present in the older document.
	DiffDelete

	// DiffModify indicates a block whose type, text or styles changed.
	DiffModify
)

// String returns a human-readable representation of the diff type.
func (dt DiffType) String() string {
	switch dt {
	case DiffInsert:
		return "insert"
	case DiffDelete:
		return "delete"
	case DiffModify:
		return "modify"
	default:
		return "unknown"
	}
}

// BlockDiff describes one differing block.
type BlockDiff struct {
	Type DiffType
	Key  block.Key
	Old  block.Block // Zero for inserts
	New  block.Block // Zero for deletes
}

// String returns a short description such as "modify k1 header-one".
func (d BlockDiff) String() string {
	switch d.Type {
	case DiffDelete:
		return fmt.Sprintf("%s %s", d.Type, d.Key)
	default:
		return fmt.Sprintf("%s %s %s", d.Type, d.Key, d.New.Type())
	}
}

// DiffBlocks compares two documents by block key. Deleted blocks are listed
// in old document order, followed by inserted and modified blocks in new
// document order.
func DiffBlocks(older, newer document.Document) []BlockDiff {
	var diffs []BlockDiff
	for _, ob := range older.Blocks() {
		if !newer.Has(ob.Key()) {
			diffs = append(diffs, BlockDiff{Type: DiffDelete, Key: ob.Key(), Old: ob})
		}
	}
	for _, nb := range newer.Blocks() {
		ob, ok := older.Block(nb.Key())
		switch {
		case !ok:
			diffs = append(diffs, BlockDiff{Type: DiffInsert, Key: nb.Key(), New: nb})
		case !ob.Equal(nb):
			diffs = append(diffs, BlockDiff{Type: DiffModify, Key: nb.Key(), Old: ob, New: nb})
		}
	}
	return diffs
}
