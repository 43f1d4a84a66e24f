// Package document provides the ordered block map of a livemark document.
//
// A Document maps stable block keys to Blocks; insertion order is display
// order. Documents are immutable: Replace, InsertAfter and Remove return a
// new Document that shares every untouched Block with the receiver.
package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/livemark/internal/engine/block"
)

// Errors returned by document operations.
var (
	ErrBlockNotFound = errors.New("block not found")
	ErrDuplicateKey  = errors.New("duplicate block key")
	ErrLastBlock     = errors.New("cannot remove the last block")
)

// Document is an ordered mapping from block keys to blocks.
type Document struct {
	order  []block.Key
	blocks map[block.Key]block.Block
}

// GenerateKey returns a new opaque block key.
func GenerateKey() block.Key {
	id := uuid.New()
	return block.Key(strings.ReplaceAll(id.String(), "-", "")[:8])
}

// New creates a document from blocks in display order.
func New(blocks ...block.Block) (Document, error) {
	d := Document{
		order:  make([]block.Key, 0, len(blocks)),
		blocks: make(map[block.Key]block.Block, len(blocks)),
	}
	for _, b := range blocks {
		if _, ok := d.blocks[b.Key()]; ok {
			return Document{}, fmt.Errorf("%w: %s", ErrDuplicateKey, b.Key())
		}
		d.order = append(d.order, b.Key())
		d.blocks[b.Key()] = b
	}
	return d, nil
}

// NewEmpty creates a document with a single empty unstyled block.
func NewEmpty() Document {
	b := block.New(GenerateKey(), block.TypeUnstyled, "")
	return Document{
		order:  []block.Key{b.Key()},
		blocks: map[block.Key]block.Block{b.Key(): b},
	}
}

// FromText creates a document with one unstyled block per line.
func FromText(text string) Document {
	lines := strings.Split(text, "\n")
	blocks := make([]block.Block, len(lines))
	for i, line := range lines {
		blocks[i] = block.New(GenerateKey(), block.TypeUnstyled, line)
	}
	d, _ := New(blocks...) // generated keys are unique
	return d
}

// Len returns the number of blocks.
func (d Document) Len() int {
	return len(d.order)
}

// Has returns true if the document contains key.
func (d Document) Has(key block.Key) bool {
	_, ok := d.blocks[key]
	return ok
}

// Block returns the block for key.
func (d Document) Block(key block.Key) (block.Block, bool) {
	b, ok := d.blocks[key]
	return b, ok
}

// First returns the first block.
func (d Document) First() (block.Block, bool) {
	if len(d.order) == 0 {
		return block.Block{}, false
	}
	return d.blocks[d.order[0]], true
}

// Keys returns the block keys in display order.
func (d Document) Keys() []block.Key {
	out := make([]block.Key, len(d.order))
	copy(out, d.order)
	return out
}

// Blocks returns the blocks in display order.
func (d Document) Blocks() []block.Block {
	out := make([]block.Block, len(d.order))
	for i, k := range d.order {
		out[i] = d.blocks[k]
	}
	return out
}

// IndexOf returns the display index of key, or -1.
func (d Document) IndexOf(key block.Key) int {
	for i, k := range d.order {
		if k == key {
			return i
		}
	}
	return -1
}

// Before returns the block displayed before key.
func (d Document) Before(key block.Key) (block.Block, bool) {
	i := d.IndexOf(key)
	if i <= 0 {
		return block.Block{}, false
	}
	return d.blocks[d.order[i-1]], true
}

// Replace swaps in b for the block with the same key, keeping its position.
func (d Document) Replace(b block.Block) (Document, error) {
	if !d.Has(b.Key()) {
		return d, fmt.Errorf("%w: %s", ErrBlockNotFound, b.Key())
	}
	blocks := d.cloneBlocks()
	blocks[b.Key()] = b
	return Document{order: d.order, blocks: blocks}, nil
}

// InsertAfter inserts b directly after the block with key after.
func (d Document) InsertAfter(after block.Key, b block.Block) (Document, error) {
	i := d.IndexOf(after)
	if i < 0 {
		return d, fmt.Errorf("%w: %s", ErrBlockNotFound, after)
	}
	if d.Has(b.Key()) {
		return d, fmt.Errorf("%w: %s", ErrDuplicateKey, b.Key())
	}

	order := make([]block.Key, 0, len(d.order)+1)
	order = append(order, d.order[:i+1]...)
	order = append(order, b.Key())
	order = append(order, d.order[i+1:]...)

	blocks := d.cloneBlocks()
	blocks[b.Key()] = b
	return Document{order: order, blocks: blocks}, nil
}

// Remove deletes the block with key. The last block cannot be removed.
func (d Document) Remove(key block.Key) (Document, error) {
	i := d.IndexOf(key)
	if i < 0 {
		return d, fmt.Errorf("%w: %s", ErrBlockNotFound, key)
	}
	if len(d.order) == 1 {
		return d, ErrLastBlock
	}

	order := make([]block.Key, 0, len(d.order)-1)
	order = append(order, d.order[:i]...)
	order = append(order, d.order[i+1:]...)

	blocks := d.cloneBlocks()
	delete(blocks, key)
	return Document{order: order, blocks: blocks}, nil
}

// PlainText returns the block texts joined by newlines.
func (d Document) PlainText() string {
	var sb strings.Builder
	for i, k := range d.order {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(d.blocks[k].Text())
	}
	return sb.String()
}

// Equals reports whether both documents hold equal blocks in the same order.
func (d Document) Equals(o Document) bool {
	if len(d.order) != len(o.order) {
		return false
	}
	for i, k := range d.order {
		if o.order[i] != k || !d.blocks[k].Equal(o.blocks[k]) {
			return false
		}
	}
	return true
}

func (d Document) cloneBlocks() map[block.Key]block.Block {
	blocks := make(map[block.Key]block.Block, len(d.blocks)+1)
	for k, v := range d.blocks {
		blocks[k] = v
	}
	return blocks
}
