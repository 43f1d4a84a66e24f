// Package state provides the immutable editor state snapshot.
//
// An EditorState bundles a Document and a Selection. It is never modified in
// place: Push produces a new state carrying a change-kind tag that the host's
// undo system can use, and ForceSelection produces a new state with a
// different selection. Every accepted edit replaces the state wholesale, so
// no partially applied edit is ever observable.
package state

import (
	"errors"
	"fmt"

	"github.com/dshills/livemark/internal/engine/block"
	"github.com/dshills/livemark/internal/engine/cursor"
	"github.com/dshills/livemark/internal/engine/document"
)

// ErrNoCurrentBlock indicates the selection start block is missing from the
// document.
var ErrNoCurrentBlock = errors.New("selection block not in document")

// ChangeKind labels a pushed state for the host's undo system.
type ChangeKind uint8

const (
	// ChangeNone marks an untagged state (initial state, host edits).
	ChangeNone ChangeKind = iota
	// ChangeInsertCharacters marks a character insertion.
	ChangeInsertCharacters
	// ChangeRemoveRange marks a range removal.
	ChangeRemoveRange
	// ChangeBlockType marks a block type change.
	ChangeBlockType
)

// String returns the change tag, e.g. "remove-range".
func (k ChangeKind) String() string {
	switch k {
	case ChangeInsertCharacters:
		return "insert-characters"
	case ChangeRemoveRange:
		return "remove-range"
	case ChangeBlockType:
		return "change-block-type"
	default:
		return ""
	}
}

// EditorState is an immutable snapshot of document and selection.
type EditorState struct {
	doc        document.Document
	sel        cursor.Selection
	lastChange ChangeKind
}

// CreateEmpty returns a state holding one empty unstyled block with the
// caret at offset 0.
func CreateEmpty() EditorState {
	doc := document.NewEmpty()
	first, _ := doc.First()
	return EditorState{doc: doc, sel: cursor.Collapsed(first.Key(), 0)}
}

// Create returns a state for doc and sel after validating the selection.
func Create(doc document.Document, sel cursor.Selection) (EditorState, error) {
	if err := sel.Validate(doc); err != nil {
		return EditorState{}, err
	}
	return EditorState{doc: doc, sel: sel}, nil
}

// CreateWithText returns a state with one unstyled block per line of text and
// the caret at the end of the last block.
func CreateWithText(text string) EditorState {
	doc := document.FromText(text)
	blocks := doc.Blocks()
	last := blocks[len(blocks)-1]
	return EditorState{doc: doc, sel: cursor.Collapsed(last.Key(), last.Len())}
}

// Document returns the document.
func (s EditorState) Document() document.Document {
	return s.doc
}

// Selection returns the selection.
func (s EditorState) Selection() cursor.Selection {
	return s.sel
}

// LastChange returns the change kind of the push that produced this state.
func (s EditorState) LastChange() ChangeKind {
	return s.lastChange
}

// CurrentBlock returns the block holding the selection start.
func (s EditorState) CurrentBlock() (block.Block, bool) {
	return s.doc.Block(s.sel.StartKey())
}

// Push returns a new state with doc and the same selection, tagged kind.
func (s EditorState) Push(doc document.Document, kind ChangeKind) EditorState {
	return EditorState{doc: doc, sel: s.sel, lastChange: kind}
}

// PushWithSelection returns a new state with doc and sel, tagged kind.
func (s EditorState) PushWithSelection(doc document.Document, sel cursor.Selection, kind ChangeKind) EditorState {
	return EditorState{doc: doc, sel: sel, lastChange: kind}
}

// ForceSelection returns a new state with sel; the change tag is kept.
func (s EditorState) ForceSelection(sel cursor.Selection) EditorState {
	s.sel = sel
	return s
}

// ReplaceBlock swaps b into the document and pushes the result as kind.
func (s EditorState) ReplaceBlock(b block.Block, kind ChangeKind) (EditorState, error) {
	doc, err := s.doc.Replace(b)
	if err != nil {
		return s, err
	}
	return s.Push(doc, kind), nil
}

// Validate checks that the selection references blocks of the document
// within their bounds.
func (s EditorState) Validate() error {
	return s.sel.Validate(s.doc)
}

// String returns a debug representation of the state.
func (s EditorState) String() string {
	return fmt.Sprintf("EditorState(%d blocks, %s, %q)", s.doc.Len(), s.sel, s.lastChange.String())
}
