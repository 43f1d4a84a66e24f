package engine

import (
	"errors"
	"sync"
	"testing"

	"github.com/dshills/livemark/internal/autoformat"
	"github.com/dshills/livemark/internal/autoformat/detect"
	"github.com/dshills/livemark/internal/engine/block"
	"github.com/dshills/livemark/internal/engine/state"
)

func currentBlock(t *testing.T, e *Editor) block.Block {
	t.Helper()
	b, ok := e.State().CurrentBlock()
	if !ok {
		t.Fatal("no current block")
	}
	return b
}

func mustType(t *testing.T, e *Editor, text string) {
	t.Helper()
	if err := e.TypeText(text); err != nil {
		t.Fatalf("TypeText(%q): %v", text, err)
	}
}

// ============================================================================
// Typing
// ============================================================================

func TestNew(t *testing.T) {
	e := New()
	if e.Text() != "" {
		t.Errorf("expected empty text, got %q", e.Text())
	}
	if e.CanUndo() || e.RevisionID() != 0 {
		t.Error("new editor should have no history")
	}
}

func TestNewWithContent(t *testing.T) {
	e := New(WithContent("one\ntwo"))
	if e.Text() != "one\ntwo" {
		t.Errorf("Text() = %q", e.Text())
	}
	if e.State().Document().Len() != 2 {
		t.Errorf("blocks = %d", e.State().Document().Len())
	}
}

func TestTypePlainText(t *testing.T) {
	e := New()
	mustType(t, e, "hello")
	if e.Text() != "hello" {
		t.Errorf("Text() = %q", e.Text())
	}
	if e.State().LastChange() != state.ChangeInsertCharacters {
		t.Errorf("LastChange() = %q", e.State().LastChange())
	}
}

func TestTypeHeader(t *testing.T) {
	e := New()
	mustType(t, e, "## ")

	b := currentBlock(t, e)
	if b.Type() != block.TypeHeaderTwo || b.Text() != "" {
		t.Errorf("block = %s", b)
	}

	mustType(t, e, "Title")
	if b := currentBlock(t, e); b.Text() != "Title" || b.Type() != block.TypeHeaderTwo {
		t.Errorf("block = %s", b)
	}
}

func TestTypeBoldReturnsHandledResult(t *testing.T) {
	e := New()
	mustType(t, e, "**bold**")

	res, err := e.TypeCharacter("x")
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsHandled() || res.Rule != detect.KindBold {
		t.Errorf("status = %s rule = %s", res.Status, res.Rule)
	}
	b := currentBlock(t, e)
	if b.Text() != "boldx" || !b.StyleAt(0).Has(block.StyleBold) || b.StyleAt(4).Has(block.StyleBold) {
		t.Errorf("block = %s styles = %v", b, b.Styles())
	}
	if got := e.State().Selection().StartOffset(); got != 5 {
		t.Errorf("caret = %d", got)
	}
}

func TestTypeCharacterErrors(t *testing.T) {
	e := New()
	if _, err := e.TypeCharacter(""); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("err = %v", err)
	}

	ro := New(WithReadOnly())
	if _, err := ro.TypeCharacter("a"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("err = %v", err)
	}
	if err := ro.Backspace(); !errors.Is(err, ErrReadOnly) {
		t.Errorf("err = %v", err)
	}
	if !ro.IsReadOnly() {
		t.Error("IsReadOnly() should be true")
	}
}

// ============================================================================
// Backspace and Enter
// ============================================================================

func TestBackspaceRevertsCodeBlock(t *testing.T) {
	e := New()
	mustType(t, e, "`x` ")
	if b := currentBlock(t, e); b.Type() != block.TypeCodeBlock {
		t.Fatalf("block = %s", b)
	}

	if err := e.Backspace(); err != nil {
		t.Fatal(err)
	}
	b := currentBlock(t, e)
	if b.Type() != block.TypeUnstyled || b.Text() != "" {
		t.Errorf("block = %s", b)
	}
	if e.State().LastChange() != state.ChangeBlockType {
		t.Errorf("LastChange() = %q", e.State().LastChange())
	}
}

func TestBackspaceAtStartIsNoOp(t *testing.T) {
	e := New()
	if err := e.Backspace(); err != nil {
		t.Fatal(err)
	}
	if e.CanUndo() {
		t.Error("no-op backspace should not be recorded")
	}
}

func TestSplitBlock(t *testing.T) {
	e := New()
	mustType(t, e, "# ")
	mustType(t, e, "Head")
	if err := e.SplitBlock(); err != nil {
		t.Fatal(err)
	}
	mustType(t, e, "body")

	blocks := e.State().Document().Blocks()
	if len(blocks) != 2 {
		t.Fatalf("blocks = %d", len(blocks))
	}
	if blocks[0].Type() != block.TypeHeaderOne || blocks[0].Text() != "Head" {
		t.Errorf("first = %s", blocks[0])
	}
	if blocks[1].Type() != block.TypeUnstyled || blocks[1].Text() != "body" {
		t.Errorf("second = %s", blocks[1])
	}
}

// ============================================================================
// Undo/Redo
// ============================================================================

func TestUndoAutoformatAsOneUnit(t *testing.T) {
	e := New()
	mustType(t, e, "**bold**")
	mustType(t, e, "x")

	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "**bold**" {
		t.Errorf("after undo Text() = %q", e.Text())
	}
	if got := e.State().Selection().StartOffset(); got != 8 {
		t.Errorf("caret = %d", got)
	}

	if err := e.Redo(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "boldx" {
		t.Errorf("after redo Text() = %q", e.Text())
	}

	info := e.UndoInfo()
	last := info[len(info)-1]
	if last.Description != "bold" || len(last.Kinds) != 2 {
		t.Errorf("last entry = %+v", last)
	}
}

func TestUndoEmptyHistory(t *testing.T) {
	e := New()
	if err := e.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("err = %v", err)
	}
	if err := e.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("err = %v", err)
	}
}

func TestSetStateClearsHistory(t *testing.T) {
	e := New()
	mustType(t, e, "abc")
	if err := e.SetState(state.CreateWithText("loaded")); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "loaded" || e.CanUndo() {
		t.Errorf("Text() = %q CanUndo = %v", e.Text(), e.CanUndo())
	}
}

// ============================================================================
// Change Tracking
// ============================================================================

func TestListenerAndChanges(t *testing.T) {
	e := New()
	var got []Change
	e.AddListener(func(c Change) {
		got = append(got, c)
		_ = e.State() // listeners may read the editor
	})

	mustType(t, e, "# ")
	if len(got) != 2 {
		t.Fatalf("notifications = %d", len(got))
	}
	if got[1].Rule != "header" || got[1].Kind != state.ChangeBlockType {
		t.Errorf("last change = %s", got[1])
	}
	if e.RevisionID() != 2 {
		t.Errorf("RevisionID() = %d", e.RevisionID())
	}
	if changes := e.ChangesSince(1); len(changes) != 1 || !changes[0].IsFormat() {
		t.Errorf("ChangesSince(1) = %v", changes)
	}
	if latest := e.LatestChanges(1); len(latest) != 1 || latest[0].Revision != 2 {
		t.Errorf("LatestChanges(1) = %v", latest)
	}
}

func TestSnapshots(t *testing.T) {
	e := New()
	mustType(t, e, "plain")
	id := e.CreateSnapshot("before")

	if err := e.SplitBlock(); err != nil {
		t.Fatal(err)
	}
	diffs, err := e.DiffSinceSnapshot(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(diffs) != 1 {
		t.Errorf("diffs = %v", diffs)
	}

	if err := e.RestoreSnapshot(id); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "plain" {
		t.Errorf("Text() = %q", e.Text())
	}
	if err := e.Undo(); err != nil || e.State().Document().Len() != 2 {
		t.Errorf("undo restore: err = %v, blocks = %d", err, e.State().Document().Len())
	}
	if err := e.RestoreSnapshot(999); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("err = %v", err)
	}
}

// ============================================================================
// Configuration
// ============================================================================

func TestWithDispatcher(t *testing.T) {
	d := autoformat.New(autoformat.WithRules(detect.KindBold))
	e := New(WithDispatcher(d), WithMaxUndoEntries(2))
	mustType(t, e, "# x")
	if b := currentBlock(t, e); b.Type() != block.TypeUnstyled || b.Text() != "# x" {
		t.Errorf("header rule disabled, block = %s", b)
	}
	if len(e.UndoInfo()) != 2 {
		t.Errorf("undo entries = %d, want 2", len(e.UndoInfo()))
	}
	if e.Dispatcher() != d {
		t.Error("Dispatcher() should return the configured dispatcher")
	}
}

func TestConcurrentTyping(t *testing.T) {
	e := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				if _, err := e.TypeCharacter("a"); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := len(e.Text()); got != 200 {
		t.Errorf("len(Text()) = %d, want 200", got)
	}
}
