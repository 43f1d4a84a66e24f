package engine

import (
	"errors"
	"testing"

	"github.com/dshills/livemark/internal/engine/block"
	"github.com/dshills/livemark/internal/engine/document"
)

func TestMoveCaret(t *testing.T) {
	ed := New(WithContent("ab\ncde\nf"))
	blocks := ed.State().Document().Blocks()
	first, second, third := blocks[0].Key(), blocks[1].Key(), blocks[2].Key()

	type pos struct {
		key    string
		offset int
	}
	focus := func() pos {
		sel := ed.State().Selection()
		return pos{string(sel.FocusKey), sel.FocusOffset}
	}

	// Starts at the end of the last block.
	if got := focus(); got != (pos{string(third), 1}) {
		t.Fatalf("start = %+v", got)
	}

	steps := []struct {
		dir   Direction
		want  pos
		moved bool
	}{
		{MoveRight, pos{string(third), 1}, false},
		{MoveUp, pos{string(second), 1}, true},
		{MoveLineEnd, pos{string(second), 3}, true},
		{MoveUp, pos{string(first), 2}, true},
		{MoveUp, pos{string(first), 2}, false},
		{MoveRight, pos{string(second), 0}, true},
		{MoveLeft, pos{string(first), 2}, true},
		{MoveLineStart, pos{string(first), 0}, true},
		{MoveLeft, pos{string(first), 0}, false},
		{MoveDown, pos{string(second), 0}, true},
	}
	for i, st := range steps {
		moved := ed.MoveCaret(st.dir)
		if got := focus(); got != st.want || moved != st.moved {
			t.Errorf("step %d: focus = %+v moved = %v, want %+v %v", i, got, moved, st.want, st.moved)
		}
	}

	if ed.CanUndo() {
		t.Error("caret movement should not be recorded")
	}
}

func TestMoveCaretThenFormat(t *testing.T) {
	ed := New(WithContent("text\n"))
	ed.MoveCaret(MoveUp)
	ed.MoveCaret(MoveLineStart)

	if err := ed.TypeText("# "); err != nil {
		t.Fatal(err)
	}
	// Text after the caret blocks the heading rule.
	if got := ed.Text(); got != "# text\n" {
		t.Errorf("Text() = %q", got)
	}
}

func TestMoveCaretUTF16(t *testing.T) {
	// "😀" is two UTF-16 code units and one character.
	ed := New(WithContent("a😀**b**"))
	key := ed.State().Document().Blocks()[0].Key()

	tests := []struct {
		u16        int
		wantOffset int
		wantU16    int
	}{
		{0, 0, 0},
		{1, 1, 1},
		{2, 1, 1}, // inside the surrogate pair
		{3, 2, 3},
		{8, 7, 8},
		{99, 7, 8},
	}
	for _, tt := range tests {
		if err := ed.MoveCaretUTF16(key, tt.u16); err != nil {
			t.Fatal(err)
		}
		if got := ed.State().Selection().FocusOffset; got != tt.wantOffset {
			t.Errorf("MoveCaretUTF16(%d): offset = %d, want %d", tt.u16, got, tt.wantOffset)
		}
		if k, got := ed.CaretUTF16(); k != key || got != tt.wantU16 {
			t.Errorf("CaretUTF16() after %d = %s %d, want %d", tt.u16, k, got, tt.wantU16)
		}
	}

	if err := ed.MoveCaretUTF16("missing", 0); !errors.Is(err, document.ErrBlockNotFound) {
		t.Errorf("expected ErrBlockNotFound, got %v", err)
	}
}

func TestMoveCaretUTF16ThenFormat(t *testing.T) {
	ed := New(WithContent("😀**b*"))
	key := ed.State().Document().Blocks()[0].Key()

	// Caret after the last character: 2 units for the emoji plus 4.
	if err := ed.MoveCaretUTF16(key, 6); err != nil {
		t.Fatal(err)
	}
	if err := ed.TypeText("*x"); err != nil {
		t.Fatal(err)
	}
	b := ed.State().Document().Blocks()[0]
	if b.Text() != "😀bx" || !b.StyleAt(1).Has(block.StyleBold) {
		t.Errorf("block = %q bold=%v", b.Text(), b.StyleAt(1).Has(block.StyleBold))
	}
	if _, got := ed.CaretUTF16(); got != 4 {
		t.Errorf("CaretUTF16() = %d, want 4", got)
	}
}
