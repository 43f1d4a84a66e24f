package document

import (
	"errors"
	"testing"

	"github.com/dshills/livemark/internal/engine/block"
)

func mustNew(t *testing.T, blocks ...block.Block) Document {
	t.Helper()
	d, err := New(blocks...)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestNewEmpty(t *testing.T) {
	d := NewEmpty()
	if d.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", d.Len())
	}
	b, ok := d.First()
	if !ok {
		t.Fatal("no first block")
	}
	if b.Type() != block.TypeUnstyled || !b.IsEmpty() || b.Key() == "" {
		t.Errorf("unexpected first block %v", b)
	}
}

func TestGenerateKeyUnique(t *testing.T) {
	seen := make(map[block.Key]bool)
	for i := 0; i < 1000; i++ {
		k := GenerateKey()
		if len(k) != 8 {
			t.Fatalf("key %q has length %d", k, len(k))
		}
		if seen[k] {
			t.Fatalf("duplicate key %q", k)
		}
		seen[k] = true
	}
}

func TestNewDuplicateKey(t *testing.T) {
	_, err := New(block.New("a", block.TypeUnstyled, "x"), block.New("a", block.TypeUnstyled, "y"))
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestReplaceInPlace(t *testing.T) {
	d := mustNew(t,
		block.New("a", block.TypeUnstyled, "one"),
		block.New("b", block.TypeUnstyled, "two"),
		block.New("c", block.TypeUnstyled, "three"),
	)

	d2, err := d.Replace(block.New("b", block.TypeHeaderOne, ""))
	if err != nil {
		t.Fatal(err)
	}

	keys := d2.Keys()
	if len(keys) != 3 || keys[1] != "b" {
		t.Errorf("order changed: %v", keys)
	}
	b, _ := d2.Block("b")
	if b.Type() != block.TypeHeaderOne {
		t.Errorf("replacement not applied: %v", b)
	}
	old, _ := d.Block("b")
	if old.Text() != "two" {
		t.Error("original document mutated")
	}

	if _, err := d.Replace(block.New("zz", block.TypeUnstyled, "")); !errors.Is(err, ErrBlockNotFound) {
		t.Errorf("expected ErrBlockNotFound, got %v", err)
	}
}

func TestInsertAfterAndRemove(t *testing.T) {
	d := mustNew(t,
		block.New("a", block.TypeUnstyled, "one"),
		block.New("c", block.TypeUnstyled, "three"),
	)

	d2, err := d.InsertAfter("a", block.New("b", block.TypeUnstyled, "two"))
	if err != nil {
		t.Fatal(err)
	}
	if got := d2.PlainText(); got != "one\ntwo\nthree" {
		t.Errorf("PlainText() = %q", got)
	}
	if d.Len() != 2 {
		t.Error("original document mutated")
	}
	if prev, ok := d2.Before("b"); !ok || prev.Key() != "a" {
		t.Errorf("Before(b) = %v, %v", prev, ok)
	}

	d3, err := d2.Remove("a")
	if err != nil {
		t.Fatal(err)
	}
	if d3.IndexOf("b") != 0 || d3.Has("a") {
		t.Errorf("remove failed: %v", d3.Keys())
	}

	single := NewEmpty()
	first, _ := single.First()
	if _, err := single.Remove(first.Key()); !errors.Is(err, ErrLastBlock) {
		t.Errorf("expected ErrLastBlock, got %v", err)
	}
}

func TestFromText(t *testing.T) {
	d := FromText("# title\nbody")
	if d.Len() != 2 {
		t.Fatalf("Len() = %d", d.Len())
	}
	if d.PlainText() != "# title\nbody" {
		t.Errorf("PlainText() = %q", d.PlainText())
	}
}

func TestEquals(t *testing.T) {
	a := block.New("a", block.TypeUnstyled, "x")
	d1, _ := New(a)
	d2, _ := New(block.New("a", block.TypeUnstyled, "x"))
	if !d1.Equals(d2) {
		t.Error("documents with equal blocks should be equal")
	}
	styled, _ := a.ApplyStyle(0, 1, block.StyleBold)
	d3, _ := d1.Replace(styled)
	if d1.Equals(d3) {
		t.Error("style change should make documents differ")
	}
	d4, _ := d1.InsertAfter("a", block.New("b", block.TypeUnstyled, ""))
	if d1.Equals(d4) {
		t.Error("block count change should make documents differ")
	}
}
