package buffer

import (
	"math/rand"
	"slices"
	"testing"
)

var red = RGB{255, 0, 0}

func TestChangesSingleCell(t *testing.T) {
	b := NewDoubleBuffer(10, 4)
	b.Write(3, 2, NewCell('#', red))

	var got []Change
	for c := range b.Changes() {
		got = append(got, c)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 change, got %d", len(got))
	}
	want := Change{X: 3, Y: 2, Cell: Cell{Char: '#', Color: red, HasColor: true}}
	if got[0] != want {
		t.Errorf("expected %+v, got %+v", want, got[0])
	}
}

func TestChangesMatchesCellDifferences(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	glyphs := []rune(" .#*")
	colors := []RGB{{}, red, {0, 255, 0}}

	for trial := 0; trial < 20; trial++ {
		b := NewDoubleBuffer(13, 7)
		randomize := func() {
			for y := 0; y < 7; y++ {
				for x := 0; x < 13; x++ {
					ch := glyphs[rng.Intn(len(glyphs))]
					if rng.Intn(2) == 0 {
						b.Write(x, y, Plain(ch))
					} else {
						b.Write(x, y, NewCell(ch, colors[rng.Intn(len(colors))]))
					}
				}
			}
		}
		randomize()
		b.Swap()
		randomize()

		want := map[Point]bool{}
		for y := 0; y < 7; y++ {
			for x := 0; x < 13; x++ {
				if b.Current().At(x, y) != b.Previous().At(x, y) {
					want[Point{x, y}] = true
				}
			}
		}

		got := map[Point]bool{}
		lastIdx := -1
		for c := range b.Changes() {
			idx := c.Y*13 + c.X
			if idx <= lastIdx {
				t.Fatalf("changes not row-major: %d after %d", idx, lastIdx)
			}
			lastIdx = idx
			got[Point{c.X, c.Y}] = true
		}

		if len(got) != len(want) {
			t.Fatalf("trial %d: expected %d changes, got %d", trial, len(want), len(got))
		}
		for p := range want {
			if !got[p] {
				t.Fatalf("trial %d: missing change at %v", trial, p)
			}
		}
	}
}

func TestColorOnlyDifferenceIsAChange(t *testing.T) {
	b := NewDoubleBuffer(2, 1)
	b.Write(0, 0, NewCell('x', red))
	b.Swap()
	b.Write(0, 0, NewCell('x', RGB{254, 0, 0}))
	if n := len(slices.Collect(b.Changes())); n != 1 {
		t.Fatalf("expected 1 change, got %d", n)
	}
}

func TestSwapPreservesFrame(t *testing.T) {
	b := NewDoubleBuffer(5, 3)
	b.Write(0, 0, NewCell('a', red))
	b.Write(4, 2, Plain('z'))
	snapshot := b.Current().Clone()

	b.Swap()

	if !b.Previous().Equal(snapshot) {
		t.Error("previous does not match the pre-swap current grid")
	}
	if n := b.Current().Count(func(c Cell) bool { return !c.IsBlank() }); n != 0 {
		t.Errorf("expected blank current after swap, found %d non-blank cells", n)
	}

	b.Clear()
	if !b.Previous().Equal(snapshot) {
		t.Error("clear touched the previous grid")
	}
}

func TestWriteOutOfBounds(t *testing.T) {
	b := NewDoubleBuffer(4, 4)
	before := b.Current().Clone()

	tests := []struct{ x, y int }{
		{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {100, 100}, {-50, 2},
	}
	for _, tt := range tests {
		b.Write(tt.x, tt.y, Plain('#'))
	}

	if !b.Current().Equal(before) {
		t.Error("out-of-bounds writes modified the grid")
	}
}

func TestResizeClearsBothGrids(t *testing.T) {
	b := NewDoubleBuffer(3, 3)
	b.Write(1, 1, Plain('#'))
	b.Swap()
	b.Write(2, 2, Plain('#'))

	b.Resize(6, 2)

	if b.Current().Size() != (Size{6, 2}) || b.Previous().Size() != (Size{6, 2}) {
		t.Fatalf("grids disagree about size: %v / %v", b.Current().Size(), b.Previous().Size())
	}
	for _, g := range []*Grid{b.Current(), b.Previous()} {
		if n := g.Count(func(c Cell) bool { return !c.IsBlank() }); n != 0 {
			t.Errorf("stale content survived resize: %d cells", n)
		}
	}
}

func TestZeroSize(t *testing.T) {
	b := NewDoubleBuffer(0, 0)
	b.Write(0, 0, Plain('#'))
	if n := len(slices.Collect(b.Changes())); n != 0 {
		t.Errorf("expected no changes on empty grid, got %d", n)
	}
	b.Swap()
	b.Resize(-3, 5)
	if b.Size() != (Size{}) {
		t.Errorf("expected 0x0, got %v", b.Size())
	}
}

func TestInvalidateReportsEveryCell(t *testing.T) {
	b := NewDoubleBuffer(4, 3)
	b.Invalidate()
	if n := len(slices.Collect(b.Changes())); n != 12 {
		t.Errorf("expected 12 changes after invalidate, got %d", n)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want rune
	}{
		{'a', 'a'},
		{'\n', ' '},
		{0x1b, ' '},
		{'█', '█'},
		{'日', '?'},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRGBfClamps(t *testing.T) {
	c := RGBf(-10, 300, 127.6)
	if c != (RGB{0, 255, 128}) {
		t.Errorf("unexpected clamp result %+v", c)
	}
}
