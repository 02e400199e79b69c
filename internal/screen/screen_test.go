package screen

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	s := New(40, 12)

	if s.Width() != 40 {
		t.Errorf("Width() = %d, expected 40", s.Width())
	}
	if s.Height() != 12 {
		t.Errorf("Height() = %d, expected 12", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("new screen has %q at (%d, %d), expected space", s.Get(x, y), x, y)
			}
		}
	}
}

func TestSetGetBounds(t *testing.T) {
	s := New(10, 10)

	s.Set(5, 5, '*')
	if s.Get(5, 5) != '*' {
		t.Errorf("Get(5, 5) = %q, expected '*'", s.Get(5, 5))
	}

	// Out of bounds writes are silent, reads return space.
	s.Set(-1, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, 100, 'A')
	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out-of-bounds Get should return space")
	}
}

func TestClear(t *testing.T) {
	s := New(8, 4)
	s.Set(3, 2, '*')
	s.Clear()
	if s.Get(3, 2) != ' ' {
		t.Errorf("Get(3, 2) = %q after Clear, expected space", s.Get(3, 2))
	}
}

func TestDrawText(t *testing.T) {
	s := New(10, 3)

	s.DrawText(2, 1, "hi")
	if s.Row(1) != "  hi      " {
		t.Errorf("Row(1) = %q, expected %q", s.Row(1), "  hi      ")
	}

	// Clipped at the right edge without panicking.
	s.DrawText(8, 0, "long")
	if s.Get(8, 0) != 'l' || s.Get(9, 0) != 'o' {
		t.Errorf("clipped text row = %q", s.Row(0))
	}
}

func TestDrawTextCentered(t *testing.T) {
	s := New(10, 1)
	s.DrawTextCentered(0, "ab")
	if s.Row(0) != "    ab    " {
		t.Errorf("Row(0) = %q, expected centered text", s.Row(0))
	}
}

func TestDrawBorder(t *testing.T) {
	s := New(5, 3)
	s.DrawBorder()

	want := "┌───┐\n│   │\n└───┘"
	if s.String() != want {
		t.Errorf("String() =\n%s\nexpected\n%s", s.String(), want)
	}
}

func TestResizePreservesContent(t *testing.T) {
	s := New(6, 3)
	s.Set(1, 1, '*')

	s.Resize(10, 5)
	if s.Width() != 10 || s.Height() != 5 {
		t.Fatalf("size = %dx%d after Resize, expected 10x5", s.Width(), s.Height())
	}
	if s.Get(1, 1) != '*' {
		t.Errorf("Get(1, 1) = %q after grow, expected '*'", s.Get(1, 1))
	}

	s.Resize(2, 2)
	if s.Get(1, 1) != '*' {
		t.Errorf("Get(1, 1) = %q after shrink, expected '*'", s.Get(1, 1))
	}
}

func TestRowOutOfBounds(t *testing.T) {
	s := New(4, 2)
	if s.Row(5) != strings.Repeat(" ", 4) {
		t.Errorf("Row(5) = %q, expected blank row", s.Row(5))
	}
}
