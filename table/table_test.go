package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type pt = Point[uint32, uint16]

func TestErrorsAreStableStrings(t *testing.T) {
	cases := map[string]error{
		"capacity_exceeded":    ErrCapacity,
		"empty_table":          ErrEmpty,
		"unordered_breakpoint": ErrUnordered,
	}
	for want, e := range cases {
		if e == nil || e.Error() != want {
			t.Fatalf("error %q mismatch: got %#v", want, e)
		}
	}
}

func TestPushBackCapacity(t *testing.T) {
	tb := New[uint32, uint16](3)
	require.NoError(t, tb.PushBack(pt{0, 0}, pt{10, 5}))
	assert.ErrorIs(t, tb.PushBack(pt{20, 0}, pt{30, 0}), ErrCapacity)
	assert.Equal(t, 2, tb.Len(), "rejected batch writes nothing")

	require.NoError(t, tb.Add(20, 0))
	assert.ErrorIs(t, tb.Add(30, 0), ErrCapacity)
	assert.Equal(t, 3, tb.Cap())
}

func TestPushBackOrder(t *testing.T) {
	tb := New[uint32, uint16](4)
	require.NoError(t, tb.PushBack(pt{0, 0}, pt{10, 1}, pt{10, 2}))
	assert.ErrorIs(t, tb.Add(5, 0), ErrUnordered)
	assert.ErrorIs(t, New[uint32, uint16](2).PushBack(pt{5, 0}, pt{4, 0}), ErrUnordered)
	assert.Equal(t, 3, tb.Len())
}

func TestEmptyTable(t *testing.T) {
	tb := New[uint32, uint16](4)
	_, err := tb.Interp(0)
	assert.ErrorIs(t, err, ErrEmpty)
	assert.ErrorIs(t, tb.Mirror(), ErrEmpty)
	assert.ErrorIs(t, tb.NPlicate(1), ErrEmpty)
	_, ok := tb.PopBack()
	assert.False(t, ok)
	_, ok = tb.First()
	assert.False(t, ok)
	assert.Equal(t, uint32(0), tb.Period())
}

func TestPopBack(t *testing.T) {
	tb := New[uint32, uint16](3)
	require.NoError(t, tb.PushBack(pt{0, 1}, pt{10, 2}))
	p, ok := tb.PopBack()
	require.True(t, ok)
	assert.Equal(t, pt{10, 2}, p)
	assert.Equal(t, 1, tb.Len())
	require.NoError(t, tb.Add(40, 9))
	assert.Equal(t, uint32(40), tb.Period())
}

func TestInterp(t *testing.T) {
	tb := New[uint32, uint16](3)
	require.NoError(t, tb.PushBack(pt{100, 0}, pt{200, 100}, pt{300, 40}))

	cases := []struct {
		x    uint32
		want uint16
	}{
		{0, 0},    // before the first breakpoint
		{100, 0},  // node
		{150, 50}, // rising
		{199, 99},
		{200, 100}, // node
		{250, 70},  // falling
		{299, 41},  // truncates toward zero
		{300, 0},   // last X is outside the domain
		{1000, 0},
	}
	for _, c := range cases {
		got, err := tb.Interp(c.x)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "x=%d", c.x)
	}
}

func TestInterpSignedValues(t *testing.T) {
	tb := New[uint8, int8](2)
	require.NoError(t, tb.PushBack(Point[uint8, int8]{0, -100}, Point[uint8, int8]{200, 100}))
	got, err := tb.Interp(50)
	require.NoError(t, err)
	assert.Equal(t, int8(-50), got)
}

func TestInterpExactAtNodes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 16).Draw(t, "n")
		tb := New[uint32, uint16](n)
		var x uint32
		for i := 0; i < n; i++ {
			x += rapid.Uint32Range(1, 10_000).Draw(t, "dx")
			if err := tb.Add(x, rapid.Uint16().Draw(t, "y")); err != nil {
				t.Fatalf("add: %v", err)
			}
		}
		for i := 0; i < n-1; i++ {
			p := tb.At(i)
			got, err := tb.Interp(p.X)
			if err != nil || got != p.Y {
				t.Fatalf("node %d: got %d (%v), want %d", i, got, err, p.Y)
			}
		}
		last, _ := tb.Last()
		if got, _ := tb.Interp(last.X); got != 0 {
			t.Fatalf("last node: got %d, want 0", got)
		}
		if got, _ := tb.Interp(last.X + rapid.Uint32Range(1, 1000).Draw(t, "past")); got != 0 {
			t.Fatalf("past the end: got %d, want 0", got)
		}
	})
}

func TestInterpStaysBetweenNeighbours(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x0 := rapid.Uint32Range(0, 1_000_000).Draw(t, "x0")
		x1 := x0 + rapid.Uint32Range(1, 1_000_000).Draw(t, "dx")
		y0 := rapid.Uint16().Draw(t, "y0")
		y1 := rapid.Uint16().Draw(t, "y1")
		tb := New[uint32, uint16](2)
		if err := tb.PushBack(pt{x0, y0}, pt{x1, y1}); err != nil {
			t.Fatalf("push: %v", err)
		}
		x := rapid.Uint32Range(x0, x1-1).Draw(t, "x")
		got, _ := tb.Interp(x)
		lo, hi := min(y0, y1), max(y0, y1)
		if got < lo || got > hi {
			t.Fatalf("interp(%d) = %d outside [%d, %d]", x, got, lo, hi)
		}
	})
}

func TestMirrorPalindrome(t *testing.T) {
	const period = 4000
	tb := New[uint32, uint16](7)
	require.NoError(t, tb.PushBack(
		pt{0, 0},
		pt{period / 8, 0},
		pt{period / 3, 30},
		pt{period / 2, 100},
	))
	require.NoError(t, tb.Mirror())
	require.Equal(t, 7, tb.Len())

	end := uint32(2 * (period / 2))
	assert.Equal(t, end, tb.Period())
	for i := 0; i < 3; i++ {
		a, b := tb.At(i), tb.At(tb.Len()-1-i)
		assert.Equal(t, end-a.X, b.X)
		assert.Equal(t, a.Y, b.Y)
	}
	for x := uint32(0); x < period/2; x += 37 {
		up, _ := tb.Interp(x)
		down, _ := tb.Interp(end - x)
		if x == 0 {
			continue // end - 0 is outside the domain
		}
		assert.InDelta(t, up, down, 1, "x=%d", x)
	}
	for i := 1; i < tb.Len(); i++ {
		assert.LessOrEqual(t, tb.At(i-1).X, tb.At(i).X)
	}
}

func TestMirrorCapacity(t *testing.T) {
	tb := New[uint32, uint16](4)
	require.NoError(t, tb.PushBack(pt{0, 0}, pt{5, 1}, pt{10, 2}))
	assert.ErrorIs(t, tb.Mirror(), ErrCapacity)
	assert.Equal(t, 3, tb.Len())
}

func TestNPlicate(t *testing.T) {
	const period = 250
	base := []pt{{0, 100}, {100, 100}, {100, 0}, {period, 0}}
	for n := 1; n <= 4; n++ {
		tb := New[uint32, uint16](4 * n)
		require.NoError(t, tb.PushBack(base...))
		require.NoError(t, tb.NPlicate(n-1))
		require.Equal(t, 4*n, tb.Len())
		for j := 0; j < n; j++ {
			for i, b := range base {
				got := tb.At(4*j + i)
				assert.Equal(t, b.X+uint32(j*period), got.X)
				assert.Equal(t, b.Y, got.Y)
			}
		}
	}
}

func TestNPlicateCapacity(t *testing.T) {
	tb := New[uint32, uint16](7)
	require.NoError(t, tb.PushBack(pt{0, 1}, pt{5, 1}))
	require.NoError(t, tb.NPlicate(0))
	assert.ErrorIs(t, tb.NPlicate(3), ErrCapacity)
	assert.Equal(t, 2, tb.Len())
	require.NoError(t, tb.NPlicate(2))
	assert.Equal(t, 6, tb.Len())
}

func TestCloneIsIndependent(t *testing.T) {
	tb := New[uint32, uint16](3)
	require.NoError(t, tb.PushBack(pt{0, 1}, pt{5, 2}))
	c := tb.Clone()
	require.NoError(t, c.Add(9, 3))
	assert.Equal(t, 2, tb.Len())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, tb.Cap(), c.Cap())
	assert.Equal(t, []pt{{0, 1}, {5, 2}}, tb.Points())
}
