// Package table implements a fixed-capacity piecewise-linear lookup table.
//
// A Table holds breakpoints ordered by X. Interp maps an X inside
// [first.X, last.X) onto the straight line between the two breakpoints that
// bracket it. Tables are built once with PushBack, Mirror and NPlicate and are
// read-only afterwards.
package table

import (
	"errors"

	"golang.org/x/exp/constraints"
)

var (
	ErrCapacity  = errors.New("capacity_exceeded")
	ErrEmpty     = errors.New("empty_table")
	ErrUnordered = errors.New("unordered_breakpoint")
)

// Point is one breakpoint of a table.
type Point[X constraints.Unsigned, Y constraints.Integer] struct {
	X X
	Y Y
}

// Table is a bounded sequence of breakpoints with non-decreasing X.
type Table[X constraints.Unsigned, Y constraints.Integer] struct {
	pts []Point[X, Y]
}

// New returns an empty table that can hold capacity breakpoints.
func New[X constraints.Unsigned, Y constraints.Integer](capacity int) *Table[X, Y] {
	if capacity < 0 {
		capacity = 0
	}
	return &Table[X, Y]{pts: make([]Point[X, Y], 0, capacity)}
}

// Len returns the number of breakpoints.
func (t *Table[X, Y]) Len() int { return len(t.pts) }

// Cap returns the fixed capacity.
func (t *Table[X, Y]) Cap() int { return cap(t.pts) }

// At returns breakpoint i. It panics if i is out of range, like a slice index.
func (t *Table[X, Y]) At(i int) Point[X, Y] { return t.pts[i] }

func (t *Table[X, Y]) First() (Point[X, Y], bool) {
	if len(t.pts) == 0 {
		return Point[X, Y]{}, false
	}
	return t.pts[0], true
}

func (t *Table[X, Y]) Last() (Point[X, Y], bool) {
	if len(t.pts) == 0 {
		return Point[X, Y]{}, false
	}
	return t.pts[len(t.pts)-1], true
}

// Period is the X of the last breakpoint, 0 for an empty table.
func (t *Table[X, Y]) Period() X {
	p, _ := t.Last()
	return p.X
}

// Points returns a copy of the breakpoints.
func (t *Table[X, Y]) Points() []Point[X, Y] {
	out := make([]Point[X, Y], len(t.pts))
	copy(out, t.pts)
	return out
}

// Clone returns an independent copy with the same capacity.
func (t *Table[X, Y]) Clone() *Table[X, Y] {
	c := New[X, Y](cap(t.pts))
	c.pts = append(c.pts, t.pts...)
	return c
}

// PushBack appends pts in order. The whole batch is rejected, leaving the table
// untouched, if it does not fit (ErrCapacity) or would break the X order
// (ErrUnordered).
func (t *Table[X, Y]) PushBack(pts ...Point[X, Y]) error {
	if len(t.pts)+len(pts) > cap(t.pts) {
		return ErrCapacity
	}
	prev, ok := t.Last()
	for _, p := range pts {
		if ok && p.X < prev.X {
			return ErrUnordered
		}
		prev, ok = p, true
	}
	t.pts = append(t.pts, pts...)
	return nil
}

// Add appends a single breakpoint.
func (t *Table[X, Y]) Add(x X, y Y) error {
	return t.PushBack(Point[X, Y]{X: x, Y: y})
}

// PopBack removes and returns the last breakpoint.
func (t *Table[X, Y]) PopBack() (Point[X, Y], bool) {
	p, ok := t.Last()
	if ok {
		t.pts = t.pts[:len(t.pts)-1]
	}
	return p, ok
}

// Mirror appends the breakpoints before the last one in reverse, reflected
// about the last X (x' = 2*last.X - x). A rising half becomes a symmetric
// rise and fall whose period is twice the old one.
func (t *Table[X, Y]) Mirror() error {
	n := len(t.pts)
	if n == 0 {
		return ErrEmpty
	}
	if 2*n-1 > cap(t.pts) {
		return ErrCapacity
	}
	end := t.pts[n-1].X
	for i := n - 2; i >= 0; i-- {
		p := t.pts[i]
		t.pts = append(t.pts, Point[X, Y]{X: 2*end - p.X, Y: p.Y})
	}
	return nil
}

// NPlicate appends n more copies of the whole sequence, copy j shifted by
// j times the last X. The sequence should start at X 0 so that the copies line
// up back to back.
func (t *Table[X, Y]) NPlicate(n int) error {
	base := len(t.pts)
	if base == 0 {
		return ErrEmpty
	}
	if n <= 0 {
		return nil
	}
	if base*(n+1) > cap(t.pts) {
		return ErrCapacity
	}
	period := t.pts[base-1].X
	for j := 1; j <= n; j++ {
		off := X(j) * period
		for i := 0; i < base; i++ {
			p := t.pts[i]
			t.pts = append(t.pts, Point[X, Y]{X: p.X + off, Y: p.Y})
		}
	}
	return nil
}

// Interp returns the value of the curve at x. Outside [first.X, last.X) it
// returns zero, so a query exactly at the last X yields 0, not the last Y.
// Callers wrap their query into the table's period themselves.
func (t *Table[X, Y]) Interp(x X) (Y, error) {
	n := len(t.pts)
	if n == 0 {
		return 0, ErrEmpty
	}
	if x < t.pts[0].X {
		return 0, nil
	}
	for i := 1; i < n; i++ {
		p1 := t.pts[i]
		if p1.X <= x {
			continue
		}
		p0 := t.pts[i-1]
		dy := int64(p1.Y) - int64(p0.Y)
		dx := int64(p1.X - p0.X)
		return Y(int64(p0.Y) + dy*int64(x-p0.X)/dx), nil
	}
	return 0, nil
}
