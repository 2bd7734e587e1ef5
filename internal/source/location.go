package source

import "fmt"

// Position is a point in a source buffer.
// Line and Column are 1-based, Offset is the 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Advance returns the position after consuming r, which occupies size bytes.
func (p Position) Advance(r rune, size int) Position {
	p.Offset += size
	if r == '\n' {
		p.Line++
		p.Column = 1
		return p
	}
	p.Column++
	return p
}

// Location is a half-open span [Start, End) in a source buffer
type Location struct {
	Start *Position
	End   *Position
}

// NewLocation copies the given positions so the span does not alias token state.
func NewLocation(start, end *Position) *Location {
	loc := &Location{}
	if start != nil {
		s := *start
		loc.Start = &s
	}
	if end != nil {
		e := *end
		loc.End = &e
	}
	return loc
}

// Span joins two locations into one covering both.
func Span(from, to *Location) Location {
	if from == nil || to == nil {
		if from != nil {
			return *NewLocation(from.Start, from.End)
		}
		if to != nil {
			return *NewLocation(to.Start, to.End)
		}
		return Location{}
	}
	return *NewLocation(from.Start, to.End)
}

func (l *Location) String() string {
	if l == nil || l.Start == nil {
		return "?"
	}
	return l.Start.String()
}
