package comic

import (
	"fmt"
	"strings"
)

// Position is a 9-point compass placement hint for elements that need a
// synthesized bubble. Hints are advisory: detected regions ignore them.
type Position int

const (
	Center Position = iota
	TopLeft
	Top
	TopRight
	Left
	Right
	BottomLeft
	Bottom
	BottomRight
)

var positionNames = map[Position]string{
	Center:      "center",
	TopLeft:     "top-left",
	Top:         "top",
	TopRight:    "top-right",
	Left:        "left",
	Right:       "right",
	BottomLeft:  "bottom-left",
	Bottom:      "bottom",
	BottomRight: "bottom-right",
}

// ParsePosition maps a hint string to a Position. Unknown hints fall back
// to Center; the error lets strict callers reject typos instead.
func ParsePosition(s string) (Position, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for p, n := range positionNames {
		if n == name {
			return p, nil
		}
	}
	return Center, fmt.Errorf("unknown position %q", s)
}

// String returns the wire name of the position.
func (p Position) String() string {
	if n, ok := positionNames[p]; ok {
		return n
	}
	return fmt.Sprintf("Position(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Position) MarshalText() ([]byte, error) {
	if _, ok := positionNames[p]; !ok {
		return nil, fmt.Errorf("unknown position %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown hints parse as
// Center rather than failing, so a sloppy upstream hint degrades to a
// centered bubble instead of a dropped element.
func (p *Position) UnmarshalText(text []byte) error {
	parsed, _ := ParsePosition(string(text))
	*p = parsed
	return nil
}

// Horizontal returns -1 for left-leaning hints, 0 for centered, +1 for
// right-leaning.
func (p Position) Horizontal() int {
	switch p {
	case TopLeft, Left, BottomLeft:
		return -1
	case TopRight, Right, BottomRight:
		return 1
	}
	return 0
}

// Vertical returns -1 for top-leaning hints, 0 for centered, +1 for
// bottom-leaning.
func (p Position) Vertical() int {
	switch p {
	case TopLeft, Top, TopRight:
		return -1
	case BottomLeft, Bottom, BottomRight:
		return 1
	}
	return 0
}
