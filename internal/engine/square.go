package engine

import "fmt"

// Square addresses one of the 64 board cells. X is the file (0 = a-file),
// Y is the rank index counted from Black's back rank (0 = rank 8, 7 = rank 1).
type Square struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Sq is a shorthand constructor used heavily in tests.
func Sq(x, y int) Square { return Square{X: x, Y: y} }

func (s Square) InBounds() bool {
	return s.X >= 0 && s.X < 8 && s.Y >= 0 && s.Y < 8
}

func (s Square) offset(dx, dy int) Square {
	return Square{X: s.X + dx, Y: s.Y + dy}
}

// Notation returns the algebraic name of the square, e.g. "e4".
func (s Square) Notation() string {
	return fmt.Sprintf("%c%d", 'a'+s.X, 8-s.Y)
}

func parseSquare(s string) (Square, bool) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Square{}, false
	}
	return Square{X: int(s[0] - 'a'), Y: 8 - int(s[1]-'0')}, true
}
