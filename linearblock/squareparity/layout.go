package squareparity

import (
	"fmt"
	"math/bits"

	mat "github.com/nathanhack/sparsemat"
	"golang.org/x/exp/slices"
)

// Axis selects whether a Group covers full columns or full rows of the square.
type Axis int

const (
	Columns Axis = iota
	Rows
)

func (a Axis) String() string {
	if a == Rows {
		return "rows"
	}
	return "columns"
}

// Group is one directional parity relation: the parity bit stored at Position
// covers every bit lying in the listed Lines (columns or rows).
type Group struct {
	Position int
	Axis     Axis
	Lines    []int
}

// Layout is the geometry of a square block. Groups is the single ordered table
// shared by placement and parity: Groups[i].Position receives the i-th
// directional parity at encode time.
type Layout struct {
	Length int
	Side   int
	Groups []Group

	dataPositions []int
}

// NewLayout derives the geometry for a block of length. The length must be a
// perfect square whose side is a power of two (>=2).
func NewLayout(length int) (*Layout, error) {
	side, err := sideOf(length)
	if err != nil {
		return nil, err
	}

	k := bits.TrailingZeros(uint(side))
	groups := make([]Group, 0, 2*k)

	//columns first: the bit j column group lives at row 0, column 2^j
	for j := 0; j < k; j++ {
		groups = append(groups, Group{Position: 1 << j, Axis: Columns, Lines: linesWithBit(side, j)})
	}
	//then rows: the bit j row group lives at row 2^j, column 0
	for j := 0; j < k; j++ {
		groups = append(groups, Group{Position: side << j, Axis: Rows, Lines: linesWithBit(side, j)})
	}

	l := &Layout{
		Length: length,
		Side:   side,
		Groups: groups,
	}

	reserved := l.ReservedPositions()
	l.dataPositions = make([]int, 0, length-1-len(reserved))
	for i := 1; i < length; i++ {
		if !slices.Contains(reserved, i) {
			l.dataPositions = append(l.dataPositions, i)
		}
	}
	return l, nil
}

// ReservedPositions returns the parity positions for a block of length in the
// order the directional parities are written into them.
func ReservedPositions(length int) ([]int, error) {
	l, err := NewLayout(length)
	if err != nil {
		return nil, err
	}
	return l.ReservedPositions(), nil
}

func (l *Layout) ReservedPositions() []int {
	positions := make([]int, len(l.Groups))
	for i, g := range l.Groups {
		positions[i] = g.Position
	}
	return positions
}

// DataPositions returns the block indices that carry data, ascending.
func (l *Layout) DataPositions() []int {
	return slices.Clone(l.dataPositions)
}

// DataSlots is the number of data bits a block of this layout carries.
func (l *Layout) DataSlots() int {
	return len(l.dataPositions)
}

// ParitySlots is the number of directional parity bits (position 0 excluded).
func (l *Layout) ParitySlots() int {
	return len(l.Groups)
}

// ParityCheckMatrix returns H where H*block is the syndrome: one row per
// directional group in Groups order followed by the all ones overall row.
func (l *Layout) ParityCheckMatrix() mat.SparseMat {
	H := mat.DOKMat(len(l.Groups)+1, l.Length)
	for r, g := range l.Groups {
		for _, line := range g.Lines {
			for i := 0; i < l.Side; i++ {
				H.Set(r, l.index(g.Axis, line, i), 1)
			}
		}
	}
	for c := 0; c < l.Length; c++ {
		H.Set(len(l.Groups), c, 1)
	}
	return H
}

// Clone returns a deep copy of l.
func (l *Layout) Clone() *Layout {
	groups := make([]Group, len(l.Groups))
	for i, g := range l.Groups {
		groups[i] = Group{Position: g.Position, Axis: g.Axis, Lines: slices.Clone(g.Lines)}
	}
	return &Layout{
		Length:        l.Length,
		Side:          l.Side,
		Groups:        groups,
		dataPositions: slices.Clone(l.dataPositions),
	}
}

func (l *Layout) String() string {
	return fmt.Sprintf("{Length:%v Side:%v Reserved:%v}", l.Length, l.Side, l.ReservedPositions())
}

// index maps the i-th bit of a line (column or row) to its block index.
func (l *Layout) index(axis Axis, line, i int) int {
	if axis == Columns {
		return line + i*l.Side
	}
	return line*l.Side + i
}

func linesWithBit(side, bit int) []int {
	lines := make([]int, 0, side/2)
	for line := 0; line < side; line++ {
		if line&(1<<bit) != 0 {
			lines = append(lines, line)
		}
	}
	return lines
}

func sideOf(length int) (int, error) {
	if length < 4 {
		return 0, fmt.Errorf("%w: block length %v is smaller than a 2x2 square", ErrInvalidGeometry, length)
	}
	side := isqrt(length)
	if side*side != length {
		return 0, fmt.Errorf("%w: block length %v is not a perfect square", ErrInvalidGeometry, length)
	}
	if side&(side-1) != 0 {
		return 0, fmt.Errorf("%w: block side %v is not a power of two", ErrInvalidGeometry, side)
	}
	return side, nil
}

// isqrt is floor(sqrt(n)) without going through float64.
func isqrt(n int) int {
	if n < 2 {
		return n
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}
