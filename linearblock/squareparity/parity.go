package squareparity

import (
	"fmt"
)

// ColumnParity returns the XOR of every bit in the given full columns.
func (l *Layout) ColumnParity(block []int, columns []int) int {
	return l.lineParity(block, Columns, columns)
}

// RowParity returns the XOR of every bit in the given full rows.
func (l *Layout) RowParity(block []int, rows []int) int {
	return l.lineParity(block, Rows, rows)
}

// DirectionalParities returns one parity per group, in Groups order.
func (l *Layout) DirectionalParities(block []int) []int {
	parities := make([]int, len(l.Groups))
	for i, g := range l.Groups {
		parities[i] = l.lineParity(block, g.Axis, g.Lines)
	}
	return parities
}

// OverallParity returns the XOR of every bit in the block.
func OverallParity(block []int) int {
	parity := 0
	for _, b := range block {
		parity ^= b
	}
	return parity & 1
}

// DirectionalParities derives the layout from the block length and returns its
// directional parities.
func DirectionalParities(block []int) ([]int, error) {
	l, err := NewLayout(len(block))
	if err != nil {
		return nil, err
	}
	return l.DirectionalParities(block), nil
}

func (l *Layout) lineParity(block []int, axis Axis, lines []int) int {
	if len(block) != l.Length {
		panic(fmt.Sprintf("block length == %v is required but found %v", l.Length, len(block)))
	}

	parity := 0
	for _, line := range lines {
		if line < 0 || line >= l.Side {
			panic(fmt.Sprintf("%v index %v outside [0,%v)", axis, line, l.Side))
		}
		for i := 0; i < l.Side; i++ {
			parity ^= block[l.index(axis, line, i)]
		}
	}
	return parity & 1
}
