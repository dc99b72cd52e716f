package squareparity

import (
	"errors"
	"reflect"
	"strconv"
	"testing"
)

func TestReservedPositions(t *testing.T) {
	tests := []struct {
		length   int
		expected []int
		err      error
	}{
		{4, []int{1, 2}, nil},
		{16, []int{1, 2, 4, 8}, nil},
		{64, []int{1, 2, 4, 8, 16, 32}, nil},
		{256, []int{1, 2, 4, 8, 16, 32, 64, 128}, nil},
		{0, nil, ErrInvalidGeometry},
		{1, nil, ErrInvalidGeometry},
		{8, nil, ErrInvalidGeometry},
		{12, nil, ErrInvalidGeometry},
		{36, nil, ErrInvalidGeometry},
		{-16, nil, ErrInvalidGeometry},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			actual, err := ReservedPositions(test.length)
			if !errors.Is(err, test.err) {
				t.Fatalf("expected error %v but found %v", test.err, err)
			}
			if !reflect.DeepEqual(actual, test.expected) {
				t.Fatalf("expected %v but found %v", test.expected, actual)
			}
		})
	}
}

func TestNewLayout_Groups16(t *testing.T) {
	l, err := NewLayout(16)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}

	expected := []Group{
		{Position: 1, Axis: Columns, Lines: []int{1, 3}},
		{Position: 2, Axis: Columns, Lines: []int{2, 3}},
		{Position: 4, Axis: Rows, Lines: []int{1, 3}},
		{Position: 8, Axis: Rows, Lines: []int{2, 3}},
	}
	if !reflect.DeepEqual(l.Groups, expected) {
		t.Fatalf("expected %v but found %v", expected, l.Groups)
	}

	data := []int{3, 5, 6, 7, 9, 10, 11, 12, 13, 14, 15}
	if !reflect.DeepEqual(l.DataPositions(), data) {
		t.Fatalf("expected %v but found %v", data, l.DataPositions())
	}
	if l.Side != 4 || l.DataSlots() != 11 || l.ParitySlots() != 4 {
		t.Fatalf("unexpected geometry %v", l)
	}
}

// Each reserved position must be covered by its own group and by no other,
// otherwise writing one parity would disturb another.
func TestLayout_ReservedPositionsAreIndependent(t *testing.T) {
	for _, length := range []int{4, 16, 64, 256, 1024} {
		t.Run(strconv.Itoa(length), func(t *testing.T) {
			l, err := NewLayout(length)
			if err != nil {
				t.Fatalf("expected no error but found: %v", err)
			}

			for i, g := range l.Groups {
				block := make([]int, length)
				block[g.Position] = 1
				parities := l.DirectionalParities(block)
				for j, p := range parities {
					expected := 0
					if i == j {
						expected = 1
					}
					if p != expected {
						t.Fatalf("position %v: expected parity %v of group %v but found %v", g.Position, expected, j, p)
					}
				}
			}
		})
	}
}

func TestLayout_DataPositionsPartition(t *testing.T) {
	for _, length := range []int{4, 16, 64, 256} {
		t.Run(strconv.Itoa(length), func(t *testing.T) {
			l, err := NewLayout(length)
			if err != nil {
				t.Fatalf("expected no error but found: %v", err)
			}

			seen := make(map[int]bool)
			for _, p := range append(l.DataPositions(), l.ReservedPositions()...) {
				if p <= 0 || p >= length {
					t.Fatalf("position %v outside (0,%v)", p, length)
				}
				if seen[p] {
					t.Fatalf("position %v used twice", p)
				}
				seen[p] = true
			}
			if len(seen) != length-1 {
				t.Fatalf("expected %v positions but found %v", length-1, len(seen))
			}
		})
	}
}

func TestIsqrt(t *testing.T) {
	for n := 0; n < 5000; n++ {
		r := isqrt(n)
		if r*r > n || (r+1)*(r+1) <= n {
			t.Fatalf("isqrt(%v) == %v", n, r)
		}
	}
}
