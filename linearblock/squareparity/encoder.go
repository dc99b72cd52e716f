package squareparity

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/nathanhack/squareparity/linearblock"
)

// Encoder packs data bits into square parity blocks of DataBits()+ParityBits()
// bits. It is immutable and safe for concurrent use.
type Encoder struct {
	dataBits   int
	parityBits int
	layout     *Layout
}

// New creates an encoder for blocks holding dataBits+parityBits bits.
// Position 0 (the overall parity) is counted in dataBits, so a block carries
// dataBits-1 bits of payload, and parityBits must equal the number of
// reserved positions of the resulting square.
func New(dataBits, parityBits int) (*Encoder, error) {
	if dataBits < 1 || parityBits < 1 {
		return nil, fmt.Errorf("%w: data (%v) and parity (%v) capacity must be positive", ErrInvalidGeometry, dataBits, parityBits)
	}

	layout, err := NewLayout(dataBits + parityBits)
	if err != nil {
		return nil, err
	}

	if parityBits != layout.ParitySlots() {
		return nil, fmt.Errorf("%w: parity capacity %v does not match the %v reserved positions of a %vx%v block",
			ErrInvalidGeometry, parityBits, layout.ParitySlots(), layout.Side, layout.Side)
	}

	return &Encoder{
		dataBits:   dataBits,
		parityBits: parityBits,
		layout:     layout,
	}, nil
}

func (e *Encoder) DataBits() int { return e.dataBits }
func (e *Encoder) ParityBits() int { return e.parityBits }
func (e *Encoder) Length() int { return e.layout.Length }

// Layout returns a copy of the encoder's geometry.
func (e *Encoder) Layout() *Layout {
	return e.layout.Clone()
}

// DataSlots is the exact number of bits Encode expects.
func (e *Encoder) DataSlots() int {
	return e.layout.DataSlots()
}

// ParityCheck returns the code as a GF(2) parity check matrix; its syndrome
// is the directional parities followed by the overall parity.
func (e *Encoder) ParityCheck() *linearblock.ParityCheck {
	return &linearblock.ParityCheck{H: e.layout.ParityCheckMatrix()}
}

// Encode writes data into the data positions of a new block, fills in the
// directional parities and finally the overall parity at position 0.
func (e *Encoder) Encode(data []int) (*Message, error) {
	slots := e.layout.DataSlots()
	switch {
	case len(data) < slots:
		return nil, fmt.Errorf("%w: %v data bits required but found %v", ErrInsufficientData, slots, len(data))
	case len(data) > slots:
		return nil, fmt.Errorf("%w: %v data bits required but found %v", ErrExcessData, slots, len(data))
	}

	block := make([]int, e.layout.Length)
	for i, p := range e.layout.dataPositions {
		if data[i] != 0 && data[i] != 1 {
			return nil, fmt.Errorf("%w: found %v at data index %v", ErrInvalidBit, data[i], i)
		}
		block[p] = data[i]
	}

	// the reserved positions are still zero so they don't perturb the parities
	parities := e.layout.DirectionalParities(block)
	for i, g := range e.layout.Groups {
		block[g.Position] = parities[i]
	}

	block[0] = OverallParity(block)

	return &Message{data: block, side: e.layout.Side}, nil
}

// Extract returns the data bits of block after checking it.
func (e *Encoder) Extract(block []int) ([]int, error) {
	if len(block) != e.layout.Length {
		return nil, fmt.Errorf("%w: block length == %v required but found %v", ErrInvalidGeometry, e.layout.Length, len(block))
	}
	if err := Verify(block); err != nil {
		return nil, err
	}

	data := make([]int, len(e.layout.dataPositions))
	for i, p := range e.layout.dataPositions {
		data[i] = block[p]
	}
	return data, nil
}

// Validate reports whether every parity of block evaluates to zero. Blocks
// whose length is not a valid square are never valid.
func Validate(block []int) bool {
	return Verify(block) == nil
}

// Verify is Validate with the reason for failure.
func Verify(block []int) error {
	layout, err := NewLayout(len(block))
	if err != nil {
		return err
	}

	for i, bit := range block {
		if bit != 0 && bit != 1 {
			return fmt.Errorf("%w: found %v at position %v", ErrInvalidBit, bit, i)
		}
	}

	parities := layout.DirectionalParities(block)
	for i, p := range parities {
		if p != 0 {
			return fmt.Errorf("%w: %v parity at position %v", ErrCorrupted, layout.Groups[i].Axis, layout.Groups[i].Position)
		}
	}
	if OverallParity(block) != 0 {
		return fmt.Errorf("%w: overall parity", ErrCorrupted)
	}
	return nil
}

// For JSON (un)marshalling
type encoder struct {
	DataBits   int
	ParityBits int
}

func (e *Encoder) MarshalJSON() ([]byte, error) {
	return json.Marshal(encoder{DataBits: e.dataBits, ParityBits: e.parityBits})
}

// UnmarshalJSON rebuilds the layout so a loaded encoder is always valid.
func (e *Encoder) UnmarshalJSON(bytes []byte) error {
	var enc encoder
	err := json.Unmarshal(bytes, &enc)
	if err != nil {
		return err
	}

	tmp, err := New(enc.DataBits, enc.ParityBits)
	if err != nil {
		return err
	}
	*e = *tmp
	return nil
}

func (e *Encoder) String() string {
	return fmt.Sprintf("{Data:%v Parity:%v Layout:%v}", e.dataBits, e.parityBits, e.layout)
}

// Message is an encoded block. Accessors hand out copies so a Message never
// changes after Encode returns it.
type Message struct {
	data []int
	side int
}

func (m *Message) Data() []int {
	out := make([]int, len(m.data))
	copy(out, m.data)
	return out
}

func (m *Message) Len() int { return len(m.data) }
func (m *Message) At(i int) int { return m.data[i] }
func (m *Message) Side() int { return m.side }

// Grid returns the block as rows of the square.
func (m *Message) Grid() [][]int {
	grid := make([][]int, m.side)
	for r := range grid {
		grid[r] = make([]int, m.side)
		copy(grid[r], m.data[r*m.side:(r+1)*m.side])
	}
	return grid
}

func (m *Message) String() string {
	buf := strings.Builder{}
	for r, row := range m.Grid() {
		if r > 0 {
			buf.WriteString("\n")
		}
		for c, b := range row {
			if c > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString(fmt.Sprint(b))
		}
	}
	return buf.String()
}
