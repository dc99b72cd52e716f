package squareparity

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"strconv"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/nathanhack/squareparity/benchmarking"
)

var scenarioInput = []int{1, 1, 0, 0, 1, 0, 1, 1, 0, 1, 1}

func flip(block []int, positions ...int) []int {
	out := make([]int, len(block))
	copy(out, block)
	for _, p := range positions {
		out[p] = 1 - out[p]
	}
	return out
}

func TestEncoder_EncodeStatic(t *testing.T) {
	enc, err := New(12, 4)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}

	message, err := enc.Encode(scenarioInput)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}

	if !reflect.DeepEqual(message.Data(), scenarioBlock) {
		t.Fatalf("expected %v but found %v", scenarioBlock, message.Data())
	}
}

func TestEncoder_EncodeSmallest(t *testing.T) {
	enc, err := New(2, 2)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}

	tests := []struct {
		input    []int
		expected []int
	}{
		{[]int{0}, []int{0, 0, 0, 0}},
		{[]int{1}, []int{1, 1, 1, 1}},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			message, err := enc.Encode(test.input)
			if err != nil {
				t.Fatalf("expected no error but found: %v", err)
			}
			if !reflect.DeepEqual(message.Data(), test.expected) {
				t.Fatalf("expected %v but found %v", test.expected, message.Data())
			}
		})
	}
}

func TestValidate_OneBitErrorAtZero(t *testing.T) {
	enc, _ := New(12, 4)
	message, err := enc.Encode(scenarioInput)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}

	if Validate(flip(message.Data(), 0)) {
		t.Fatalf("expected flipped position 0 to be detected")
	}
}

func TestValidate_TwoBitError(t *testing.T) {
	enc, _ := New(12, 4)
	rng := rand.New(rand.NewSource(7))

	tests := [][]int{
		{5, 9},
		{1, 2},
		{3, 15},
		{0, 8},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			message, err := enc.Encode(benchmarking.RandomMessage(rng, enc.DataSlots()))
			if err != nil {
				t.Fatalf("expected no error but found: %v", err)
			}

			if Validate(flip(message.Data(), test...)) {
				t.Fatalf("expected flipped positions %v to be detected", test)
			}
		})
	}
}

func TestValidate_SingleBitErrorEveryPosition(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	configs := [][2]int{{2, 2}, {12, 4}, {58, 6}, {248, 8}}

	for i, config := range configs {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			enc, err := New(config[0], config[1])
			if err != nil {
				t.Fatalf("expected no error but found: %v", err)
			}

			for trial := 0; trial < 10; trial++ {
				message, err := enc.Encode(benchmarking.RandomMessage(rng, enc.DataSlots()))
				if err != nil {
					t.Fatalf("expected no error but found: %v", err)
				}

				for p := 0; p < message.Len(); p++ {
					if Validate(flip(message.Data(), p)) {
						t.Fatalf("expected flipped position %v to be detected in %v", p, message.Data())
					}
				}
			}
		})
	}
}

func TestValidate_RandomMessages(t *testing.T) {
	enc, _ := New(12, 4)
	rng := rand.New(rand.NewSource(2024))

	for trial := 0; trial < 100_000; trial++ {
		input := benchmarking.RandomMessage(rng, 11)
		message, err := enc.Encode(input)
		if err != nil {
			t.Fatalf("expected no error but found: %v", err)
		}
		if message.Len() != 16 {
			t.Fatalf("expected length 16 but found %v", message.Len())
		}
		if !Validate(message.Data()) {
			t.Fatalf("expected valid block for input %v but found %v", input, message.Data())
		}
	}
}

func TestEncoder_Deterministic(t *testing.T) {
	enc, _ := New(58, 6)
	rng := rand.New(rand.NewSource(3))
	input := benchmarking.RandomMessage(rng, enc.DataSlots())

	first, err := enc.Encode(input)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, _ := enc.Encode(input)
		if !reflect.DeepEqual(first.Data(), again.Data()) {
			t.Fatalf("expected %v but found %v", first.Data(), again.Data())
		}
	}
}

func TestEncoder_Extract(t *testing.T) {
	enc, _ := New(248, 8)
	rng := rand.New(rand.NewSource(5))
	input := benchmarking.RandomMessage(rng, enc.DataSlots())

	message, _ := enc.Encode(input)
	actual, err := enc.Extract(message.Data())
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}
	if !reflect.DeepEqual(actual, input) {
		t.Fatalf("expected %v but found %v", input, actual)
	}

	_, err = enc.Extract(flip(message.Data(), 17))
	if !errors.Is(err, ErrCorrupted) {
		t.Fatalf("expected %v but found %v", ErrCorrupted, err)
	}

	_, err = enc.Extract(scenarioBlock)
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("expected %v but found %v", ErrInvalidGeometry, err)
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		data, parity int
	}{
		{12, 5},
		{13, 3},
		{30, 6},
		{0, 4},
		{16, 0},
		{1, 2},
		{60, 4},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			_, err := New(test.data, test.parity)
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Fatalf("expected %v but found %v", ErrInvalidGeometry, err)
			}
		})
	}
}

func TestEncoder_EncodeErrors(t *testing.T) {
	enc, _ := New(12, 4)

	tests := []struct {
		input    []int
		expected error
	}{
		{nil, ErrInsufficientData},
		{scenarioInput[:10], ErrInsufficientData},
		{append([]int{0}, scenarioInput...), ErrExcessData},
		{[]int{1, 1, 0, 0, 1, 2, 1, 1, 0, 1, 1}, ErrInvalidBit},
		{[]int{1, 1, 0, 0, 1, 0, 1, 1, 0, 1, -1}, ErrInvalidBit},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			message, err := enc.Encode(test.input)
			if !errors.Is(err, test.expected) {
				t.Fatalf("expected %v but found %v", test.expected, err)
			}
			if message != nil {
				t.Fatalf("expected no message but found %v", message)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		block    []int
		expected error
	}{
		{scenarioBlock, nil},
		{flip(scenarioBlock, 6), ErrCorrupted},
		{flip(scenarioBlock, 0), ErrCorrupted},
		{make([]int, 12), ErrInvalidGeometry},
		{nil, ErrInvalidGeometry},
		{append([]int{2}, scenarioBlock[1:]...), ErrInvalidBit},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			err := Verify(test.block)
			if !errors.Is(err, test.expected) {
				t.Fatalf("expected %v but found %v", test.expected, err)
			}
			if Validate(test.block) != (test.expected == nil) {
				t.Fatalf("expected Validate == %v", test.expected == nil)
			}
		})
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	block := flip(scenarioBlock, 3)
	before := flip(block)
	Validate(block)
	if !reflect.DeepEqual(block, before) {
		t.Fatalf("expected %v but found %v", before, block)
	}
}

func TestMessage_Immutable(t *testing.T) {
	enc, _ := New(12, 4)
	message, _ := enc.Encode(scenarioInput)

	data := message.Data()
	data[0] = 1 - data[0]
	message.Grid()[1][1] = 7

	if !reflect.DeepEqual(message.Data(), scenarioBlock) {
		t.Fatalf("expected %v but found %v", scenarioBlock, message.Data())
	}
}

func TestEncoder_LayoutIsCopy(t *testing.T) {
	enc, _ := New(12, 4)

	layout := enc.Layout()
	layout.Length = 9
	layout.Side = 3
	layout.Groups[0].Position = 5
	layout.Groups[1].Lines[0] = 0
	layout.Groups = layout.Groups[:1]

	again := enc.Layout()
	if again.Length != 16 || again.Side != 4 {
		t.Fatalf("expected 16/4 but found %v/%v", again.Length, again.Side)
	}
	if !reflect.DeepEqual(again.ReservedPositions(), []int{1, 2, 4, 8}) {
		t.Fatalf("expected [1 2 4 8] but found %v", again.ReservedPositions())
	}
	if !reflect.DeepEqual(again.Groups[1].Lines, []int{2, 3}) {
		t.Fatalf("expected [2 3] but found %v", again.Groups[1].Lines)
	}

	message, err := enc.Encode(scenarioInput)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}
	if !reflect.DeepEqual(message.Data(), scenarioBlock) {
		t.Fatalf("expected %v but found %v", scenarioBlock, message.Data())
	}
}

func TestEncoder_JSON(t *testing.T) {
	enc, _ := New(58, 6)
	bs, err := json.Marshal(enc)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}

	var actual Encoder
	err = json.Unmarshal(bs, &actual)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}
	if actual.DataBits() != 58 || actual.ParityBits() != 6 || actual.DataSlots() != 57 {
		t.Fatalf("expected %v but found %v", enc, &actual)
	}

	err = json.Unmarshal([]byte(`{"DataBits":12,"ParityBits":5}`), &actual)
	if err == nil {
		t.Fatalf("expected an error for an invalid geometry")
	}
}

func TestEncoder_ParityCheck(t *testing.T) {
	enc, _ := New(12, 4)
	p := enc.ParityCheck()
	if p.CodewordLength() != 16 || p.ParitySymbols() != 5 {
		t.Fatalf("unexpected parity check dimensions %v x %v", p.ParitySymbols(), p.CodewordLength())
	}
}

func ExampleEncoder_Encode() {
	enc, _ := New(12, 4)
	message, _ := enc.Encode([]int{1, 1, 0, 0, 1, 0, 1, 1, 0, 1, 1})

	fmt.Println(message)
	fmt.Println(Validate(message.Data()))
	//Output:
	// 1 1 0 1
	// 0 1 0 0
	// 1 1 0 1
	// 1 0 1 1
	// true
}

func BenchmarkEncoder_Encode(b *testing.B) {
	enc, _ := New(248, 8)
	input := benchmarking.RandomMessage(rand.New(rand.NewSource(1)), enc.DataSlots())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		enc.Encode(input)
	}
}
