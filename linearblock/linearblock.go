package linearblock

import (
	"fmt"
	"strings"

	mat "github.com/nathanhack/sparsemat"
)

//ParityCheck contains the parity check matrix H of a binary linear block code.
// A codeword c is accepted when H*c == 0 over GF(2).
type ParityCheck struct {
	H mat.SparseMat
}

//Syndrome returns H*codeword, zero for an uncorrupted codeword
func (p *ParityCheck) Syndrome(codeword mat.SparseVector) (syndrome mat.SparseVector) {
	if codeword.Len() != p.CodewordLength() {
		panic(fmt.Sprintf("codeword length == %v required but found %v", p.CodewordLength(), codeword.Len()))
	}
	syndrome = mat.CSRVec(p.ParitySymbols())
	syndrome.MatMul(p.H, codeword)
	return
}

//Valid reports if every parity check is satisfied
func (p *ParityCheck) Valid(codeword mat.SparseVector) bool {
	return p.Syndrome(codeword).IsZero()
}

func (p *ParityCheck) ParitySymbols() int {
	m, _ := p.H.Dims()
	return m
}
func (p *ParityCheck) CodewordLength() int {
	_, n := p.H.Dims()
	return n
}

func (p *ParityCheck) String() string {
	buf := strings.Builder{}
	buf.WriteString("{\nH:\n")
	buf.WriteString(p.H.String())
	buf.WriteString("\n}\n")
	return buf.String()
}

//ToVector converts a slice of 0/1 values into a sparse vector
func ToVector(bits []int) mat.SparseVector {
	vec := mat.CSRVec(len(bits))
	for i, b := range bits {
		if b != 0 {
			vec.Set(i, 1)
		}
	}
	return vec
}

//FromVector converts a sparse vector back to a slice of 0/1 values
func FromVector(vec mat.SparseVector) []int {
	bits := make([]int, vec.Len())
	for _, i := range vec.NonzeroArray() {
		bits[i] = 1
	}
	return bits
}
