package benchmarking

import (
	"math"
	"math/rand"

	mat2 "gonum.org/v1/gonum/mat"
)

// RandomMessage creates a random message of length len.
func RandomMessage(rng *rand.Rand, len int) []int {
	message := make([]int, len)
	for i := 0; i < len; i++ {
		message[i] = rng.Intn(2)
	}
	return message
}

// RandomMessageOnesCount creates a random message of length len with a hamming weight equal to min(onesCount,len)
func RandomMessageOnesCount(rng *rand.Rand, len int, onesCount int) []int {
	message := make([]int, len)
	weight := 0
	for weight < onesCount && weight < len {
		i := rng.Intn(len)
		if message[i] == 0 {
			message[i] = 1
			weight++
		}
	}
	return message
}

// RandomFlipBitCount randomly flips min(numberOfBitsToFlip,len(input)) number of bits.
func RandomFlipBitCount(rng *rand.Rand, input []int, numberOfBitsToFlip int) []int {
	output := make([]int, len(input))
	copy(output, input)

	flip := make(map[int]bool)
	for len(flip) < numberOfBitsToFlip && len(flip) < len(input) {
		flip[rng.Intn(len(input))] = true
	}

	for i := range flip {
		output[i] = 1 - output[i]
	}
	return output
}

// RandomFlip flips every bit independently with the given crossover probability.
func RandomFlip(rng *rand.Rand, input []int, crossoverProbability float64) []int {
	output := make([]int, len(input))
	for i, b := range input {
		output[i] = b
		if rng.Float64() < crossoverProbability {
			output[i] = 1 - b
		}
	}
	return output
}

// RandomNoiseBPSK creates a randomizes version of the bpsk vector using the E_b/N_0 passed in
func RandomNoiseBPSK(rng *rand.Rand, bpsk mat2.Vector, E_bPerN_0 float64) mat2.Vector {
	//using  σ^2 = N_0/2 and E_b=1
	// we get  σ = sqrt(1/(2*E_bPerN_0))
	σ := math.Sqrt(1 / (2 * E_bPerN_0))
	result := mat2.NewVecDense(bpsk.Len(), nil)
	for i := 0; i < bpsk.Len(); i++ {
		result.SetVec(i, rng.NormFloat64()*σ)
	}
	result.AddVec(result, bpsk)
	return result
}
