package benchmarking

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/nathanhack/avgstd"
	"github.com/nathanhack/threadpool"
	"github.com/sirupsen/logrus"
	mat2 "gonum.org/v1/gonum/mat"
)

type Stats struct {
	ChannelCorruption avgstd.AvgStd // probability the channel changed at least one bit of the block
	Detected          avgstd.AvgStd // probability a corrupted block failed validation
	Undetected        avgstd.AvgStd // probability a block was corrupted yet passed validation
	FalseAlarm        avgstd.AvgStd // probability an untouched block failed validation
}

// Trials is the number of trials the stats were gathered from.
func (s Stats) Trials() int {
	return s.ChannelCorruption.Count
}

func (s Stats) String() string {
	return fmt.Sprintf("{Corrupted:%0.04f(+/-%0.04f), Detected:%0.04f(+/-%0.04f), Undetected:%0.04f(+/-%0.04f), FalseAlarm:%0.04f(+/-%0.04f)}",
		s.ChannelCorruption.Mean, stddev(s.ChannelCorruption),
		s.Detected.Mean, stddev(s.Detected),
		s.Undetected.Mean, stddev(s.Undetected),
		s.FalseAlarm.Mean, stddev(s.FalseAlarm),
	)
}

func stddev(a avgstd.AvgStd) float64 {
	if a.Count < 2 {
		return 0
	}
	return math.Sqrt(a.SampledVariance())
}

type Checkpoints func(updatedStats Stats)

// each trial gets its own source seeded from the run seed and the trial number
// so results don't depend on how trials are scheduled across threads
type BinaryMessageConstructor func(rng *rand.Rand, trial int) (message []int)
type BlockEncoder func(message []int) (block []int, err error)
type BinaryChannel func(rng *rand.Rand, block []int) (channelInducedBlock []int)
type BlockValidator func(block []int) (valid bool)

func BenchmarkDetection(ctx context.Context,
	trials, threads int, seed int64,
	createMessage BinaryMessageConstructor,
	encode BlockEncoder,
	channel BinaryChannel,
	validate BlockValidator,
	checkpoints Checkpoints,
	showProgress bool) Stats {
	return BenchmarkDetectionContinueStats(ctx, trials, threads, seed, createMessage, encode, channel, validate, checkpoints, Stats{}, showProgress)
}

func BenchmarkDetectionContinueStats(ctx context.Context,
	trials, threads int, seed int64,
	createMessage BinaryMessageConstructor,
	encode BlockEncoder,
	channel BinaryChannel,
	validate BlockValidator,
	checkpoints Checkpoints,
	previousStats Stats,
	showProgress bool) Stats {
	trialsToRun := trials - previousStats.Trials()
	if trialsToRun <= 0 {
		return previousStats
	}

	var bar *pb.ProgressBar
	if showProgress {
		bar = pb.StartNew(trialsToRun)
	}

	logrus.Debugf("Running %v detection trials", trialsToRun)
	pool := threadpool.NewFixedSize(ctx, threads, trialsToRun)
	statsMux := sync.Mutex{}

	trial := func(i int) {
		if showProgress {
			bar.Increment()
		}
		rng := rand.New(rand.NewSource(seed + int64(i)))

		//we create a random message
		message := createMessage(rng, i)

		// encode to get our block
		block, err := encode(message)
		if err != nil {
			logrus.Errorf("trial %v: unable to encode message: %v", i, err)
			return
		}

		// send through the channel to get channel induced errors
		channelInducedBlock := channel(rng, block)

		corrupted := HammingDistance(block, channelInducedBlock) > 0
		valid := validate(channelInducedBlock)

		statsMux.Lock()
		defer statsMux.Unlock()
		previousStats.ChannelCorruption.Update(boolToFloat(corrupted))
		previousStats.Undetected.Update(boolToFloat(corrupted && valid))
		if corrupted {
			previousStats.Detected.Update(boolToFloat(!valid))
		} else {
			previousStats.FalseAlarm.Update(boolToFloat(!valid))
		}
		if checkpoints != nil {
			checkpoints(previousStats) //give them the updated checkpoint
		}
	}

	for i := previousStats.Trials(); i < trials; i++ {
		tmp := i
		pool.Add(func() { trial(tmp) })
	}
	pool.Wait()
	if showProgress {
		bar.Finish()
	}
	return previousStats
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

//HammingDistance calculates number of bits different.
// If a and b are different sizes it assumes they are
// both aligned with the zero index (the difference is at the end)
func HammingDistance(a, b []int) int {
	min := len(a)
	max := len(b)
	if min > max {
		min = len(b)
		max = len(a)
	}

	count := 0
	for i := 0; i < min; i++ {
		if a[i] != b[i] {
			count++
		}
	}
	return max - min + count
}

//BitsToBPSK converts a [0,1] slice to a [-1,1] vector
func BitsToBPSK(a []int) mat2.Vector {
	output := mat2.NewVecDense(len(a), nil)

	for i, b := range a {
		if b > 0 {
			output.SetVec(i, 1)
		} else {
			output.SetVec(i, -1)
		}
	}

	return output
}

//BPSKToBits converts a BPSK vector [-1,1] to bits [0,1].
// Values >= boundary will be considered a 1, otherwise a 0.
func BPSKToBits(a mat2.Vector, boundary float64) []int {
	result := make([]int, a.Len())

	for i := 0; i < a.Len(); i++ {
		if a.AtVec(i) >= boundary {
			result[i] = 1
		}
	}
	return result
}
