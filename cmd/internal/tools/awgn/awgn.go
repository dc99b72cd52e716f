package awgn

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"reflect"

	"github.com/nathanhack/squareparity/benchmarking"
	"github.com/nathanhack/squareparity/cmd/internal/config"
	"github.com/nathanhack/squareparity/cmd/internal/tools"
	"github.com/nathanhack/squareparity/linearblock/squareparity"
	"github.com/spf13/cobra"
)

var (
	Trials     uint
	EbN0       []float64
	Decibels   bool
	Threads    uint
	Seed       int64
	ConfigFile string
)

// RunAWGN modulates encoded blocks with BPSK, adds white gaussian noise at the
// given E_b/N_0 (linear) and hard decides each bit before validating.
func RunAWGN(ctx context.Context,
	enc *squareparity.Encoder,
	ebPerN0 float64,
	trials, threads int, seed int64,
	previousStats benchmarking.Stats,
	checkpoints benchmarking.Checkpoints,
	showProgress bool) benchmarking.Stats {

	createMessage := func(rng *rand.Rand, trial int) []int {
		return benchmarking.RandomMessage(rng, enc.DataSlots())
	}

	encode := func(message []int) ([]int, error) {
		m, err := enc.Encode(message)
		if err != nil {
			return nil, err
		}
		return m.Data(), nil
	}

	channel := func(rng *rand.Rand, block []int) []int {
		noisy := benchmarking.RandomNoiseBPSK(rng, benchmarking.BitsToBPSK(block), ebPerN0)
		return benchmarking.BPSKToBits(noisy, 0)
	}

	return benchmarking.BenchmarkDetectionContinueStats(ctx, trials, threads, seed, createMessage, encode, channel, squareparity.Validate, checkpoints, previousStats, showProgress)
}

// FromDecibels converts E_b/N_0 in dB to a linear ratio
func FromDecibels(db float64) float64 {
	return math.Pow(10, db/10)
}

var AwgnRun = func(cmd *cobra.Command, args []string) {
	if len(args) != 2 {
		fmt.Println("requires both SQUAREPARITY_JSON RESULT_JSON")
		return
	}

	if ConfigFile != "" {
		cfg, err := config.Load(ConfigFile)
		if err != nil {
			fmt.Println(err)
			return
		}
		err = cfg.Apply(cmd.Flags())
		if err != nil {
			fmt.Println(err)
			return
		}
	}

	for _, e := range EbN0 {
		if !Decibels && e <= 0 {
			fmt.Printf("E_b/N_0 %v must be > 0\n", e)
			return
		}
	}

	enc, err := tools.LoadEncoder(args[0])
	if err != nil {
		fmt.Println(err)
		return
	}

	data, err := tools.PrepareResults(args[1], typeInfo(), enc, Seed)
	if err != nil {
		fmt.Println(err)
		return
	}

	ctx, cancel := tools.SignalContext()
	defer cancel()

	// results are keyed by the value the user passed in (dB or linear)
	run := func(ctx context.Context, e float64, trials int, previousStats benchmarking.Stats, checkpoints benchmarking.Checkpoints) benchmarking.Stats {
		linear := e
		if Decibels {
			linear = FromDecibels(e)
		}
		return RunAWGN(ctx, enc, linear, trials, int(Threads), data.Seed, previousStats, checkpoints, false)
	}
	tools.Sweep(ctx, data, EbN0, int(Trials), tools.Threads(Threads), args[1], run)

	err = tools.SaveResults(args[1], data)
	if err != nil {
		fmt.Println(err)
	}
}

func typeInfo() string {
	t := reflect.TypeOf(squareparity.Encoder{})
	unit := "linear"
	if Decibels {
		unit = "dB"
	}
	return fmt.Sprintf("AWGN(%v):%v/%v", unit, t.PkgPath(), t.Name())
}
