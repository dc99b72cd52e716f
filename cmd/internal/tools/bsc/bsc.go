package bsc

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
	Trials           uint
	ErrorProbability []float64
	Threads          uint
	Seed             int64
	Fixed            bool
	ConfigFile       string
)

// RunBSC sends encoded blocks through a binary symmetric channel. When fixed is
// set exactly round(crossoverProbability*length) bits are flipped per block
// instead of flipping each bit independently.
func RunBSC(ctx context.Context,
	enc *squareparity.Encoder,
	crossoverProbability float64, fixed bool,
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

	count := int(math.Round(crossoverProbability * float64(enc.Length())))
	channel := func(rng *rand.Rand, block []int) []int {
		if fixed {
			return benchmarking.RandomFlipBitCount(rng, block, count)
		}
		return benchmarking.RandomFlip(rng, block, crossoverProbability)
	}

	return benchmarking.BenchmarkDetectionContinueStats(ctx, trials, threads, seed, createMessage, encode, channel, squareparity.Validate, checkpoints, previousStats, showProgress)
}

var BscRun = func(cmd *cobra.Command, args []string) {
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

	for _, p := range ErrorProbability {
		if p < 0 || p > 1 {
			fmt.Printf("crossover probability %v outside [0, 1]\n", p)
			return
		}
	}

	//first get the encoder to use
	enc, err := tools.LoadEncoder(args[0])
	if err != nil {
		fmt.Println(err)
		return
	}

	//next we see if the RESULT_JSON exists if so we load it and validate we're running it against the right thing
	data, err := tools.PrepareResults(args[1], typeInfo(), enc, Seed)
	if err != nil {
		fmt.Println(err)
		return
	}

	ctx, cancel := tools.SignalContext()
	defer cancel()

	run := func(ctx context.Context, p float64, trials int, previousStats benchmarking.Stats, checkpoints benchmarking.Checkpoints) benchmarking.Stats {
		return RunBSC(ctx, enc, p, Fixed, trials, int(Threads), data.Seed, previousStats, checkpoints, false)
	}
	tools.Sweep(ctx, data, ErrorProbability, int(Trials), tools.Threads(Threads), args[1], run)

	err = tools.SaveResults(args[1], data)
	if err != nil {
		fmt.Println(err)
	}
}

func typeInfo() string {
	t := reflect.TypeOf(squareparity.Encoder{})
	mode := "random"
	if Fixed {
		mode = "fixed"
	}
	return fmt.Sprintf("BSC(%v):%v/%v", mode, t.PkgPath(), t.Name())
}
