package tools

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"sync"
	"syscall"

	"github.com/cheggaaa/pb/v3"
	json "github.com/goccy/go-json"
	"github.com/nathanhack/squareparity/benchmarking"
	"github.com/nathanhack/squareparity/linearblock/squareparity"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"
)

type SimulationStats struct {
	TypeInfo string
	ECCInfo  string
	Seed     int64
	Stats    map[float64]benchmarking.Stats
}
type simulationStats struct {
	TypeInfo string
	ECCInfo  string
	Seed     int64
	Stats    map[string]benchmarking.Stats
}

func (s *SimulationStats) MarshalJSON() ([]byte, error) {
	ss := simulationStats{
		TypeInfo: s.TypeInfo,
		ECCInfo:  s.ECCInfo,
		Seed:     s.Seed,
		Stats:    map[string]benchmarking.Stats{},
	}

	for f, stat := range s.Stats {
		ss.Stats[fmt.Sprintf("%v", f)] = stat
	}

	return json.Marshal(ss)
}

func (s *SimulationStats) UnmarshalJSON(bytes []byte) error {
	var ss simulationStats

	err := json.Unmarshal(bytes, &ss)
	if err != nil {
		return err
	}

	s.TypeInfo = ss.TypeInfo
	s.ECCInfo = ss.ECCInfo
	s.Seed = ss.Seed
	s.Stats = map[float64]benchmarking.Stats{}

	for fs, stat := range ss.Stats {
		f, err := strconv.ParseFloat(fs, 64)
		if err != nil {
			return err
		}
		s.Stats[f] = stat
	}
	return nil
}

// Fingerprint identifies an encoder by its parity check matrix
func Fingerprint(enc *squareparity.Encoder) string {
	return fmt.Sprintf("%016x", xxh3.HashString(enc.ParityCheck().H.String()))
}

func LoadEncoder(filepath string) (*squareparity.Encoder, error) {
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return nil, fmt.Errorf("the SQUAREPARITY_JSON file must exist")
	}

	bs, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error while reading file %v: %w", filepath, err)
	}

	var enc squareparity.Encoder
	err = json.Unmarshal(bs, &enc)
	if err != nil {
		return nil, fmt.Errorf("error while reading file %v: %w", filepath, err)
	}

	return &enc, nil
}

func SaveEncoder(filepath string, enc *squareparity.Encoder) error {
	bs, err := json.Marshal(enc)
	if err != nil {
		return fmt.Errorf("unable to serialize the encoder: %w", err)
	}

	err = os.WriteFile(filepath, bs, 0644)
	if err != nil {
		return fmt.Errorf("unable to write file %v: %w", filepath, err)
	}
	return nil
}

// LoadResults returns nil (and no error) when filepath doesn't exist yet
func LoadResults(filepath string) (*SimulationStats, error) {
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return nil, nil
	}

	bs, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error while reading file %v: %w", filepath, err)
	}

	var stat SimulationStats
	err = json.Unmarshal(bs, &stat)
	if err != nil {
		return nil, fmt.Errorf("error while unmarshalling file %v: %w", filepath, err)
	}
	return &stat, nil
}

func SaveResults(filepath string, data *SimulationStats) error {
	bs, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error serializing results: %w", err)
	}

	err = os.WriteFile(filepath, bs, 0644)
	if err != nil {
		return fmt.Errorf("error while saving results to %v: %w", filepath, err)
	}
	return nil
}

// PrepareResults loads (or creates) the results file for enc and makes sure
// it was produced by the same simulation type and encoder.
func PrepareResults(filepath, typeInfo string, enc *squareparity.Encoder, seed int64) (*SimulationStats, error) {
	data, err := LoadResults(filepath)
	if err != nil {
		return nil, err
	}

	//if data is nil then we create it
	if data == nil {
		data = &SimulationStats{
			TypeInfo: typeInfo,
			ECCInfo:  Fingerprint(enc),
			Seed:     seed,
			Stats:    make(map[float64]benchmarking.Stats),
		}
	}

	//in either case lets validate it
	if data.TypeInfo != typeInfo {
		return nil, fmt.Errorf("results loaded do not match the type expected %v but found %v", typeInfo, data.TypeInfo)
	}
	if data.ECCInfo != Fingerprint(enc) {
		return nil, fmt.Errorf("results loaded do not match the encoder")
	}
	if data.Seed != seed {
		logrus.Warnf("results were started with seed %v, continuing with it instead of %v", data.Seed, seed)
	}
	return data, nil
}

// SignalContext returns a context canceled on ctrl-C
func SignalContext() (context.Context, context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case sig := <-sigs:
			fmt.Println()
			fmt.Println(sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigs)
	}()
	return ctx, cancel
}

// StepRunner runs trials for a single channel parameter and returns the updated stats
type StepRunner func(ctx context.Context, parameter float64, trials int, previousStats benchmarking.Stats, checkpoints benchmarking.Checkpoints) benchmarking.Stats

// Sweep grows every parameter's stats to trials in rounds so that an
// interrupted run leaves every parameter with a similar number of trials.
// Results are saved to outputFilename periodically.
func Sweep(ctx context.Context, data *SimulationStats, parameters []float64, trials, threads int, outputFilename string, run StepRunner) {
	checkpointMux := sync.Mutex{}
	checkpointCount := 0

	trialsPerIter := threads * 10
	if trialsPerIter <= 0 {
		trialsPerIter = 10
	}

	bar := pb.StartNew(trials * len(parameters))
trialLoops:
	for t := trialsPerIter; ; t += trialsPerIter {
		select {
		case <-ctx.Done():
			break trialLoops
		default:
		}

		target := min(t, trials)
		for _, p := range parameters {
			p := p
			checkpoint := func(stats benchmarking.Stats) {
				//we want to save the checkpoint
				checkpointMux.Lock()
				defer checkpointMux.Unlock()

				data.Stats[p] = stats

				if checkpointCount%trialsPerIter == 0 {
					err := SaveResults(outputFilename, data)
					if err != nil {
						logrus.Errorf("unable to save checkpoint: %v", err)
					}
				}
				checkpointCount++
			}
			before := data.Stats[p].Trials()
			stats := run(ctx, p, target, data.Stats[p], checkpoint)
			checkpointMux.Lock()
			data.Stats[p] = stats
			checkpointMux.Unlock()
			bar.Add(stats.Trials() - before)
		}

		if target == trials {
			break
		}
	}
	bar.Finish()

	for _, p := range parameters {
		logrus.WithFields(logrus.Fields{
			"parameter": p,
			"trials":    data.Stats[p].Trials(),
		}).Infof("%v", data.Stats[p])
	}
}

// Threads resolves the thread flag, 0 means the number of CPUs
func Threads(threads uint) int {
	if threads == 0 {
		return runtime.NumCPU()
	}
	return int(threads)
}
