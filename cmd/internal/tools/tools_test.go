package tools

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nathanhack/squareparity/benchmarking"
	"github.com/nathanhack/squareparity/linearblock/squareparity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoderFile(t *testing.T) {
	enc, err := squareparity.New(58, 6)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "enc.json")
	require.NoError(t, SaveEncoder(path, enc))

	loaded, err := LoadEncoder(path)
	require.NoError(t, err)
	assert.Equal(t, enc.DataBits(), loaded.DataBits())
	assert.Equal(t, enc.ParityBits(), loaded.ParityBits())
	assert.Equal(t, Fingerprint(enc), Fingerprint(loaded))

	_, err = LoadEncoder(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	a, _ := squareparity.New(12, 4)
	b, _ := squareparity.New(58, 6)
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
	assert.Len(t, Fingerprint(a), 16)
}

func TestPrepareResults(t *testing.T) {
	enc, _ := squareparity.New(12, 4)
	other, _ := squareparity.New(58, 6)
	path := filepath.Join(t.TempDir(), "results.json")

	data, err := PrepareResults(path, "BSC", enc, 3)
	require.NoError(t, err)
	assert.Empty(t, data.Stats)

	stats := benchmarking.Stats{}
	stats.ChannelCorruption.Update(1)
	data.Stats[0.25] = stats
	require.NoError(t, SaveResults(path, data))

	loaded, err := PrepareResults(path, "BSC", enc, 3)
	require.NoError(t, err)
	assert.Equal(t, data.TypeInfo, loaded.TypeInfo)
	assert.Equal(t, data.ECCInfo, loaded.ECCInfo)
	require.Contains(t, loaded.Stats, 0.25)
	assert.Equal(t, 1, loaded.Stats[0.25].Trials())
	assert.Equal(t, 1.0, loaded.Stats[0.25].ChannelCorruption.Mean)

	_, err = PrepareResults(path, "AWGN", enc, 3)
	assert.Error(t, err)

	_, err = PrepareResults(path, "BSC", other, 3)
	assert.Error(t, err)
}

func TestSweep(t *testing.T) {
	enc, _ := squareparity.New(12, 4)
	path := filepath.Join(t.TempDir(), "results.json")
	data, err := PrepareResults(path, "test", enc, 1)
	require.NoError(t, err)

	calls := 0
	run := func(ctx context.Context, p float64, trials int, previousStats benchmarking.Stats, checkpoints benchmarking.Checkpoints) benchmarking.Stats {
		calls++
		for previousStats.Trials() < trials {
			previousStats.ChannelCorruption.Update(p)
			checkpoints(previousStats)
		}
		return previousStats
	}

	Sweep(context.Background(), data, []float64{0, 1}, 45, 2, path, run)

	assert.Equal(t, 45, data.Stats[0].Trials())
	assert.Equal(t, 45, data.Stats[1].Trials())
	assert.Equal(t, 1.0, data.Stats[1].ChannelCorruption.Mean)
	// rounds of 20 trials: 20, 40, 45
	assert.Equal(t, 6, calls)

	saved, err := LoadResults(path)
	require.NoError(t, err)
	assert.NotNil(t, saved)
}

func TestSweep_Canceled(t *testing.T) {
	enc, _ := squareparity.New(12, 4)
	path := filepath.Join(t.TempDir(), "results.json")
	data, _ := PrepareResults(path, "test", enc, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run := func(ctx context.Context, p float64, trials int, previousStats benchmarking.Stats, checkpoints benchmarking.Checkpoints) benchmarking.Stats {
		t.Fatalf("expected no trials after cancel")
		return previousStats
	}
	Sweep(ctx, data, []float64{0.5}, 100, 1, path, run)
	assert.Equal(t, 0, data.Stats[0.5].Trials())
}
