package signal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rppg_backend/internal/platform/signal"
)

func TestPPGSim_Deterministic(t *testing.T) {
	t.Parallel()

	opts := signal.DefaultPPGOptions()
	opts.Noise = 0.2
	opts.Drift = 0.01

	a := signal.NewPPGSim(opts).Generate(500)
	b := signal.NewPPGSim(opts).Generate(500)
	assert.Equal(t, a, b)
}

func TestPPGSim_Periodic(t *testing.T) {
	t.Parallel()

	// 60 BPM at 30 fps repeats every 30 samples.
	opts := signal.DefaultPPGOptions()
	opts.BPM = 60
	samples := signal.NewPPGSim(opts).Generate(120)

	for i := 0; i+30 < len(samples); i++ {
		assert.InDelta(t, samples[i], samples[i+30], 1e-9, "sample %d", i)
	}
}

func TestPPGSim_DriftAndBaseline(t *testing.T) {
	t.Parallel()

	opts := signal.DefaultPPGOptions()
	opts.Amplitude = 0
	opts.Drift = 0.5
	samples := signal.NewPPGSim(opts).Generate(4)

	assert.Equal(t, []float64{120, 120.5, 121, 121.5}, samples)
}

func TestPPGSim_NoiseBounded(t *testing.T) {
	t.Parallel()

	opts := signal.DefaultPPGOptions()
	opts.Amplitude = 0
	opts.Noise = 0.3
	for _, v := range signal.NewPPGSim(opts).Generate(1000) {
		assert.InDelta(t, 120, v, 0.3)
	}
}

func TestPPGSim_Lengths(t *testing.T) {
	t.Parallel()

	sim := signal.NewPPGSim(signal.DefaultPPGOptions())
	require.Len(t, sim.Seconds(2.5), 75)
	assert.Empty(t, sim.Generate(-3))
}
