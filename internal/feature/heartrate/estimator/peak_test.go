package estimator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rppg_backend/internal/feature/heartrate/domain"
	"rppg_backend/internal/feature/heartrate/domain/entity"
)

func TestPickPeak(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		spectrum entity.Spectrum
		want     float64
		wantKind error
	}{
		{
			name: "tie resolves to lowest frequency",
			spectrum: entity.Spectrum{
				Frequencies: []float64{0.5, 1.0, 1.5, 2.0, 3.5},
				Power:       []float64{9, 4, 7, 7, 9},
			},
			want: 1.5,
		},
		{
			name: "out of band power is ignored",
			spectrum: entity.Spectrum{
				Frequencies: []float64{0.1, 0.75, 3.0, 3.1},
				Power:       []float64{100, 1, 2, 100},
			},
			want: 3.0,
		},
		{
			name: "band edges are inclusive",
			spectrum: entity.Spectrum{
				Frequencies: []float64{0.75, 1.0},
				Power:       []float64{5, 1},
			},
			want: 0.75,
		},
		{
			name: "no bins in band",
			spectrum: entity.Spectrum{
				Frequencies: []float64{0, 0.5, 3.5},
				Power:       []float64{1, 2, 3},
			},
			wantKind: domain.ErrNoValidPeak,
		},
		{
			name:     "empty spectrum",
			spectrum: entity.Spectrum{},
			wantKind: domain.ErrNoValidPeak,
		},
	}

	p := NewDefault()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := p.pickPeak(tt.spectrum)
			if tt.wantKind != nil {
				assert.ErrorIs(t, err, tt.wantKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
