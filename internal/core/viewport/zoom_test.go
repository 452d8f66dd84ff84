package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseZoom(t *testing.T) {
	tests := []struct {
		in       string
		wantKind ZoomKind
		factor   float64
		wantErr  bool
	}{
		{in: "fit-width", wantKind: ZoomFitWidth, factor: 1},
		{in: " Fit-Page ", wantKind: ZoomFitPage, factor: 1},
		{in: "custom", wantKind: ZoomCustom, factor: 1},
		{in: "1.5", wantKind: ZoomCustom, factor: 1.5},
		{in: "50%", wantKind: ZoomCustom, factor: 0.5},
		{in: "0", wantErr: true},
		{in: "-2", wantErr: true},
		{in: "huge", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			z, err := ParseZoom(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, z.Kind())
			assert.InDelta(t, tt.factor, z.Factor(), 1e-9)
		})
	}
}

func TestZoom_String(t *testing.T) {
	assert.Equal(t, "fit-width", FitWidth().String())
	assert.Equal(t, "fit-page", FitPage().String())
	assert.Equal(t, "125%", Custom(1.25).String())
	assert.Equal(t, "unknown", ZoomKind(42).String())
}
