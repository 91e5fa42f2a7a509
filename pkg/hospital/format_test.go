package hospital

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		km   float64
		want string
	}{
		{km: 0.85, want: "850m"},
		{km: 0.0004, want: "0m"},
		{km: 1, want: "1.0km"},
		{km: 2.14, want: "2.1km"},
		{km: 12.96, want: "13.0km"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDistance(tt.km))
		})
	}
}

func TestDistanceKm(t *testing.T) {
	tiananmen := Location{Latitude: 39.9087, Longitude: 116.3975}

	assert.InDelta(t, 0, DistanceKm(tiananmen, tiananmen), 1e-9)

	// 协和 is about 1.4km east of the square
	xiehe := Location{Latitude: 39.9138, Longitude: 116.4124}
	assert.InDelta(t, 1.4, DistanceKm(tiananmen, xiehe), 0.2)
	assert.InDelta(t, DistanceKm(tiananmen, xiehe), DistanceKm(xiehe, tiananmen), 1e-9)
}
