package services_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roulette-backend/internal/models"
	"roulette-backend/internal/services"
)

func TestDefaultWheelLayout(t *testing.T) {
	wheel := services.DefaultWheel()

	assert.Equal(t, 33, wheel.SlotCount())
	assert.Equal(t, []models.Color{models.ColorViolet, models.ColorBlack, models.ColorBlue}, wheel.Colors())

	for slot := 0; slot < 33; slot++ {
		color, err := wheel.ColorAt(slot)
		require.NoError(t, err)

		switch {
		case slot < 16:
			assert.Equal(t, models.ColorViolet, color, "slot %d", slot)
		case slot < 32:
			assert.Equal(t, models.ColorBlack, color, "slot %d", slot)
		default:
			assert.Equal(t, models.ColorBlue, color, "slot %d", slot)
		}
	}

	_, err := wheel.ColorAt(33)
	assert.Error(t, err)
	_, err = wheel.ColorAt(-1)
	assert.Error(t, err)

	assert.InDelta(t, 16.0/33.0, wheel.Probability(models.ColorViolet), 1e-12)
	assert.InDelta(t, 1.0/33.0, wheel.Probability(models.ColorBlue), 1e-12)
	assert.Zero(t, wheel.Probability("red"))

	assert.True(t, wheel.Supports(models.ColorBlue))
	assert.False(t, wheel.Supports("red"))
}

func TestWheelDrawDistribution(t *testing.T) {
	wheel := services.DefaultWheel()

	const draws = 200000
	counts := make(map[models.Color]int)
	for range draws {
		_, color, err := wheel.Draw(services.DefaultSource)
		require.NoError(t, err)
		counts[color]++
	}

	for _, color := range wheel.Colors() {
		want := wheel.Probability(color)
		got := float64(counts[color]) / draws
		// five standard deviations
		tolerance := 5 * math.Sqrt(want*(1-want)/draws)
		assert.InDelta(t, want, got, tolerance, "color %s", color)
	}
}

func TestNewWheelRejectsInvalidLayouts(t *testing.T) {
	tests := map[string][]services.Segment{
		"empty":          nil,
		"zero count":     {{Color: "red", Count: 0}},
		"negative count": {{Color: "red", Count: -2}},
		"blank color":    {{Color: " ", Count: 3}},
		"duplicate":      {{Color: "red", Count: 1}, {Color: "red", Count: 2}},
	}

	for name, segments := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := services.NewWheel(segments)
			assert.Error(t, err)
		})
	}
}

func TestLoadWheel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wheel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("slots:\n  - color: red\n    count: 18\n  - color: black\n    count: 18\n  - color: green\n    count: 1\n"), 0o600))

	wheel, err := services.LoadWheel(path)
	require.NoError(t, err)

	assert.Equal(t, 37, wheel.SlotCount())
	assert.True(t, wheel.Supports("green"))
	assert.False(t, wheel.Supports(models.ColorViolet))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("slots:\n  - colour: red\n    count: 1\n"), 0o600))
	_, err = services.LoadWheel(bad)
	assert.Error(t, err)

	_, err = services.LoadWheel(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
