package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLoadingStats_ReferenceScenario(t *testing.T) {
	t.Parallel()

	container, ok := StandardCatalog().Find("container-20ft")
	require.True(t, ok)

	packages := []Package{{ID: "1", Type: "carton", Length: 30, Width: 20, Height: 15, Weight: 2.5, Quantity: 4}}
	stats := ComputeLoadingStats(packages, container)

	assert.InDelta(t, 0.036, stats.TotalVolume, 1e-12)
	assert.InDelta(t, 10.0, stats.TotalWeight, 1e-12)
	assert.InDelta(t, 33.081185, stats.ContainerVolume, 1e-9)
	assert.Equal(t, 28230.0, stats.ContainerMaxWeight)
	assert.Equal(t, 0.11, stats.VolumeUtilization)
	assert.Equal(t, 0.04, stats.WeightUtilization)
	assert.InDelta(t, 33.081185-0.036, stats.RemainingVolume, 1e-9)
	assert.Equal(t, 28220.0, stats.RemainingWeight)
	assert.Equal(t, StatusUnderused, stats.Status())
}

func TestComputeLoadingStats_OverloadIsUnclampedButRemainingIsNot(t *testing.T) {
	t.Parallel()

	container, ok := StandardCatalog().Find("truck-small")
	require.True(t, ok)

	stats := ComputeLoadingStats([]Package{cubes(20, 200)}, container)

	assert.Greater(t, stats.VolumeUtilization, 100.0)
	assert.Greater(t, stats.WeightUtilization, 100.0)
	assert.Zero(t, stats.RemainingVolume)
	assert.Zero(t, stats.RemainingWeight)
	assert.True(t, stats.Overloaded())
	assert.Equal(t, StatusOverloaded, stats.Status())
}

func TestComputeLoadingStats_ZeroCapacityContainer(t *testing.T) {
	t.Parallel()

	stats := ComputeLoadingStats([]Package{cubes(1, 10)}, Container{ID: "void"})

	assert.Zero(t, stats.VolumeUtilization)
	assert.Zero(t, stats.WeightUtilization)
	assert.Zero(t, stats.RemainingVolume)
	assert.Zero(t, stats.RemainingWeight)
}

func TestComputeLoadingStats_EmptyPackages(t *testing.T) {
	t.Parallel()

	container, _ := StandardCatalog().Find("truck-medium")
	stats := ComputeLoadingStats(nil, container)

	assert.Zero(t, stats.TotalVolume)
	assert.Zero(t, stats.VolumeUtilization)
	assert.Equal(t, stats.ContainerVolume, stats.RemainingVolume)
	assert.Equal(t, container.MaxWeight, stats.RemainingWeight)
}

func TestComputeLoadingStats_Idempotent(t *testing.T) {
	t.Parallel()

	container, _ := StandardCatalog().Find("container-40ft")
	packages := []Package{
		{ID: "1", Type: "carton", Length: 33.3, Width: 21.7, Height: 14.9, Weight: 2.35, Quantity: 7},
		{ID: "2", Type: "pallet", Length: 120, Width: 80, Height: 144.4, Weight: 310.5, Quantity: 13},
	}

	first := ComputeLoadingStats(packages, container)
	second := ComputeLoadingStats(packages, container)

	assert.Equal(t, math.Float64bits(first.VolumeUtilization), math.Float64bits(second.VolumeUtilization))
	assert.Equal(t, math.Float64bits(first.WeightUtilization), math.Float64bits(second.WeightUtilization))
	assert.Equal(t, first, second)
}

func TestRound2(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want float64
	}{
		{in: 0.125, want: 0.13},
		{in: -0.125, want: -0.13},
		{in: 2.675, want: 2.68},
		{in: 99.994, want: 99.99},
		{in: 302.2864, want: 302.29},
		{in: 0, want: 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Round2(tc.in), "Round2(%v)", tc.in)
	}
}

func TestStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		volume float64
		weight float64
		want   Status
	}{
		{name: "VolumeOverload", volume: 100.01, weight: 10, want: StatusOverloaded},
		{name: "WeightOverload", volume: 10, weight: 150, want: StatusOverloaded},
		{name: "ExactlyFullIsNotOverloaded", volume: 100, weight: 100, want: StatusAttention},
		{name: "OneAxisNearlyFull", volume: 86, weight: 20, want: StatusAttention},
		{name: "BothAxesWellUsed", volume: 80, weight: 71, want: StatusOptimal},
		{name: "OnlyOneAxisWellUsed", volume: 80, weight: 50, want: StatusUnderused},
		{name: "Empty", volume: 0, weight: 0, want: StatusUnderused},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			stats := LoadingStats{VolumeUtilization: tc.volume, WeightUtilization: tc.weight}
			assert.Equal(t, tc.want, stats.Status())
		})
	}
}
