package calculator

import (
	"math"

	"github.com/shopspring/decimal"
)

const utilizationPlaces = 2

// Utilization thresholds, in percent, used by Status.
const (
	overloadedThreshold = 100
	attentionThreshold  = 85
	optimalThreshold    = 70
)

// Status classifies how well a package set uses a container.
type Status string

const (
	StatusOverloaded Status = "overloaded"
	StatusAttention  Status = "attention"
	StatusOptimal    Status = "optimal"
	StatusUnderused  Status = "underused"
)

// ComputeLoadingStats measures the demand of packages against container.
// Utilizations are rounded half away from zero to two decimals and left
// unclamped so overloads stay visible. Remaining capacities are floored at 0.
func ComputeLoadingStats(packages []Package, container Container) LoadingStats {
	totalVolume := TotalVolume(packages)
	totalWeight := TotalWeight(packages)
	containerVolume := ContainerVolume(container)

	return LoadingStats{
		TotalVolume:        totalVolume,
		TotalWeight:        totalWeight,
		ContainerVolume:    containerVolume,
		ContainerMaxWeight: container.MaxWeight,
		VolumeUtilization:  utilization(totalVolume, containerVolume),
		WeightUtilization:  utilization(totalWeight, container.MaxWeight),
		RemainingVolume:    math.Max(0, containerVolume-totalVolume),
		RemainingWeight:    math.Max(0, container.MaxWeight-totalWeight),
	}
}

func utilization(demand, supply float64) float64 {
	if supply <= 0 {
		return 0
	}
	return Round2(demand / supply * 100)
}

// Round2 rounds v half away from zero to two decimal places. Exporters use it
// to reproduce the figures the calculator reports.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(utilizationPlaces).InexactFloat64()
}

// Overloaded reports whether either axis exceeds the container capacity.
func (s LoadingStats) Overloaded() bool {
	return s.VolumeUtilization > overloadedThreshold || s.WeightUtilization > overloadedThreshold
}

// Status classifies the snapshot. Overload on either axis wins, then a
// near-full axis, then both axes well used.
func (s LoadingStats) Status() Status {
	switch {
	case s.Overloaded():
		return StatusOverloaded
	case s.VolumeUtilization > attentionThreshold || s.WeightUtilization > attentionThreshold:
		return StatusAttention
	case s.VolumeUtilization > optimalThreshold && s.WeightUtilization > optimalThreshold:
		return StatusOptimal
	default:
		return StatusUnderused
	}
}
