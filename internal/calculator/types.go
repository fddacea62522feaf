package calculator

import "fmt"

// ContainerKind classifies a catalog entry. It does not affect any calculation.
type ContainerKind string

const (
	KindContainer ContainerKind = "container"
	KindTruck     ContainerKind = "truck"
)

// Package is a line of identical rectangular units. Dimensions are in
// centimetres and Weight is per unit in kilograms.
type Package struct {
	ID       string  `json:"id" yaml:"id"`
	Type     string  `json:"type" yaml:"type"`
	Length   float64 `json:"length" yaml:"length"`
	Width    float64 `json:"width" yaml:"width"`
	Height   float64 `json:"height" yaml:"height"`
	Weight   float64 `json:"weight" yaml:"weight"`
	Quantity int     `json:"quantity" yaml:"quantity"`
}

// Validate reports whether the package satisfies the input contract of the
// engine. The engine itself never calls it; collaborators that accept user
// input do.
func (p Package) Validate() error {
	switch {
	case p.Length <= 0:
		return fmt.Errorf("%w: length must be positive", ErrInvalidPackage)
	case p.Width <= 0:
		return fmt.Errorf("%w: width must be positive", ErrInvalidPackage)
	case p.Height <= 0:
		return fmt.Errorf("%w: height must be positive", ErrInvalidPackage)
	case p.Weight <= 0:
		return fmt.Errorf("%w: weight must be positive", ErrInvalidPackage)
	case p.Quantity < 1:
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidPackage)
	}
	return nil
}

// Container is a reference container or truck. Dimensions are in centimetres
// and MaxWeight in kilograms.
type Container struct {
	ID        string        `json:"id" yaml:"id"`
	Name      string        `json:"name" yaml:"name"`
	Kind      ContainerKind `json:"kind" yaml:"kind"`
	Length    float64       `json:"length" yaml:"length"`
	Width     float64       `json:"width" yaml:"width"`
	Height    float64       `json:"height" yaml:"height"`
	MaxWeight float64       `json:"maxWeight" yaml:"max_weight"`
}

// LoadingStats compares the demand of a package set with the supply of one
// container. Utilization values are percentages and may exceed 100; remaining
// capacities never go below zero.
type LoadingStats struct {
	TotalVolume        float64 `json:"totalVolume"`
	TotalWeight        float64 `json:"totalWeight"`
	ContainerVolume    float64 `json:"containerVolume"`
	ContainerMaxWeight float64 `json:"containerMaxWeight"`
	VolumeUtilization  float64 `json:"volumeUtilization"`
	WeightUtilization  float64 `json:"weightUtilization"`
	RemainingVolume    float64 `json:"remainingVolume"`
	RemainingWeight    float64 `json:"remainingWeight"`
}

// Calculator describes the behaviour required from a loading calculator bound
// to a single catalog.
type Calculator interface {
	Catalog() Catalog
	SuggestContainer(packages []Package) Container
	LoadingStats(packages []Package, container Container) LoadingStats
}
