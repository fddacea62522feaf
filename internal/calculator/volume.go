package calculator

const cubicCentimetresPerCubicMetre = 1_000_000

// PackageVolume returns the volume in m³ of every unit on the package line.
func PackageVolume(pkg Package) float64 {
	return (pkg.Length * pkg.Width * pkg.Height * float64(pkg.Quantity)) / cubicCentimetresPerCubicMetre
}

// TotalVolume sums PackageVolume over packages.
func TotalVolume(packages []Package) float64 {
	total := 0.0
	for _, pkg := range packages {
		total += PackageVolume(pkg)
	}
	return total
}

// TotalWeight sums weight × quantity over packages, in kilograms.
func TotalWeight(packages []Package) float64 {
	total := 0.0
	for _, pkg := range packages {
		total += pkg.Weight * float64(pkg.Quantity)
	}
	return total
}

// ContainerVolume returns the inner volume of container in m³.
func ContainerVolume(container Container) float64 {
	return (container.Length * container.Width * container.Height) / cubicCentimetresPerCubicMetre
}
