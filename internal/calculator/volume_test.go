package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackageVolume(t *testing.T) {
	t.Parallel()

	pkg := Package{Type: "carton", Length: 30, Width: 20, Height: 15, Weight: 2.5, Quantity: 4}
	assert.InDelta(t, 0.036, PackageVolume(pkg), 1e-12)
	assert.InDelta(t, 10.0, TotalWeight([]Package{pkg}), 1e-12)
}

func TestPackageVolumeScalesWithQuantity(t *testing.T) {
	t.Parallel()

	single := Package{Type: "pallet", Length: 120, Width: 80, Height: 100, Weight: 25, Quantity: 1}
	double := single
	double.Quantity = 2

	assert.GreaterOrEqual(t, PackageVolume(single), 0.0)
	assert.Equal(t, 2*PackageVolume(single), PackageVolume(double))
}

func TestTotalsOfEmptyCollection(t *testing.T) {
	t.Parallel()

	assert.Zero(t, TotalVolume(nil))
	assert.Zero(t, TotalVolume([]Package{}))
	assert.Zero(t, TotalWeight(nil))
	assert.Zero(t, TotalWeight([]Package{}))
}

func TestTotalsDoNotMutateInput(t *testing.T) {
	t.Parallel()

	packages := []Package{
		{ID: "1", Type: "carton", Length: 30, Width: 20, Height: 15, Weight: 2.5, Quantity: 4},
		{ID: "2", Type: "pallet", Length: 120, Width: 80, Height: 100, Weight: 25, Quantity: 2},
	}
	snapshot := append([]Package(nil), packages...)

	assert.InDelta(t, 0.036+1.92, TotalVolume(packages), 1e-9)
	assert.InDelta(t, 60.0, TotalWeight(packages), 1e-9)
	assert.Equal(t, snapshot, packages)
}

func TestContainerVolume(t *testing.T) {
	t.Parallel()

	container, ok := StandardCatalog().Find("container-20ft")
	assert.True(t, ok)
	assert.InDelta(t, 33.081185, ContainerVolume(container), 1e-9)
	assert.Zero(t, ContainerVolume(Container{}))
}

func TestPackageValidate(t *testing.T) {
	t.Parallel()

	valid := Package{Type: "carton", Length: 30, Width: 20, Height: 15, Weight: 2.5, Quantity: 1}
	assert.NoError(t, valid.Validate())

	mutations := map[string]func(*Package){
		"ZeroLength":    func(p *Package) { p.Length = 0 },
		"NegativeWidth": func(p *Package) { p.Width = -1 },
		"ZeroHeight":    func(p *Package) { p.Height = 0 },
		"ZeroWeight":    func(p *Package) { p.Weight = 0 },
		"ZeroQuantity":  func(p *Package) { p.Quantity = 0 },
	}
	for name, mutate := range mutations {
		mutate := mutate
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pkg := valid
			mutate(&pkg)
			assert.ErrorIs(t, pkg.Validate(), ErrInvalidPackage)
		})
	}
}
