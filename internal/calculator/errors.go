package calculator

import "errors"

var (
	// ErrInvalidPackage is returned when a package has non-positive geometry, weight or quantity.
	ErrInvalidPackage = errors.New("invalid package")
	// ErrInvalidCatalog is returned when a container catalog is empty or contains invalid entries.
	ErrInvalidCatalog = errors.New("invalid container catalog")
)
