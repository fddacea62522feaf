package calculator

import "fmt"

type catalogCalculator struct {
	catalog  Catalog
	fallback FallbackPolicy
}

// Option configures a Calculator.
type Option func(*catalogCalculator)

// WithFallback sets the policy used when no container fits the demand.
func WithFallback(policy FallbackPolicy) Option {
	return func(c *catalogCalculator) {
		c.fallback = policy
	}
}

// New creates a Calculator bound to catalog. The catalog is validated once here
// so later suggestions never see an empty or malformed catalog.
func New(catalog Catalog, opts ...Option) (Calculator, error) {
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("new calculator: %w", err)
	}

	c := &catalogCalculator{
		catalog:  Catalog{containers: cloneContainers(catalog.containers)},
		fallback: FallbackLast,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *catalogCalculator) Catalog() Catalog {
	return c.catalog
}

func (c *catalogCalculator) SuggestContainer(packages []Package) Container {
	return SuggestOptimalContainer(packages, c.catalog, c.fallback)
}

func (c *catalogCalculator) LoadingStats(packages []Package, container Container) LoadingStats {
	return ComputeLoadingStats(packages, container)
}
