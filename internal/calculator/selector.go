package calculator

import (
	"fmt"
	"strings"
)

// FallbackPolicy decides which container is suggested when no catalog entry
// can hold the whole demand.
type FallbackPolicy int

const (
	// FallbackLast returns the final catalog entry. The catalog is expected to
	// end with its largest container; this is not re-verified.
	FallbackLast FallbackPolicy = iota
	// FallbackLargest returns the entry with the greatest volume, first one on ties.
	FallbackLargest
)

// String implements fmt.Stringer.
func (p FallbackPolicy) String() string {
	switch p {
	case FallbackLast:
		return "last"
	case FallbackLargest:
		return "largest"
	default:
		return fmt.Sprintf("FallbackPolicy(%d)", int(p))
	}
}

// ParseFallbackPolicy converts "last" or "largest" into a FallbackPolicy.
func ParseFallbackPolicy(raw string) (FallbackPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "last":
		return FallbackLast, nil
	case "largest":
		return FallbackLargest, nil
	default:
		return FallbackLast, fmt.Errorf("unknown fallback policy %q", raw)
	}
}

// SuggestOptimalContainer picks the catalog entry that the packages fill most
// tightly without exceeding its volume or weight capacity. Equal fill ratios
// resolve to the earlier catalog entry. When nothing is suitable the fallback
// policy decides. An empty package set is suitable everywhere, so the
// smallest container wins. An empty catalog yields the zero Container.
func SuggestOptimalContainer(packages []Package, catalog Catalog, fallback FallbackPolicy) Container {
	demandVolume := TotalVolume(packages)
	demandWeight := TotalWeight(packages)

	best := -1
	bestEfficiency := 0.0
	for i, container := range catalog.containers {
		volume := ContainerVolume(container)
		if volume < demandVolume || container.MaxWeight < demandWeight {
			continue
		}
		efficiency := fillRatio(demandVolume, volume)
		// strict comparison keeps the earliest index on ties
		if best == -1 || efficiency > bestEfficiency {
			best = i
			bestEfficiency = efficiency
		}
	}

	if best >= 0 {
		return catalog.containers[best]
	}
	return fallbackContainer(catalog, fallback)
}

// fillRatio ranks suitable containers for a given demand. With zero demand
// every ratio is 0, so the smaller container is ranked higher through an
// inverse-volume score instead.
func fillRatio(demandVolume, containerVolume float64) float64 {
	if containerVolume <= 0 {
		return 0
	}
	if demandVolume == 0 {
		return 1 / containerVolume
	}
	return demandVolume / containerVolume
}

func fallbackContainer(catalog Catalog, fallback FallbackPolicy) Container {
	if fallback == FallbackLargest {
		best := -1
		bestVolume := 0.0
		for i, container := range catalog.containers {
			if volume := ContainerVolume(container); best == -1 || volume > bestVolume {
				best = i
				bestVolume = volume
			}
		}
		if best >= 0 {
			return catalog.containers[best]
		}
		return Container{}
	}

	last, _ := catalog.Last()
	return last
}
