package calculator

import "fmt"

var standardContainers = []Container{
	{ID: "container-20ft", Name: "20ft container", Kind: KindContainer, Length: 589, Width: 235, Height: 239, MaxWeight: 28230},
	{ID: "container-40ft", Name: "40ft container", Kind: KindContainer, Length: 1203, Width: 235, Height: 239, MaxWeight: 26760},
	{ID: "truck-small", Name: "3.5t truck", Kind: KindTruck, Length: 420, Width: 180, Height: 180, MaxWeight: 3500},
	{ID: "truck-medium", Name: "7.5t truck", Kind: KindTruck, Length: 620, Width: 240, Height: 240, MaxWeight: 7500},
	{ID: "truck-large", Name: "19t truck", Kind: KindTruck, Length: 1360, Width: 248, Height: 270, MaxWeight: 19000},
}

// Catalog is an ordered, read-only list of containers. Order matters: the
// selector breaks ties by position and FallbackLast returns the final entry.
type Catalog struct {
	containers []Container
}

// StandardCatalog returns the built-in reference catalog: two sea containers
// followed by three trucks, always in the same order.
func StandardCatalog() Catalog {
	return Catalog{containers: cloneContainers(standardContainers)}
}

// NewCatalog validates containers and returns them as a Catalog, preserving order.
func NewCatalog(containers []Container) (Catalog, error) {
	c := Catalog{containers: cloneContainers(containers)}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Containers returns a copy of the catalog entries in catalog order.
func (c Catalog) Containers() []Container {
	return cloneContainers(c.containers)
}

// Len returns the number of entries.
func (c Catalog) Len() int {
	return len(c.containers)
}

// Find looks up a container by id.
func (c Catalog) Find(id string) (Container, bool) {
	for _, container := range c.containers {
		if container.ID == id {
			return container, true
		}
	}
	return Container{}, false
}

// Last returns the final catalog entry, or false for an empty catalog.
func (c Catalog) Last() (Container, bool) {
	if len(c.containers) == 0 {
		return Container{}, false
	}
	return c.containers[len(c.containers)-1], true
}

// Validate checks that the catalog is non-empty and every entry has a unique
// id, a known kind and positive dimensions and capacity.
func (c Catalog) Validate() error {
	if len(c.containers) == 0 {
		return fmt.Errorf("%w: catalog is empty", ErrInvalidCatalog)
	}

	seen := make(map[string]struct{}, len(c.containers))
	for i, container := range c.containers {
		if container.ID == "" {
			return fmt.Errorf("%w: entry %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := seen[container.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidCatalog, container.ID)
		}
		seen[container.ID] = struct{}{}

		if container.Kind != KindContainer && container.Kind != KindTruck {
			return fmt.Errorf("%w: %q has unknown kind %q", ErrInvalidCatalog, container.ID, container.Kind)
		}
		if container.Length <= 0 || container.Width <= 0 || container.Height <= 0 {
			return fmt.Errorf("%w: %q must have positive dimensions", ErrInvalidCatalog, container.ID)
		}
		if container.MaxWeight <= 0 {
			return fmt.Errorf("%w: %q must have a positive max weight", ErrInvalidCatalog, container.ID)
		}
	}
	return nil
}

func cloneContainers(src []Container) []Container {
	if len(src) == 0 {
		return []Container{}
	}
	out := make([]Container, len(src))
	copy(out, src)
	return out
}
