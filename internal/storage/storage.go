package storage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/eugenenazirov/loading-assistant/internal/calculator"
)

var (
	// ErrPackageNotFound indicates that no package with the requested id exists.
	ErrPackageNotFound = errors.New("package not found")
	// ErrDuplicatePackage indicates that a package id is already in use.
	ErrDuplicatePackage = errors.New("package id already exists")
	// ErrUnknownContainer indicates that a container id is not part of the catalog.
	ErrUnknownContainer = errors.New("container not found in catalog")
)

// Storage holds the working package set and the container chosen for it.
type Storage interface {
	ListPackages() ([]calculator.Package, error)
	AddPackages(packages ...calculator.Package) error
	RemovePackage(id string) error
	ClearPackages() error
	SelectedContainer() (calculator.Container, bool, error)
	SelectContainer(id string) error
	ClearSelection() error
}

// MemoryStorage keeps the workspace in-memory and guards access with a RWMutex.
type MemoryStorage struct {
	catalog calculator.Catalog

	mu          sync.RWMutex
	packages    []calculator.Package
	selectedID  string
	hasSelected bool
}

// NewMemoryStorage creates an empty workspace whose selections are restricted
// to catalog.
func NewMemoryStorage(catalog calculator.Catalog) *MemoryStorage {
	return &MemoryStorage{
		catalog:  catalog,
		packages: []calculator.Package{},
	}
}

// ListPackages returns a defensive copy of the packages in insertion order.
func (s *MemoryStorage) ListPackages() ([]calculator.Package, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clonePackages(s.packages), nil
}

// AddPackages validates and appends packages. Either all of them are added or
// none is.
func (s *MemoryStorage) AddPackages(packages ...calculator.Package) error {
	batch := make(map[string]struct{}, len(packages))
	for i, pkg := range packages {
		if pkg.ID == "" {
			return fmt.Errorf("package %d: %w: id is required", i, calculator.ErrInvalidPackage)
		}
		if err := pkg.Validate(); err != nil {
			return fmt.Errorf("package %q: %w", pkg.ID, err)
		}
		if _, dup := batch[pkg.ID]; dup {
			return fmt.Errorf("package %q: %w", pkg.ID, ErrDuplicatePackage)
		}
		batch[pkg.ID] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.packages {
		if _, dup := batch[existing.ID]; dup {
			return fmt.Errorf("package %q: %w", existing.ID, ErrDuplicatePackage)
		}
	}
	s.packages = append(s.packages, packages...)
	return nil
}

// RemovePackage deletes the package with the given id.
func (s *MemoryStorage) RemovePackage(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, pkg := range s.packages {
		if pkg.ID == id {
			s.packages = append(s.packages[:i:i], s.packages[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("package %q: %w", id, ErrPackageNotFound)
}

// ClearPackages removes every package. The container selection is kept.
func (s *MemoryStorage) ClearPackages() error {
	s.mu.Lock()
	s.packages = []calculator.Package{}
	s.mu.Unlock()
	return nil
}

// SelectedContainer returns the selected container, if any.
func (s *MemoryStorage) SelectedContainer() (calculator.Container, bool, error) {
	s.mu.RLock()
	id, ok := s.selectedID, s.hasSelected
	s.mu.RUnlock()

	if !ok {
		return calculator.Container{}, false, nil
	}
	container, found := s.catalog.Find(id)
	if !found {
		return calculator.Container{}, false, fmt.Errorf("container %q: %w", id, ErrUnknownContainer)
	}
	return container, true, nil
}

// SelectContainer records id as the chosen container.
func (s *MemoryStorage) SelectContainer(id string) error {
	if _, ok := s.catalog.Find(id); !ok {
		return fmt.Errorf("container %q: %w", id, ErrUnknownContainer)
	}

	s.mu.Lock()
	s.selectedID = id
	s.hasSelected = true
	s.mu.Unlock()
	return nil
}

// ClearSelection forgets the chosen container.
func (s *MemoryStorage) ClearSelection() error {
	s.mu.Lock()
	s.selectedID = ""
	s.hasSelected = false
	s.mu.Unlock()
	return nil
}

func clonePackages(src []calculator.Package) []calculator.Package {
	if len(src) == 0 {
		return []calculator.Package{}
	}

	out := make([]calculator.Package, len(src))
	copy(out, src)
	return out
}
