package scheduler

import (
	"fmt"
	"sort"

	goerrors "github.com/TudorHulban/go-errors"
)

var _ ResourceLookup = (*ResourceManager)(nil)

// ResourceManager is a plain registry giving O(1) resource lookup.
type ResourceManager struct {
	resources map[string]*Resource
}

func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		resources: make(map[string]*Resource),
	}
}

func (m *ResourceManager) AddResource(resource *Resource) error {
	if resource == nil {
		return goerrors.ErrValidation{
			Caller: "AddResource - ResourceManager",
			Issue: goerrors.ErrNilInput{
				InputName: "resource",
			},
		}
	}

	if errValidation := resource.IsValid(); errValidation != nil {
		return errValidation
	}

	if _, exists := m.resources[resource.ID]; exists {
		return fmt.Errorf(
			"resource %s already registered",
			resource.ID,
		)
	}

	m.resources[resource.ID] = resource

	return nil
}

func (m *ResourceManager) GetResource(resourceID string) (*Resource, error) {
	resource, exists := m.resources[resourceID]
	if !exists {
		return nil,
			fmt.Errorf(
				"resource %s not found",
				resourceID,
			)
	}

	return resource,
		nil
}

func (m *ResourceManager) RemoveResource(resourceID string) error {
	if _, exists := m.resources[resourceID]; !exists {
		return fmt.Errorf(
			"resource %s not found",
			resourceID,
		)
	}

	delete(m.resources, resourceID)

	return nil
}

// GetAllResources returns resources ordered by ID for deterministic
// iteration.
func (m *ResourceManager) GetAllResources() []*Resource {
	result := make([]*Resource, 0, len(m.resources))

	for _, resource := range m.resources {
		result = append(result, resource)
	}

	sort.Slice(
		result,
		func(i, j int) bool {
			return result[i].ID < result[j].ID
		},
	)

	return result
}

func (m *ResourceManager) GetResourcesByKind(kind ResourceKind) []*Resource {
	var result []*Resource

	for _, resource := range m.GetAllResources() {
		if resource.Kind == kind {
			result = append(result, resource)
		}
	}

	return result
}
