// pkg/registry/registry.go

// Package registry loads the static business-category reference data. The
// registry is read once at startup and never mutated at runtime.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	cerrors "discovery-service/internal/common/errors"
	"discovery-service/internal/models"
)

// CategoryRegistry is the parsed categories file plus lookup indexes.
type CategoryRegistry struct {
	Version     string                    `json:"version"`
	LastUpdated string                    `json:"lastUpdated"`
	Categories  []models.BusinessCategory `json:"categories"`

	byID map[string]models.BusinessCategory
}

// Load reads and validates the category registry at path. Categories are
// returned sorted by DisplayOrder so callers can render them directly.
func Load(path string) (*CategoryRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cerrors.NewCategoryRegistryInvalidError(fmt.Sprintf("read %s: %v", path, err))
	}

	var reg CategoryRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, cerrors.NewCategoryRegistryInvalidError(fmt.Sprintf("parse %s: %v", path, err))
	}

	if err := reg.validate(); err != nil {
		return nil, err
	}

	sort.SliceStable(reg.Categories, func(i, j int) bool {
		return reg.Categories[i].DisplayOrder < reg.Categories[j].DisplayOrder
	})

	reg.byID = make(map[string]models.BusinessCategory, len(reg.Categories))
	for _, c := range reg.Categories {
		reg.byID[c.ID] = c
	}

	return &reg, nil
}

func (r *CategoryRegistry) validate() error {
	seen := make(map[string]bool, len(r.Categories))
	for _, c := range r.Categories {
		if c.ID == "" {
			return cerrors.NewCategoryRegistryInvalidError("category with empty id")
		}
		if seen[c.ID] {
			return cerrors.NewCategoryRegistryInvalidError(fmt.Sprintf("duplicate category id %q", c.ID))
		}
		seen[c.ID] = true
		if !models.ValidInteractionType(c.InteractionType) {
			return cerrors.NewCategoryRegistryInvalidError(
				fmt.Sprintf("category %q has unknown interaction type %q", c.ID, c.InteractionType))
		}
	}
	return nil
}

// Lookup returns the category for id. Inactive categories resolve like any
// other; callers decide whether inactivity matters.
func (r *CategoryRegistry) Lookup(id string) (models.BusinessCategory, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// Known reports whether id names an active category.
func (r *CategoryRegistry) Known(id string) bool {
	c, ok := r.byID[id]
	return ok && c.IsActive
}

// Active returns the active categories in display order.
func (r *CategoryRegistry) Active() []models.BusinessCategory {
	out := make([]models.BusinessCategory, 0, len(r.Categories))
	for _, c := range r.Categories {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out
}
