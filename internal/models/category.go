// internal/models/category.go
package models

// BusinessCategory is static reference data describing one service category.
// Loaded once at startup from the category registry and never mutated.
type BusinessCategory struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Icon            string          `json:"icon"`
	InteractionType InteractionType `json:"interactionType"`
	IsActive        bool            `json:"isActive"`
	DisplayOrder    int             `json:"displayOrder"`
}
