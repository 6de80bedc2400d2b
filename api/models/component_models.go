// api/models/component_models.go
package models

import "encoding/json"

// --- Page Component Request Structs ---

// CreateComponentRequest defines the structure for adding a component to a
// page. ComponentData is validated against ComponentType before persisting.
type CreateComponentRequest struct {
	ComponentType string          `json:"component_type" binding:"required"`
	ComponentData json.RawMessage `json:"component_data" binding:"required"`
	SortOrder     int             `json:"sort_order"`
}

// UpdateComponentRequest carries a partial component update.
type UpdateComponentRequest struct {
	ComponentData json.RawMessage `json:"component_data"`
	SortOrder     *int            `json:"sort_order"`
}

// UpdateComponentOrderRequest sets a component's sort_order. A pointer keeps
// an explicit zero distinguishable from an absent field.
type UpdateComponentOrderRequest struct {
	SortOrder *int `json:"sort_order" binding:"required"`
}
