package domain

import "time"

// AreaCatalog is a fixed area of an accommodation (kitchen, bathroom, ...)
type AreaCatalog struct {
	CreatedAt    time.Time `json:"created_at"`
	DisplayOrder int       `json:"display_order"`
	Icon         *string   `json:"icon"`
	ID           string    `json:"id"`
	Key          string    `json:"key"`
	Label        string    `json:"label"`
}

// ElementCatalog is a specific element inside an area
type ElementCatalog struct {
	AreaCatalogID string    `json:"area_catalog_id"`
	CreatedAt     time.Time `json:"created_at"`
	DisplayOrder  int       `json:"display_order"`
	ID            string    `json:"id"`
	Name          string    `json:"name"`
}

// AreaWithElements groups an area with its elements for display
type AreaWithElements struct {
	AreaCatalog
	Elements []ElementCatalog
}
