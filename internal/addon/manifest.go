package addon

import "github.com/dbytex91/nasavideos/internal/model"

// Action refers to the actions a MediaHubMX host can call on an addon.
type Action string

const (
	ActionAddon   Action = "addon"
	ActionCatalog Action = "catalog"
	ActionItem    Action = "item"
)

type Manifest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`

	Actions    []Action         `json:"actions"`
	ItemTypes  []model.ItemType `json:"itemTypes"`
	Catalogs   []CatalogItem    `json:"catalogs,omitempty"`
	Dashboards []DashboardItem  `json:"dashboards,omitempty"`
}

// CatalogItem represents a catalog.
type CatalogItem struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`

	Features CatalogFeatures `json:"features"`
	Options  CatalogOptions  `json:"options"`
}

type CatalogFeatures struct {
	Search *SearchFeature `json:"search,omitempty"`
}

type SearchFeature struct {
	Enabled bool `json:"enabled"`
}

type CatalogOptions struct {
	Shape       string `json:"shape,omitempty"`
	DisplayName bool   `json:"displayName,omitempty"`
}

type DashboardItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
