package model

// ItemType refers to the item types understood by a MediaHubMX host.
type ItemType string

const (
	ItemTypeChannel ItemType = "channel"
)

type SourceType string

const (
	SourceTypeURL SourceType = "url"
)

type ItemIDs struct {
	ID string `json:"id"`
}

type ItemImages struct {
	Poster string `json:"poster,omitempty"`
}

type Source struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Type SourceType `json:"type"`
	URL  string     `json:"url"`
}

// ChannelItem is the normalized item handed back to the host.
type ChannelItem struct {
	ID          string     `json:"id"`
	Type        ItemType   `json:"type"`
	IDs         ItemIDs    `json:"ids"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ReleaseDate string     `json:"releaseDate"`
	Images      ItemImages `json:"images"`
	Sources     []Source   `json:"sources"`
}

type Filter struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CatalogFeatures struct {
	Filter []Filter `json:"filter"`
}

type CatalogResponse struct {
	Items      []ChannelItem   `json:"items"`
	NextCursor *int            `json:"nextCursor"`
	Features   CatalogFeatures `json:"features"`
}
