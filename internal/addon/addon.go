package addon

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/dbytex91/nasavideos/internal/model"
	"github.com/dbytex91/nasavideos/internal/nasa"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

const (
	cacheSize    = 64 * 1024 * 1024 // 64MB
	cacheExpiry  = 60 * 60          // 1 hour
	catalogShape = "landscape"
	defaultName  = "Nasa Videos"
)

// Addon implements a MediaHubMX addon serving NASA videos.
type Addon struct {
	id          string
	name        string
	version     string
	description string

	nasaClient   *nasa.Client
	requestCache *RequestCache
}

type Option func(*Addon)

type CatalogRequest struct {
	Search string         `json:"search"`
	Filter map[string]any `json:"filter"`
	Cursor *int           `json:"cursor"`
}

type ItemRequest struct {
	IDs model.ItemIDs `json:"ids"`
}

func New(opts ...Option) *Addon {
	addon := &Addon{
		name:        defaultName,
		description: "Videos from the NASA image and video library",
	}

	for _, opt := range opts {
		opt(addon)
	}

	if addon.nasaClient == nil {
		addon.nasaClient = nasa.New(nasa.DefaultAPIURL, "")
	}
	if addon.requestCache == nil {
		addon.requestCache = NewRequestCache(cacheSize, cacheExpiry*time.Second, nil)
	}

	return addon
}

func (add *Addon) Manifest() *Manifest {
	return &Manifest{
		ID:          add.id,
		Name:        add.name,
		Description: add.description,
		Version:     add.version,
		Actions:     []Action{ActionAddon, ActionCatalog, ActionItem},
		ItemTypes:   []model.ItemType{model.ItemTypeChannel},
		Catalogs: []CatalogItem{
			{
				Features: CatalogFeatures{
					Search: &SearchFeature{Enabled: true},
				},
				Options: CatalogOptions{
					Shape:       catalogShape,
					DisplayName: true,
				},
			},
		},
		Dashboards: []DashboardItem{
			{
				ID:   "",
				Name: add.name,
			},
		},
	}
}

func (add *Addon) HandleAddon(c *fiber.Ctx) error {
	return c.JSON(add.Manifest())
}

func (add *Addon) HandleCatalog(c *fiber.Ctx) error {
	req := CatalogRequest{}
	if err := parseBody(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid catalog request.",
		})
	}

	key := []any{req.Search, req.Filter, req.Cursor}
	data, err := add.requestCache.Do(key, func() ([]byte, error) {
		resp, err := add.nasaClient.GetVideos(c.UserContext(), nasa.SearchRequest{
			Search: req.Search,
			Filter: req.Filter,
			Cursor: req.Cursor,
		})
		if err != nil {
			return nil, err
		}

		log.Infof("Catalog %q page %s - Found %d videos", req.Search, cursorString(req.Cursor), len(resp.Items))
		return json.Marshal(resp)
	})
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

func (add *Addon) HandleItem(c *fiber.Ctx) error {
	req := ItemRequest{}
	if err := parseBody(c, &req); err != nil || req.IDs.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item request.",
		})
	}

	item, err := add.nasaClient.GetVideo(c.UserContext(), req.IDs.ID)
	if err != nil {
		return respondError(c, err)
	}

	if item == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "item not found",
		})
	}

	return c.JSON(item)
}

func parseBody(c *fiber.Ctx, out any) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		log.Errorf("Failed JSON unmarshal request body %s: %v", body, err)
		return err
	}

	return nil
}

// respondError forwards upstream failures with their own status and body.
func respondError(c *fiber.Ctx, err error) error {
	var apiErr *nasa.APIError
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.StatusCode).JSON(fiber.Map{
			"error": apiErr.Body,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func cursorString(cursor *int) string {
	if cursor == nil {
		return "null"
	}
	return strconv.Itoa(*cursor)
}
