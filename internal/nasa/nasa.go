package nasa

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/dbytex91/nasavideos/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

const (
	searchPath     = "search"
	mediaTypeVideo = "video"

	relPreview = "preview"
	relNext    = "next"

	thumbSuffix = "~thumb.jpg"
	videoSuffix = "~orig.mp4"
)

type SearchRequest struct {
	Search string
	Filter map[string]any
	// Cursor is the 1-based page to fetch, nil means the first page.
	Cursor *int
}

// GetVideos runs a video search and returns one catalog page.
func (c *Client) GetVideos(ctx context.Context, req SearchRequest) (*model.CatalogResponse, error) {
	page := resolvePage(req.Cursor)

	query := toValues(req.Filter)
	query.Set("q", req.Search)
	query.Set("media_type", mediaTypeVideo)
	query.Set("page", strconv.Itoa(page))

	envelope := Envelope{}
	if err := c.Get(ctx, searchPath, query, &envelope); err != nil {
		log.Errorf("Failed to search videos for %q on page %d: %v", req.Search, page, err)
		return nil, err
	}

	var nextCursor *int
	if findLink(envelope.Collection.Links, relNext) != nil {
		next := page + 1
		nextCursor = &next
	}

	return &model.CatalogResponse{
		Items:      convertChannels(envelope.Collection.Items),
		NextCursor: nextCursor,
		Features: model.CatalogFeatures{
			Filter: []model.Filter{},
		},
	}, nil
}

// GetVideo looks a video up by its NASA id. It returns nil when the search
// has no match.
func (c *Client) GetVideo(ctx context.Context, id string) (*model.ChannelItem, error) {
	envelope := Envelope{}
	err := c.Get(ctx, searchPath, url.Values{"nasa_id": {id}}, &envelope)
	if err != nil {
		log.Errorf("Failed to look up video %s: %v", id, err)
		return nil, err
	}

	items := convertChannels(envelope.Collection.Items)
	if len(items) == 0 {
		return nil, nil
	}

	return &items[0], nil
}

func resolvePage(cursor *int) int {
	if cursor == nil {
		return 1
	}
	return *cursor
}

func convertChannels(raw []RawItem) []model.ChannelItem {
	items := make([]model.ChannelItem, 0, len(raw))
	for _, item := range raw {
		channel, ok := convertChannel(item)
		if !ok {
			log.Warnf("Skip search item without data (%d links)", len(item.Links))
			continue
		}
		items = append(items, channel)
	}
	return items
}

func convertChannel(item RawItem) (model.ChannelItem, bool) {
	if len(item.Data) == 0 {
		return model.ChannelItem{}, false
	}

	record := item.Data[0]
	preview := findLink(item.Links, relPreview)

	channel := model.ChannelItem{
		ID:          record.NasaID,
		Type:        model.ItemTypeChannel,
		IDs:         model.ItemIDs{ID: record.NasaID},
		Name:        record.Title,
		Description: record.Description,
		ReleaseDate: record.DateCreated,
		Sources:     []model.Source{},
	}

	if preview != nil && preview.Href != "" {
		channel.Images.Poster = preview.Href
		channel.Sources = append(channel.Sources, model.Source{
			ID:   record.NasaID,
			Name: record.Title,
			Type: model.SourceTypeURL,
			URL:  videoURL(preview.Href),
		})
	}

	return channel, true
}

// videoURL derives the original video from a preview thumbnail URL.
func videoURL(thumbnail string) string {
	return strings.Replace(thumbnail, thumbSuffix, videoSuffix, 1)
}
