package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/literllyHimm/Cinewave/pkg/config"
	pkgerrors "github.com/literllyHimm/Cinewave/pkg/errors"
	"github.com/literllyHimm/Cinewave/pkg/logger"
)

const defaultSearchLimit = 8

// Client is a typed client for the catalog query service.
type Client struct {
	baseURL     string
	apiKey      string
	language    string
	searchLimit int
	http        *http.Client
	logg        *logger.Logger
}

// NewClient builds a catalog client from config.
func NewClient(cfg config.CatalogConfig, logg *logger.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog api key is required")
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog base url is required")
	}
	searchLimit := cfg.SearchLimit
	if searchLimit <= 0 {
		searchLimit = defaultSearchLimit
	}
	return &Client{
		baseURL:     baseURL,
		apiKey:      cfg.APIKey,
		language:    cfg.Language,
		searchLimit: searchLimit,
		http:        &http.Client{Timeout: cfg.Timeout},
		logg:        logg,
	}, nil
}

type resultsEnvelope struct {
	Results []Item `json:"results"`
}

type genresEnvelope struct {
	Genres []Genre `json:"genres"`
}

type videosEnvelope struct {
	Results []Video `json:"results"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	if c.language != "" && query.Get("language") == "" {
		query.Set("language", c.language)
	}

	endpoint := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build catalog request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("catalog responded with status %d for %s", resp.StatusCode, path))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode catalog response")
	}
	return nil
}

// Popular lists the popular rail for a media type.
func (c *Client) Popular(ctx context.Context, mediaType MediaType) ([]Item, error) {
	if _, err := ParseMediaType(string(mediaType)); err != nil {
		return nil, err
	}
	var env resultsEnvelope
	if err := c.get(ctx, fmt.Sprintf("/%s/popular", mediaType), nil, &env); err != nil {
		return nil, err
	}
	return env.Results, nil
}

// TopRated lists the top-rated rail for a media type.
func (c *Client) TopRated(ctx context.Context, mediaType MediaType) ([]Item, error) {
	if _, err := ParseMediaType(string(mediaType)); err != nil {
		return nil, err
	}
	var env resultsEnvelope
	if err := c.get(ctx, fmt.Sprintf("/%s/top_rated", mediaType), nil, &env); err != nil {
		return nil, err
	}
	return env.Results, nil
}

// NowPlaying lists movies currently in theaters.
func (c *Client) NowPlaying(ctx context.Context) ([]Item, error) {
	var env resultsEnvelope
	if err := c.get(ctx, "/movie/now_playing", nil, &env); err != nil {
		return nil, err
	}
	return env.Results, nil
}

// Upcoming lists movies releasing soon.
func (c *Client) Upcoming(ctx context.Context) ([]Item, error) {
	var env resultsEnvelope
	if err := c.get(ctx, "/movie/upcoming", nil, &env); err != nil {
		return nil, err
	}
	return env.Results, nil
}

// AiringToday lists shows airing today.
func (c *Client) AiringToday(ctx context.Context) ([]Item, error) {
	var env resultsEnvelope
	if err := c.get(ctx, "/tv/airing_today", nil, &env); err != nil {
		return nil, err
	}
	return env.Results, nil
}

// Trending lists the cross-media weekly trending rail.
func (c *Client) Trending(ctx context.Context) ([]Item, error) {
	var env resultsEnvelope
	if err := c.get(ctx, "/trending/all/week", nil, &env); err != nil {
		return nil, err
	}
	return env.Results, nil
}

// Genres lists the genre catalog for a media type.
func (c *Client) Genres(ctx context.Context, mediaType MediaType) ([]Genre, error) {
	if _, err := ParseMediaType(string(mediaType)); err != nil {
		return nil, err
	}
	var env genresEnvelope
	if err := c.get(ctx, fmt.Sprintf("/genre/%s/list", mediaType), nil, &env); err != nil {
		return nil, err
	}
	return env.Genres, nil
}

// DiscoverByGenre returns one page of entries for a genre, including the
// total page count for pagination.
func (c *Client) DiscoverByGenre(ctx context.Context, mediaType MediaType, genreID int64, page int) (Page, error) {
	if _, err := ParseMediaType(string(mediaType)); err != nil {
		return Page{}, err
	}
	if page < 1 {
		page = 1
	}
	query := url.Values{}
	query.Set("with_genres", strconv.FormatInt(genreID, 10))
	query.Set("page", strconv.Itoa(page))

	var result Page
	if err := c.get(ctx, fmt.Sprintf("/discover/%s", mediaType), query, &result); err != nil {
		return Page{}, err
	}
	if result.TotalPages < 1 {
		result.TotalPages = 1
	}
	return result, nil
}

// Details fetches the full record for one item.
func (c *Client) Details(ctx context.Context, mediaType MediaType, id int64) (Item, error) {
	if _, err := ParseMediaType(string(mediaType)); err != nil {
		return Item{}, err
	}
	var item Item
	if err := c.get(ctx, fmt.Sprintf("/%s/%d", mediaType, id), nil, &item); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Images fetches artwork for one item.
func (c *Client) Images(ctx context.Context, mediaType MediaType, id int64) (ImageSet, error) {
	if _, err := ParseMediaType(string(mediaType)); err != nil {
		return ImageSet{}, err
	}
	var images ImageSet
	if err := c.get(ctx, fmt.Sprintf("/%s/%d/images", mediaType, id), nil, &images); err != nil {
		return ImageSet{}, err
	}
	return images, nil
}

// Credits fetches the cast for one item.
func (c *Client) Credits(ctx context.Context, mediaType MediaType, id int64) (Credits, error) {
	if _, err := ParseMediaType(string(mediaType)); err != nil {
		return Credits{}, err
	}
	var credits Credits
	if err := c.get(ctx, fmt.Sprintf("/%s/%d/credits", mediaType, id), nil, &credits); err != nil {
		return Credits{}, err
	}
	return credits, nil
}

// Similar fetches related entries for one item.
func (c *Client) Similar(ctx context.Context, mediaType MediaType, id int64) ([]Item, error) {
	if _, err := ParseMediaType(string(mediaType)); err != nil {
		return nil, err
	}
	var env resultsEnvelope
	if err := c.get(ctx, fmt.Sprintf("/%s/%d/similar", mediaType, id), nil, &env); err != nil {
		return nil, err
	}
	return env.Results, nil
}

// Trailer returns the first official video for an item, or nil when the
// catalog lists none.
func (c *Client) Trailer(ctx context.Context, mediaType MediaType, id int64) (*Video, error) {
	if _, err := ParseMediaType(string(mediaType)); err != nil {
		return nil, err
	}
	var env videosEnvelope
	if err := c.get(ctx, fmt.Sprintf("/%s/%d/videos", mediaType, id), nil, &env); err != nil {
		return nil, err
	}
	for _, video := range env.Results {
		if video.Official {
			v := video
			return &v, nil
		}
	}
	return nil, nil
}

// Search queries the movie catalog, capped at the configured result limit.
func (c *Client) Search(ctx context.Context, queryString string) ([]Item, error) {
	queryString = strings.TrimSpace(queryString)
	if queryString == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}
	query := url.Values{}
	query.Set("query", queryString)

	var env resultsEnvelope
	if err := c.get(ctx, "/search/movie", query, &env); err != nil {
		return nil, err
	}
	if len(env.Results) > c.searchLimit {
		env.Results = env.Results[:c.searchLimit]
	}
	return env.Results, nil
}
