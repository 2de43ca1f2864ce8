package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// HomeView aggregates the landing-page rails.
type HomeView struct {
	Trending       []Item `json:"trending"`
	PopularMovies  []Item `json:"popular_movies"`
	PopularShows   []Item `json:"popular_shows"`
	TopRatedMovies []Item `json:"top_rated_movies"`
	TopRatedShows  []Item `json:"top_rated_shows"`
	NowPlaying     []Item `json:"now_playing"`
	Upcoming       []Item `json:"upcoming"`
	AiringToday    []Item `json:"airing_today"`
}

// Home fans out the landing-page fetches concurrently. Section failures are
// isolated: a failed rail is served empty and logged, the rest of the page
// still renders.
func (c *Client) Home(ctx context.Context) (HomeView, error) {
	var view HomeView

	g, gctx := errgroup.WithContext(ctx)

	sections := []struct {
		name  string
		fetch func(context.Context) ([]Item, error)
		dest  *[]Item
	}{
		{"trending", c.Trending, &view.Trending},
		{"popular_movies", func(ctx context.Context) ([]Item, error) { return c.Popular(ctx, MediaTypeMovie) }, &view.PopularMovies},
		{"popular_shows", func(ctx context.Context) ([]Item, error) { return c.Popular(ctx, MediaTypeTV) }, &view.PopularShows},
		{"top_rated_movies", func(ctx context.Context) ([]Item, error) { return c.TopRated(ctx, MediaTypeMovie) }, &view.TopRatedMovies},
		{"top_rated_shows", func(ctx context.Context) ([]Item, error) { return c.TopRated(ctx, MediaTypeTV) }, &view.TopRatedShows},
		{"now_playing", c.NowPlaying, &view.NowPlaying},
		{"upcoming", c.Upcoming, &view.Upcoming},
		{"airing_today", c.AiringToday, &view.AiringToday},
	}

	for _, section := range sections {
		section := section
		g.Go(func() error {
			items, err := section.fetch(gctx)
			if err != nil {
				if c.logg != nil {
					c.logg.Warn(c.logg.WithField(gctx, "section", section.name), "home section fetch failed, serving empty rail")
				}
				*section.dest = []Item{}
				return nil
			}
			*section.dest = items
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return HomeView{}, err
	}
	return view, nil
}

// GenreRails fetches the genre list and one discover page per genre, keyed
// by genre name.
func (c *Client) GenreRails(ctx context.Context, mediaType MediaType) (map[string][]Item, error) {
	genres, err := c.Genres(ctx, mediaType)
	if err != nil {
		return nil, err
	}

	rails := make(map[string][]Item, len(genres))
	for _, genre := range genres {
		page, err := c.DiscoverByGenre(ctx, mediaType, genre.ID, 1)
		if err != nil {
			if c.logg != nil {
				c.logg.Warn(c.logg.WithField(ctx, "genre", genre.Name), "genre rail fetch failed, serving empty rail")
			}
			rails[genre.Name] = []Item{}
			continue
		}
		rails[genre.Name] = page.Results
	}
	return rails, nil
}

// GenresByID filters the genre catalog down to the supplied ids, preserving
// catalog order.
func (c *Client) GenresByID(ctx context.Context, mediaType MediaType, ids []int64) ([]Genre, error) {
	genres, err := c.Genres(ctx, mediaType)
	if err != nil {
		return nil, err
	}

	wanted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	matched := make([]Genre, 0, len(ids))
	for _, genre := range genres {
		if _, ok := wanted[genre.ID]; ok {
			matched = append(matched, genre)
		}
	}
	return matched, nil
}
