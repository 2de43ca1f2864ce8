package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/literllyHimm/Cinewave/api/responses"
	"github.com/literllyHimm/Cinewave/api/validators"
	"github.com/literllyHimm/Cinewave/internal/catalog"
	pkgerrors "github.com/literllyHimm/Cinewave/pkg/errors"
	"github.com/literllyHimm/Cinewave/pkg/logger"
)

// CatalogService is the slice of the catalog client the HTTP layer uses.
type CatalogService interface {
	Home(ctx context.Context) (catalog.HomeView, error)
	Popular(ctx context.Context, mediaType catalog.MediaType) ([]catalog.Item, error)
	TopRated(ctx context.Context, mediaType catalog.MediaType) ([]catalog.Item, error)
	Trending(ctx context.Context) ([]catalog.Item, error)
	NowPlaying(ctx context.Context) ([]catalog.Item, error)
	Upcoming(ctx context.Context) ([]catalog.Item, error)
	AiringToday(ctx context.Context) ([]catalog.Item, error)
	Genres(ctx context.Context, mediaType catalog.MediaType) ([]catalog.Genre, error)
	GenresByID(ctx context.Context, mediaType catalog.MediaType, ids []int64) ([]catalog.Genre, error)
	GenreRails(ctx context.Context, mediaType catalog.MediaType) (map[string][]catalog.Item, error)
	DiscoverByGenre(ctx context.Context, mediaType catalog.MediaType, genreID int64, page int) (catalog.Page, error)
	Details(ctx context.Context, mediaType catalog.MediaType, id int64) (catalog.Item, error)
	Images(ctx context.Context, mediaType catalog.MediaType, id int64) (catalog.ImageSet, error)
	Credits(ctx context.Context, mediaType catalog.MediaType, id int64) (catalog.Credits, error)
	Similar(ctx context.Context, mediaType catalog.MediaType, id int64) ([]catalog.Item, error)
	Trailer(ctx context.Context, mediaType catalog.MediaType, id int64) (*catalog.Video, error)
	Search(ctx context.Context, query string) ([]catalog.Item, error)
}

// CatalogHome serves the landing page rails.
func CatalogHome(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		view, err := svc.Home(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CatalogTrending serves the cross-media trending rail.
func CatalogTrending(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		items, err := svc.Trending(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// CatalogNowPlaying serves the in-theaters movie rail.
func CatalogNowPlaying(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		items, err := svc.NowPlaying(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// CatalogUpcoming serves the upcoming movie rail.
func CatalogUpcoming(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		items, err := svc.Upcoming(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// CatalogAiringToday serves the airing-today show rail.
func CatalogAiringToday(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		items, err := svc.AiringToday(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// CatalogPopular serves the popular rail for one media type.
func CatalogPopular(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		mediaType, err := mediaTypeParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		items, err := svc.Popular(ctx, mediaType)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// CatalogTopRated serves the top-rated rail for one media type.
func CatalogTopRated(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		mediaType, err := mediaTypeParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		items, err := svc.TopRated(ctx, mediaType)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// CatalogGenres lists the genre taxonomy for one media type. An optional
// comma-separated ids filter resolves a preference set to named genres.
func CatalogGenres(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		mediaType, err := mediaTypeParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var genres []catalog.Genre
		if rawIDs := strings.TrimSpace(r.URL.Query().Get("ids")); rawIDs != "" {
			ids, err := parseIDList(rawIDs)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			genres, err = svc.GenresByID(ctx, mediaType, ids)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		} else if genres, err = svc.Genres(ctx, mediaType); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, genres)
	}
}

func parseIDList(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "ids must be a comma-separated list of integers")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// CatalogGenreRails serves one rail per genre for the explore page.
func CatalogGenreRails(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		mediaType, err := mediaTypeParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		rails, err := svc.GenreRails(ctx, mediaType)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, rails)
	}
}

// CatalogDiscover pages through one genre's items.
func CatalogDiscover(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		mediaType, err := mediaTypeParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		genreID, err := int64Param(r, "genreID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		page, err := validators.ParseQueryInt(r, "page", 1, 1, 500)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		result, err := svc.DiscoverByGenre(ctx, mediaType, genreID, page)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CatalogDetails serves the detail page payload: the item plus its
// images, cast, trailer and similar titles.
func CatalogDetails(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		mediaType, err := mediaTypeParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		id, err := int64Param(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		item, err := svc.Details(ctx, mediaType, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		// Companion sections degrade to empty rather than failing the
		// whole detail page.
		payload := map[string]any{"item": item}
		if images, err := svc.Images(ctx, mediaType, id); err == nil {
			payload["images"] = images
		}
		if credits, err := svc.Credits(ctx, mediaType, id); err == nil {
			payload["credits"] = credits
		}
		if similar, err := svc.Similar(ctx, mediaType, id); err == nil {
			payload["similar"] = similar
		}
		if trailer, err := svc.Trailer(ctx, mediaType, id); err == nil && trailer != nil {
			payload["trailer"] = trailer
		}
		responses.WriteSuccess(w, payload)
	}
}

// CatalogSearch serves the capped movie search used by the navbar.
func CatalogSearch(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		query := validators.SanitizeString(r.URL.Query().Get("query"), 200)
		items, err := svc.Search(ctx, query)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func mediaTypeParam(r *http.Request) (catalog.MediaType, error) {
	return catalog.ParseMediaType(chi.URLParam(r, "mediaType"))
}

func int64Param(r *http.Request, name string) (int64, error) {
	value, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be a positive integer").WithDetails(map[string]any{"field": name})
	}
	return value, nil
}
