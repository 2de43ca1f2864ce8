package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/literllyHimm/Cinewave/internal/catalog"
	pkgerrors "github.com/literllyHimm/Cinewave/pkg/errors"
	"github.com/literllyHimm/Cinewave/pkg/types"
)

type stubCatalog struct {
	home     catalog.HomeView
	items    []catalog.Item
	page     catalog.Page
	detail   catalog.Item
	err      error
	lastType catalog.MediaType
}

func (s *stubCatalog) Home(context.Context) (catalog.HomeView, error) { return s.home, s.err }

func (s *stubCatalog) Popular(_ context.Context, mt catalog.MediaType) ([]catalog.Item, error) {
	s.lastType = mt
	return s.items, s.err
}

func (s *stubCatalog) TopRated(_ context.Context, mt catalog.MediaType) ([]catalog.Item, error) {
	s.lastType = mt
	return s.items, s.err
}

func (s *stubCatalog) Trending(context.Context) ([]catalog.Item, error) { return s.items, s.err }

func (s *stubCatalog) NowPlaying(context.Context) ([]catalog.Item, error)  { return s.items, s.err }
func (s *stubCatalog) Upcoming(context.Context) ([]catalog.Item, error)    { return s.items, s.err }
func (s *stubCatalog) AiringToday(context.Context) ([]catalog.Item, error) { return s.items, s.err }

func (s *stubCatalog) Genres(_ context.Context, mt catalog.MediaType) ([]catalog.Genre, error) {
	s.lastType = mt
	return nil, s.err
}

func (s *stubCatalog) GenresByID(_ context.Context, mt catalog.MediaType, _ []int64) ([]catalog.Genre, error) {
	s.lastType = mt
	return nil, s.err
}

func (s *stubCatalog) GenreRails(_ context.Context, mt catalog.MediaType) (map[string][]catalog.Item, error) {
	s.lastType = mt
	return map[string][]catalog.Item{}, s.err
}

func (s *stubCatalog) DiscoverByGenre(_ context.Context, mt catalog.MediaType, _ int64, _ int) (catalog.Page, error) {
	s.lastType = mt
	return s.page, s.err
}

func (s *stubCatalog) Details(_ context.Context, mt catalog.MediaType, _ int64) (catalog.Item, error) {
	s.lastType = mt
	return s.detail, s.err
}

func (s *stubCatalog) Images(context.Context, catalog.MediaType, int64) (catalog.ImageSet, error) {
	return catalog.ImageSet{}, s.err
}

func (s *stubCatalog) Credits(context.Context, catalog.MediaType, int64) (catalog.Credits, error) {
	return catalog.Credits{}, s.err
}

func (s *stubCatalog) Similar(context.Context, catalog.MediaType, int64) ([]catalog.Item, error) {
	return s.items, s.err
}

func (s *stubCatalog) Trailer(context.Context, catalog.MediaType, int64) (*catalog.Video, error) {
	return nil, s.err
}

func (s *stubCatalog) Search(context.Context, string) ([]catalog.Item, error) {
	return s.items, s.err
}

func routeRequest(t *testing.T, pattern string, handler http.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Get(pattern, handler)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", target, nil))
	return w
}

func TestCatalogHome(t *testing.T) {
	t.Parallel()

	svc := &stubCatalog{home: catalog.HomeView{Trending: []catalog.Item{{ID: 1, Title: "Dune"}}}}
	w := routeRequest(t, "/home", CatalogHome(svc, nil), "/home")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestCatalogPopularValidatesMediaType(t *testing.T) {
	t.Parallel()

	svc := &stubCatalog{}
	w := routeRequest(t, "/{mediaType}/popular", CatalogPopular(svc, nil), "/anime/popular")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad media type, got %d", w.Code)
	}
}

func TestCatalogDiscoverPageBounds(t *testing.T) {
	t.Parallel()

	svc := &stubCatalog{page: catalog.Page{Page: 1, TotalPages: 3}}
	w := routeRequest(t, "/{mediaType}/discover/{genreID}", CatalogDiscover(svc, nil), "/movie/discover/28?page=0")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range page, got %d", w.Code)
	}

	w = routeRequest(t, "/{mediaType}/discover/{genreID}", CatalogDiscover(svc, nil), "/movie/discover/28?page=2")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.lastType != catalog.MediaTypeMovie {
		t.Fatalf("media type not forwarded, got %q", svc.lastType)
	}
}

func TestCatalogDetailsDegradesCompanions(t *testing.T) {
	t.Parallel()

	svc := &stubCatalog{detail: catalog.Item{ID: 7, Title: "Alien"}}
	w := routeRequest(t, "/{mediaType}/{id}", CatalogDetails(svc, nil), "/movie/7")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := body.Data["item"]; !ok {
		t.Fatalf("detail payload missing item: %v", body.Data)
	}
}

func TestCatalogDependencyFailure(t *testing.T) {
	t.Parallel()

	svc := &stubCatalog{err: pkgerrors.New(pkgerrors.CodeDependency, "upstream down")}
	w := routeRequest(t, "/trending", CatalogTrending(svc, nil), "/trending")

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}
