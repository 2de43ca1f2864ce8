package lists

import (
	"context"

	"github.com/literllyHimm/Cinewave/internal/catalog"
	pkgerrors "github.com/literllyHimm/Cinewave/pkg/errors"
	"github.com/literllyHimm/Cinewave/pkg/logger"
)

type entryStore interface {
	Set(ctx context.Context, kind Kind, uid string, entry Entry) error
	Delete(ctx context.Context, kind Kind, uid string, mediaType catalog.MediaType, itemID int64) error
	GetAll(ctx context.Context, kind Kind, uid string) ([]Entry, error)
}

// Service exposes the favorites and bookmarks operations.
type Service interface {
	Add(ctx context.Context, kind Kind, uid string, mediaType catalog.MediaType, item catalog.Item) error
	Remove(ctx context.Context, kind Kind, uid string, mediaType catalog.MediaType, itemID int64) error
	FetchAll(ctx context.Context, kind Kind, uid string) ([]Entry, error)
}

type service struct {
	store entryStore
	logg  *logger.Logger
}

// NewService builds the lists service.
func NewService(store entryStore, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "entry store is required")
	}
	return &service{store: store, logg: logg}, nil
}

// Add saves an item to the list. The media type falls back through the
// item's own fields when the caller does not name one.
func (s *service) Add(ctx context.Context, kind Kind, uid string, mediaType catalog.MediaType, item catalog.Item) error {
	if uid == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "you must be signed in to save items")
	}
	if item.ID == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	resolved := catalog.ResolveMediaType(mediaType, item)
	return s.store.Set(ctx, kind, uid, Entry{Item: item, MediaType: resolved})
}

// Remove deletes an item from the list. Removing an item that was never
// saved succeeds. Bookmark documents are keyed by media type, so a
// bookmark removal without one cannot name an existing document and is
// rejected instead of silently deleting nothing.
func (s *service) Remove(ctx context.Context, kind Kind, uid string, mediaType catalog.MediaType, itemID int64) error {
	if uid == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "you must be signed in to remove items")
	}
	if itemID == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if kind == KindBookmarks {
		if _, err := catalog.ParseMediaType(string(mediaType)); err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "media type is required to remove a bookmark")
		}
	}
	return s.store.Delete(ctx, kind, uid, mediaType, itemID)
}

// FetchAll returns the list contents. Without a session the list is
// empty, and storage failures degrade to an empty list so the shelf
// renders instead of erroring the whole page.
func (s *service) FetchAll(ctx context.Context, kind Kind, uid string) ([]Entry, error) {
	if uid == "" {
		return []Entry{}, nil
	}
	entries, err := s.store.GetAll(ctx, kind, uid)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
				"list":  string(kind),
				"error": err.Error(),
			}), "failed to load list")
		}
		return []Entry{}, nil
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}
