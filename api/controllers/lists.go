package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/literllyHimm/Cinewave/api/middleware"
	"github.com/literllyHimm/Cinewave/api/responses"
	"github.com/literllyHimm/Cinewave/api/validators"
	"github.com/literllyHimm/Cinewave/internal/catalog"
	"github.com/literllyHimm/Cinewave/internal/lists"
	pkgerrors "github.com/literllyHimm/Cinewave/pkg/errors"
	"github.com/literllyHimm/Cinewave/pkg/logger"
)

type addListItemPayload struct {
	MediaType string       `json:"media_type"`
	Item      catalog.Item `json:"item" validate:"required"`
}

// ListItems returns the caller's list, empty for anonymous sessions.
func ListItems(svc lists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		kind, err := listKindParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		entries, err := svc.FetchAll(ctx, kind, middleware.UserIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

// ListAdd saves an item to the caller's list.
func ListAdd(svc lists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		kind, err := listKindParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload addListItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		uid := middleware.UserIDFromContext(ctx)
		if err := svc.Add(ctx, kind, uid, catalog.MediaType(payload.MediaType), payload.Item); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"id": payload.Item.ID})
	}
}

// ListRemove deletes an item from the caller's list.
func ListRemove(svc lists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		kind, err := listKindParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		itemID, err := int64Param(r, "itemID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		mediaType := catalog.MediaType(r.URL.Query().Get("media_type"))
		uid := middleware.UserIDFromContext(ctx)
		if err := svc.Remove(ctx, kind, uid, mediaType, itemID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"id": itemID})
	}
}

func listKindParam(r *http.Request) (lists.Kind, error) {
	kind, err := lists.ParseKind(chi.URLParam(r, "list"))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown list")
	}
	return kind, nil
}
