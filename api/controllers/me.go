package controllers

import (
	"net/http"

	"github.com/literllyHimm/Cinewave/api/middleware"
	"github.com/literllyHimm/Cinewave/api/responses"
	"github.com/literllyHimm/Cinewave/api/validators"
	sessionsvc "github.com/literllyHimm/Cinewave/internal/session"
	"github.com/literllyHimm/Cinewave/internal/users"
	pkgerrors "github.com/literllyHimm/Cinewave/pkg/errors"
	"github.com/literllyHimm/Cinewave/pkg/logger"
)

type updateProfilePayload struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

type updatePasswordPayload struct {
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type updatePreferencesPayload struct {
	GenreIDs []int64 `json:"genre_ids"`
}

// Me returns the caller's profile, creating the default document when the
// account has none yet.
func Me(svc sessionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}

		profile, err := svc.Hydrate(ctx, sessionsvc.Identity{
			UID:         middleware.UserIDFromContext(ctx),
			Email:       middleware.UserEmailFromContext(ctx),
			DisplayName: middleware.DisplayNameFromContext(ctx),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// MeUpdatePreferences saves the caller's genre preference set.
func MeUpdatePreferences(svc sessionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}

		var payload updatePreferencesPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		uid := middleware.UserIDFromContext(ctx)
		if err := svc.UpdatePreferences(ctx, uid, payload.GenreIDs); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"selected_genres": payload.GenreIDs})
	}
}

// MeUpdateProfile changes the caller's name.
func MeUpdateProfile(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		var payload updateProfilePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		uid := middleware.UserIDFromContext(ctx)
		first := validators.SanitizeString(payload.FirstName, 100)
		last := validators.SanitizeString(payload.LastName, 100)
		if err := svc.UpdateProfile(ctx, uid, first, last); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{
			"first_name": first,
			"last_name":  last,
		})
	}
}

// MeUpdatePassword changes the caller's password.
func MeUpdatePassword(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		var payload updatePasswordPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		uid := middleware.UserIDFromContext(ctx)
		if err := svc.UpdatePassword(ctx, uid, payload.Password); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}
