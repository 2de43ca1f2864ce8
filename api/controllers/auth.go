package controllers

import (
	"net/http"

	"github.com/literllyHimm/Cinewave/api/middleware"
	"github.com/literllyHimm/Cinewave/api/responses"
	"github.com/literllyHimm/Cinewave/api/validators"
	"github.com/literllyHimm/Cinewave/internal/session"
	"github.com/literllyHimm/Cinewave/internal/users"
	pkgerrors "github.com/literllyHimm/Cinewave/pkg/errors"
	"github.com/literllyHimm/Cinewave/pkg/logger"
)

type selectGenresPayload struct {
	GenreIDs []int64 `json:"genre_ids" validate:"required"`
}

// AuthRegister creates the account and its profile document.
func AuthRegister(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		var payload users.RegisterRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		profile, err := svc.Register(ctx, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, profile)
	}
}

// AuthSelectGenres stores the onboarding genre picks.
func AuthSelectGenres(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		var payload selectGenresPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		uid := middleware.UserIDFromContext(ctx)
		if err := svc.SelectGenres(ctx, uid, payload.GenreIDs); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"selected_genres": payload.GenreIDs})
	}
}

// AuthLogout revokes the session and clears the device's cached state.
func AuthLogout(svc session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}

		uid := middleware.UserIDFromContext(ctx)
		deviceID := middleware.DeviceIDFromContext(ctx)
		route, err := svc.Logout(ctx, uid, deviceID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"redirect": route})
	}
}
