// Package session covers the signed-in lifecycle around the identity
// provider: hydrating a profile on first sight of a user, persisting
// preference changes, and tearing down device state on logout.
package session

import (
	"context"

	"github.com/literllyHimm/Cinewave/internal/users"
	pkgerrors "github.com/literllyHimm/Cinewave/pkg/errors"
	"github.com/literllyHimm/Cinewave/pkg/logger"
)

type profileStore interface {
	Get(ctx context.Context, uid string) (*users.Profile, error)
	Create(ctx context.Context, uid string, profile *users.Profile) error
	Merge(ctx context.Context, uid string, fields map[string]any) error
}

type sessionRevoker interface {
	RevokeSessions(ctx context.Context, uid string) error
}

type deviceCache interface {
	Del(ctx context.Context, keys ...string) error
	CartKey(deviceID string) string
	PurchaseCacheKey(uid string) string
}

// Identity is the verified token subject handed in by the auth middleware.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
}

// Service manages the account session lifecycle.
type Service interface {
	Hydrate(ctx context.Context, identity Identity) (*users.Profile, error)
	UpdatePreferences(ctx context.Context, uid string, genreIDs []int64) error
	Logout(ctx context.Context, uid, deviceID string) (string, error)
}

type service struct {
	profiles     profileStore
	revoker      sessionRevoker
	cache        deviceCache
	landingRoute string
	logg         *logger.Logger
}

// ServiceParams groups the session service dependencies.
type ServiceParams struct {
	Profiles     profileStore
	Revoker      sessionRevoker
	Cache        deviceCache
	LandingRoute string
	Logger       *logger.Logger
}

// NewService builds the session service.
func NewService(params ServiceParams) (Service, error) {
	if params.Profiles == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile store is required")
	}
	if params.Revoker == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session revoker is required")
	}
	if params.Cache == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "device cache is required")
	}
	if params.LandingRoute == "" {
		params.LandingRoute = "/"
	}
	return &service{
		profiles:     params.Profiles,
		revoker:      params.Revoker,
		cache:        params.Cache,
		landingRoute: params.LandingRoute,
		logg:         params.Logger,
	}, nil
}

// Hydrate returns the stored profile for a verified identity, creating a
// default document on first sight. Accounts provisioned outside the
// registration flow still end up with a profile this way.
func (s *service) Hydrate(ctx context.Context, identity Identity) (*users.Profile, error) {
	if identity.UID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "you must be signed in")
	}

	profile, err := s.profiles.Get(ctx, identity.UID)
	if err == nil {
		return profile, nil
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		return nil, err
	}

	first, last := users.SplitDisplayName(identity.DisplayName)
	profile = &users.Profile{
		UID:            identity.UID,
		FirstName:      first,
		LastName:       last,
		Email:          identity.Email,
		SelectedGenres: []int64{},
	}
	if err := s.profiles.Create(ctx, identity.UID, profile); err != nil {
		return nil, err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "uid", identity.UID), "created default profile")
	}
	return profile, nil
}

// UpdatePreferences persists the genre preference set. A missing uid is a
// silent no-op so an expired session cannot clobber another account.
func (s *service) UpdatePreferences(ctx context.Context, uid string, genreIDs []int64) error {
	if uid == "" {
		if s.logg != nil {
			s.logg.Warn(ctx, "skipping preference update without a session")
		}
		return nil
	}
	if genreIDs == nil {
		genreIDs = []int64{}
	}
	return s.profiles.Merge(ctx, uid, map[string]any{"selectedGenres": genreIDs})
}

// Logout revokes refresh tokens and clears the device's cached state. The
// revocation is best effort: a provider outage must not strand the user in
// a signed-in shell, so failures are logged and the local teardown still
// runs. Returns the route the client should land on.
func (s *service) Logout(ctx context.Context, uid, deviceID string) (string, error) {
	if uid != "" {
		if err := s.revoker.RevokeSessions(ctx, uid); err != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
				"uid":   uid,
				"error": err.Error(),
			}), "failed to revoke sessions")
		}
	}

	keys := make([]string, 0, 2)
	if deviceID != "" {
		keys = append(keys, s.cache.CartKey(deviceID))
	}
	if uid != "" {
		keys = append(keys, s.cache.PurchaseCacheKey(uid))
	}
	if len(keys) > 0 {
		if err := s.cache.Del(ctx, keys...); err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear device state")
		}
	}
	return s.landingRoute, nil
}
