package users

import (
	"context"
	"strings"

	pkgerrors "github.com/literllyHimm/Cinewave/pkg/errors"
	"github.com/literllyHimm/Cinewave/pkg/logger"
)

// MinSelectedGenres is the onboarding floor for genre preferences.
const MinSelectedGenres = 10

type identityClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateDisplayName(ctx context.Context, uid, displayName string) error
	UpdatePassword(ctx context.Context, uid, password string) error
}

type profileStore interface {
	Get(ctx context.Context, uid string) (*Profile, error)
	Create(ctx context.Context, uid string, profile *Profile) error
	Merge(ctx context.Context, uid string, fields map[string]any) error
}

// RegisterRequest carries the registration form fields. Validation runs
// before any network call.
type RegisterRequest struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// Service exposes registration and profile management.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Profile, error)
	SelectGenres(ctx context.Context, uid string, genreIDs []int64) error
	UpdateProfile(ctx context.Context, uid, firstName, lastName string) error
	UpdatePassword(ctx context.Context, uid, password string) error
}

type service struct {
	identity identityClient
	profiles profileStore
	logg     *logger.Logger
}

// ServiceParams groups the service dependencies.
type ServiceParams struct {
	Identity identityClient
	Profiles profileStore
	Logger   *logger.Logger
}

// NewService builds the users service.
func NewService(params ServiceParams) (Service, error) {
	if params.Identity == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "identity client is required")
	}
	if params.Profiles == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile store is required")
	}
	return &service{
		identity: params.Identity,
		profiles: params.Profiles,
		logg:     params.Logger,
	}, nil
}

// Register creates the identity-provider account, then the profile
// document with an empty genre set.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*Profile, error) {
	if req.Password != req.ConfirmPassword {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "passwords do not match")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.identity.EmailExists(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check email")
	}
	if exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email is already registered")
	}

	displayName := strings.TrimSpace(req.FirstName + " " + req.LastName)
	uid, err := s.identity.CreateUser(ctx, email, req.Password, displayName)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create account")
	}

	profile := &Profile{
		UID:            uid,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          email,
		SelectedGenres: []int64{},
	}
	if err := s.profiles.Create(ctx, uid, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SelectGenres stores the onboarding genre choices. The minimum-count rule
// runs before any write.
func (s *service) SelectGenres(ctx context.Context, uid string, genreIDs []int64) error {
	if uid == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "you must be signed in to save genres")
	}
	if len(genreIDs) < MinSelectedGenres {
		return pkgerrors.New(pkgerrors.CodeValidation, "select at least 10 genres")
	}
	return s.profiles.Merge(ctx, uid, map[string]any{"selectedGenres": genreIDs})
}

// UpdateProfile merges the new names into the profile document and mirrors
// them to the identity provider display name.
func (s *service) UpdateProfile(ctx context.Context, uid, firstName, lastName string) error {
	if uid == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "you must be signed in to update your profile")
	}
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "first and last name are required")
	}

	if err := s.profiles.Merge(ctx, uid, map[string]any{
		"firstName": firstName,
		"lastName":  lastName,
	}); err != nil {
		return err
	}

	if err := s.identity.UpdateDisplayName(ctx, uid, firstName+" "+lastName); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update display name")
	}
	return nil
}

// UpdatePassword delegates to the identity provider.
func (s *service) UpdatePassword(ctx context.Context, uid, password string) error {
	if uid == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "you must be signed in to change your password")
	}
	if len(password) < 6 {
		return pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 6 characters")
	}
	if err := s.identity.UpdatePassword(ctx, uid, password); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update password")
	}
	return nil
}
