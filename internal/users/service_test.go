package users

import (
	"context"
	"testing"

	pkgerrors "github.com/literllyHimm/Cinewave/pkg/errors"
)

type stubIdentity struct {
	existing    map[string]bool
	createdUID  string
	createCalls int
	displayName string
	password    string
	createErr   error
}

func (s *stubIdentity) CreateUser(_ context.Context, email, password, displayName string) (string, error) {
	s.createCalls++
	if s.createErr != nil {
		return "", s.createErr
	}
	if s.createdUID == "" {
		s.createdUID = "uid-1"
	}
	return s.createdUID, nil
}

func (s *stubIdentity) EmailExists(_ context.Context, email string) (bool, error) {
	return s.existing[email], nil
}

func (s *stubIdentity) UpdateDisplayName(_ context.Context, _, displayName string) error {
	s.displayName = displayName
	return nil
}

func (s *stubIdentity) UpdatePassword(_ context.Context, _, password string) error {
	s.password = password
	return nil
}

type stubProfiles struct {
	profiles map[string]*Profile
	merges   map[string]map[string]any
}

func newStubProfiles() *stubProfiles {
	return &stubProfiles{
		profiles: map[string]*Profile{},
		merges:   map[string]map[string]any{},
	}
}

func (s *stubProfiles) Get(_ context.Context, uid string) (*Profile, error) {
	p, ok := s.profiles[uid]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
	}
	return p, nil
}

func (s *stubProfiles) Create(_ context.Context, uid string, profile *Profile) error {
	s.profiles[uid] = profile
	return nil
}

func (s *stubProfiles) Merge(_ context.Context, uid string, fields map[string]any) error {
	if s.merges[uid] == nil {
		s.merges[uid] = map[string]any{}
	}
	for k, v := range fields {
		s.merges[uid][k] = v
	}
	return nil
}

func newTestService(t *testing.T, identity *stubIdentity, profiles *stubProfiles) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Identity: identity, Profiles: profiles})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestRegisterCreatesProfileWithEmptyGenres(t *testing.T) {
	t.Parallel()

	identity := &stubIdentity{existing: map[string]bool{}}
	profiles := newStubProfiles()
	svc := newTestService(t, identity, profiles)

	profile, err := svc.Register(context.Background(), RegisterRequest{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "Ada@Example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if profile.Email != "ada@example.com" {
		t.Fatalf("expected lowercased email, got %q", profile.Email)
	}
	if len(profile.SelectedGenres) != 0 {
		t.Fatalf("expected empty genre set, got %v", profile.SelectedGenres)
	}
	stored, ok := profiles.profiles[profile.UID]
	if !ok || stored.FirstName != "Ada" {
		t.Fatalf("profile not persisted: %+v", stored)
	}
}

func TestRegisterRejectsExistingEmail(t *testing.T) {
	t.Parallel()

	identity := &stubIdentity{existing: map[string]bool{"taken@example.com": true}}
	svc := newTestService(t, identity, newStubProfiles())

	_, err := svc.Register(context.Background(), RegisterRequest{
		FirstName:       "A",
		LastName:        "B",
		Email:           "taken@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if identity.createCalls != 0 {
		t.Fatalf("account should not be created for a taken email")
	}
}

func TestRegisterRejectsMismatchedPasswords(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubIdentity{existing: map[string]bool{}}, newStubProfiles())

	_, err := svc.Register(context.Background(), RegisterRequest{
		FirstName:       "A",
		LastName:        "B",
		Email:           "a@b.com",
		Password:        "secret1",
		ConfirmPassword: "secret2",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSelectGenresEnforcesMinimum(t *testing.T) {
	t.Parallel()

	profiles := newStubProfiles()
	svc := newTestService(t, &stubIdentity{}, profiles)

	err := svc.SelectGenres(context.Background(), "uid-1", []int64{1, 2, 3})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(profiles.merges) != 0 {
		t.Fatalf("nothing should be written when below the minimum")
	}

	ten := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	if err := svc.SelectGenres(context.Background(), "uid-1", ten); err != nil {
		t.Fatalf("SelectGenres: %v", err)
	}
	got, ok := profiles.merges["uid-1"]["selectedGenres"].([]int64)
	if !ok || len(got) != 10 {
		t.Fatalf("expected 10 genres persisted, got %v", profiles.merges["uid-1"])
	}
}

func TestSelectGenresRequiresAuth(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubIdentity{}, newStubProfiles())

	err := svc.SelectGenres(context.Background(), "", []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestUpdateProfileMirrorsDisplayName(t *testing.T) {
	t.Parallel()

	identity := &stubIdentity{}
	profiles := newStubProfiles()
	svc := newTestService(t, identity, profiles)

	if err := svc.UpdateProfile(context.Background(), "uid-1", " Grace ", " Hopper "); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if profiles.merges["uid-1"]["firstName"] != "Grace" {
		t.Fatalf("first name not merged: %v", profiles.merges["uid-1"])
	}
	if identity.displayName != "Grace Hopper" {
		t.Fatalf("display name not mirrored, got %q", identity.displayName)
	}
}

func TestUpdatePasswordValidatesLength(t *testing.T) {
	t.Parallel()

	identity := &stubIdentity{}
	svc := newTestService(t, identity, newStubProfiles())

	err := svc.UpdatePassword(context.Background(), "uid-1", "short")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	if err := svc.UpdatePassword(context.Background(), "uid-1", "longenough"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	if identity.password != "longenough" {
		t.Fatalf("password not forwarded")
	}
}
