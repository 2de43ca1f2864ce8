package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/literllyHimm/Cinewave/pkg/firebase"
)

type stubVerifier struct {
	identity *firebase.Identity
	err      error
}

func (s *stubVerifier) VerifyIDToken(_ context.Context, _ string) (*firebase.Identity, error) {
	return s.identity, s.err
}

func TestAuthSeedsIdentity(t *testing.T) {
	t.Parallel()

	verifier := &stubVerifier{identity: &firebase.Identity{
		UID:         "uid-1",
		Email:       "a@b.com",
		DisplayName: "Ada Lovelace",
	}}

	var gotUID, gotEmail string
	handler := Auth(verifier, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUID = UserIDFromContext(r.Context())
		gotEmail = UserEmailFromContext(r.Context())
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer token-123")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	if gotUID != "uid-1" || gotEmail != "a@b.com" {
		t.Fatalf("identity not seeded: uid=%q email=%q", gotUID, gotEmail)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	t.Parallel()

	verifier := &stubVerifier{err: errors.New("expired")}
	called := false
	handler := Auth(verifier, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer bad")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if called {
		t.Fatalf("handler should not run for an invalid token")
	}
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthPassesAnonymousThrough(t *testing.T) {
	t.Parallel()

	handler := Auth(&stubVerifier{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserIDFromContext(r.Context()) != "" {
			t.Fatalf("anonymous request should carry no uid")
		}
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
}

func TestRequireAuthBlocksAnonymous(t *testing.T) {
	t.Parallel()

	handler := RequireAuth(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not run")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestDeviceIDHeader(t *testing.T) {
	t.Parallel()

	var got string
	handler := DeviceID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = DeviceIDFromContext(r.Context())
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Device-Id", "device-7")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	if got != "device-7" {
		t.Fatalf("device id not seeded, got %q", got)
	}
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Bearer abc":  "abc",
		"bearer abc":  "abc",
		"":            "",
		"Basic xyz":   "",
		"Bearerabc":   "",
		"Bearer  a b": "a b",
	}
	for header, want := range cases {
		r := httptest.NewRequest("GET", "/", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		if got := bearerToken(r); got != want {
			t.Fatalf("bearerToken(%q) = %q, want %q", header, got, want)
		}
	}
}
