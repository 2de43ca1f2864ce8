package firebase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/literllyHimm/Cinewave/pkg/config"
)

// Identity is the caller identity extracted from a verified ID token.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
}

// AuthClient wraps the identity provider operations the platform needs.
type AuthClient struct {
	auth *fbauth.Client
}

// NewAuthClient initializes the Firebase app and its auth client.
func NewAuthClient(ctx context.Context, cfg config.FirebaseConfig) (*AuthClient, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firebase app: %w", err)
	}
	auth, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("create firebase auth client: %w", err)
	}
	return &AuthClient{auth: auth}, nil
}

// VerifyIDToken validates a bearer ID token and extracts the identity.
func (c *AuthClient) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	if c == nil || c.auth == nil {
		return nil, errors.New("auth client not initialized")
	}
	token, err := c.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}

	ident := &Identity{UID: strings.TrimSpace(token.UID)}
	if ident.UID == "" {
		return nil, errors.New("token carries no uid")
	}
	if email, ok := token.Claims["email"].(string); ok {
		ident.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		ident.DisplayName = name
	}
	return ident, nil
}

// CreateUser registers a new email/password account and returns its uid.
func (c *AuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	if c == nil || c.auth == nil {
		return "", errors.New("auth client not initialized")
	}
	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)
	record, err := c.auth.CreateUser(ctx, params)
	if err != nil {
		return "", err
	}
	return record.UID, nil
}

// EmailExists reports whether the identity provider already knows the email.
func (c *AuthClient) EmailExists(ctx context.Context, email string) (bool, error) {
	if c == nil || c.auth == nil {
		return false, errors.New("auth client not initialized")
	}
	_, err := c.auth.GetUserByEmail(ctx, email)
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// UpdateDisplayName mirrors a profile name change to the identity provider.
func (c *AuthClient) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	if c == nil || c.auth == nil {
		return errors.New("auth client not initialized")
	}
	_, err := c.auth.UpdateUser(ctx, uid, (&fbauth.UserToUpdate{}).DisplayName(displayName))
	return err
}

// UpdatePassword sets a new password for the account.
func (c *AuthClient) UpdatePassword(ctx context.Context, uid, password string) error {
	if c == nil || c.auth == nil {
		return errors.New("auth client not initialized")
	}
	_, err := c.auth.UpdateUser(ctx, uid, (&fbauth.UserToUpdate{}).Password(password))
	return err
}

// RevokeSessions invalidates the user's refresh tokens. Used on logout.
func (c *AuthClient) RevokeSessions(ctx context.Context, uid string) error {
	if c == nil || c.auth == nil {
		return errors.New("auth client not initialized")
	}
	return c.auth.RevokeRefreshTokens(ctx, uid)
}
