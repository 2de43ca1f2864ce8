package firestore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"github.com/literllyHimm/Cinewave/pkg/config"
	"github.com/literllyHimm/Cinewave/pkg/logger"
)

// Client wraps the Firestore connection used as the document store.
type Client struct {
	raw       *firestore.Client
	projectID string
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(context.Context) error
}

// New connects to Firestore. An empty credentials file falls back to
// Application Default Credentials.
func New(ctx context.Context, cfg config.FirebaseConfig, logg *logger.Logger) (*Client, error) {
	var (
		raw *firestore.Client
		err error
	)
	if cfg.CredentialsFile != "" {
		raw, err = firestore.NewClient(ctx, cfg.ProjectID, option.WithCredentialsFile(cfg.CredentialsFile))
	} else {
		raw, err = firestore.NewClient(ctx, cfg.ProjectID)
	}
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "project_id", cfg.ProjectID), "firestore connection established")
	}
	return &Client{raw: raw, projectID: cfg.ProjectID}, nil
}

// Raw returns the underlying SDK client for repositories.
func (c *Client) Raw() *firestore.Client {
	if c == nil {
		return nil
	}
	return c.raw
}

// Ping issues a cheap read to verify connectivity. Firestore has no
// dedicated ping RPC.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.raw == nil {
		return errors.New("firestore client not initialized")
	}
	if _, err := c.raw.Collections(ctx).GetAll(); err != nil {
		return fmt.Errorf("firestore ping: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.raw == nil {
		return nil
	}
	return c.raw.Close()
}
