package users

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pkgerrors "github.com/literllyHimm/Cinewave/pkg/errors"
)

const usersCollection = "users"

// Repository persists user profiles in the document store.
type Repository struct {
	fs *firestore.Client
}

// NewRepository binds the repository to a Firestore client.
func NewRepository(fs *firestore.Client) *Repository {
	return &Repository{fs: fs}
}

func (r *Repository) doc(uid string) *firestore.DocumentRef {
	return r.fs.Collection(usersCollection).Doc(uid)
}

// Get loads the profile document. A missing document surfaces as a
// NOT_FOUND error so callers can treat it as a first-run condition.
func (r *Repository) Get(ctx context.Context, uid string) (*Profile, error) {
	if uid == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	snap, err := r.doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}

	var profile Profile
	if err := snap.DataTo(&profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode profile")
	}
	profile.UID = uid
	return &profile, nil
}

// Create writes a fresh profile document.
func (r *Repository) Create(ctx context.Context, uid string, profile *Profile) error {
	if uid == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if _, err := r.doc(uid).Set(ctx, profile); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create profile")
	}
	return nil
}

// Merge overlays the given fields onto the profile document, preserving
// untouched fields.
func (r *Repository) Merge(ctx context.Context, uid string, fields map[string]any) error {
	if uid == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if len(fields) == 0 {
		return nil
	}
	if _, err := r.doc(uid).Set(ctx, fields, firestore.MergeAll); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "merge profile")
	}
	return nil
}

// Purchases returns the user's purchase history, empty when the profile
// does not exist yet.
func (r *Repository) Purchases(ctx context.Context, uid string) ([]PurchaseRecord, error) {
	profile, err := r.Get(ctx, uid)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, nil
		}
		return nil, err
	}
	return profile.Purchases, nil
}

// AppendPurchases concatenates new records onto the stored purchase list.
// The read-then-write is not transactional; concurrent checkouts on the
// same account follow last-write-wins.
func (r *Repository) AppendPurchases(ctx context.Context, uid string, records []PurchaseRecord) error {
	if len(records) == 0 {
		return nil
	}
	existing, err := r.Purchases(ctx, uid)
	if err != nil {
		return err
	}
	combined := append(existing, records...)
	return r.Merge(ctx, uid, map[string]any{"purchases": combined})
}
