package lists

import (
	"context"
	"encoding/json"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/literllyHimm/Cinewave/internal/catalog"
	pkgerrors "github.com/literllyHimm/Cinewave/pkg/errors"
	pkgfirestore "github.com/literllyHimm/Cinewave/pkg/firestore"
)

const itemsSubcollection = "movies"

// Repository persists list entries under
// {kind}/{uid}/movies/{docID} in Firestore.
type Repository struct {
	fs *fs.Client
}

// NewRepository builds a Firestore-backed list repository.
func NewRepository(client *pkgfirestore.Client) (*Repository, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "firestore client is required")
	}
	return &Repository{fs: client.Raw()}, nil
}

func (r *Repository) doc(kind Kind, uid, docID string) *fs.DocumentRef {
	return r.fs.Collection(string(kind)).Doc(uid).Collection(itemsSubcollection).Doc(docID)
}

// Set writes an entry, merging over any previous copy so repeated saves
// stay idempotent. The write stamps addedAt server-side.
func (r *Repository) Set(ctx context.Context, kind Kind, uid string, entry Entry) error {
	data, err := itemToMap(entry.Item)
	if err != nil {
		return err
	}
	data["media_type"] = string(entry.MediaType)
	data["addedAt"] = fs.ServerTimestamp

	docID := kind.DocID(entry.MediaType, entry.Item.ID)
	if _, err := r.doc(kind, uid, docID).Set(ctx, data, fs.MergeAll); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save list entry")
	}
	return nil
}

// Delete removes an entry. Deleting an absent document is a no-op in
// Firestore, which keeps removal idempotent.
func (r *Repository) Delete(ctx context.Context, kind Kind, uid string, mediaType catalog.MediaType, itemID int64) error {
	docID := kind.DocID(mediaType, itemID)
	if _, err := r.doc(kind, uid, docID).Delete(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove list entry")
	}
	return nil
}

// GetAll streams every entry in the user's list.
func (r *Repository) GetAll(ctx context.Context, kind Kind, uid string) ([]Entry, error) {
	iter := r.fs.Collection(string(kind)).Doc(uid).Collection(itemsSubcollection).Documents(ctx)
	defer iter.Stop()

	var entries []Entry
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list entries")
		}
		entry, err := entryFromData(doc.Data())
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// itemToMap converts a catalog item to the document shape through its
// JSON form so the stored fields match the catalog wire names.
func itemToMap(item catalog.Item) (map[string]any, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode list entry")
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode list entry")
	}
	return data, nil
}

func entryFromData(data map[string]any) (Entry, error) {
	delete(data, "addedAt")
	raw, err := json.Marshal(data)
	if err != nil {
		return Entry{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode list entry")
	}
	var item catalog.Item
	if err := json.Unmarshal(raw, &item); err != nil {
		return Entry{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode list entry")
	}
	mediaType := catalog.ResolveMediaType("", item)
	return Entry{Item: item, MediaType: mediaType}, nil
}
