// Package lists implements the per-user favorites and bookmarks
// collections.
package lists

import (
	"fmt"
	"strconv"

	"github.com/literllyHimm/Cinewave/internal/catalog"
	pkgerrors "github.com/literllyHimm/Cinewave/pkg/errors"
)

// Kind names one of the two saved-item lists.
type Kind string

const (
	KindFavorites Kind = "favorites"
	KindBookmarks Kind = "bookmarks"
)

// ParseKind validates a list name from the request path.
func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case KindFavorites, KindBookmarks:
		return Kind(raw), nil
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown list %q", raw))
	}
}

// Entry is a catalog item saved to a list, tagged with its resolved
// media type.
type Entry struct {
	Item      catalog.Item      `json:"item"`
	MediaType catalog.MediaType `json:"media_type"`
}

// DocID returns the Firestore document id for an entry. Favorites key on
// the bare item id; bookmarks prefix the media type so a movie and a show
// with the same id stay distinct.
func (k Kind) DocID(mediaType catalog.MediaType, itemID int64) string {
	id := strconv.FormatInt(itemID, 10)
	if k == KindBookmarks {
		return string(mediaType) + "-" + id
	}
	return id
}
