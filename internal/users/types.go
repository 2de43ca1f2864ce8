package users

import (
	"strings"
	"time"
)

// Profile is the per-user document stored under users/{uid}.
type Profile struct {
	UID            string           `firestore:"-" json:"uid"`
	FirstName      string           `firestore:"firstName" json:"first_name"`
	LastName       string           `firestore:"lastName" json:"last_name"`
	Email          string           `firestore:"email" json:"email"`
	SelectedGenres []int64          `firestore:"selectedGenres" json:"selected_genres"`
	Purchases      []PurchaseRecord `firestore:"purchases" json:"purchases"`
}

// PurchaseRecord is an append-only entry in the user's purchase history.
type PurchaseRecord struct {
	ItemID      int64     `firestore:"id" json:"id"`
	Title       string    `firestore:"title" json:"title"`
	Poster      string    `firestore:"poster" json:"poster"`
	PurchasedAt time.Time `firestore:"purchasedAt" json:"purchased_at"`
}

// SplitDisplayName derives first/last name defaults from an identity
// provider display name.
func SplitDisplayName(displayName string) (first, last string) {
	parts := strings.Fields(strings.TrimSpace(displayName))
	if len(parts) == 0 {
		return "Unknown", ""
	}
	first = parts[0]
	if len(parts) > 1 {
		last = strings.Join(parts[1:], " ")
	}
	return first, last
}
