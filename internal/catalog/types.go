package catalog

import (
	pkgerrors "github.com/literllyHimm/Cinewave/pkg/errors"
)

// MediaType discriminates movie and TV catalog entries.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// ParseMediaType validates a client-supplied media type.
func ParseMediaType(value string) (MediaType, error) {
	switch MediaType(value) {
	case MediaTypeMovie, MediaTypeTV:
		return MediaType(value), nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "media type must be movie or tv")
}

// Item is a catalog entry. Upstream returns heterogeneous shapes for movies
// and shows, so both title/name and release/first-air fields are carried.
type Item struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title,omitempty"`
	Name          string    `json:"name,omitempty"`
	OriginalTitle string    `json:"original_title,omitempty"`
	OriginalName  string    `json:"original_name,omitempty"`
	Overview      string    `json:"overview,omitempty"`
	PosterPath    string    `json:"poster_path,omitempty"`
	BackdropPath  string    `json:"backdrop_path,omitempty"`
	MediaType     MediaType `json:"media_type,omitempty"`
	ReleaseDate   string    `json:"release_date,omitempty"`
	FirstAirDate  string    `json:"first_air_date,omitempty"`
	GenreIDs      []int64   `json:"genre_ids,omitempty"`
	VoteAverage   float64   `json:"vote_average,omitempty"`
	Popularity    float64   `json:"popularity,omitempty"`
}

// DisplayTitle picks the first populated title variant.
func (i Item) DisplayTitle() string {
	for _, candidate := range []string{i.Title, i.OriginalTitle, i.Name, i.OriginalName} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// ResolveMediaType applies the storage-side fallback: an explicit type wins,
// then the item's own field, then TV markers in the payload, else movie.
func ResolveMediaType(explicit MediaType, item Item) MediaType {
	if explicit == MediaTypeMovie || explicit == MediaTypeTV {
		return explicit
	}
	if item.MediaType == MediaTypeMovie || item.MediaType == MediaTypeTV {
		return item.MediaType
	}
	if item.FirstAirDate != "" || item.Name != "" {
		return MediaTypeTV
	}
	return MediaTypeMovie
}

// Genre is a catalog genre descriptor.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Page is one page of discover results plus pagination metadata.
type Page struct {
	Results    []Item `json:"results"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
}

// Image is a single poster or backdrop reference.
type Image struct {
	FilePath    string  `json:"file_path"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	VoteAverage float64 `json:"vote_average"`
}

// ImageSet groups the artwork for one item.
type ImageSet struct {
	Backdrops []Image `json:"backdrops"`
	Posters   []Image `json:"posters"`
}

// CastMember is one credited performer.
type CastMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path,omitempty"`
	Order       int    `json:"order"`
}

// Credits carries the cast and crew for one item.
type Credits struct {
	Cast []CastMember `json:"cast"`
}

// Video is a hosted clip reference.
type Video struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}
