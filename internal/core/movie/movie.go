// Copyright (c) 2026 MovieHub. All rights reserved.

package movie

import (
	"sort"
	"strings"
)

// Movie is a catalog record: metadata plus the stored name of its poster
// asset. PosterFileName is a bare file name, never a path or URL.
type Movie struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	Director       string   `json:"director"`
	Studio         string   `json:"studio"`
	Cast           []string `json:"cast"`
	ReleaseYear    int      `json:"release_year"`
	PosterFileName string   `json:"poster_filename"`
}

// View is the externally-facing projection of a [Movie]: the record plus the
// poster URL derived at read time. It is never persisted.
type View struct {
	Movie
	PosterURL string `json:"poster_url"`
}

// PageResponse is one page of movie views plus the derived paging metadata.
// Pages are zero-based.
type PageResponse struct {
	Items         []*View `json:"items"`
	PageNumber    int     `json:"page_number"`
	PageSize      int     `json:"page_size"`
	TotalElements int     `json:"total_elements"`
	TotalPages    int     `json:"total_pages"`
	IsLastPage    bool    `json:"is_last_page"`
}

// Global field names for validation and sorting
const (
	FieldID             = "id"
	FieldTitle          = "title"
	FieldDirector       = "director"
	FieldStudio         = "studio"
	FieldCast           = "cast"
	FieldReleaseYear    = "releaseYear"
	FieldPosterFileName = "posterFileName"
)

// NormalizeCast enforces the set semantics of the cast field: members are
// trimmed, blanks dropped, duplicates removed, and the result sorted so the
// stored form is deterministic.
func NormalizeCast(cast []string) []string {
	seen := make(map[string]struct{}, len(cast))
	out := make([]string, 0, len(cast))

	for _, member := range cast {
		trimmed := strings.TrimSpace(member)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	sort.Strings(out)
	return out
}
