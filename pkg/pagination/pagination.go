// Copyright (c) 2026 MovieHub. All rights reserved.

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how totals are derived for the paged response body. Pages are
// zero-based: pageNumber=0 is the first page.
package pagination

import (
	"net/http"

	"github.com/moviehub/moviehub/pkg/convert"
)

const (
	// DefaultPageSize is the number of items per page if not specified.
	DefaultPageSize = 10
	// MaxPageSize is the upper bound for items per page to prevent system abuse.
	MaxPageSize = 100
	// DefaultPageNumber is the starting page (zero-indexed).
	DefaultPageNumber = 0
)

// Params holds the parsed pageNumber and pageSize from a request's query string.
type Params struct {
	PageNumber int
	PageSize   int
}

// Offset returns the SQL OFFSET value derived from [PageNumber] and [PageSize].
func (p Params) Offset() int {
	if p.PageNumber <= 0 {
		return 0
	}
	return p.PageNumber * p.PageSize
}

// TotalPages returns the number of pages needed for total items at the given size.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// IsLast reports whether the given zero-based page is the final page.
//
// An empty result set has no pages, so page 0 of 0 items is considered last.
func IsLast(pageNumber, pageSize, total int) bool {
	return (pageNumber+1)*pageSize >= total
}

// FromRequest parses "pageNumber" and "pageSize" query parameters from an
// HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultPageNumber], [DefaultPageSize], or [MaxPageSize].
func FromRequest(r *http.Request) Params {
	pageNumber := convert.ToIntD(r.URL.Query().Get("pageNumber"), DefaultPageNumber)
	pageSize := convert.ToIntD(r.URL.Query().Get("pageSize"), DefaultPageSize)

	if pageNumber < 0 {
		pageNumber = DefaultPageNumber
	}

	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}

	return Params{PageNumber: pageNumber, PageSize: pageSize}
}
