// Copyright (c) 2026 MovieHub. All rights reserved.

// Package safename derives safe on-disk file names from arbitrary Unicode
// upload names.
//
// # Usage
//
// Stored names become part of filesystem paths and public poster URLs
// (e.g., "inception-poster.jpg"). This package handles normalization, accent
// removal, and character sanitization so a client-supplied name can never
// escape the storage directory or smuggle shell metacharacters.
package safename

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// From converts an arbitrary Unicode upload name into a safe ASCII file name.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Replaces every character outside [A-Za-z0-9.-] with an underscore.
//
// The dot is preserved so the file extension survives sanitization. Path
// separators and parent-directory sequences cannot survive step 3, which is
// the traversal defense the storage layer relies on.
func From(name string) string {
	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, name)

	// 2. Replace everything outside the allow-list
	result = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-':
			return r
		}
		return '_'
	}, result)

	return result
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
