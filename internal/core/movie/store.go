// Copyright (c) 2026 MovieHub. All rights reserved.

package movie

import "context"

// Repository is the persistence boundary for movie records. It carries no
// business logic; the [Service] polices the record/asset coupling.
type Repository interface {
	// Create persists a new record and assigns its ID.
	Create(context context.Context, m *Movie) error

	// Get returns the record by id, or a NOT_FOUND error.
	Get(context context.Context, id int64) (*Movie, error)

	// List returns every record; storage order is unspecified.
	List(context context.Context) ([]*Movie, error)

	// ListPage returns one zero-based page plus the total record count.
	// sortBy is a Movie attribute name (empty means id); direction is
	// asc or desc, case-insensitive, default ascending.
	ListPage(context context.Context, pageNumber, pageSize int, sortBy, direction string) ([]*Movie, int, error)

	// Update replaces the record with the same ID, or returns NOT_FOUND.
	Update(context context.Context, m *Movie) error

	// Delete removes the record by id, or returns NOT_FOUND.
	Delete(context context.Context, id int64) error

	// ExistsByTitle reports whether a record with the exact title exists.
	ExistsByTitle(context context.Context, title string) (bool, error)
}
