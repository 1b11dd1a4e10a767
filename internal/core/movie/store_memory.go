// Copyright (c) 2026 MovieHub. All rights reserved.

package movie

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/moviehub/moviehub/internal/platform/apperr"
	"github.com/moviehub/moviehub/internal/platform/constants"
)

// MemoryRepository is a mutex-guarded in-memory [Repository].
//
// It backs the service and handler tests and mirrors the Postgres
// implementation's semantics: assigned IDs, NOT_FOUND on absent ids, and the
// same paging/sorting validation.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	movies map[int64]*Movie
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID: 1,
		movies: make(map[int64]*Movie),
	}
}

func (repository *MemoryRepository) Create(_ context.Context, m *Movie) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	m.ID = repository.nextID
	repository.nextID++

	stored := *m
	repository.movies[m.ID] = &stored
	return nil
}

func (repository *MemoryRepository) Get(_ context.Context, id int64) (*Movie, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	stored, ok := repository.movies[id]
	if !ok {
		return nil, apperr.NotFound("Movie")
	}

	m := *stored
	return &m, nil
}

func (repository *MemoryRepository) List(_ context.Context) ([]*Movie, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	return repository.snapshot(), nil
}

func (repository *MemoryRepository) ListPage(_ context.Context, pageNumber, pageSize int, sortBy, direction string) ([]*Movie, int, error) {
	// Validation is shared with the Postgres implementation; the column is
	// irrelevant here but the allow-list and direction checks are not.
	if _, _, err := resolveSort(pageNumber, pageSize, sortBy, direction); err != nil {
		return nil, 0, err
	}
	if sortBy == "" {
		sortBy = FieldID
	}

	repository.mu.RLock()
	movies := repository.snapshot()
	repository.mu.RUnlock()

	descending := strings.EqualFold(direction, constants.SortDescending)
	sort.SliceStable(movies, func(i, j int) bool {
		less := lessBy(sortBy, movies[i], movies[j])
		if descending {
			return lessBy(sortBy, movies[j], movies[i])
		}
		return less
	})

	total := len(movies)
	start := pageNumber * pageSize
	if start >= total {
		return nil, total, nil
	}

	end := start + pageSize
	if end > total {
		end = total
	}

	return movies[start:end], total, nil
}

func (repository *MemoryRepository) Update(_ context.Context, m *Movie) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.movies[m.ID]; !ok {
		return apperr.NotFound("Movie")
	}

	stored := *m
	repository.movies[m.ID] = &stored
	return nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.movies[id]; !ok {
		return apperr.NotFound("Movie")
	}

	delete(repository.movies, id)
	return nil
}

func (repository *MemoryRepository) ExistsByTitle(_ context.Context, title string) (bool, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, stored := range repository.movies {
		if stored.Title == title {
			return true, nil
		}
	}
	return false, nil
}

// snapshot copies the stored records in id order. Callers own the result.
func (repository *MemoryRepository) snapshot() []*Movie {
	ids := make([]int64, 0, len(repository.movies))
	for id := range repository.movies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	movies := make([]*Movie, 0, len(ids))
	for _, id := range ids {
		m := *repository.movies[id]
		movies = append(movies, &m)
	}
	return movies
}

// lessBy compares two movies on the given attribute, ascending.
func lessBy(field string, a, b *Movie) bool {
	switch field {
	case FieldTitle:
		return a.Title < b.Title
	case FieldDirector:
		return a.Director < b.Director
	case FieldStudio:
		return a.Studio < b.Studio
	case FieldReleaseYear:
		return a.ReleaseYear < b.ReleaseYear
	case FieldPosterFileName:
		return a.PosterFileName < b.PosterFileName
	default:
		return a.ID < b.ID
	}
}
