// Copyright (c) 2026 MovieHub. All rights reserved.

package movie_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviehub/moviehub/internal/core/movie"
	"github.com/moviehub/moviehub/internal/platform/apperr"
)

func seedRepository(t *testing.T) *movie.MemoryRepository {
	t.Helper()

	repo := movie.NewMemoryRepository()
	seed := []*movie.Movie{
		{Title: "Zulu", Director: "A", Studio: "S1", ReleaseYear: 1964, PosterFileName: "zulu.jpg"},
		{Title: "Alien", Director: "B", Studio: "S2", ReleaseYear: 1979, PosterFileName: "alien.jpg"},
		{Title: "Heat", Director: "C", Studio: "S3", ReleaseYear: 1995, PosterFileName: "heat.jpg"},
	}
	for _, m := range seed {
		require.NoError(t, repo.Create(context.Background(), m))
	}
	return repo
}

/*
TestMemoryRepository_CRUD tests create, get, update and delete against the
in-memory store, including the not-found paths.
*/
func TestMemoryRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := seedRepository(t)

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Zulu", got.Title)

	got.Title = "Zulu Dawn"
	require.NoError(t, repo.Update(ctx, got))

	again, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Zulu Dawn", again.Title)

	require.NoError(t, repo.Delete(ctx, 1))

	_, err = repo.Get(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	err = repo.Delete(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestMemoryRepository_ExistsByTitle tests exact-title lookup.
*/
func TestMemoryRepository_ExistsByTitle(t *testing.T) {
	ctx := context.Background()
	repo := seedRepository(t)

	taken, err := repo.ExistsByTitle(ctx, "Alien")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.ExistsByTitle(ctx, "Aliens")
	require.NoError(t, err)
	assert.False(t, taken)
}

/*
TestMemoryRepository_ListPage_Sorting tests the allow-listed sort fields and
both directions.
*/
func TestMemoryRepository_ListPage_Sorting(t *testing.T) {
	ctx := context.Background()
	repo := seedRepository(t)

	tests := []struct {
		name       string
		sortBy     string
		direction  string
		firstTitle string
	}{
		{"title_asc", "title", "asc", "Alien"},
		{"title_desc", "title", "desc", "Zulu"},
		{"year_desc", "releaseYear", "desc", "Heat"},
		{"id_asc", "id", "asc", "Zulu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, total, err := repo.ListPage(ctx, 0, 10, tt.sortBy, tt.direction)
			require.NoError(t, err)
			assert.Equal(t, 3, total)
			require.NotEmpty(t, records)
			assert.Equal(t, tt.firstTitle, records[0].Title)
		})
	}
}

/*
TestMemoryRepository_ListPage_Bounds tests paging slices and the page past
the end, which is empty but still reports the total.
*/
func TestMemoryRepository_ListPage_Bounds(t *testing.T) {
	ctx := context.Background()
	repo := seedRepository(t)

	records, total, err := repo.ListPage(ctx, 1, 2, "id", "asc")
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, records, 1)
	assert.Equal(t, "Heat", records[0].Title)

	records, total, err = repo.ListPage(ctx, 5, 2, "id", "asc")
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, records)
}

/*
TestMemoryRepository_ListPage_Invalid tests the rejected paging and sorting
arguments.
*/
func TestMemoryRepository_ListPage_Invalid(t *testing.T) {
	ctx := context.Background()
	repo := seedRepository(t)

	tests := []struct {
		name       string
		pageNumber int
		pageSize   int
		sortBy     string
		direction  string
	}{
		{"zero_page_size", 0, 0, "id", "asc"},
		{"negative_page", -1, 10, "id", "asc"},
		{"unknown_sort_field", 0, 10, "rating", "asc"},
		{"unknown_direction", 0, 10, "id", "sideways"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := repo.ListPage(ctx, tt.pageNumber, tt.pageSize, tt.sortBy, tt.direction)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}
