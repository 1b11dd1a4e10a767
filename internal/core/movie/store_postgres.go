// Copyright (c) 2026 MovieHub. All rights reserved.

package movie

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moviehub/moviehub/internal/platform/apperr"
	"github.com/moviehub/moviehub/internal/platform/constants"
	"github.com/moviehub/moviehub/internal/platform/dberr"
)

// sortColumns maps exposed Movie attribute names onto the columns of the
// movies table. Anything outside this allow-list is rejected before SQL is
// built, so sortBy can never inject into ORDER BY.
var sortColumns = map[string]string{
	FieldID:             "id",
	FieldTitle:          "title",
	FieldDirector:       "director",
	FieldStudio:         "studio",
	FieldReleaseYear:    "release_year",
	FieldPosterFileName: "poster_filename",
}

const movieColumns = "id, title, director, studio, movie_cast, release_year, poster_filename"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, m *Movie) error {
	query := `
		INSERT INTO movies (title, director, studio, movie_cast, release_year, poster_filename, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id
	`

	err := repository.db.QueryRow(context, query,
		m.Title, m.Director, m.Studio, m.Cast, m.ReleaseYear, m.PosterFileName,
	).Scan(&m.ID)

	return dberr.Wrap(err, "create_movie")
}

func (repository *PostgresRepository) Get(context context.Context, id int64) (*Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	m := &Movie{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&m.ID, &m.Title, &m.Director, &m.Studio, &m.Cast, &m.ReleaseYear, &m.PosterFileName,
	)
	if err != nil {
		return nil, movieNotFound(dberr.Wrap(err, "get_movie"))
	}

	return m, nil
}

func (repository *PostgresRepository) List(context context.Context) ([]*Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies`

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_movies")
	}
	defer rows.Close()

	var movies []*Movie
	for rows.Next() {
		m := &Movie{}
		if err := rows.Scan(&m.ID, &m.Title, &m.Director, &m.Studio, &m.Cast, &m.ReleaseYear, &m.PosterFileName); err != nil {
			return nil, dberr.Wrap(err, "scan_movie")
		}
		movies = append(movies, m)
	}

	return movies, rows.Err()
}

func (repository *PostgresRepository) ListPage(context context.Context, pageNumber, pageSize int, sortBy, direction string) ([]*Movie, int, error) {
	column, order, err := resolveSort(pageNumber, pageSize, sortBy, direction)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := repository.db.QueryRow(context, `SELECT count(*) FROM movies`).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_movies")
	}

	query := fmt.Sprintf(`SELECT %s FROM movies ORDER BY %s %s, id ASC LIMIT $1 OFFSET $2`,
		movieColumns, column, order,
	)

	rows, err := repository.db.Query(context, query, pageSize, pageNumber*pageSize)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "page_movies")
	}
	defer rows.Close()

	var movies []*Movie
	for rows.Next() {
		m := &Movie{}
		if err := rows.Scan(&m.ID, &m.Title, &m.Director, &m.Studio, &m.Cast, &m.ReleaseYear, &m.PosterFileName); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_movie")
		}
		movies = append(movies, m)
	}

	return movies, total, rows.Err()
}

func (repository *PostgresRepository) Update(context context.Context, m *Movie) error {
	query := `
		UPDATE movies
		SET title = $2, director = $3, studio = $4, movie_cast = $5, release_year = $6, poster_filename = $7, updated_at = NOW()
		WHERE id = $1
	`

	cmd, err := repository.db.Exec(context, query,
		m.ID, m.Title, m.Director, m.Studio, m.Cast, m.ReleaseYear, m.PosterFileName,
	)
	if err != nil {
		return dberr.Wrap(err, "update_movie")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Movie")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	cmd, err := repository.db.Exec(context, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_movie")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Movie")
	}
	return nil
}

func (repository *PostgresRepository) ExistsByTitle(context context.Context, title string) (bool, error) {
	var exists bool
	err := repository.db.QueryRow(context, `SELECT EXISTS (SELECT 1 FROM movies WHERE title = $1)`, title).Scan(&exists)
	if err != nil {
		return false, dberr.Wrap(err, "exists_by_title")
	}

	return exists, nil
}

// resolveSort validates paging and sorting parameters shared by every
// Repository implementation.
func resolveSort(pageNumber, pageSize int, sortBy, direction string) (column, order string, err error) {
	if pageSize <= 0 {
		return "", "", apperr.ValidationError("pageSize must be greater than zero")
	}
	if pageNumber < 0 {
		return "", "", apperr.ValidationError("pageNumber must not be negative")
	}

	if sortBy == "" {
		sortBy = FieldID
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		return "", "", apperr.ValidationError("Unknown sort field: " + sortBy)
	}

	switch strings.ToLower(direction) {
	case "", constants.SortAscending:
		order = "ASC"
	case constants.SortDescending:
		order = "DESC"
	default:
		return "", "", apperr.ValidationError("direction must be asc or desc")
	}

	return column, order, nil
}

// movieNotFound rewrites the generic resource error so clients see the
// entity they asked for.
func movieNotFound(err error) error {
	if ae := apperr.As(err); ae != nil && ae.Code == "NOT_FOUND" {
		return apperr.NotFound("Movie")
	}
	return err
}
