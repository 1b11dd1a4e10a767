// Copyright (c) 2026 MovieHub. All rights reserved.

package movie

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/moviehub/moviehub/internal/platform/apperr"
	"github.com/moviehub/moviehub/internal/platform/storage"
	"github.com/moviehub/moviehub/internal/platform/validate"
	"github.com/moviehub/moviehub/pkg/pagination"
	"github.com/moviehub/moviehub/pkg/safename"
)

// Options carries the configuration values the catalog service needs.
// They are threaded in from the environment at startup; the service holds
// no ambient global state.
type Options struct {
	// PosterDir is the asset store directory for poster files.
	PosterDir string

	// BaseURL is the externally visible prefix for derived poster URLs.
	BaseURL string

	// AllowedExtensions is the upload type allow-list (case-insensitive).
	AllowedExtensions []string
}

// Service orchestrates the movie repository and the disk asset store.
//
// It is the sole owner of the pairing between a record and its poster file:
// the repository knows nothing about files, the asset store knows nothing
// about records, and no transaction spans the two. The consequences of that
// are handled here — pre-checked saves, best-effort deletes, and the
// reconcile sweep for orphans.
type Service struct {
	repo   Repository
	assets *storage.Disk
	opts   Options
	logger *slog.Logger
}

func NewService(repo Repository, assets *storage.Disk, opts Options, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		assets: assets,
		opts:   opts,
		logger: logger,
	}
}

// AddMovie validates input, stores the poster asset, persists the record,
// and returns the enriched view.
//
// The asset is written before the record. If persistence then fails the
// saved file becomes an orphan; that is accepted rather than rolled back,
// and ReconcileAssets cleans it up later.
func (service *Service) AddMovie(context context.Context, input *Movie, file io.Reader, originalName string) (*View, error) {
	if err := validateMovie(input); err != nil {
		return nil, err
	}

	if file == nil {
		return nil, apperr.ValidationError("File is empty! Please select a file!")
	}
	if !storage.IsAllowedType(originalName, service.opts.AllowedExtensions) {
		return nil, validate.RequiredError(FieldPosterFileName,
			"File type not allowed: "+storage.ExtensionOf(originalName))
	}

	taken, err := service.repo.ExistsByTitle(context, input.Title)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("A movie with this title already exists")
	}

	// Pre-check the target name so a duplicate fails before any byte is
	// written, not halfway through a partial write.
	target := safename.From(originalName)
	if service.assets.Exists(context, service.opts.PosterDir, target) {
		return nil, apperr.Conflict("File already exists! Please enter another filename")
	}

	storedName, err := service.assets.Save(context, service.opts.PosterDir, file, originalName)
	if err != nil {
		return nil, err
	}

	record := *input
	record.Cast = NormalizeCast(input.Cast)
	record.PosterFileName = storedName

	if err := service.repo.Create(context, &record); err != nil {
		// Orphaned asset accepted by design: no rollback, only visibility.
		service.logger.Error("movie_create_orphaned_asset",
			slog.String("poster_filename", storedName),
			slog.Any("error", err),
		)
		return nil, err
	}

	service.logger.Info("movie_created",
		slog.Int64("movie_id", record.ID),
		slog.String("title", record.Title),
	)
	return service.view(&record), nil
}

// GetMovie returns one movie view by id.
func (service *Service) GetMovie(context context.Context, id int64) (*View, error) {
	record, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}
	return service.view(record), nil
}

// ListMovies returns every movie as a view, preserving repository order.
func (service *Service) ListMovies(context context.Context) ([]*View, error) {
	records, err := service.repo.List(context)
	if err != nil {
		return nil, err
	}

	views := make([]*View, 0, len(records))
	for _, record := range records {
		views = append(views, service.view(record))
	}
	return views, nil
}

// ListMoviesPaged returns one zero-based page of movie views with derived
// paging metadata. Paging and sorting are delegated to the repository.
func (service *Service) ListMoviesPaged(context context.Context, pageNumber, pageSize int, sortBy, direction string) (*PageResponse, error) {
	records, total, err := service.repo.ListPage(context, pageNumber, pageSize, sortBy, direction)
	if err != nil {
		return nil, err
	}

	items := make([]*View, 0, len(records))
	for _, record := range records {
		items = append(items, service.view(record))
	}

	return &PageResponse{
		Items:         items,
		PageNumber:    pageNumber,
		PageSize:      pageSize,
		TotalElements: total,
		TotalPages:    pagination.TotalPages(total, pageSize),
		IsLastPage:    pagination.IsLast(pageNumber, pageSize, total),
	}, nil
}

// UpdateMovie replaces every field of the record except its id.
//
// A nil file keeps the current poster. A non-nil file replaces it: the new
// asset is saved first and the old one deleted best-effort afterwards, so a
// failed save never strands the record with a dangling poster reference.
// When the new name sanitizes to the current one the file is overwritten in
// place instead, so the only copy is never deleted.
func (service *Service) UpdateMovie(context context.Context, id int64, input *Movie, file io.Reader, originalName string) (*View, error) {
	existing, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}

	if err := validateMovie(input); err != nil {
		return nil, err
	}

	posterName := existing.PosterFileName

	if file != nil {
		if !storage.IsAllowedType(originalName, service.opts.AllowedExtensions) {
			return nil, validate.RequiredError(FieldPosterFileName,
				"File type not allowed: "+storage.ExtensionOf(originalName))
		}

		newName := safename.From(originalName)
		if newName == posterName {
			if err := service.assets.Replace(context, service.opts.PosterDir, file, newName); err != nil {
				return nil, err
			}
		} else {
			// Save before deleting: every failure mode of the save (name
			// collision, empty content) must surface while the old asset
			// still backs the record's poster reference.
			storedName, err := service.assets.Save(context, service.opts.PosterDir, file, originalName)
			if err != nil {
				return nil, err
			}

			// Best-effort: a failed delete must not block the record update.
			if _, err := service.assets.Delete(context, service.opts.PosterDir, posterName); err != nil {
				service.logger.Warn("movie_update_asset_delete_failed",
					slog.Int64("movie_id", id),
					slog.String("poster_filename", posterName),
					slog.Any("error", err),
				)
			}
			posterName = storedName
		}
	}

	record := *input
	record.ID = id
	record.Cast = NormalizeCast(input.Cast)
	record.PosterFileName = posterName

	if err := service.repo.Update(context, &record); err != nil {
		return nil, err
	}

	service.logger.Info("movie_updated", slog.Int64("movie_id", id))
	return service.view(&record), nil
}

// DeleteMovie removes the record and, best-effort, its poster asset.
// It returns a human-readable confirmation referencing the id.
func (service *Service) DeleteMovie(context context.Context, id int64) (string, error) {
	existing, err := service.repo.Get(context, id)
	if err != nil {
		return "", err
	}

	// Best-effort: a failed asset delete must not block the record delete.
	if _, err := service.assets.Delete(context, service.opts.PosterDir, existing.PosterFileName); err != nil {
		service.logger.Warn("movie_delete_asset_delete_failed",
			slog.Int64("movie_id", id),
			slog.String("poster_filename", existing.PosterFileName),
			slog.Any("error", err),
		)
	}

	if err := service.repo.Delete(context, id); err != nil {
		return "", err
	}

	service.logger.Info("movie_deleted", slog.Int64("movie_id", id))
	return fmt.Sprintf("Movie deleted with id: %d", id), nil
}

// ReconcileAssets sweeps the poster directory and removes files no record
// references. It is the explicit maintenance counterpart of the accepted
// save-then-persist failure mode; run it from the admin endpoint.
func (service *Service) ReconcileAssets(context context.Context) ([]string, error) {
	names, err := service.assets.List(context, service.opts.PosterDir)
	if err != nil {
		return nil, err
	}

	records, err := service.repo.List(context)
	if err != nil {
		return nil, err
	}

	referenced := make(map[string]struct{}, len(records))
	for _, record := range records {
		referenced[record.PosterFileName] = struct{}{}
	}

	var removed []string
	for _, name := range names {
		if _, ok := referenced[name]; ok {
			continue
		}

		wasRemoved, err := service.assets.Delete(context, service.opts.PosterDir, name)
		if err != nil {
			service.logger.Warn("reconcile_delete_failed",
				slog.String("poster_filename", name),
				slog.Any("error", err),
			)
			continue
		}
		if wasRemoved {
			removed = append(removed, name)
		}
	}

	service.logger.Info("assets_reconciled",
		slog.Int("orphans_removed", len(removed)),
		slog.Int("files_scanned", len(names)),
	)
	return removed, nil
}

// view derives the externally-facing projection with its poster URL.
func (service *Service) view(record *Movie) *View {
	return &View{
		Movie:     *record,
		PosterURL: strings.TrimRight(service.opts.BaseURL, "/") + "/file/" + record.PosterFileName,
	}
}

// validateMovie enforces the field-level rules shared by add and update.
func validateMovie(input *Movie) error {
	if input == nil {
		return validate.ErrInvalidJSON
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 200)
	validator.Required(FieldDirector, input.Director).MaxLen(FieldDirector, input.Director, 200)
	validator.Required(FieldStudio, input.Studio).MaxLen(FieldStudio, input.Studio, 200)
	validator.Range(FieldReleaseYear, input.ReleaseYear, 1888, 2100)

	for _, member := range input.Cast {
		validator.MaxLen(FieldCast, member, 200)
	}

	return validator.Err()
}
