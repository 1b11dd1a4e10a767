// Copyright (c) 2026 MovieHub. All rights reserved.

/*
Package movie provides the catalog of movie records and their poster assets.

The HTTP handler translates between the multipart/JSON transport layer and
the internal domain [Service]. Mutative movie endpoints accept multipart
bodies: a "movie" part carrying the JSON payload and a "file" part carrying
the poster bytes.
*/
package movie

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/moviehub/moviehub/internal/platform/constants"
	requestutil "github.com/moviehub/moviehub/internal/platform/request"
	"github.com/moviehub/moviehub/internal/platform/respond"
	"github.com/moviehub/moviehub/pkg/pagination"
)

type Handler struct {
	service       *Service
	maxUploadSize int64
}

func NewHandler(service *Service, maxUploadSize int64) *Handler {
	return &Handler{service: service, maxUploadSize: maxUploadSize}
}

// Routes returns the router for the /api/v1/movie group.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/add-movie", handler.addMovie)
	router.Get("/all", handler.listMovies)
	router.Get("/allMoviesPage", handler.listMoviesPaged)
	router.Get("/allMoviesPageSort", handler.listMoviesPagedSorted)
	router.Post("/reconcile-assets", handler.reconcileAssets)
	router.Get("/{id}", handler.getMovie)
	router.Put("/update/{id}", handler.updateMovie)
	router.Delete("/delete/{id}", handler.deleteMovie)

	return router
}

/*
POST /api/v1/movie/add-movie.

Request (multipart):
  - movie: JSON movie payload
  - file: poster bytes (required)

Response:
  - 201: View: Created movie with derived poster URL
  - 400: Validation failures, empty file
  - 409: Poster filename or title collision
*/
func (handler *Handler) addMovie(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.Multipart(writer, request, handler.maxUploadSize, constants.MultipartMemoryLimit); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Movie
	if err := requestutil.JSONPart(request, constants.MultipartFormName, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, header, err := requestutil.FilePart(request, constants.MultipartFileName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	originalName := ""
	if header != nil {
		defer file.Close()
		originalName = header.Filename
	}

	view, err := handler.service.AddMovie(request.Context(), &input, uploadReader(file, header), originalName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, view)
}

/*
GET /api/v1/movie/{id}.

Response:
  - 200: View
  - 404: Movie not found
*/
func (handler *Handler) getMovie(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.GetMovie(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

/*
GET /api/v1/movie/all.

Response:
  - 200: []View: every movie, repository order
*/
func (handler *Handler) listMovies(writer http.ResponseWriter, request *http.Request) {
	views, err := handler.service.ListMovies(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, views)
}

/*
GET /api/v1/movie/allMoviesPage?pageNumber&pageSize.

Response:
  - 200: PageResponse, sorted by id ascending
*/
func (handler *Handler) listMoviesPaged(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	page, err := handler.service.ListMoviesPaged(request.Context(), params.PageNumber, params.PageSize, "", "")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page)
}

/*
GET /api/v1/movie/allMoviesPageSort?pageNumber&pageSize&sortBy&direction.

sortBy accepts any Movie attribute name; direction is asc or desc.

Response:
  - 200: PageResponse
  - 400: Unknown sort field or direction
*/
func (handler *Handler) listMoviesPagedSorted(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	sortBy := request.URL.Query().Get("sortBy")
	direction := request.URL.Query().Get("direction")

	page, err := handler.service.ListMoviesPaged(request.Context(), params.PageNumber, params.PageSize, sortBy, direction)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page)
}

/*
PUT /api/v1/movie/update/{id}.

Request (multipart):
  - movie: JSON movie payload (full replacement)
  - file: poster bytes (optional; absent or empty keeps the current poster)

Response:
  - 200: View with freshly derived poster URL
  - 404: Movie not found
*/
func (handler *Handler) updateMovie(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := requestutil.Multipart(writer, request, handler.maxUploadSize, constants.MultipartMemoryLimit); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Movie
	if err := requestutil.JSONPart(request, constants.MultipartFormName, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, header, err := requestutil.FilePart(request, constants.MultipartFileName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	originalName := ""
	if header != nil {
		defer file.Close()
		originalName = header.Filename
	}

	view, err := handler.service.UpdateMovie(request.Context(), id, &input, uploadReader(file, header), originalName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

/*
DELETE /api/v1/movie/delete/{id}.

Response:
  - 200: Confirmation message referencing the id
  - 404: Movie not found
*/
func (handler *Handler) deleteMovie(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, err := handler.service.DeleteMovie(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{constants.FieldMessage: message})
}

/*
POST /api/v1/movie/reconcile-assets.

Maintenance sweep: removes stored poster files no record references.

Response:
  - 200: {"removed": [...]}: names of deleted orphans
*/
func (handler *Handler) reconcileAssets(writer http.ResponseWriter, request *http.Request) {
	removed, err := handler.service.ReconcileAssets(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if removed == nil {
		removed = []string{}
	}

	respond.OK(writer, map[string][]string{"removed": removed})
}

// uploadReader collapses an absent or zero-byte upload part to nil so the
// service treats both the same way (an empty part means "no file sent").
func uploadReader(file multipart.File, header *multipart.FileHeader) io.Reader {
	if file == nil || header == nil || header.Size == 0 {
		return nil
	}
	return file
}
