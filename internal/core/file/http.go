// Copyright (c) 2026 MovieHub. All rights reserved.

/*
Package file exposes the auxiliary asset-management HTTP surface.

It operates directly on the disk asset store with no knowledge of movie
records: uploads, raw streaming downloads, deletion, listing, and existence
checks. The movie endpoints manage the record/asset pairing; this surface is
for operators and for serving poster bytes to browsers.
*/
package file

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/moviehub/moviehub/internal/platform/constants"
	"github.com/moviehub/moviehub/internal/platform/ctxutil"
	requestutil "github.com/moviehub/moviehub/internal/platform/request"
	"github.com/moviehub/moviehub/internal/platform/respond"
	"github.com/moviehub/moviehub/internal/platform/storage"
	"github.com/moviehub/moviehub/internal/platform/validate"
)

// Handler serves the /file route group.
type Handler struct {
	assets        *storage.Disk
	directory     string
	allowedExts   []string
	maxUploadSize int64
}

func NewHandler(assets *storage.Disk, directory string, allowedExts []string, maxUploadSize int64) *Handler {
	return &Handler{
		assets:        assets,
		directory:     directory,
		allowedExts:   allowedExts,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the router for the /file group.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/upload", handler.upload)
	router.Get("/list", handler.list)
	router.Get("/exists/{fileName}", handler.exists)
	router.Get("/{fileName}", handler.serve)
	router.Delete("/{fileName}", handler.delete)

	return router
}

/*
POST /file/upload.

Request (multipart):
  - file: asset bytes

Response:
  - 200: {"file_name": storedName}
  - 400: Empty file or disallowed type
  - 409: Name collision
*/
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.Multipart(writer, request, handler.maxUploadSize, constants.MultipartMemoryLimit); err != nil {
		respond.Error(writer, request, err)
		return
	}

	part, header, err := requestutil.FilePart(request, constants.MultipartFileName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if part == nil {
		respond.Error(writer, request, validate.RequiredError(constants.MultipartFileName, "File is empty! Please select a file!"))
		return
	}
	defer part.Close()

	if !storage.IsAllowedType(header.Filename, handler.allowedExts) {
		respond.Error(writer, request, validate.RequiredError(constants.MultipartFileName,
			"File type not allowed: "+storage.ExtensionOf(header.Filename)))
		return
	}

	storedName, err := handler.assets.Save(request.Context(), handler.directory, part, header.Filename)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"file_name": storedName})
}

/*
GET /file/{fileName}.

Streams the asset bytes with a Content-Type inferred from the extension.

Response:
  - 200: Raw bytes
  - 404: File not found
*/
func (handler *Handler) serve(writer http.ResponseWriter, request *http.Request) {
	fileName := requestutil.Param(request, "fileName")

	stream, err := handler.assets.Open(request.Context(), handler.directory, fileName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer stream.Close()

	writer.Header().Set("Content-Type", contentTypeFor(fileName))

	if _, err := io.Copy(writer, stream); err != nil {
		// Headers are gone; all that is left is logging the broken stream.
		ctxutil.GetLogger(request.Context()).Warn("file_stream_aborted",
			slog.String("file_name", fileName),
			slog.Any("error", err),
		)
	}
}

/*
DELETE /file/{fileName}.

Idempotent: deleting an absent file still succeeds.

Response:
  - 200: {"removed": bool}
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	fileName := requestutil.Param(request, "fileName")

	removed, err := handler.assets.Delete(request.Context(), handler.directory, fileName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]bool{"removed": removed})
}

/*
GET /file/list.

Response:
  - 200: Sorted file names, one storage level deep
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	names, err := handler.assets.List(request.Context(), handler.directory)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if names == nil {
		names = []string{}
	}

	// The store promises no order; sort for a stable API.
	sort.Strings(names)
	respond.OK(writer, names)
}

/*
GET /file/exists/{fileName}.

Response:
  - 200: {"exists": bool}
*/
func (handler *Handler) exists(writer http.ResponseWriter, request *http.Request) {
	fileName := requestutil.Param(request, "fileName")

	respond.OK(writer, map[string]bool{
		"exists": handler.assets.Exists(request.Context(), handler.directory, fileName),
	})
}

// contentTypeFor infers a Content-Type from the file extension, falling back
// to application/octet-stream for unknown types.
func contentTypeFor(fileName string) string {
	ext := storage.ExtensionOf(fileName)
	if ext == "" {
		return "application/octet-stream"
	}

	if mimeType := mime.TypeByExtension("." + ext); mimeType != "" {
		return mimeType
	}
	return "application/octet-stream"
}
