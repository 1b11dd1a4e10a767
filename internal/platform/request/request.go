// Copyright (c) 2026 MovieHub. All rights reserved.

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction, body decoding,
and multipart form access, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/moviehub/moviehub/internal/platform/apperr"
	"github.com/moviehub/moviehub/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Int64Param retrieves a named URL parameter and parses it as a positive int64.

Returns:
  - int64: The parsed identifier
  - error: apperr.ValidationError if the parameter is not a valid number
*/
func Int64Param(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.ValidationError("Invalid " + name + " parameter")
	}

	return id, nil
}

/*
JSONPart decodes a named multipart form field that carries a JSON document.

The caller must have parsed the multipart form already (see [Multipart]).

Returns:
  - error: validate.ErrInvalidJSON when the part is absent or malformed
*/
func JSONPart(request *http.Request, field string, target interface{}) error {
	raw := request.FormValue(field)
	if strings.TrimSpace(raw) == "" {
		return validate.ErrInvalidJSON
	}

	if err := json.NewDecoder(strings.NewReader(raw)).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
FilePart opens a named multipart file part.

An absent part is not an error: both return values are nil so callers can
treat the upload as optional (used by the movie update endpoint).

Returns:
  - multipart.File: The opened part, or nil when the part is missing
  - *multipart.FileHeader: Part metadata (original filename, size)
  - error: apperr.ValidationError for malformed multipart bodies
*/
func FilePart(request *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := request.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, nil
		}
		return nil, nil, apperr.ValidationError("Malformed multipart request")
	}

	return file, header, nil
}

/*
Multipart parses the request body as a multipart form, bounded by maxBytes.

The byte limit is enforced with [http.MaxBytesReader] so an oversized upload
is rejected while reading rather than buffered to completion.

Returns:
  - error: apperr.ValidationError when the body is not multipart or too large
*/
func Multipart(writer http.ResponseWriter, request *http.Request, maxBytes int64, memoryLimit int64) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBytes)

	if err := request.ParseMultipartForm(memoryLimit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperr.ValidationError("Request body exceeds the upload size limit")
		}
		return apperr.ValidationError("Malformed multipart request")
	}

	return nil
}
