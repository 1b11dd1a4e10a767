// Copyright (c) 2026 MovieHub. All rights reserved.

package file_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviehub/moviehub/internal/core/file"
	"github.com/moviehub/moviehub/internal/platform/storage"
)

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	directory := t.TempDir()
	handler := file.NewHandler(storage.NewDisk(), directory,
		[]string{"jpg", "png"}, 1<<20)

	server := httptest.NewServer(handler.Routes())
	t.Cleanup(server.Close)
	return server, directory
}

func uploadRequest(t *testing.T, url, fileName string, content []byte) *http.Response {
	t.Helper()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, form.Close())

	response, err := http.Post(url+"/upload", form.FormDataContentType(), &body)
	require.NoError(t, err)
	return response
}

func decodeData(t *testing.T, response *http.Response, target interface{}) {
	t.Helper()
	defer response.Body.Close()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(response.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, target))
}

/*
TestHandler_UploadAndServe tests the upload/download round trip including
the sanitized stored name and the inferred content type.
*/
func TestHandler_UploadAndServe(t *testing.T) {
	server, directory := newTestServer(t)

	response := uploadRequest(t, server.URL, "my poster.jpg", []byte("image-bytes"))
	require.Equal(t, http.StatusOK, response.StatusCode)

	var uploaded map[string]string
	decodeData(t, response, &uploaded)
	assert.Equal(t, "my_poster.jpg", uploaded["file_name"])

	_, err := os.Stat(filepath.Join(directory, "my_poster.jpg"))
	require.NoError(t, err)

	served, err := http.Get(server.URL + "/my_poster.jpg")
	require.NoError(t, err)
	defer served.Body.Close()

	assert.Equal(t, http.StatusOK, served.StatusCode)
	assert.Equal(t, "image/jpeg", served.Header.Get("Content-Type"))

	var buf bytes.Buffer
	_, err = buf.ReadFrom(served.Body)
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", buf.String())
}

/*
TestHandler_Upload_Rejections tests the upload failure modes.
*/
func TestHandler_Upload_Rejections(t *testing.T) {
	server, _ := newTestServer(t)

	t.Run("disallowed_type", func(t *testing.T) {
		response := uploadRequest(t, server.URL, "evil.exe", []byte("x"))
		defer response.Body.Close()
		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	})

	t.Run("duplicate_name", func(t *testing.T) {
		first := uploadRequest(t, server.URL, "dup.png", []byte("x"))
		first.Body.Close()
		require.Equal(t, http.StatusOK, first.StatusCode)

		second := uploadRequest(t, server.URL, "dup.png", []byte("y"))
		defer second.Body.Close()
		assert.Equal(t, http.StatusConflict, second.StatusCode)
	})

	t.Run("empty_content", func(t *testing.T) {
		response := uploadRequest(t, server.URL, "empty.jpg", nil)
		defer response.Body.Close()
		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	})
}

/*
TestHandler_Serve_NotFound tests the 404 on a missing asset.
*/
func TestHandler_Serve_NotFound(t *testing.T) {
	server, _ := newTestServer(t)

	response, err := http.Get(server.URL + "/missing.jpg")
	require.NoError(t, err)
	defer response.Body.Close()

	assert.Equal(t, http.StatusNotFound, response.StatusCode)
}

/*
TestHandler_ListExistsDelete tests the listing, existence and idempotent
deletion endpoints together.
*/
func TestHandler_ListExistsDelete(t *testing.T) {
	server, _ := newTestServer(t)

	for _, name := range []string{"b.jpg", "a.png"} {
		response := uploadRequest(t, server.URL, name, []byte("x"))
		response.Body.Close()
		require.Equal(t, http.StatusOK, response.StatusCode)
	}

	listed, err := http.Get(server.URL + "/list")
	require.NoError(t, err)
	var names []string
	decodeData(t, listed, &names)
	assert.Equal(t, []string{"a.png", "b.jpg"}, names)

	existing, err := http.Get(server.URL + "/exists/a.png")
	require.NoError(t, err)
	var exists map[string]bool
	decodeData(t, existing, &exists)
	assert.True(t, exists["exists"])

	request, err := http.NewRequest(http.MethodDelete, server.URL+"/a.png", nil)
	require.NoError(t, err)

	deleted, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	var removed map[string]bool
	decodeData(t, deleted, &removed)
	assert.True(t, removed["removed"])

	// Idempotent: the second delete succeeds but removes nothing.
	again, err := http.DefaultClient.Do(request.Clone(request.Context()))
	require.NoError(t, err)
	decodeData(t, again, &removed)
	assert.False(t, removed["removed"])
}
