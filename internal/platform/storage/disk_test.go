// Copyright (c) 2026 MovieHub. All rights reserved.

package storage_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviehub/moviehub/internal/platform/apperr"
	"github.com/moviehub/moviehub/internal/platform/storage"
)

func TestDisk_SaveAndOpen(t *testing.T) {
	dir := t.TempDir()
	disk := storage.NewDisk()
	ctx := context.Background()

	stored, err := disk.Save(ctx, dir, strings.NewReader("poster bytes"), "my poster.jpg")
	require.NoError(t, err)
	assert.Equal(t, "my_poster.jpg", stored)

	rc, err := disk.Open(ctx, dir, stored)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "poster bytes", string(got))
}

func TestDisk_SaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "posters")
	disk := storage.NewDisk()

	_, err := disk.Save(context.Background(), dir, strings.NewReader("x"), "p.jpg")
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "p.jpg"))
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
}

func TestDisk_SaveEmptyContent(t *testing.T) {
	dir := t.TempDir()
	disk := storage.NewDisk()
	ctx := context.Background()

	_, err := disk.Save(ctx, dir, nil, "p.jpg")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = disk.Save(ctx, dir, strings.NewReader(""), "p.jpg")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// A zero-byte save must not leave an empty file behind.
	assert.False(t, disk.Exists(ctx, dir, "p.jpg"))
}

func TestDisk_SaveCollision(t *testing.T) {
	dir := t.TempDir()
	disk := storage.NewDisk()
	ctx := context.Background()

	_, err := disk.Save(ctx, dir, strings.NewReader("first"), "p.jpg")
	require.NoError(t, err)

	_, err = disk.Save(ctx, dir, strings.NewReader("second"), "p.jpg")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// The original content must be untouched.
	rc, err := disk.Open(ctx, dir, "p.jpg")
	require.NoError(t, err)
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	assert.Equal(t, "first", string(got))
}

func TestDisk_Replace(t *testing.T) {
	dir := t.TempDir()
	disk := storage.NewDisk()
	ctx := context.Background()

	_, err := disk.Save(ctx, dir, strings.NewReader("old"), "p.jpg")
	require.NoError(t, err)

	require.NoError(t, disk.Replace(ctx, dir, strings.NewReader("new"), "p.jpg"))

	rc, err := disk.Open(ctx, dir, "p.jpg")
	require.NoError(t, err)
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	assert.Equal(t, "new", string(got))
}

func TestDisk_DeleteIdempotent(t *testing.T) {
	dir := t.TempDir()
	disk := storage.NewDisk()
	ctx := context.Background()

	_, err := disk.Save(ctx, dir, strings.NewReader("x"), "p.jpg")
	require.NoError(t, err)

	removed, err := disk.Delete(ctx, dir, "p.jpg")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = disk.Delete(ctx, dir, "p.jpg")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDisk_OpenMissing(t *testing.T) {
	disk := storage.NewDisk()

	_, err := disk.Open(context.Background(), t.TempDir(), "ghost.jpg")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestDisk_RejectsTraversal(t *testing.T) {
	disk := storage.NewDisk()
	ctx := context.Background()
	dir := t.TempDir()

	for _, name := range []string{"../secret", "a/b.jpg", ""} {
		_, err := disk.Open(ctx, dir, name)
		assert.Error(t, err, "name %q", name)

		assert.False(t, disk.Exists(ctx, dir, name))
	}
}

func TestDisk_List(t *testing.T) {
	dir := t.TempDir()
	disk := storage.NewDisk()
	ctx := context.Background()

	// Missing directory behaves like an empty store.
	names, err := disk.List(ctx, filepath.Join(dir, "absent"))
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = disk.Save(ctx, dir, strings.NewReader("a"), "a.jpg")
	require.NoError(t, err)
	_, err = disk.Save(ctx, dir, strings.NewReader("b"), "b.png")
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	names, err = disk.List(ctx, dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.jpg", "b.png"}, names)
}

func TestExtensionOf(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "poster.jpg", "jpg"},
		{"multi_dot", "poster.v2.png", "png"},
		{"none", "README", ""},
		{"trailing_dot", "weird.", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, storage.ExtensionOf(tt.input))
		})
	}
}

func TestIsAllowedType(t *testing.T) {
	allow := []string{"jpg", "png"}

	assert.True(t, storage.IsAllowedType("p.jpg", allow))
	assert.True(t, storage.IsAllowedType("p.JPG", allow))
	assert.True(t, storage.IsAllowedType("p.PnG", allow))
	assert.False(t, storage.IsAllowedType("p.exe", allow))
	assert.False(t, storage.IsAllowedType("noext", allow))
}
