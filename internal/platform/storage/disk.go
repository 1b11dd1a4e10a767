// Copyright (c) 2026 MovieHub. All rights reserved.

/*
Package storage implements the disk-backed asset store for poster files.

It is the filesystem counterpart of the postgres package: an Infrastructure
adapter with no knowledge of movie records. The catalog service owns the
pairing between a record and its asset file; this package only guarantees
safe names, collision-free writes, and streaming reads.

Guarantees:

  - Stored names are sanitized (see pkg/safename) and contain no separators,
    so a client-supplied name can never escape the base directory.
  - Save refuses to overwrite: the create is performed with O_EXCL so a
    same-named file fails with a CONFLICT error instead of silently clobbering.
  - Open returns the underlying *os.File, so large assets stream to the
    consumer at its own pace instead of being buffered in memory.
  - Delete is idempotent and reports whether a file was actually removed.
*/
package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/moviehub/moviehub/internal/platform/apperr"
	"github.com/moviehub/moviehub/pkg/safename"
)

// Disk is a filesystem asset store rooted at a base directory.
//
// All operations take an explicit directory argument relative to nothing —
// callers pass the configured poster directory. Disk carries no per-record
// state and is safe for concurrent use: single-file create-if-absent and
// MkdirAll are atomic at the filesystem-operation level.
type Disk struct{}

// NewDisk constructs a disk asset store.
func NewDisk() *Disk {
	return &Disk{}
}

// Save writes the content of r into directory under a sanitized name derived
// from originalName and returns the stored name.
//
// Failure modes:
//   - VALIDATION_ERROR when r is nil or yields zero bytes.
//   - CONFLICT when a file with the derived name already exists. The caller
//     may retry with a different original name; nothing is overwritten.
func (d *Disk) Save(ctx context.Context, directory string, r io.Reader, originalName string) (string, error) {
	if r == nil {
		return "", apperr.ValidationError("File cannot be empty")
	}

	storedName := safename.From(originalName)
	if storedName == "" || storedName == "." || storedName == ".." {
		return "", apperr.ValidationError("Invalid file name")
	}

	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", apperr.Internal(err)
	}

	path := filepath.Join(directory, storedName)

	// O_EXCL makes create-if-absent atomic: two concurrent saves of the same
	// name cannot both succeed.
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", apperr.Conflict("File already exists! Please enter another filename")
		}
		return "", apperr.Internal(err)
	}

	written, err := io.Copy(file, r)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", apperr.Internal(err)
	}

	if written == 0 {
		// Nothing arrived: undo the create so no empty file lingers.
		_ = os.Remove(path)
		return "", apperr.ValidationError("File cannot be empty")
	}

	return storedName, nil
}

// Replace overwrites an asset in place, truncating any previous content.
//
// It exists for the one lifecycle step where overwrite is intended: updating
// a movie whose new poster sanitizes to its current stored name. Everywhere
// else, use Save.
func (d *Disk) Replace(ctx context.Context, directory string, r io.Reader, storedName string) error {
	if r == nil {
		return apperr.ValidationError("File cannot be empty")
	}

	path, err := d.resolve(directory, storedName)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return apperr.Internal(err)
	}

	_, err = io.Copy(file, r)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return apperr.Internal(err)
	}

	return nil
}

// Open returns a streaming reader over the named asset.
//
// The returned ReadCloser is the open *os.File; consumers read at their own
// pace and must close it. A missing file yields a NOT_FOUND error.
func (d *Disk) Open(ctx context.Context, directory, name string) (io.ReadCloser, error) {
	path, err := d.resolve(directory, name)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.NotFound("File")
		}
		return nil, apperr.Internal(err)
	}

	return file, nil
}

// Delete removes the named asset if present.
//
// It is idempotent: deleting an absent file is not an error, and the boolean
// reports whether a file was actually removed.
func (d *Disk) Delete(ctx context.Context, directory, name string) (bool, error) {
	path, err := d.resolve(directory, name)
	if err != nil {
		return false, err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, apperr.Internal(err)
	}

	return true, nil
}

// Exists reports whether the named asset is present.
func (d *Disk) Exists(ctx context.Context, directory, name string) bool {
	path, err := d.resolve(directory, name)
	if err != nil {
		return false
	}

	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// List returns the names of regular files one level deep in directory.
//
// Order is whatever the filesystem yields; callers re-sort if they care.
// A missing directory is treated as empty, matching a store that has never
// received an upload.
func (d *Disk) List(ctx context.Context, directory string) ([]string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, apperr.Internal(err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}

	return names, nil
}

// ExtensionOf returns the substring after the last dot, or "" if none.
func ExtensionOf(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return name[idx+1:]
}

// IsAllowedType reports whether the file's extension matches the allow-list,
// case-insensitively.
func IsAllowedType(name string, allowList []string) bool {
	ext := strings.ToLower(ExtensionOf(name))
	if ext == "" {
		return false
	}

	for _, allowed := range allowList {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

// resolve joins directory and name, rejecting names that could address
// anything outside the directory. Sanitized names always pass; the check
// guards direct callers of the file API that bypass Save.
func (d *Disk) resolve(directory, name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", apperr.ValidationError("Invalid file name")
	}
	return filepath.Join(directory, name), nil
}
