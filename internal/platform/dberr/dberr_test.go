// Copyright (c) 2026 MovieHub. All rights reserved.

package dberr_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviehub/moviehub/internal/platform/apperr"
	"github.com/moviehub/moviehub/internal/platform/dberr"
)

/*
TestWrap tests the classification of raw database errors into the
application error taxonomy.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"nil_passthrough", nil, "", 0},
		{"no_rows", pgx.ErrNoRows, "NOT_FOUND", http.StatusNotFound},
		{"deadline_exceeded", context.DeadlineExceeded, "SERVICE_UNAVAILABLE", http.StatusServiceUnavailable},
		{"context_canceled", context.Canceled, "SERVICE_UNAVAILABLE", http.StatusServiceUnavailable},
		{"unique_violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, "CONFLICT", http.StatusConflict},
		{"foreign_key_violation", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, "CONFLICT", http.StatusConflict},
		{"statement_timeout", &pgconn.PgError{Code: pgerrcode.QueryCanceled}, "SERVICE_UNAVAILABLE", http.StatusServiceUnavailable},
		{"unknown_error", errors.New("connection refused"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "test_action")

			if tt.err == nil {
				assert.NoError(t, wrapped)
				return
			}

			ae := apperr.As(wrapped)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
			assert.Equal(t, tt.wantStatus, ae.HTTPStatus)
		})
	}
}
