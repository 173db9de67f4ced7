package iodb

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

// TestIsUndefinedTable verifies that only the undefined-table condition
// downgrades a database to a species-less handle; every other failure
// of the species-metadata query propagates.
func TestIsUndefinedTable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "undefined table",
			err:  &pgconn.PgError{Code: "42P01"},
			want: true,
		},
		{
			name: "wrapped undefined table",
			err: fmt.Errorf("query failed: %w",
				&pgconn.PgError{Code: "42P01"}),
			want: true,
		},
		{
			name: "permission denied",
			err:  &pgconn.PgError{Code: "42501"},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection reset"),
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUndefinedTable(tt.err))
		})
	}
}
