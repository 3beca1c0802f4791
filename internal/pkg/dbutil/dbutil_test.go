package dbutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestFinalize(t *testing.T) {
	query, args := Finalize("SELECT id FROM users WHERE (email=?) AND (id=?)", []interface{}{"a@b.c", 1})
	require.Equal(t, "SELECT id FROM users WHERE (email=$1) AND (id=$2)", query)
	require.Len(t, args, 2)
}

func TestIsConflict(t *testing.T) {
	require.True(t, IsConflict(&pq.Error{Code: "23505"}))
	require.True(t, IsConflict(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	require.False(t, IsConflict(&pq.Error{Code: "23503"}))
	require.False(t, IsConflict(errors.New("boom")))
	require.False(t, IsConflict(nil))
}

func TestEscapeLike(t *testing.T) {
	require.Equal(t, "rent", EscapeLike("rent"))
	require.Equal(t, `100\%`, EscapeLike("100%"))
	require.Equal(t, `a\_b`, EscapeLike("a_b"))
	require.Equal(t, `c:\\dir`, EscapeLike(`c:\dir`))
}
