package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primetrade/taskboard-api/internal/domain"
	"github.com/primetrade/taskboard-api/internal/mocks"
	"github.com/primetrade/taskboard-api/internal/store"
)

// execRecorder implements store.DBTX for exercising write paths without a
// database. Only ExecContext is expected to be reached.
type execRecorder struct {
	args []any
	err  error
}

func (e *execRecorder) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	e.args = args
	if e.err != nil {
		return nil, e.err
	}
	return fakeResult{rows: 1}, nil
}

func (e *execRecorder) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	panic("unexpected query")
}

func (e *execRecorder) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	panic("unexpected query")
}

func TestPostgresUserStoreCreate(t *testing.T) {
	t.Parallel()

	t.Run("hashes the password before the row is written", func(t *testing.T) {
		t.Parallel()

		db := &execRecorder{}
		userStore := NewPostgresUserStore(db, &mocks.MockPasswordHasher{}, nil)

		user, err := domain.NewUser("user@example.com", "Sup3rSecret", domain.RoleUser)
		require.NoError(t, err)

		require.NoError(t, userStore.Create(context.Background(), user))

		assert.Equal(t, "hashed:Sup3rSecret", user.HashedPassword)
		assert.Empty(t, user.Password, "plaintext must be cleared after hashing")

		// The bound parameters carry the hash, never the plaintext.
		require.Len(t, db.args, 6)
		assert.Contains(t, db.args, "hashed:Sup3rSecret")
		assert.NotContains(t, db.args, "Sup3rSecret")
	})

	t.Run("hasher failure aborts the insert", func(t *testing.T) {
		t.Parallel()

		db := &execRecorder{}
		hasher := &mocks.MockPasswordHasher{Err: errors.New("bcrypt unavailable")}
		userStore := NewPostgresUserStore(db, hasher, nil)

		user, err := domain.NewUser("user@example.com", "Sup3rSecret", domain.RoleUser)
		require.NoError(t, err)

		err = userStore.Create(context.Background(), user)
		require.Error(t, err)
		assert.Nil(t, db.args, "no row should be written when hashing fails")
	})

	t.Run("duplicate email maps to ErrEmailExists", func(t *testing.T) {
		t.Parallel()

		db := &execRecorder{err: &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}}
		userStore := NewPostgresUserStore(db, &mocks.MockPasswordHasher{}, nil)

		user, err := domain.NewUser("taken@example.com", "Sup3rSecret", domain.RoleUser)
		require.NoError(t, err)

		err = userStore.Create(context.Background(), user)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})
}
