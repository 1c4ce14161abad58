package repository

import (
    "context"
    "database/sql"
    "errors"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"

    "github.com/stayplan/stayplan-server/internal/model"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })
    return db, mock
}

// duplicateKeyErr mimics the text of a MySQL duplicate-entry error.
type duplicateKeyErr struct{}

func (duplicateKeyErr) Error() string {
    return "Error 1062 (23000): Duplicate entry 'alice' for key 'users.login_id'"
}

func TestUserCreateReturnsGeneratedID(t *testing.T) {
    db, mock := newMockDB(t)
    repo := NewUserRepo(db)

    mock.ExpectExec("INSERT INTO users").
        WithArgs("alice", sqlmock.AnyArg(), "Alice", "alice@example.com", "user").
        WillReturnResult(sqlmock.NewResult(42, 1))

    id, err := repo.Create(context.Background(), "  alice  ", "secret-pw", "Alice", "alice@example.com", model.RoleUser, bcrypt.MinCost)
    require.NoError(t, err)
    assert.Equal(t, uint64(42), id)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateDuplicateLoginID(t *testing.T) {
    db, mock := newMockDB(t)
    repo := NewUserRepo(db)

    mock.ExpectExec("INSERT INTO users").
        WillReturnError(duplicateKeyErr{})

    _, err := repo.Create(context.Background(), "alice", "secret-pw", "Alice", "alice@example.com", model.RoleUser, bcrypt.MinCost)
    assert.ErrorIs(t, err, ErrUserIDExists)
}

func TestUserGetByLoginIDUnknownRoleFallsBack(t *testing.T) {
    db, mock := newMockDB(t)
    repo := NewUserRepo(db)

    now := time.Now()
    rows := sqlmock.NewRows([]string{"id", "login_id", "password_hash", "name", "email", "role", "profile_image", "created_at", "updated_at"}).
        AddRow(7, "bob", "$2a$04$hash", "Bob", "bob@example.com", "superuser", nil, now, now)
    mock.ExpectQuery("SELECT (.+) FROM users WHERE login_id=").
        WithArgs("bob").
        WillReturnRows(rows)

    u, err := repo.GetByLoginID(context.Background(), "bob")
    require.NoError(t, err)
    // A role value outside the closed set is treated as a plain user.
    assert.Equal(t, model.RoleUser, u.Role)
    assert.Empty(t, u.ProfileImage)
}

func TestUserDeleteMissingRow(t *testing.T) {
    db, mock := newMockDB(t)
    repo := NewUserRepo(db)

    mock.ExpectExec("DELETE FROM users WHERE id=").
        WithArgs(uint64(99)).
        WillReturnResult(sqlmock.NewResult(0, 0))

    err := repo.Delete(context.Background(), 99)
    assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestUserListReturnsPageAndTotal(t *testing.T) {
    db, mock := newMockDB(t)
    repo := NewUserRepo(db)

    now := time.Now()
    mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
        WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(23))
    mock.ExpectQuery("SELECT (.+) FROM users ORDER BY created_at DESC").
        WithArgs(10, 10).
        WillReturnRows(sqlmock.NewRows([]string{"id", "login_id", "password_hash", "name", "email", "role", "profile_image", "created_at", "updated_at"}).
            AddRow(1, "alice", "h", "Alice", "a@x.com", "admin", nil, now, now).
            AddRow(2, "bob", "h", "Bob", "b@x.com", "seller", "/uploads/bob.png", now, now))

    users, total, err := repo.List(context.Background(), 2, 10)
    require.NoError(t, err)
    assert.Equal(t, int64(23), total)
    require.Len(t, users, 2)
    assert.Equal(t, model.RoleAdmin, users[0].Role)
    assert.Equal(t, model.RoleSeller, users[1].Role)
    assert.Equal(t, "/uploads/bob.png", users[1].ProfileImage)
}
