package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/stayplan/stayplan-server/internal/model"
	"github.com/stayplan/stayplan-server/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// ErrUserIDExists is returned when a signup collides with an existing
// login id. The users.login_id column carries a unique constraint, so
// concurrent signups with the same id cannot both succeed; the loser
// sees this error instead of raceable check-then-insert behavior.
var ErrUserIDExists = errors.New("user id already exists")

const userColumns = "id,login_id,password_hash,name,email,role,profile_image,created_at,updated_at"

// Create inserts a user and returns its ID. The password is hashed
// here so plain text never crosses the repository boundary.
func (r *UserRepo) Create(ctx context.Context, loginID, password, name, email string, role model.Role, cost int) (uint64, error) {
	loginID = strings.TrimSpace(loginID)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (login_id, password_hash, name, email, role) VALUES (?,?,?,?,?)",
		loginID, hash, name, email, role.String())
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUserIDExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByLoginID fetches a user by login id.
func (r *UserRepo) GetByLoginID(ctx context.Context, loginID string) (model.User, error) {
	loginID = strings.TrimSpace(loginID)
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE login_id=? LIMIT 1", loginID))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	var u model.User
	var role string
	var img sql.NullString
	err := row.Scan(&u.ID, &u.LoginID, &u.PasswordHash, &u.Name, &u.Email, &role, &img, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return u, err
	}
	if parsed, perr := model.ParseRole(role); perr == nil {
		u.Role = parsed
	} else {
		u.Role = model.RoleUser
	}
	if img.Valid {
		u.ProfileImage = img.String
	}
	return u, nil
}

// UpdateProfile changes the display name and email of a user.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, name, email string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, email=? WHERE id=?", name, email, id)
	return err
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=? WHERE id=?", hash, id)
	return err
}

// UpdateProfileImage stores the relative path of an uploaded avatar.
func (r *UserRepo) UpdateProfileImage(ctx context.Context, id uint64, path string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET profile_image=? WHERE id=?", path, id)
	return err
}

// Delete removes a user row entirely.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns a page of users ordered by creation time (newest first)
// together with the total row count for pagination controls.
func (r *UserRepo) List(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	var total int64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		var role string
		var img sql.NullString
		if err := rows.Scan(&u.ID, &u.LoginID, &u.PasswordHash, &u.Name, &u.Email, &role, &img, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, err
		}
		if parsed, perr := model.ParseRole(role); perr == nil {
			u.Role = parsed
		} else {
			u.Role = model.RoleUser
		}
		if img.Valid {
			u.ProfileImage = img.String
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// AdminUpdate lets an admin change a user's name, email and role.
func (r *UserRepo) AdminUpdate(ctx context.Context, id uint64, name, email string, role model.Role) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, email=?, role=? WHERE id=?",
		name, email, role.String(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
