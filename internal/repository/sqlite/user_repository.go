package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dcamposl/resilient-auth/internal/models"
	"github.com/dcamposl/resilient-auth/internal/repository"
)

// UserRepository is the sqlite-backed implementation of the user persistence
// port.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository over the given connection
// pool.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Save inserts the user when it has no id yet, or updates the stored row
// otherwise. The returned user carries the store-assigned id.
func (r *UserRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == 0 {
		res, err := r.db.ExecContext(ctx,
			"INSERT INTO users(name, email, password, is_admin) VALUES(?, ?, ?, ?)",
			user.Name, user.Email, user.Password, user.Admin())
		if err != nil {
			if isUniqueViolation(err) {
				return nil, repository.ErrDuplicateEmail
			}
			return nil, fmt.Errorf("inserting user: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("reading inserted user id: %w", err)
		}
		saved := *user
		saved.ID = id
		return &saved, nil
	}

	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET name = ?, email = ?, password = ?, is_admin = ? WHERE id = ?",
		user.Name, user.Email, user.Password, user.Admin(), user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return user, nil
}

// FindByID retrieves a single user by id, or nil when no row matches.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, password, is_admin FROM users WHERE id = ?", id)
	return scanUser(row)
}

// FindByEmail retrieves a single user by email, or nil when no row matches.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, password, is_admin FROM users WHERE email = ?", email)
	return scanUser(row)
}

// ExistsByEmail reports whether a user with the given email is stored.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking email existence: %w", err)
	}
	return exists, nil
}

// FindExistingIDs returns the subset of the given ids that exist in the
// store.
func (r *UserRepository) FindExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := "SELECT id FROM users WHERE id IN (" + placeholders(len(ids)) + ")"
	rows, err := r.db.QueryContext(ctx, query, idArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("querying existing ids: %w", err)
	}
	defer rows.Close()

	var existing []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		existing = append(existing, id)
	}
	return existing, rows.Err()
}

// FindAllByIDs returns the users whose ids are in the given list.
func (r *UserRepository) FindAllByIDs(ctx context.Context, ids []int64) ([]*models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := "SELECT id, name, email, password, is_admin FROM users WHERE id IN (" + placeholders(len(ids)) + ")"
	rows, err := r.db.QueryContext(ctx, query, idArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("querying users by ids: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		var isAdmin bool
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &isAdmin); err != nil {
			return nil, err
		}
		u.IsAdmin = &isAdmin
		users = append(users, &u)
	}
	return users, rows.Err()
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var isAdmin bool
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &isAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	u.IsAdmin = &isAdmin
	return &u, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func idArgs(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
