// internal/storage/user_repo.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wordcross/wordcross-backend/internal/domain"
)

const adminUserColumns = `id, email, password_hash, name, is_active, created_at, updated_at`

func scanAdminUser(row rowScanner) (*domain.AdminUser, error) {
	var u domain.AdminUser
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListAdminUsers returns all admin accounts. Password hashes are never
// selected here; the returned entities carry an empty hash.
func (s *SQLiteStore) ListAdminUsers(ctx context.Context) ([]domain.AdminUser, error) {
	query := `SELECT id, email, name, is_active, created_at, updated_at FROM admin_users ORDER BY created_at DESC, id DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		customLog.Warnf("Storage: Failed to list admin users: %v", err)
		return nil, fmt.Errorf("database error listing admin users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.AdminUser, 0)
	for rows.Next() {
		var u domain.AdminUser
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			customLog.Warnf("Storage: Failed scanning admin user row: %v", err)
			return nil, fmt.Errorf("failed processing admin user list: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading admin user list: %w", err)
	}
	return users, nil
}

// GetAdminUserByID retrieves an admin account by id.
func (s *SQLiteStore) GetAdminUserByID(ctx context.Context, id int64) (*domain.AdminUser, error) {
	query := `SELECT ` + adminUserColumns + ` FROM admin_users WHERE id = ? LIMIT 1`
	user, err := scanAdminUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		customLog.Warnf("Storage: Failed to find admin user %d: %v", id, err)
		return nil, fmt.Errorf("database error finding admin user: %w", err)
	}
	return user, nil
}

// GetAdminUserByEmail retrieves an admin account by its login identity.
// Deactivated accounts are returned too; the login handler needs them to
// answer with the distinct deactivated-account error.
func (s *SQLiteStore) GetAdminUserByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	query := `SELECT ` + adminUserColumns + ` FROM admin_users WHERE email = ? LIMIT 1`
	user, err := scanAdminUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		customLog.Warnf("Storage: Failed to find admin user by email %s: %v", email, err)
		return nil, fmt.Errorf("database error finding admin user: %w", err)
	}
	return user, nil
}

// CreateAdminUser inserts a new admin account. IsActive defaults to true
// when unset. A duplicate email yields ErrEmailExists.
func (s *SQLiteStore) CreateAdminUser(ctx context.Context, input CreateAdminUserInput) (*domain.AdminUser, error) {
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	now := time.Now().UTC()
	insertSQL := `
	INSERT INTO admin_users (email, password_hash, name, is_active, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)`
	result, err := s.db.ExecContext(ctx, insertSQL, input.Email, input.PasswordHash, input.Name, isActive, now, now)
	if err != nil {
		if isUniqueViolation(err, "admin_users.email") {
			return nil, ErrEmailExists
		}
		customLog.Warnf("Storage: Failed to insert admin user %s: %v", input.Email, err)
		return nil, fmt.Errorf("database error during admin user creation: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve admin user ID after creation: %w", err)
	}
	user, err := s.GetAdminUserByID(ctx, id)
	if err != nil {
		customLog.Warnf("Storage: Created admin user %d but failed to read it back: %v", id, err)
		return nil, fmt.Errorf("failed to read back created admin user: %w", err)
	}
	return user, nil
}

// UpdateAdminUser applies a partial update (name, password hash, active flag).
func (s *SQLiteStore) UpdateAdminUser(ctx context.Context, id int64, input UpdateAdminUserInput) (*domain.AdminUser, error) {
	sets := []string{}
	args := []any{}

	if input.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *input.Name)
	}
	if input.PasswordHash != nil {
		sets = append(sets, "password_hash = ?")
		args = append(args, *input.PasswordHash)
	}
	if input.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *input.IsActive)
	}

	if len(sets) == 0 {
		return s.GetAdminUserByID(ctx, id)
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	updateSQL := `UPDATE admin_users SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	result, err := s.db.ExecContext(ctx, updateSQL, args...)
	if err != nil {
		customLog.Warnf("Storage: Failed to update admin user %d: %v", id, err)
		return nil, fmt.Errorf("database error during admin user update: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, ErrUserNotFound
	}
	return s.GetAdminUserByID(ctx, id)
}
