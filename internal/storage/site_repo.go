// internal/storage/site_repo.go
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

const siteColumns = `id, name, domain, description, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSite(row rowScanner) (*domain.Site, error) {
	var s domain.Site
	if err := row.Scan(&s.ID, &s.Name, &s.Domain, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSites returns all sites, most recently created first.
func (s *SQLiteStore) ListSites(ctx context.Context) ([]domain.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites ORDER BY created_at DESC, id DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		customLog.Warnf("Storage: Failed to list sites: %v", err)
		return nil, fmt.Errorf("database error listing sites: %w", err)
	}
	defer rows.Close()

	sites := make([]domain.Site, 0)
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			customLog.Warnf("Storage: Failed scanning site row: %v", err)
			return nil, fmt.Errorf("failed processing site list: %w", err)
		}
		sites = append(sites, *site)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading site list: %w", err)
	}
	return sites, nil
}

// GetSiteByID retrieves a single site. A missing id yields ErrSiteNotFound.
func (s *SQLiteStore) GetSiteByID(ctx context.Context, id int64) (*domain.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites WHERE id = ? LIMIT 1`
	site, err := scanSite(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSiteNotFound
		}
		customLog.Warnf("Storage: Failed to find site %d: %v", id, err)
		return nil, fmt.Errorf("database error finding site: %w", err)
	}
	return site, nil
}

// GetSiteByDomain retrieves a site by its unique domain.
func (s *SQLiteStore) GetSiteByDomain(ctx context.Context, siteDomain string) (*domain.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites WHERE domain = ? LIMIT 1`
	site, err := scanSite(s.db.QueryRowContext(ctx, query, siteDomain))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSiteNotFound
		}
		customLog.Warnf("Storage: Failed to find site by domain '%s': %v", siteDomain, err)
		return nil, fmt.Errorf("database error finding site: %w", err)
	}
	return site, nil
}

// CreateSite inserts a new site and returns the materialized row. Failing to
// read back the created row is a store contract violation, not a soft miss.
func (s *SQLiteStore) CreateSite(ctx context.Context, input CreateSiteInput) (*domain.Site, error) {
	now := time.Now().UTC()
	insertSQL := `INSERT INTO sites (name, domain, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	result, err := s.db.ExecContext(ctx, insertSQL, input.Name, input.Domain, input.Description, now, now)
	if err != nil {
		if isUniqueViolation(err, "sites.domain") {
			return nil, ErrDomainExists
		}
		customLog.Warnf("Storage: Failed to insert site '%s': %v", input.Name, err)
		return nil, fmt.Errorf("database error during site creation: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve site ID after creation: %w", err)
	}
	site, err := s.GetSiteByID(ctx, id)
	if err != nil {
		customLog.Warnf("Storage: Created site %d but failed to read it back: %v", id, err)
		return nil, fmt.Errorf("failed to read back created site: %w", err)
	}
	return site, nil
}

// UpdateSite applies a partial update. With zero set fields it is a no-op
// returning the current row; otherwise updated_at is bumped.
func (s *SQLiteStore) UpdateSite(ctx context.Context, id int64, input UpdateSiteInput) (*domain.Site, error) {
	sets := []string{}
	args := []any{}

	if input.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *input.Name)
	}
	if input.Domain != nil {
		sets = append(sets, "domain = ?")
		args = append(args, *input.Domain)
	}
	if input.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *input.Description)
	}

	if len(sets) == 0 {
		return s.GetSiteByID(ctx, id)
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	updateSQL := `UPDATE sites SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	result, err := s.db.ExecContext(ctx, updateSQL, args...)
	if err != nil {
		if isUniqueViolation(err, "sites.domain") {
			return nil, ErrDomainExists
		}
		customLog.Warnf("Storage: Failed to update site %d: %v", id, err)
		return nil, fmt.Errorf("database error during site update: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, ErrSiteNotFound
	}
	return s.GetSiteByID(ctx, id)
}

// DeleteSite removes a site; pages and their components go with it via
// cascade. Returns false when no row matched.
func (s *SQLiteStore) DeleteSite(ctx context.Context, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sites WHERE id = ?`, id)
	if err != nil {
		customLog.Warnf("Storage: Failed to delete site %d: %v", id, err)
		return false, fmt.Errorf("database error during site deletion: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check site deletion result: %w", err)
	}
	return n > 0, nil
}
