// internal/storage/page_repo.go
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

const pageColumns = `id, site_id, title, slug, content, meta_title, meta_description, is_published, created_at, updated_at`

func scanPage(row rowScanner) (*domain.Page, error) {
	var p domain.Page
	err := row.Scan(&p.ID, &p.SiteID, &p.Title, &p.Slug, &p.Content,
		&p.MetaTitle, &p.MetaDescription, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SQLiteStore) queryPages(ctx context.Context, query string, args ...any) ([]domain.Page, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		customLog.Warnf("Storage: Failed to list pages: %v", err)
		return nil, fmt.Errorf("database error listing pages: %w", err)
	}
	defer rows.Close()

	pages := make([]domain.Page, 0)
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			customLog.Warnf("Storage: Failed scanning page row: %v", err)
			return nil, fmt.Errorf("failed processing page list: %w", err)
		}
		pages = append(pages, *page)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading page list: %w", err)
	}
	return pages, nil
}

// ListPagesBySite returns all pages of a site, most recently created first.
func (s *SQLiteStore) ListPagesBySite(ctx context.Context, siteID int64) ([]domain.Page, error) {
	query := `SELECT ` + pageColumns + ` FROM pages WHERE site_id = ? ORDER BY created_at DESC, id DESC`
	return s.queryPages(ctx, query, siteID)
}

// ListPublishedPagesBySite returns only the published pages of a site.
func (s *SQLiteStore) ListPublishedPagesBySite(ctx context.Context, siteID int64) ([]domain.Page, error) {
	query := `SELECT ` + pageColumns + ` FROM pages WHERE site_id = ? AND is_published = 1 ORDER BY created_at DESC, id DESC`
	return s.queryPages(ctx, query, siteID)
}

// GetPageByID retrieves a single page. A missing id yields ErrPageNotFound.
func (s *SQLiteStore) GetPageByID(ctx context.Context, id int64) (*domain.Page, error) {
	query := `SELECT ` + pageColumns + ` FROM pages WHERE id = ? LIMIT 1`
	page, err := scanPage(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPageNotFound
		}
		customLog.Warnf("Storage: Failed to find page %d: %v", id, err)
		return nil, fmt.Errorf("database error finding page: %w", err)
	}
	return page, nil
}

// GetPageBySlug retrieves a page by its per-site unique (site_id, slug) key.
func (s *SQLiteStore) GetPageBySlug(ctx context.Context, siteID int64, slug string) (*domain.Page, error) {
	query := `SELECT ` + pageColumns + ` FROM pages WHERE site_id = ? AND slug = ? LIMIT 1`
	page, err := scanPage(s.db.QueryRowContext(ctx, query, siteID, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPageNotFound
		}
		customLog.Warnf("Storage: Failed to find page '%s' for site %d: %v", slug, siteID, err)
		return nil, fmt.Errorf("database error finding page: %w", err)
	}
	return page, nil
}

// CreatePage inserts a new page and returns the materialized row. A slug
// already used on the same site yields ErrSlugExists; a missing owner site
// yields ErrSiteNotFound.
func (s *SQLiteStore) CreatePage(ctx context.Context, input CreatePageInput) (*domain.Page, error) {
	now := time.Now().UTC()
	insertSQL := `
	INSERT INTO pages (site_id, title, slug, content, meta_title, meta_description, is_published, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := s.db.ExecContext(ctx, insertSQL,
		input.SiteID, input.Title, input.Slug, input.Content,
		input.MetaTitle, input.MetaDescription, input.IsPublished, now, now)
	if err != nil {
		if isUniqueViolation(err, "pages.site_id, pages.slug") {
			return nil, ErrSlugExists
		}
		if isForeignKeyViolation(err) {
			return nil, ErrSiteNotFound
		}
		customLog.Warnf("Storage: Failed to insert page '%s' for site %d: %v", input.Slug, input.SiteID, err)
		return nil, fmt.Errorf("database error during page creation: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve page ID after creation: %w", err)
	}
	page, err := s.GetPageByID(ctx, id)
	if err != nil {
		customLog.Warnf("Storage: Created page %d but failed to read it back: %v", id, err)
		return nil, fmt.Errorf("failed to read back created page: %w", err)
	}
	return page, nil
}

// UpdatePage applies a partial update with the same semantics as UpdateSite.
func (s *SQLiteStore) UpdatePage(ctx context.Context, id int64, input UpdatePageInput) (*domain.Page, error) {
	sets := []string{}
	args := []any{}

	if input.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *input.Title)
	}
	if input.Slug != nil {
		sets = append(sets, "slug = ?")
		args = append(args, *input.Slug)
	}
	if input.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *input.Content)
	}
	if input.MetaTitle != nil {
		sets = append(sets, "meta_title = ?")
		args = append(args, *input.MetaTitle)
	}
	if input.MetaDescription != nil {
		sets = append(sets, "meta_description = ?")
		args = append(args, *input.MetaDescription)
	}
	if input.IsPublished != nil {
		sets = append(sets, "is_published = ?")
		args = append(args, *input.IsPublished)
	}

	if len(sets) == 0 {
		return s.GetPageByID(ctx, id)
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	updateSQL := `UPDATE pages SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	result, err := s.db.ExecContext(ctx, updateSQL, args...)
	if err != nil {
		if isUniqueViolation(err, "pages.site_id, pages.slug") {
			return nil, ErrSlugExists
		}
		customLog.Warnf("Storage: Failed to update page %d: %v", id, err)
		return nil, fmt.Errorf("database error during page update: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, ErrPageNotFound
	}
	return s.GetPageByID(ctx, id)
}

// DeletePage removes a page and, via cascade, its components. Returns false
// when no row matched.
func (s *SQLiteStore) DeletePage(ctx context.Context, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM pages WHERE id = ?`, id)
	if err != nil {
		customLog.Warnf("Storage: Failed to delete page %d: %v", id, err)
		return false, fmt.Errorf("database error during page deletion: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check page deletion result: %w", err)
	}
	return n > 0, nil
}
