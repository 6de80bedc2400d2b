// internal/storage/component_repo.go
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

const componentColumns = `id, page_id, component_type, component_data, sort_order, created_at`

func scanComponent(row rowScanner) (*domain.PageComponent, error) {
	var c domain.PageComponent
	var data []byte
	err := row.Scan(&c.ID, &c.PageID, &c.ComponentType, &data, &c.SortOrder, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.ComponentData = data
	return &c, nil
}

// ListComponentsByPage returns a page's components in render order.
// Ties on sort_order break by insertion order.
func (s *SQLiteStore) ListComponentsByPage(ctx context.Context, pageID int64) ([]domain.PageComponent, error) {
	query := `SELECT ` + componentColumns + ` FROM page_components WHERE page_id = ? ORDER BY sort_order ASC, id ASC`
	rows, err := s.db.QueryContext(ctx, query, pageID)
	if err != nil {
		customLog.Warnf("Storage: Failed to list components for page %d: %v", pageID, err)
		return nil, fmt.Errorf("database error listing components: %w", err)
	}
	defer rows.Close()

	components := make([]domain.PageComponent, 0)
	for rows.Next() {
		comp, err := scanComponent(rows)
		if err != nil {
			customLog.Warnf("Storage: Failed scanning component row: %v", err)
			return nil, fmt.Errorf("failed processing component list: %w", err)
		}
		components = append(components, *comp)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading component list: %w", err)
	}
	return components, nil
}

// GetComponentByID retrieves a single component.
func (s *SQLiteStore) GetComponentByID(ctx context.Context, id int64) (*domain.PageComponent, error) {
	query := `SELECT ` + componentColumns + ` FROM page_components WHERE id = ? LIMIT 1`
	comp, err := scanComponent(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrComponentNotFound
		}
		customLog.Warnf("Storage: Failed to find component %d: %v", id, err)
		return nil, fmt.Errorf("database error finding component: %w", err)
	}
	return comp, nil
}

// CreateComponent inserts a new component and returns the materialized row.
// A missing owner page yields ErrPageNotFound.
func (s *SQLiteStore) CreateComponent(ctx context.Context, input CreateComponentInput) (*domain.PageComponent, error) {
	insertSQL := `
	INSERT INTO page_components (page_id, component_type, component_data, sort_order, created_at)
	VALUES (?, ?, ?, ?, ?)`
	result, err := s.db.ExecContext(ctx, insertSQL,
		input.PageID, string(input.ComponentType), string(input.ComponentData), input.SortOrder, time.Now().UTC())
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrPageNotFound
		}
		customLog.Warnf("Storage: Failed to insert component for page %d: %v", input.PageID, err)
		return nil, fmt.Errorf("database error during component creation: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve component ID after creation: %w", err)
	}
	comp, err := s.GetComponentByID(ctx, id)
	if err != nil {
		customLog.Warnf("Storage: Created component %d but failed to read it back: %v", id, err)
		return nil, fmt.Errorf("failed to read back created component: %w", err)
	}
	return comp, nil
}

// UpdateComponent applies a partial update to a component's payload and/or
// sort order. Components carry no updated_at column.
func (s *SQLiteStore) UpdateComponent(ctx context.Context, id int64, input UpdateComponentInput) (*domain.PageComponent, error) {
	sets := []string{}
	args := []any{}

	if input.ComponentData != nil {
		sets = append(sets, "component_data = ?")
		args = append(args, string(input.ComponentData))
	}
	if input.SortOrder != nil {
		sets = append(sets, "sort_order = ?")
		args = append(args, *input.SortOrder)
	}

	if len(sets) == 0 {
		return s.GetComponentByID(ctx, id)
	}

	args = append(args, id)
	updateSQL := `UPDATE page_components SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	result, err := s.db.ExecContext(ctx, updateSQL, args...)
	if err != nil {
		customLog.Warnf("Storage: Failed to update component %d: %v", id, err)
		return nil, fmt.Errorf("database error during component update: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, ErrComponentNotFound
	}
	return s.GetComponentByID(ctx, id)
}

// UpdateComponentOrder sets a single component's sort_order. Sibling
// components are not reflowed; callers assign consistent order values.
func (s *SQLiteStore) UpdateComponentOrder(ctx context.Context, id int64, sortOrder int) (bool, error) {
	result, err := s.db.ExecContext(ctx, `UPDATE page_components SET sort_order = ? WHERE id = ?`, sortOrder, id)
	if err != nil {
		customLog.Warnf("Storage: Failed to reorder component %d: %v", id, err)
		return false, fmt.Errorf("database error during component reorder: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check component reorder result: %w", err)
	}
	return n > 0, nil
}

// DeleteComponent removes a component. Returns false when no row matched.
func (s *SQLiteStore) DeleteComponent(ctx context.Context, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM page_components WHERE id = ?`, id)
	if err != nil {
		customLog.Warnf("Storage: Failed to delete component %d: %v", id, err)
		return false, fmt.Errorf("database error during component deletion: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check component deletion result: %w", err)
	}
	return n > 0, nil
}
