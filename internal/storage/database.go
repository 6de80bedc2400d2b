// internal/storage/database.go
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // Driver registration

	"github.com/wordcross/wordcross-backend/config"
	"github.com/wordcross/wordcross-backend/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// ConnectDB initializes the connection pool for the SQLite database and
// ensures the CMS tables ('sites', 'pages', 'page_components', 'admin_users')
// exist. Cascade deletes (site -> pages -> components) are enforced here by
// the schema, not by application logic.
func ConnectDB(cfg *config.Config) (*sql.DB, error) {
	dbPath := filepath.Join(cfg.DataDir, cfg.DataFile)
	customLog.Printf("Storage: Initializing database: %s", dbPath)

	// Ensure the data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0o750); err != nil {
		customLog.Warnf("Storage: Error creating data directory '%s': %v", cfg.DataDir, err)
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// Foreign keys must be on for cascade deletes; WAL and a busy timeout keep
	// concurrent request handling from tripping over SQLITE_BUSY.
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		customLog.Warnf("Storage: Failed to open db '%s': %v", dbPath, err)
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	// Verify connection is working
	if err = db.Ping(); err != nil {
		db.Close() // Close the connection if ping fails
		customLog.Warnf("Storage: Failed to ping db '%s': %v", dbPath, err)
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	customLog.Println("Storage: Database connection successful.")

	// --- Ensure 'sites' table exists ---
	createSitesTableSQL := `
	CREATE TABLE IF NOT EXISTS sites (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		domain TEXT UNIQUE,
		description TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);`
	if _, err = db.Exec(createSitesTableSQL); err != nil {
		db.Close()
		customLog.Warnf("Storage: Failed to create sites table: %v", err)
		return nil, fmt.Errorf("failed to ensure sites table: %w", err)
	}

	// --- Ensure 'pages' table exists ---
	createPagesTableSQL := `
	CREATE TABLE IF NOT EXISTS pages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		site_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		slug TEXT NOT NULL,
		content TEXT,
		meta_title TEXT,
		meta_description TEXT,
		is_published BOOLEAN NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		UNIQUE (site_id, slug),
		FOREIGN KEY (site_id) REFERENCES sites(id) ON DELETE CASCADE
	);`
	if _, err = db.Exec(createPagesTableSQL); err != nil {
		db.Close()
		customLog.Warnf("Storage: Failed to create pages table: %v", err)
		return nil, fmt.Errorf("failed to ensure pages table: %w", err)
	}

	// --- Ensure 'page_components' table exists ---
	createComponentsTableSQL := `
	CREATE TABLE IF NOT EXISTS page_components (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		page_id INTEGER NOT NULL,
		component_type TEXT NOT NULL,
		component_data TEXT NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		FOREIGN KEY (page_id) REFERENCES pages(id) ON DELETE CASCADE
	);`
	if _, err = db.Exec(createComponentsTableSQL); err != nil {
		db.Close()
		customLog.Warnf("Storage: Failed to create page_components table: %v", err)
		return nil, fmt.Errorf("failed to ensure page_components table: %w", err)
	}

	// --- Ensure 'admin_users' table exists ---
	createAdminUsersTableSQL := `
	CREATE TABLE IF NOT EXISTS admin_users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		name TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);`
	if _, err = db.Exec(createAdminUsersTableSQL); err != nil {
		db.Close()
		customLog.Warnf("Storage: Failed to create admin_users table: %v", err)
		return nil, fmt.Errorf("failed to ensure admin_users table: %w", err)
	}
	customLog.Println("Storage: CMS tables ensured.")

	return db, nil
}
