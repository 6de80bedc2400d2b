// internal/storage/store.go
package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/wordcross/wordcross-backend/internal/domain"
)

// Specific errors surfaced by store implementations. Unique-constraint
// violations get their own sentinels so handlers can answer 409 instead of a
// generic failure.
var (
	ErrSiteNotFound      = errors.New("site not found")
	ErrPageNotFound      = errors.New("page not found")
	ErrComponentNotFound = errors.New("component not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrDomainExists      = errors.New("domain already in use by another site")
	ErrSlugExists        = errors.New("slug already in use on this site")
	ErrEmailExists       = errors.New("email already exists")
)

// --- Input shapes ---
// Update inputs use pointer fields: nil means "leave untouched". An update
// with zero set fields is a no-op that returns the current row.

type CreateSiteInput struct {
	Name        string
	Domain      *string
	Description *string
}

type UpdateSiteInput struct {
	Name        *string
	Domain      *string
	Description *string
}

type CreatePageInput struct {
	SiteID          int64
	Title           string
	Slug            string
	Content         *string
	MetaTitle       *string
	MetaDescription *string
	IsPublished     bool
}

type UpdatePageInput struct {
	Title           *string
	Slug            *string
	Content         *string
	MetaTitle       *string
	MetaDescription *string
	IsPublished     *bool
}

type CreateComponentInput struct {
	PageID        int64
	ComponentType domain.ComponentType
	ComponentData json.RawMessage
	SortOrder     int
}

type UpdateComponentInput struct {
	ComponentData json.RawMessage // nil leaves the payload untouched
	SortOrder     *int
}

type CreateAdminUserInput struct {
	Email        string
	PasswordHash string
	Name         string
	IsActive     *bool // nil defaults to true
}

type UpdateAdminUserInput struct {
	Name         *string
	PasswordHash *string
	IsActive     *bool
}

// Store is the persistence gateway over sites, pages, components and admin
// users. Two implementations exist: SQLiteStore (the real relational store)
// and MemStore (an in-memory fixture store), selected at startup.
type Store interface {
	// Sites
	ListSites(ctx context.Context) ([]domain.Site, error)
	GetSiteByID(ctx context.Context, id int64) (*domain.Site, error)
	GetSiteByDomain(ctx context.Context, siteDomain string) (*domain.Site, error)
	CreateSite(ctx context.Context, input CreateSiteInput) (*domain.Site, error)
	UpdateSite(ctx context.Context, id int64, input UpdateSiteInput) (*domain.Site, error)
	DeleteSite(ctx context.Context, id int64) (bool, error)

	// Pages
	ListPagesBySite(ctx context.Context, siteID int64) ([]domain.Page, error)
	ListPublishedPagesBySite(ctx context.Context, siteID int64) ([]domain.Page, error)
	GetPageByID(ctx context.Context, id int64) (*domain.Page, error)
	GetPageBySlug(ctx context.Context, siteID int64, slug string) (*domain.Page, error)
	CreatePage(ctx context.Context, input CreatePageInput) (*domain.Page, error)
	UpdatePage(ctx context.Context, id int64, input UpdatePageInput) (*domain.Page, error)
	DeletePage(ctx context.Context, id int64) (bool, error)

	// Page components
	ListComponentsByPage(ctx context.Context, pageID int64) ([]domain.PageComponent, error)
	GetComponentByID(ctx context.Context, id int64) (*domain.PageComponent, error)
	CreateComponent(ctx context.Context, input CreateComponentInput) (*domain.PageComponent, error)
	UpdateComponent(ctx context.Context, id int64, input UpdateComponentInput) (*domain.PageComponent, error)
	UpdateComponentOrder(ctx context.Context, id int64, sortOrder int) (bool, error)
	DeleteComponent(ctx context.Context, id int64) (bool, error)

	// Admin users
	ListAdminUsers(ctx context.Context) ([]domain.AdminUser, error)
	GetAdminUserByID(ctx context.Context, id int64) (*domain.AdminUser, error)
	GetAdminUserByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	CreateAdminUser(ctx context.Context, input CreateAdminUserInput) (*domain.AdminUser, error)
	UpdateAdminUser(ctx context.Context, id int64, input UpdateAdminUserInput) (*domain.AdminUser, error)

	// Ping reports store reachability; any underlying failure yields false.
	Ping(ctx context.Context) bool
}
