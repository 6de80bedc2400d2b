// internal/storage/memory.go
package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/wordcross/wordcross-backend/internal/domain"
)

// MemStore is an in-memory Store used as a fixture backend for tests and
// local development without a database file. It mirrors SQLiteStore's
// semantics: sentinel errors, cascade deletes, per-site slug uniqueness.
type MemStore struct {
	mu sync.Mutex

	sites      map[int64]*domain.Site
	pages      map[int64]*domain.Page
	components map[int64]*domain.PageComponent
	users      map[int64]*domain.AdminUser

	nextSiteID      int64
	nextPageID      int64
	nextComponentID int64
	nextUserID      int64
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		sites:      make(map[int64]*domain.Site),
		pages:      make(map[int64]*domain.Page),
		components: make(map[int64]*domain.PageComponent),
		users:      make(map[int64]*domain.AdminUser),
	}
}

// Ping always succeeds for the in-memory backend.
func (m *MemStore) Ping(ctx context.Context) bool { return true }

func strPtrEq(a *string, b string) bool { return a != nil && *a == b }

// --- Sites ---

func (m *MemStore) ListSites(ctx context.Context) ([]domain.Site, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sites := make([]domain.Site, 0, len(m.sites))
	for _, s := range m.sites {
		sites = append(sites, *s)
	}
	// Newest first, matching the relational ordering; ids break timestamp ties.
	sort.Slice(sites, func(i, j int) bool {
		if !sites[i].CreatedAt.Equal(sites[j].CreatedAt) {
			return sites[i].CreatedAt.After(sites[j].CreatedAt)
		}
		return sites[i].ID > sites[j].ID
	})
	return sites, nil
}

func (m *MemStore) GetSiteByID(ctx context.Context, id int64) (*domain.Site, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sites[id]
	if !ok {
		return nil, ErrSiteNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *MemStore) GetSiteByDomain(ctx context.Context, siteDomain string) (*domain.Site, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sites {
		if strPtrEq(s.Domain, siteDomain) {
			copied := *s
			return &copied, nil
		}
	}
	return nil, ErrSiteNotFound
}

func (m *MemStore) CreateSite(ctx context.Context, input CreateSiteInput) (*domain.Site, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if input.Domain != nil {
		for _, s := range m.sites {
			if strPtrEq(s.Domain, *input.Domain) {
				return nil, ErrDomainExists
			}
		}
	}
	m.nextSiteID++
	now := time.Now().UTC()
	site := &domain.Site{
		ID:          m.nextSiteID,
		Name:        input.Name,
		Domain:      input.Domain,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.sites[site.ID] = site
	copied := *site
	return &copied, nil
}

func (m *MemStore) UpdateSite(ctx context.Context, id int64, input UpdateSiteInput) (*domain.Site, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sites[id]
	if !ok {
		return nil, ErrSiteNotFound
	}
	if input.Name == nil && input.Domain == nil && input.Description == nil {
		copied := *s
		return &copied, nil
	}
	if input.Domain != nil {
		for otherID, other := range m.sites {
			if otherID != id && strPtrEq(other.Domain, *input.Domain) {
				return nil, ErrDomainExists
			}
		}
	}
	if input.Name != nil {
		s.Name = *input.Name
	}
	if input.Domain != nil {
		s.Domain = input.Domain
	}
	if input.Description != nil {
		s.Description = input.Description
	}
	s.UpdatedAt = time.Now().UTC()
	copied := *s
	return &copied, nil
}

func (m *MemStore) DeleteSite(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sites[id]; !ok {
		return false, nil
	}
	delete(m.sites, id)
	// Cascade: pages of the site, then their components.
	for pageID, p := range m.pages {
		if p.SiteID != id {
			continue
		}
		delete(m.pages, pageID)
		for compID, c := range m.components {
			if c.PageID == pageID {
				delete(m.components, compID)
			}
		}
	}
	return true, nil
}

// --- Pages ---

func (m *MemStore) listPagesLocked(siteID int64, publishedOnly bool) []domain.Page {
	pages := make([]domain.Page, 0)
	for _, p := range m.pages {
		if p.SiteID != siteID {
			continue
		}
		if publishedOnly && !p.IsPublished {
			continue
		}
		pages = append(pages, *p)
	}
	sort.Slice(pages, func(i, j int) bool {
		if !pages[i].CreatedAt.Equal(pages[j].CreatedAt) {
			return pages[i].CreatedAt.After(pages[j].CreatedAt)
		}
		return pages[i].ID > pages[j].ID
	})
	return pages
}

func (m *MemStore) ListPagesBySite(ctx context.Context, siteID int64) ([]domain.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listPagesLocked(siteID, false), nil
}

func (m *MemStore) ListPublishedPagesBySite(ctx context.Context, siteID int64) ([]domain.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listPagesLocked(siteID, true), nil
}

func (m *MemStore) GetPageByID(ctx context.Context, id int64) (*domain.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pages[id]
	if !ok {
		return nil, ErrPageNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *MemStore) GetPageBySlug(ctx context.Context, siteID int64, slug string) (*domain.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.pages {
		if p.SiteID == siteID && p.Slug == slug {
			copied := *p
			return &copied, nil
		}
	}
	return nil, ErrPageNotFound
}

func (m *MemStore) CreatePage(ctx context.Context, input CreatePageInput) (*domain.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sites[input.SiteID]; !ok {
		return nil, ErrSiteNotFound
	}
	for _, p := range m.pages {
		if p.SiteID == input.SiteID && p.Slug == input.Slug {
			return nil, ErrSlugExists
		}
	}
	m.nextPageID++
	now := time.Now().UTC()
	page := &domain.Page{
		ID:              m.nextPageID,
		SiteID:          input.SiteID,
		Title:           input.Title,
		Slug:            input.Slug,
		Content:         input.Content,
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
		IsPublished:     input.IsPublished,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	m.pages[page.ID] = page
	copied := *page
	return &copied, nil
}

func (m *MemStore) UpdatePage(ctx context.Context, id int64, input UpdatePageInput) (*domain.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pages[id]
	if !ok {
		return nil, ErrPageNotFound
	}
	if input.Title == nil && input.Slug == nil && input.Content == nil &&
		input.MetaTitle == nil && input.MetaDescription == nil && input.IsPublished == nil {
		copied := *p
		return &copied, nil
	}
	if input.Slug != nil {
		for otherID, other := range m.pages {
			if otherID != id && other.SiteID == p.SiteID && other.Slug == *input.Slug {
				return nil, ErrSlugExists
			}
		}
	}
	if input.Title != nil {
		p.Title = *input.Title
	}
	if input.Slug != nil {
		p.Slug = *input.Slug
	}
	if input.Content != nil {
		p.Content = input.Content
	}
	if input.MetaTitle != nil {
		p.MetaTitle = input.MetaTitle
	}
	if input.MetaDescription != nil {
		p.MetaDescription = input.MetaDescription
	}
	if input.IsPublished != nil {
		p.IsPublished = *input.IsPublished
	}
	p.UpdatedAt = time.Now().UTC()
	copied := *p
	return &copied, nil
}

func (m *MemStore) DeletePage(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pages[id]; !ok {
		return false, nil
	}
	delete(m.pages, id)
	for compID, c := range m.components {
		if c.PageID == id {
			delete(m.components, compID)
		}
	}
	return true, nil
}

// --- Page components ---

func (m *MemStore) ListComponentsByPage(ctx context.Context, pageID int64) ([]domain.PageComponent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	components := make([]domain.PageComponent, 0)
	for _, c := range m.components {
		if c.PageID == pageID {
			components = append(components, *c)
		}
	}
	sort.Slice(components, func(i, j int) bool {
		if components[i].SortOrder != components[j].SortOrder {
			return components[i].SortOrder < components[j].SortOrder
		}
		return components[i].ID < components[j].ID
	})
	return components, nil
}

func (m *MemStore) GetComponentByID(ctx context.Context, id int64) (*domain.PageComponent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.components[id]
	if !ok {
		return nil, ErrComponentNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *MemStore) CreateComponent(ctx context.Context, input CreateComponentInput) (*domain.PageComponent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pages[input.PageID]; !ok {
		return nil, ErrPageNotFound
	}
	m.nextComponentID++
	comp := &domain.PageComponent{
		ID:            m.nextComponentID,
		PageID:        input.PageID,
		ComponentType: input.ComponentType,
		ComponentData: append([]byte(nil), input.ComponentData...),
		SortOrder:     input.SortOrder,
		CreatedAt:     time.Now().UTC(),
	}
	m.components[comp.ID] = comp
	copied := *comp
	return &copied, nil
}

func (m *MemStore) UpdateComponent(ctx context.Context, id int64, input UpdateComponentInput) (*domain.PageComponent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.components[id]
	if !ok {
		return nil, ErrComponentNotFound
	}
	if input.ComponentData != nil {
		c.ComponentData = append([]byte(nil), input.ComponentData...)
	}
	if input.SortOrder != nil {
		c.SortOrder = *input.SortOrder
	}
	copied := *c
	return &copied, nil
}

func (m *MemStore) UpdateComponentOrder(ctx context.Context, id int64, sortOrder int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.components[id]
	if !ok {
		return false, nil
	}
	c.SortOrder = sortOrder
	return true, nil
}

func (m *MemStore) DeleteComponent(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.components[id]; !ok {
		return false, nil
	}
	delete(m.components, id)
	return true, nil
}

// --- Admin users ---

func (m *MemStore) ListAdminUsers(ctx context.Context) ([]domain.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]domain.AdminUser, 0, len(m.users))
	for _, u := range m.users {
		copied := *u
		copied.PasswordHash = ""
		users = append(users, copied)
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.After(users[j].CreatedAt)
		}
		return users[i].ID > users[j].ID
	})
	return users, nil
}

func (m *MemStore) GetAdminUserByID(ctx context.Context, id int64) (*domain.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *MemStore) GetAdminUserByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MemStore) CreateAdminUser(ctx context.Context, input CreateAdminUserInput) (*domain.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == input.Email {
			return nil, ErrEmailExists
		}
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	m.nextUserID++
	now := time.Now().UTC()
	user := &domain.AdminUser{
		ID:           m.nextUserID,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		Name:         input.Name,
		IsActive:     isActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.users[user.ID] = user
	copied := *user
	return &copied, nil
}

func (m *MemStore) UpdateAdminUser(ctx context.Context, id int64, input UpdateAdminUserInput) (*domain.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	if input.Name == nil && input.PasswordHash == nil && input.IsActive == nil {
		copied := *u
		return &copied, nil
	}
	if input.Name != nil {
		u.Name = *input.Name
	}
	if input.PasswordHash != nil {
		u.PasswordHash = *input.PasswordHash
	}
	if input.IsActive != nil {
		u.IsActive = *input.IsActive
	}
	u.UpdatedAt = time.Now().UTC()
	copied := *u
	return &copied, nil
}
