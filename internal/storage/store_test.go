// internal/storage/store_test.go
package storage_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/wordcross/wordcross-backend/config"
	"github.com/wordcross/wordcross-backend/internal/domain"
	"github.com/wordcross/wordcross-backend/internal/storage"
)

// newTestStores returns one instance per backend so every test in this file
// covers both implementations through the same interface.
func newTestStores(t *testing.T) map[string]storage.Store {
	t.Helper()

	tempDir := t.TempDir()
	cfg := &config.Config{
		DataDir:  tempDir,
		DataFile: "test_cms.db",
	}
	db, err := storage.ConnectDB(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	return map[string]storage.Store{
		"sqlite": storage.NewSQLiteStore(db),
		"memory": storage.NewMemStore(),
	}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }

func mustCreateSite(t *testing.T, store storage.Store, name string) *domain.Site {
	t.Helper()
	site, err := store.CreateSite(context.Background(), storage.CreateSiteInput{Name: name})
	if err != nil {
		t.Fatalf("CreateSite(%q) failed: %v", name, err)
	}
	return site
}

func mustCreatePage(t *testing.T, store storage.Store, siteID int64, title, slug string, published bool) *domain.Page {
	t.Helper()
	page, err := store.CreatePage(context.Background(), storage.CreatePageInput{
		SiteID:      siteID,
		Title:       title,
		Slug:        slug,
		IsPublished: published,
	})
	if err != nil {
		t.Fatalf("CreatePage(%q) failed: %v", slug, err)
	}
	return page
}

func TestSiteCRUD(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			site, err := store.CreateSite(ctx, storage.CreateSiteInput{
				Name:   "Demo",
				Domain: strPtr("demo.example.com"),
			})
			if err != nil {
				t.Fatalf("CreateSite failed: %v", err)
			}
			if site.ID == 0 {
				t.Fatal("created site has zero id")
			}
			if site.Domain == nil || *site.Domain != "demo.example.com" {
				t.Errorf("Domain not persisted: %v", site.Domain)
			}

			got, err := store.GetSiteByID(ctx, site.ID)
			if err != nil {
				t.Fatalf("GetSiteByID failed: %v", err)
			}
			if got.Name != "Demo" {
				t.Errorf("Name = %q, want Demo", got.Name)
			}

			byDomain, err := store.GetSiteByDomain(ctx, "demo.example.com")
			if err != nil {
				t.Fatalf("GetSiteByDomain failed: %v", err)
			}
			if byDomain.ID != site.ID {
				t.Errorf("GetSiteByDomain id = %d, want %d", byDomain.ID, site.ID)
			}

			updated, err := store.UpdateSite(ctx, site.ID, storage.UpdateSiteInput{Name: strPtr("Renamed")})
			if err != nil {
				t.Fatalf("UpdateSite failed: %v", err)
			}
			if updated.Name != "Renamed" {
				t.Errorf("updated Name = %q, want Renamed", updated.Name)
			}

			deleted, err := store.DeleteSite(ctx, site.ID)
			if err != nil {
				t.Fatalf("DeleteSite failed: %v", err)
			}
			if !deleted {
				t.Error("DeleteSite = false, want true")
			}

			if _, err := store.GetSiteByID(ctx, site.ID); !errors.Is(err, storage.ErrSiteNotFound) {
				t.Errorf("after delete, GetSiteByID error = %v, want ErrSiteNotFound", err)
			}
		})
	}
}

func TestSiteNotFoundAndDuplicateDomain(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := store.GetSiteByID(ctx, 9999); !errors.Is(err, storage.ErrSiteNotFound) {
				t.Errorf("GetSiteByID(9999) error = %v, want ErrSiteNotFound", err)
			}
			if _, err := store.UpdateSite(ctx, 9999, storage.UpdateSiteInput{Name: strPtr("x")}); !errors.Is(err, storage.ErrSiteNotFound) {
				t.Errorf("UpdateSite(9999) error = %v, want ErrSiteNotFound", err)
			}
			if deleted, err := store.DeleteSite(ctx, 9999); err != nil || deleted {
				t.Errorf("DeleteSite(9999) = (%v, %v), want (false, nil)", deleted, err)
			}

			if _, err := store.CreateSite(ctx, storage.CreateSiteInput{Name: "A", Domain: strPtr("taken.example.com")}); err != nil {
				t.Fatalf("CreateSite failed: %v", err)
			}
			_, err := store.CreateSite(ctx, storage.CreateSiteInput{Name: "B", Domain: strPtr("taken.example.com")})
			if !errors.Is(err, storage.ErrDomainExists) {
				t.Errorf("duplicate domain error = %v, want ErrDomainExists", err)
			}
		})
	}
}

func TestEmptySiteUpdateIsNoOp(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			site := mustCreateSite(t, store, "Untouched")

			got, err := store.UpdateSite(ctx, site.ID, storage.UpdateSiteInput{})
			if err != nil {
				t.Fatalf("empty UpdateSite failed: %v", err)
			}
			if !got.UpdatedAt.Equal(site.UpdatedAt) {
				t.Errorf("empty update bumped updated_at: %v -> %v", site.UpdatedAt, got.UpdatedAt)
			}
			if got.Name != site.Name {
				t.Errorf("empty update changed name: %q -> %q", site.Name, got.Name)
			}
		})
	}
}

func TestPageSlugUniquenessScopedPerSite(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			siteA := mustCreateSite(t, store, "A")
			siteB := mustCreateSite(t, store, "B")

			mustCreatePage(t, store, siteA.ID, "Home", "home", true)

			// Same slug on the same site is rejected.
			_, err := store.CreatePage(ctx, storage.CreatePageInput{SiteID: siteA.ID, Title: "Again", Slug: "home"})
			if !errors.Is(err, storage.ErrSlugExists) {
				t.Errorf("duplicate slug on same site: error = %v, want ErrSlugExists", err)
			}

			// Same slug on another site succeeds.
			if _, err := store.CreatePage(ctx, storage.CreatePageInput{SiteID: siteB.ID, Title: "Home", Slug: "home"}); err != nil {
				t.Errorf("same slug on different site should succeed, got %v", err)
			}

			// A page for a missing site is rejected outright.
			if _, err := store.CreatePage(ctx, storage.CreatePageInput{SiteID: 9999, Title: "X", Slug: "x"}); !errors.Is(err, storage.ErrSiteNotFound) {
				t.Errorf("page on missing site: error = %v, want ErrSiteNotFound", err)
			}
		})
	}
}

func TestPageListingAndLookup(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			site := mustCreateSite(t, store, "Listing")

			mustCreatePage(t, store, site.ID, "Home", "home", true)
			mustCreatePage(t, store, site.ID, "About", "about", false)
			mustCreatePage(t, store, site.ID, "Contact", "contact", true)

			all, err := store.ListPagesBySite(ctx, site.ID)
			if err != nil {
				t.Fatalf("ListPagesBySite failed: %v", err)
			}
			if len(all) != 3 {
				t.Fatalf("ListPagesBySite returned %d pages, want 3", len(all))
			}

			published, err := store.ListPublishedPagesBySite(ctx, site.ID)
			if err != nil {
				t.Fatalf("ListPublishedPagesBySite failed: %v", err)
			}
			if len(published) != 2 {
				t.Fatalf("ListPublishedPagesBySite returned %d pages, want 2", len(published))
			}
			for _, p := range published {
				if !p.IsPublished {
					t.Errorf("unpublished page %q in published listing", p.Slug)
				}
			}

			bySlug, err := store.GetPageBySlug(ctx, site.ID, "about")
			if err != nil {
				t.Fatalf("GetPageBySlug failed: %v", err)
			}
			if bySlug.Title != "About" {
				t.Errorf("GetPageBySlug title = %q, want About", bySlug.Title)
			}

			if _, err := store.GetPageBySlug(ctx, site.ID, "missing"); !errors.Is(err, storage.ErrPageNotFound) {
				t.Errorf("GetPageBySlug(missing) error = %v, want ErrPageNotFound", err)
			}
		})
	}
}

func TestPagePartialUpdate(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			site := mustCreateSite(t, store, "Partial")
			page := mustCreatePage(t, store, site.ID, "Draft", "draft", false)

			updated, err := store.UpdatePage(ctx, page.ID, storage.UpdatePageInput{
				IsPublished: boolPtr(true),
				MetaTitle:   strPtr("Draft | Partial"),
			})
			if err != nil {
				t.Fatalf("UpdatePage failed: %v", err)
			}
			if !updated.IsPublished {
				t.Error("IsPublished not updated")
			}
			if updated.MetaTitle == nil || *updated.MetaTitle != "Draft | Partial" {
				t.Errorf("MetaTitle not updated: %v", updated.MetaTitle)
			}
			if updated.Title != "Draft" {
				t.Errorf("untouched Title changed: %q", updated.Title)
			}
			if updated.Slug != "draft" {
				t.Errorf("untouched Slug changed: %q", updated.Slug)
			}
		})
	}
}

func TestComponentOrderingAndCRUD(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			site := mustCreateSite(t, store, "Components")
			page := mustCreatePage(t, store, site.ID, "Home", "home", true)

			spacer := json.RawMessage(`{"height":32}`)
			heading := json.RawMessage(`{"text":"Hi","level":1,"textAlign":"left"}`)

			// Insert out of order plus a sort_order tie.
			c1, err := store.CreateComponent(ctx, storage.CreateComponentInput{
				PageID: page.ID, ComponentType: domain.ComponentSpacer, ComponentData: spacer, SortOrder: 2,
			})
			if err != nil {
				t.Fatalf("CreateComponent failed: %v", err)
			}
			c2, err := store.CreateComponent(ctx, storage.CreateComponentInput{
				PageID: page.ID, ComponentType: domain.ComponentHeading, ComponentData: heading, SortOrder: 0,
			})
			if err != nil {
				t.Fatalf("CreateComponent failed: %v", err)
			}
			c3, err := store.CreateComponent(ctx, storage.CreateComponentInput{
				PageID: page.ID, ComponentType: domain.ComponentSpacer, ComponentData: spacer, SortOrder: 2,
			})
			if err != nil {
				t.Fatalf("CreateComponent failed: %v", err)
			}

			list, err := store.ListComponentsByPage(ctx, page.ID)
			if err != nil {
				t.Fatalf("ListComponentsByPage failed: %v", err)
			}
			if len(list) != 3 {
				t.Fatalf("listed %d components, want 3", len(list))
			}
			// sort_order ascending, ties by insertion order.
			wantOrder := []int64{c2.ID, c1.ID, c3.ID}
			for i, want := range wantOrder {
				if list[i].ID != want {
					t.Errorf("position %d: id = %d, want %d", i, list[i].ID, want)
				}
			}

			// Reorder one component and confirm the listing follows.
			if ok, err := store.UpdateComponentOrder(ctx, c2.ID, 5); err != nil || !ok {
				t.Fatalf("UpdateComponentOrder = (%v, %v), want (true, nil)", ok, err)
			}
			list, err = store.ListComponentsByPage(ctx, page.ID)
			if err != nil {
				t.Fatalf("ListComponentsByPage failed: %v", err)
			}
			if list[len(list)-1].ID != c2.ID {
				t.Errorf("reordered component not last: got id %d", list[len(list)-1].ID)
			}

			// Payload update keeps the type.
			updated, err := store.UpdateComponent(ctx, c1.ID, storage.UpdateComponentInput{
				ComponentData: json.RawMessage(`{"height":64}`),
				SortOrder:     intPtr(1),
			})
			if err != nil {
				t.Fatalf("UpdateComponent failed: %v", err)
			}
			if updated.ComponentType != domain.ComponentSpacer {
				t.Errorf("ComponentType changed: %q", updated.ComponentType)
			}
			if updated.SortOrder != 1 {
				t.Errorf("SortOrder = %d, want 1", updated.SortOrder)
			}

			if deleted, err := store.DeleteComponent(ctx, c3.ID); err != nil || !deleted {
				t.Fatalf("DeleteComponent = (%v, %v), want (true, nil)", deleted, err)
			}
			if _, err := store.GetComponentByID(ctx, c3.ID); !errors.Is(err, storage.ErrComponentNotFound) {
				t.Errorf("after delete, GetComponentByID error = %v, want ErrComponentNotFound", err)
			}

			// Components must land on an existing page.
			_, err = store.CreateComponent(ctx, storage.CreateComponentInput{
				PageID: 9999, ComponentType: domain.ComponentSpacer, ComponentData: spacer,
			})
			if !errors.Is(err, storage.ErrPageNotFound) {
				t.Errorf("component on missing page: error = %v, want ErrPageNotFound", err)
			}
		})
	}
}

func TestDeleteSiteCascades(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			site := mustCreateSite(t, store, "Doomed")
			page := mustCreatePage(t, store, site.ID, "Home", "home", true)
			component, err := store.CreateComponent(ctx, storage.CreateComponentInput{
				PageID:        page.ID,
				ComponentType: domain.ComponentSpacer,
				ComponentData: json.RawMessage(`{"height":16}`),
			})
			if err != nil {
				t.Fatalf("CreateComponent failed: %v", err)
			}

			if deleted, err := store.DeleteSite(ctx, site.ID); err != nil || !deleted {
				t.Fatalf("DeleteSite = (%v, %v), want (true, nil)", deleted, err)
			}

			if _, err := store.GetPageByID(ctx, page.ID); !errors.Is(err, storage.ErrPageNotFound) {
				t.Errorf("page survived site deletion: error = %v, want ErrPageNotFound", err)
			}
			if _, err := store.GetComponentByID(ctx, component.ID); !errors.Is(err, storage.ErrComponentNotFound) {
				t.Errorf("component survived site deletion: error = %v, want ErrComponentNotFound", err)
			}
		})
	}
}

func TestAdminUserStore(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			user, err := store.CreateAdminUser(ctx, storage.CreateAdminUserInput{
				Email:        "admin@example.com",
				PasswordHash: "$2a$12$fakefakefakefakefakefakefakefakefakefakefakefakefakef",
				Name:         "Admin",
			})
			if err != nil {
				t.Fatalf("CreateAdminUser failed: %v", err)
			}
			if !user.IsActive {
				t.Error("new admin should default to active")
			}

			if _, err := store.CreateAdminUser(ctx, storage.CreateAdminUserInput{
				Email:        "admin@example.com",
				PasswordHash: "hash",
				Name:         "Other",
			}); !errors.Is(err, storage.ErrEmailExists) {
				t.Errorf("duplicate email error = %v, want ErrEmailExists", err)
			}

			// Deactivated accounts still come back from the email lookup so the
			// login path can answer with its dedicated message.
			if _, err := store.UpdateAdminUser(ctx, user.ID, storage.UpdateAdminUserInput{IsActive: boolPtr(false)}); err != nil {
				t.Fatalf("UpdateAdminUser failed: %v", err)
			}
			found, err := store.GetAdminUserByEmail(ctx, "admin@example.com")
			if err != nil {
				t.Fatalf("GetAdminUserByEmail failed: %v", err)
			}
			if found.IsActive {
				t.Error("deactivation not persisted")
			}

			users, err := store.ListAdminUsers(ctx)
			if err != nil {
				t.Fatalf("ListAdminUsers failed: %v", err)
			}
			if len(users) != 1 {
				t.Fatalf("ListAdminUsers returned %d users, want 1", len(users))
			}
			if users[0].PasswordHash != "" {
				t.Error("ListAdminUsers leaked a password hash")
			}

			if _, err := store.GetAdminUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, storage.ErrUserNotFound) {
				t.Errorf("missing email error = %v, want ErrUserNotFound", err)
			}
		})
	}
}

func TestListingsAreNewestFirst(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			first := mustCreateSite(t, store, "First")
			second := mustCreateSite(t, store, "Second")
			third := mustCreateSite(t, store, "Third")

			sites, err := store.ListSites(ctx)
			if err != nil {
				t.Fatalf("ListSites failed: %v", err)
			}
			if len(sites) != 3 {
				t.Fatalf("ListSites returned %d sites, want 3", len(sites))
			}
			for i, want := range []int64{third.ID, second.ID, first.ID} {
				if sites[i].ID != want {
					t.Errorf("position %d: site id = %d, want %d", i, sites[i].ID, want)
				}
			}

			older := mustCreatePage(t, store, first.ID, "Older", "older", false)
			newer := mustCreatePage(t, store, first.ID, "Newer", "newer", false)

			pages, err := store.ListPagesBySite(ctx, first.ID)
			if err != nil {
				t.Fatalf("ListPagesBySite failed: %v", err)
			}
			if len(pages) != 2 {
				t.Fatalf("ListPagesBySite returned %d pages, want 2", len(pages))
			}
			if pages[0].ID != newer.ID || pages[1].ID != older.ID {
				t.Errorf("page order = [%d %d], want [%d %d]", pages[0].ID, pages[1].ID, newer.ID, older.ID)
			}
		})
	}
}

func TestPing(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			if !store.Ping(context.Background()) {
				t.Error("Ping = false for a healthy store")
			}
		})
	}
}
