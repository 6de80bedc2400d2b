// api/handlers/handlers_integration_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/wordcross/wordcross-backend/api"
	"github.com/wordcross/wordcross-backend/api/models"
	"github.com/wordcross/wordcross-backend/config"
	"github.com/wordcross/wordcross-backend/internal/auth"
	"github.com/wordcross/wordcross-backend/internal/storage"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "StrongPassword123!"
)

// testStoreSetup creates a temporary SQLite-backed store for testing.
func testStoreSetup(t *testing.T) (storage.Store, *config.Config) {
	t.Helper()

	tempDir := t.TempDir()
	testCfg := &config.Config{
		ServerPort:    "0",
		Environment:   "development",
		JWTSecret:     "test_secret_key_for_integration_tests_1234567890",
		JWTExpiration: time.Minute * 5,
		DataDir:       tempDir,
		DataFile:      "test_cms.db",
		StoreBackend:  "sqlite",
		CORSOrigin:    "http://localhost:3000",
	}

	db, err := storage.ConnectDB(testCfg) // Creates tables
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	return storage.NewSQLiteStore(db), testCfg
}

// setupTestServer creates a test server with a seeded admin account.
func setupTestServer(t *testing.T) (*httptest.Server, storage.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, cfg := testStoreSetup(t)

	hash, err := auth.HashPassword(testAdminPassword)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}
	if _, err := store.CreateAdminUser(context.Background(), storage.CreateAdminUserInput{
		Email:        testAdminEmail,
		PasswordHash: hash,
		Name:         "Test Admin",
	}); err != nil {
		t.Fatalf("Failed to seed admin user: %v", err)
	}

	router := api.SetupRouter(store, cfg)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server, store
}

// login signs in as the seeded admin and returns the bearer token.
func login(t *testing.T, server *httptest.Server) string {
	t.Helper()

	body, _ := json.Marshal(models.LoginRequest{Email: testAdminEmail, Password: testAdminPassword})
	res, err := http.Post(server.URL+"/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Login request failed: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(res.Body)
		t.Fatalf("Login returned %d: %s", res.StatusCode, raw)
	}

	var loginRes models.LoginResponse
	if err := json.NewDecoder(res.Body).Decode(&loginRes); err != nil {
		t.Fatalf("Failed to decode login response: %v", err)
	}
	return loginRes.Token
}

// doJSON issues an authenticated JSON request and decodes the response into out.
func doJSON(t *testing.T, server *httptest.Server, token, method, path string, body any, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, server.URL+path, reader)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request %s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() { res.Body.Close() })

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("Failed to decode response of %s %s: %v", method, path, err)
		}
	}
	return res
}

func TestLoginEndpoint(t *testing.T) {
	server, store := setupTestServer(t)
	assert := assert.New(t)

	t.Run("Login Success", func(t *testing.T) {
		body, _ := json.Marshal(models.LoginRequest{Email: testAdminEmail, Password: testAdminPassword})
		res, err := http.Post(server.URL+"/auth/login", "application/json", bytes.NewReader(body))
		assert.NoError(err)
		defer res.Body.Close()

		assert.Equal(http.StatusOK, res.StatusCode)

		var loginRes models.LoginResponse
		assert.NoError(json.NewDecoder(res.Body).Decode(&loginRes))
		assert.True(loginRes.Success)
		assert.Equal(testAdminEmail, loginRes.User.Email)
		assert.Equal("Test Admin", loginRes.User.Name)
		assert.NotEmpty(loginRes.Token)

		var sessionCookie *http.Cookie
		for _, c := range res.Cookies() {
			if c.Name == auth.CookieName {
				sessionCookie = c
			}
		}
		if assert.NotNil(sessionCookie, "login must set the session cookie") {
			assert.True(sessionCookie.HttpOnly)
			assert.Equal(loginRes.Token, sessionCookie.Value)
		}
	})

	t.Run("Login Wrong Password", func(t *testing.T) {
		body, _ := json.Marshal(models.LoginRequest{Email: testAdminEmail, Password: "wrongPassword1"})
		res, err := http.Post(server.URL+"/auth/login", "application/json", bytes.NewReader(body))
		assert.NoError(err)
		defer res.Body.Close()

		assert.Equal(http.StatusUnauthorized, res.StatusCode)

		var resBody map[string]string
		assert.NoError(json.NewDecoder(res.Body).Decode(&resBody))
		assert.Equal("Invalid email or password", resBody["error"])
	})

	t.Run("Login Unknown Email", func(t *testing.T) {
		body, _ := json.Marshal(models.LoginRequest{Email: "nobody@example.com", Password: "whatever123"})
		res, err := http.Post(server.URL+"/auth/login", "application/json", bytes.NewReader(body))
		assert.NoError(err)
		defer res.Body.Close()

		assert.Equal(http.StatusUnauthorized, res.StatusCode)

		var resBody map[string]string
		assert.NoError(json.NewDecoder(res.Body).Decode(&resBody))
		assert.Equal("Invalid email or password", resBody["error"])
	})

	t.Run("Login Deactivated Account", func(t *testing.T) {
		user, err := store.GetAdminUserByEmail(context.Background(), testAdminEmail)
		assert.NoError(err)
		inactive := false
		_, err = store.UpdateAdminUser(context.Background(), user.ID, storage.UpdateAdminUserInput{IsActive: &inactive})
		assert.NoError(err)
		defer func() {
			active := true
			_, _ = store.UpdateAdminUser(context.Background(), user.ID, storage.UpdateAdminUserInput{IsActive: &active})
		}()

		body, _ := json.Marshal(models.LoginRequest{Email: testAdminEmail, Password: testAdminPassword})
		res, err := http.Post(server.URL+"/auth/login", "application/json", bytes.NewReader(body))
		assert.NoError(err)
		defer res.Body.Close()

		assert.Equal(http.StatusUnauthorized, res.StatusCode)

		var resBody map[string]string
		assert.NoError(json.NewDecoder(res.Body).Decode(&resBody))
		assert.Equal("Account is deactivated", resBody["error"])
	})
}

func TestAnonymousAccessRejected(t *testing.T) {
	server, _ := setupTestServer(t)
	assert := assert.New(t)

	for _, path := range []string{"/api/sites", "/api/dashboard/stats", "/api/users"} {
		res, err := http.Get(server.URL + path)
		assert.NoError(err)
		assert.Equal(http.StatusUnauthorized, res.StatusCode, "path %s", path)

		var resBody map[string]string
		assert.NoError(json.NewDecoder(res.Body).Decode(&resBody))
		assert.Equal("Authentication required", resBody["error"])
		res.Body.Close()
	}

	// The admin UI redirects anonymous visitors instead.
	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error { return http.ErrUseLastResponse },
	}
	res, err := client.Get(server.URL + "/admin/dashboard")
	assert.NoError(err)
	defer res.Body.Close()
	assert.Equal(http.StatusFound, res.StatusCode)
	assert.Equal("/auth/login", res.Header.Get("Location"))
}

func TestSiteEndpoints(t *testing.T) {
	server, _ := setupTestServer(t)
	assert := assert.New(t)
	token := login(t, server)

	var created map[string]any
	res := doJSON(t, server, token, http.MethodPost, "/api/sites", gin.H{
		"name":   "Demo",
		"domain": "demo.example.com",
	}, &created)
	assert.Equal(http.StatusCreated, res.StatusCode)
	assert.Equal("Demo", created["name"])
	siteID := int64(created["id"].(float64))

	t.Run("Duplicate Domain Conflict", func(t *testing.T) {
		res := doJSON(t, server, token, http.MethodPost, "/api/sites", gin.H{
			"name":   "Copycat",
			"domain": "demo.example.com",
		}, nil)
		assert.Equal(http.StatusConflict, res.StatusCode)
	})

	t.Run("Get And Update", func(t *testing.T) {
		var site map[string]any
		res := doJSON(t, server, token, http.MethodGet, fmt.Sprintf("/api/sites/%d", siteID), nil, &site)
		assert.Equal(http.StatusOK, res.StatusCode)
		assert.Equal("Demo", site["name"])

		var updated map[string]any
		res = doJSON(t, server, token, http.MethodPut, fmt.Sprintf("/api/sites/%d", siteID), gin.H{"name": "Renamed"}, &updated)
		assert.Equal(http.StatusOK, res.StatusCode)
		assert.Equal("Renamed", updated["name"])
	})

	t.Run("Missing Site Is 404", func(t *testing.T) {
		var resBody map[string]string
		res := doJSON(t, server, token, http.MethodGet, "/api/sites/99999", nil, &resBody)
		assert.Equal(http.StatusNotFound, res.StatusCode)
		assert.Equal("Site not found", resBody["error"])
	})

	t.Run("Validation Failure Is 400", func(t *testing.T) {
		res := doJSON(t, server, token, http.MethodPost, "/api/sites", gin.H{"domain": "no-name.example.com"}, nil)
		assert.Equal(http.StatusBadRequest, res.StatusCode)
	})

	t.Run("Bulk Delete", func(t *testing.T) {
		var siteA, siteB map[string]any
		doJSON(t, server, token, http.MethodPost, "/api/sites", gin.H{"name": "A"}, &siteA)
		doJSON(t, server, token, http.MethodPost, "/api/sites", gin.H{"name": "B"}, &siteB)

		ids := []int64{int64(siteA["id"].(float64)), int64(siteB["id"].(float64)), 99999}
		var resBody map[string]any
		res := doJSON(t, server, token, http.MethodPost, "/api/sites/bulk-delete", gin.H{"ids": ids}, &resBody)
		assert.Equal(http.StatusOK, res.StatusCode, "missing ids must not fail the bulk delete")
		assert.Equal(true, resBody["success"])

		res = doJSON(t, server, token, http.MethodGet, fmt.Sprintf("/api/sites/%v", siteA["id"]), nil, nil)
		assert.Equal(http.StatusNotFound, res.StatusCode)
	})
}

func TestPageEndpointsAndPagination(t *testing.T) {
	server, _ := setupTestServer(t)
	assert := assert.New(t)
	token := login(t, server)

	var site map[string]any
	doJSON(t, server, token, http.MethodPost, "/api/sites", gin.H{"name": "Paginated"}, &site)
	siteID := int64(site["id"].(float64))

	for i := 1; i <= 12; i++ {
		published := i%2 == 0
		res := doJSON(t, server, token, http.MethodPost, fmt.Sprintf("/api/sites/%d/pages", siteID), gin.H{
			"title":        fmt.Sprintf("Page %d", i),
			"slug":         fmt.Sprintf("page-%d", i),
			"is_published": published,
		}, nil)
		assert.Equal(http.StatusCreated, res.StatusCode)
	}

	t.Run("Pagination Shape", func(t *testing.T) {
		var list models.PageListResponse
		res := doJSON(t, server, token, http.MethodGet, fmt.Sprintf("/api/pages?siteId=%d&page=2&limit=5", siteID), nil, &list)
		assert.Equal(http.StatusOK, res.StatusCode)
		assert.Equal(12, list.Total)
		assert.Equal(2, list.Page)
		assert.Equal(5, list.Limit)
		assert.Equal(3, list.TotalPages)
		assert.Len(list.Pages, 5)
	})

	t.Run("Page Past The End Is Empty", func(t *testing.T) {
		var list models.PageListResponse
		res := doJSON(t, server, token, http.MethodGet, fmt.Sprintf("/api/pages?siteId=%d&page=9&limit=5", siteID), nil, &list)
		assert.Equal(http.StatusOK, res.StatusCode)
		assert.Len(list.Pages, 0)
		assert.Equal(12, list.Total)
	})

	t.Run("All Sites When Filter Absent", func(t *testing.T) {
		var other map[string]any
		doJSON(t, server, token, http.MethodPost, "/api/sites", gin.H{"name": "Second"}, &other)
		res := doJSON(t, server, token, http.MethodPost, fmt.Sprintf("/api/sites/%v/pages", other["id"]), gin.H{
			"title": "Elsewhere",
			"slug":  "elsewhere",
		}, nil)
		assert.Equal(http.StatusCreated, res.StatusCode)

		var list models.PageListResponse
		res = doJSON(t, server, token, http.MethodGet, "/api/pages?limit=100", nil, &list)
		assert.Equal(http.StatusOK, res.StatusCode)
		assert.Equal(13, list.Total, "listing without a site filter must span all sites")
		assert.Len(list.Pages, 13)

		siteIDs := make(map[int64]bool)
		for _, p := range list.Pages {
			siteIDs[p.SiteID] = true
		}
		assert.Len(siteIDs, 2)

		cleaned := doJSON(t, server, token, http.MethodDelete, fmt.Sprintf("/api/sites/%v", other["id"]), nil, nil)
		assert.Equal(http.StatusOK, cleaned.StatusCode)
	})

	t.Run("Published Filter", func(t *testing.T) {
		var resBody struct {
			Pages []map[string]any `json:"pages"`
		}
		res := doJSON(t, server, token, http.MethodGet, fmt.Sprintf("/api/sites/%d/pages?published=true", siteID), nil, &resBody)
		assert.Equal(http.StatusOK, res.StatusCode)
		assert.Len(resBody.Pages, 6)
	})

	t.Run("Duplicate Slug Conflict", func(t *testing.T) {
		res := doJSON(t, server, token, http.MethodPost, fmt.Sprintf("/api/sites/%d/pages", siteID), gin.H{
			"title": "Dup",
			"slug":  "page-1",
		}, nil)
		assert.Equal(http.StatusConflict, res.StatusCode)
	})

	t.Run("Invalid Slug Is 400", func(t *testing.T) {
		res := doJSON(t, server, token, http.MethodPost, fmt.Sprintf("/api/sites/%d/pages", siteID), gin.H{
			"title": "Bad",
			"slug":  "Not A Slug!",
		}, nil)
		assert.Equal(http.StatusBadRequest, res.StatusCode)
	})
}

func TestComponentEndpoints(t *testing.T) {
	server, _ := setupTestServer(t)
	assert := assert.New(t)
	token := login(t, server)

	var site map[string]any
	doJSON(t, server, token, http.MethodPost, "/api/sites", gin.H{"name": "Blocks"}, &site)
	siteID := int64(site["id"].(float64))

	var page map[string]any
	doJSON(t, server, token, http.MethodPost, fmt.Sprintf("/api/sites/%d/pages", siteID), gin.H{
		"title": "Home",
		"slug":  "home",
	}, &page)
	pageID := int64(page["id"].(float64))

	var created map[string]any
	res := doJSON(t, server, token, http.MethodPost, fmt.Sprintf("/api/pages/%d/components", pageID), gin.H{
		"component_type": "heading",
		"component_data": gin.H{"text": "Welcome", "level": 1, "textAlign": "center"},
		"sort_order":     1,
	}, &created)
	assert.Equal(http.StatusCreated, res.StatusCode)
	componentID := int64(created["id"].(float64))

	t.Run("Mismatched Payload Is 400", func(t *testing.T) {
		res := doJSON(t, server, token, http.MethodPost, fmt.Sprintf("/api/pages/%d/components", pageID), gin.H{
			"component_type": "spacer",
			"component_data": gin.H{"text": "not a spacer"},
		}, nil)
		assert.Equal(http.StatusBadRequest, res.StatusCode)
	})

	t.Run("Unknown Type Is 400", func(t *testing.T) {
		res := doJSON(t, server, token, http.MethodPost, fmt.Sprintf("/api/pages/%d/components", pageID), gin.H{
			"component_type": "carousel",
			"component_data": gin.H{},
		}, nil)
		assert.Equal(http.StatusBadRequest, res.StatusCode)
	})

	t.Run("Listing Is Ordered", func(t *testing.T) {
		doJSON(t, server, token, http.MethodPost, fmt.Sprintf("/api/pages/%d/components", pageID), gin.H{
			"component_type": "spacer",
			"component_data": gin.H{"height": 24},
			"sort_order":     0,
		}, nil)

		var resBody struct {
			Components []map[string]any `json:"components"`
		}
		res := doJSON(t, server, token, http.MethodGet, fmt.Sprintf("/api/pages/%d/components", pageID), nil, &resBody)
		assert.Equal(http.StatusOK, res.StatusCode)
		if assert.Len(resBody.Components, 2) {
			assert.Equal("spacer", resBody.Components[0]["component_type"])
			assert.Equal("heading", resBody.Components[1]["component_type"])
		}
	})

	t.Run("Reorder", func(t *testing.T) {
		var resBody map[string]any
		res := doJSON(t, server, token, http.MethodPut, fmt.Sprintf("/api/components/%d/order", componentID), gin.H{"sort_order": -1}, &resBody)
		assert.Equal(http.StatusOK, res.StatusCode)
		assert.Equal(true, resBody["success"])
	})

	t.Run("Delete", func(t *testing.T) {
		res := doJSON(t, server, token, http.MethodDelete, fmt.Sprintf("/api/components/%d", componentID), nil, nil)
		assert.Equal(http.StatusOK, res.StatusCode)

		var resBody map[string]string
		res = doJSON(t, server, token, http.MethodDelete, fmt.Sprintf("/api/components/%d", componentID), nil, &resBody)
		assert.Equal(http.StatusNotFound, res.StatusCode)
		assert.Equal("Component not found", resBody["error"])
	})
}

func TestDashboardStatsInvariant(t *testing.T) {
	server, _ := setupTestServer(t)
	assert := assert.New(t)
	token := login(t, server)

	var siteA, siteB map[string]any
	doJSON(t, server, token, http.MethodPost, "/api/sites", gin.H{"name": "Alpha"}, &siteA)
	doJSON(t, server, token, http.MethodPost, "/api/sites", gin.H{"name": "Beta"}, &siteB)

	fixtures := []struct {
		site      map[string]any
		slug      string
		published bool
	}{
		{siteA, "home", true},
		{siteA, "about", false},
		{siteA, "contact", true},
		{siteB, "home", false},
	}
	for _, f := range fixtures {
		res := doJSON(t, server, token, http.MethodPost, fmt.Sprintf("/api/sites/%v/pages", f.site["id"]), gin.H{
			"title":        f.slug,
			"slug":         f.slug,
			"is_published": f.published,
		}, nil)
		assert.Equal(http.StatusCreated, res.StatusCode)
	}

	var stats models.DashboardStatsResponse
	res := doJSON(t, server, token, http.MethodGet, "/api/dashboard/stats", nil, &stats)
	assert.Equal(http.StatusOK, res.StatusCode)
	assert.Equal(2, stats.TotalSites)
	assert.Equal(4, stats.TotalPages)
	assert.Equal(2, stats.PublishedPages)
	assert.Equal(2, stats.DraftPages)
	assert.Equal(stats.TotalPages, stats.PublishedPages+stats.DraftPages)
}

func TestLogoutClearsCookie(t *testing.T) {
	server, _ := setupTestServer(t)
	assert := assert.New(t)
	token := login(t, server)

	req, _ := http.NewRequest(http.MethodPost, server.URL+"/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := http.DefaultClient.Do(req)
	assert.NoError(err)
	defer res.Body.Close()

	assert.Equal(http.StatusOK, res.StatusCode)

	var cleared *http.Cookie
	for _, c := range res.Cookies() {
		if c.Name == auth.CookieName {
			cleared = c
		}
	}
	if assert.NotNil(cleared, "logout must reset the session cookie") {
		assert.Empty(cleared.Value)
		assert.Equal(-1, cleared.MaxAge)
	}
}

func TestUsersEndpoint(t *testing.T) {
	server, _ := setupTestServer(t)
	assert := assert.New(t)
	token := login(t, server)

	var resBody struct {
		Users []map[string]any `json:"users"`
	}
	res := doJSON(t, server, token, http.MethodGet, "/api/users", nil, &resBody)
	assert.Equal(http.StatusOK, res.StatusCode)
	if assert.Len(resBody.Users, 1) {
		assert.Equal(testAdminEmail, resBody.Users[0]["email"])
		assert.NotContains(resBody.Users[0], "password_hash")
	}
}
