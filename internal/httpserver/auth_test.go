package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCustomerAuth_SignupLoginMe(t *testing.T) {
	env := newTestEnv()
	env.seedStore("demo-store", "")

	rec := doJSON(t, env, http.MethodPost, "/demo-store/customers/signup", "sess-auth",
		`{"email":"user@example.com","password":"Abcdefg1","firstName":"T"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, env, http.MethodPost, "/demo-store/customers/login", "sess-auth",
		`{"email":"user@example.com","password":"Abcdefg1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: %d body=%s", rec.Code, rec.Body.String())
	}
	var loginBody struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &loginBody); err != nil || loginBody.Token == "" {
		t.Fatalf("login body: %s", rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/demo-store/customers/me", nil)
	req.Header.Set("Authorization", "Bearer "+loginBody.Token)
	me := httptest.NewRecorder()
	env.router.ServeHTTP(me, req)
	if me.Code != http.StatusOK || !strings.Contains(me.Body.String(), `"email":"user@example.com"`) {
		t.Fatalf("me: %d body=%s", me.Code, me.Body.String())
	}
}

func TestCustomerAuth_TokenScopedToStore(t *testing.T) {
	env := newTestEnv()
	env.seedStore("store-a", "")
	env.seedStore("store-b", "")

	doJSON(t, env, http.MethodPost, "/store-a/customers/signup", "s",
		`{"email":"user@example.com","password":"Abcdefg1"}`)
	rec := doJSON(t, env, http.MethodPost, "/store-a/customers/login", "s",
		`{"email":"user@example.com","password":"Abcdefg1"}`)
	var loginBody struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &loginBody); err != nil {
		t.Fatalf("login body: %s", rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/store-b/customers/me", nil)
	req.Header.Set("Authorization", "Bearer "+loginBody.Token)
	rec2 := httptest.NewRecorder()
	env.router.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 on foreign store, got %d", rec2.Code)
	}
}

func TestCustomerLogin_InvalidCredentials401(t *testing.T) {
	env := newTestEnv()
	env.seedStore("demo-store", "")

	rec := doJSON(t, env, http.MethodPost, "/demo-store/customers/login", "s",
		`{"email":"nobody@example.com","password":"whatever"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func platformToken(t *testing.T, env *testEnv) string {
	t.Helper()
	rec := doJSON(t, env, http.MethodPost, "/platform/admin/login", "",
		`{"email":"ops@shopforge.test","password":"Sup3rSecret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("platform login: %d body=%s", rec.Code, rec.Body.String())
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Token == "" {
		t.Fatalf("platform login body: %s", rec.Body.String())
	}
	return body.Token
}

func TestPlatformAdmin_LoginAndStoreStatus(t *testing.T) {
	env := newTestEnv()
	store := env.seedStore("demo-store", "")
	token := platformToken(t, env)

	req := httptest.NewRequest(http.MethodGet, "/platform/admin/stores", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"slug":"demo-store"`) {
		t.Fatalf("list stores: %d body=%s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPatch, "/platform/admin/stores/"+store.ID+"/status",
		strings.NewReader(`{"status":"suspended"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"suspended"`) {
		t.Fatalf("update status: %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestPlatformAdmin_RoutesRequireJWT(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodGet, "/platform/admin/stores", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestStoreAdmin_OwnerTokenAndSuperAdminBothAdmitted(t *testing.T) {
	env := newTestEnv()

	// Owner signs up first so the seeded store can reference the id.
	env.seedStore("owned-store", "cust-1")
	doJSON(t, env, http.MethodPost, "/owned-store/customers/signup", "s",
		`{"email":"owner@example.com","password":"Abcdefg1"}`)
	rec := doJSON(t, env, http.MethodPost, "/owned-store/customers/login", "s",
		`{"email":"owner@example.com","password":"Abcdefg1"}`)
	var loginBody struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &loginBody); err != nil {
		t.Fatalf("login body: %s", rec.Body.String())
	}

	for name, token := range map[string]string{
		"owner":       loginBody.Token,
		"super-admin": platformToken(t, env),
	} {
		req := httptest.NewRequest(http.MethodGet, "/owned-store/admin/products", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d body=%s", name, rec.Code, rec.Body.String())
		}
	}

	// A non-owner customer is rejected.
	doJSON(t, env, http.MethodPost, "/owned-store/customers/signup", "s2",
		`{"email":"other@example.com","password":"Abcdefg1"}`)
	rec = doJSON(t, env, http.MethodPost, "/owned-store/customers/login", "s2",
		`{"email":"other@example.com","password":"Abcdefg1"}`)
	if err := json.Unmarshal(rec.Body.Bytes(), &loginBody); err != nil {
		t.Fatalf("login body: %s", rec.Body.String())
	}
	req := httptest.NewRequest(http.MethodGet, "/owned-store/admin/products", nil)
	req.Header.Set("Authorization", "Bearer "+loginBody.Token)
	rec2 := httptest.NewRecorder()
	env.router.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusUnauthorized {
		t.Fatalf("non-owner: expected 401, got %d", rec2.Code)
	}
}
