package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/tysencreager/MicroMentor/api"
	dbfs "github.com/tysencreager/MicroMentor/db"
	"github.com/tysencreager/MicroMentor/internal/config"
	"github.com/tysencreager/MicroMentor/internal/db"
	"github.com/tysencreager/MicroMentor/internal/insights"
)

// setupServer starts a full server against a fresh database using mock auth,
// so tests can switch identity with the mock role cookie.
func setupServer(t *testing.T) (*httptest.Server, func()) {
	t.Helper()
	ctx := context.Background()

	d, err := db.New(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		d.Close()
		t.Fatalf("migrate: %v", err)
	}

	// no model endpoint: the engine always serves the canned fallback
	engine, err := insights.NewEngine(config.AIConfig{}, nil)
	if err != nil {
		d.Close()
		t.Fatalf("insights.NewEngine: %v", err)
	}

	cfg := &config.Config{
		AuthMode:      config.AuthModeMock,
		JWTSecret:     "testsecret",
		TokenDuration: time.Hour,
	}
	handler := api.SetupRoutes(cfg, "test", "now", d, engine)

	srv := httptest.NewServer(handler)
	return srv, func() { srv.Close(); d.Close() }
}

func newJSONRequest(t *testing.T, srv *httptest.Server, method, path string, body any) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

func execute(t *testing.T, req *http.Request, out any) *http.Response {
	t.Helper()

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	t.Cleanup(func() { res.Body.Close() })

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil && err != io.EOF {
			t.Fatalf("decode %s %s response: %v", req.Method, req.URL.Path, err)
		}
	}
	return res
}

// doJSON performs a request as the given mock role and decodes the response
// body into out when out is non-nil.
func doJSON(t *testing.T, srv *httptest.Server, method, path, role string, body any, out any) *http.Response {
	t.Helper()

	req := newJSONRequest(t, srv, method, path, body)
	if role != "" {
		req.AddCookie(&http.Cookie{Name: "mock_user", Value: role})
	}
	return execute(t, req, out)
}

// mockLogin seeds the given mock user server-side (mentor/both also get a
// default mentor profile).
func mockLogin(t *testing.T, srv *httptest.Server, role string) {
	t.Helper()
	res := doJSON(t, srv, http.MethodGet, "/api/mock-login/"+role, "", nil, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("mock login as %s: got status %d", role, res.StatusCode)
	}
}
