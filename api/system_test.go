package api_test

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestHealthAndVersion(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	res, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("get health: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	var health map[string]string
	if err := json.NewDecoder(res.Body).Decode(&health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health["status"] != "ok" {
		t.Fatalf("expected status ok got %q", health["status"])
	}

	res2, err := http.Get(srv.URL + "/version")
	if err != nil {
		t.Fatalf("get version: %v", err)
	}
	defer res2.Body.Close()
	var version map[string]string
	if err := json.NewDecoder(res2.Body).Decode(&version); err != nil {
		t.Fatalf("decode version: %v", err)
	}
	if version["version"] != "test" {
		t.Fatalf("expected version test got %q", version["version"])
	}
}
