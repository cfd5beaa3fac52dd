package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/codeshot/gist"
)

type stubRenderer struct {
	err    error
	source string
	hint   string
}

func (r *stubRenderer) RenderCode(_ context.Context, source, hint string) ([]byte, error) {
	r.source, r.hint = source, hint
	if r.err != nil {
		return nil, r.err
	}
	return []byte("\x89PNG"), nil
}

func newTestServer(t *testing.T, r *stubRenderer) (*httptest.Server, *gist.MemoryStore) {
	t.Helper()
	store := gist.NewMemoryStore()
	srv := httptest.NewServer(New(r, store, Config{
		MaxSourceBytes: 16,
		PublicURL:      "https://example.org",
	}))
	t.Cleanup(srv.Close)
	return srv, store
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t, &stubRenderer{})
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("GET /healthz = %d %q", resp.StatusCode, body)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		err        error
		wantStatus int
		wantHint   string
		wantSource string
	}{
		{"lang param", "/render?lang=go", "x := 1", nil, http.StatusOK, "go", "x := 1"},
		{"prefix", "/render", "py: print(1)", nil, http.StatusOK, "py", " print(1)"},
		{"lang param wins", "/render?lang=", "py: x", nil, http.StatusOK, "", "py: x"},
		{"too large", "/render?lang=go", strings.Repeat("x", 17), nil, http.StatusRequestEntityTooLarge, "", ""},
		{"too large with prefix", "/render", "py:" + strings.Repeat("x", 40), nil, http.StatusRequestEntityTooLarge, "", ""},
		{"at limit with prefix", "/render", "py:" + strings.Repeat("x", 13), nil, http.StatusOK, "py", strings.Repeat("x", 13)},
		{"render error", "/render", "x", errors.New("boom"), http.StatusInternalServerError, "", "x"},
		{"busy", "/render", "x", context.DeadlineExceeded, http.StatusServiceUnavailable, "", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &stubRenderer{err: tt.err}
			srv, _ := newTestServer(t, r)
			resp, err := http.Post(srv.URL+tt.path, "text/plain", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
					t.Errorf("Content-Type = %q", ct)
				}
				if r.hint != tt.wantHint || r.source != tt.wantSource {
					t.Errorf("rendered (%q, %q), want (%q, %q)", r.source, r.hint, tt.wantSource, tt.wantHint)
				}
				return
			}
			var e map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e["error"] == "" {
				t.Errorf("error body = %v, %v", e, err)
			}
		})
	}
}

func TestGist(t *testing.T) {
	srv, store := newTestServer(t, &stubRenderer{})
	id := gist.NewID()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	err := store.Put(context.Background(), &gist.Gist{
		ID: id, Source: "x", Hint: "go", Syntax: "Go", PNG: []byte("img"), CreatedAt: created,
	})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("png", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/gists/" + id + ".png")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK || string(body) != "img" {
			t.Errorf("GET png = %d %q", resp.StatusCode, body)
		}
		if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
			t.Errorf("Content-Type = %q", ct)
		}
	})

	t.Run("metadata", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/gists/" + id)
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		var got gistJSON
		if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
			t.Fatal(err)
		}
		if !got.CreatedAt.Equal(created) {
			t.Errorf("created_at = %v, want %v", got.CreatedAt, created)
		}
		got.CreatedAt = time.Time{}
		want := gistJSON{
			ID: id, Hint: "go", Syntax: "Go", Source: "x",
			ImageURL: "https://example.org/gists/" + id + ".png",
		}
		if got != want {
			t.Errorf("metadata = %+v, want %+v", got, want)
		}
	})

	for _, path := range []string{"/gists/" + gist.NewID(), "/gists/" + gist.NewID() + ".png", "/gists/nope.png"} {
		t.Run("missing "+path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + path)
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusNotFound {
				t.Errorf("status = %d, want 404", resp.StatusCode)
			}
		})
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ListenAndServe(ctx, "127.0.0.1:0", http.NotFoundHandler()) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not return")
	}
}
