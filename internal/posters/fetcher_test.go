package posters

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetcherDownloadsImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	fetcher := NewFetcher(5*time.Second, 100, 0)

	data, ext, err := fetcher.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !bytes.Equal(data, []byte("png-bytes")) {
		t.Fatalf("unexpected body %q", data)
	}
	if ext != ".png" {
		t.Fatalf("expected .png extension, got %q", ext)
	}
}

func TestFetcherRejectsNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	fetcher := NewFetcher(5*time.Second, 100, 0)

	if _, _, err := fetcher.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected an error for 404 response")
	}
}

func TestFetcherRejectsOversizedImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(bytes.Repeat([]byte("x"), 128))
	}))
	defer srv.Close()

	fetcher := NewFetcher(5*time.Second, 100, 64)

	if _, _, err := fetcher.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected an error for an oversized image")
	}
}

func TestFetcherHonoursContextCancellation(t *testing.T) {
	fetcher := NewFetcher(5*time.Second, 100, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := fetcher.Fetch(ctx, "http://127.0.0.1:0/poster.jpg"); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}

func TestExtensionFor(t *testing.T) {
	cases := map[string]string{
		"image/jpeg": ".jpg",
		"image/jpg":  ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
		"image/gif":  ".gif",
		"text/html":  ".img",
		"":           ".img",
	}
	for contentType, want := range cases {
		if got := extensionFor(contentType); got != want {
			t.Errorf("extensionFor(%q) = %q, want %q", contentType, got, want)
		}
	}
}
