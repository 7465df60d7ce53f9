package imaging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("image-bytes"))
	}))
	defer srv.Close()

	got, err := fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch() error = %v", err)
	}
	if string(got) != "image-bytes" {
		t.Errorf("fetch() = %q", got)
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			http.Error(w, "try again", http.StatusBadGateway)
			return
		}
		w.Write([]byte("image-bytes"))
	}))
	defer srv.Close()

	got, err := fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch() error = %v", err)
	}
	if string(got) != "image-bytes" {
		t.Errorf("fetch() = %q", got)
	}
	if atomic.LoadInt32(&hits) < 2 {
		t.Errorf("server hits = %d, want retry after 502", hits)
	}
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("fetch() error = nil, want 404 error")
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("server hits = %d, want exactly 1 for a 4xx", hits)
	}
}
