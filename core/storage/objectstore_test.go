package storage_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

type storedObject struct {
	size        int64
	contentType string
}

// objectStore speaks just enough of the S3 object API (PUT, HEAD, DELETE on
// /{bucket}/{key}) for the real SDK client to run against it.
type objectStore struct {
	mu      sync.Mutex
	objects map[string]storedObject
}

func newObjectStore(t *testing.T) (*objectStore, *httptest.Server) {
	store := &objectStore{objects: map[string]storedObject{}}
	srv := httptest.NewServer(store)
	t.Cleanup(srv.Close)
	return store, srv
}

func (s *objectStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}

func (s *objectStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/")

	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		n, _ := io.Copy(io.Discard, r.Body)
		// Streaming signatures wrap the payload in signed chunks.
		if decoded := r.Header.Get("X-Amz-Decoded-Content-Length"); decoded != "" {
			n, _ = strconv.ParseInt(decoded, 10, 64)
		}
		s.objects[key] = storedObject{size: n, contentType: r.Header.Get("Content-Type")}
		w.Header().Set("ETag", `"0123456789abcdef0123456789abcdef"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodHead:
		obj, ok := s.objects[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("ETag", `"0123456789abcdef0123456789abcdef"`)
		w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Length", strconv.FormatInt(obj.size, 10))
		w.Header().Set("Content-Type", obj.contentType)
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(s.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}
