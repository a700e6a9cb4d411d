package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/msomdec/blogging/internal/handler"
	"github.com/msomdec/blogging/internal/repository/sqlite"
	"github.com/msomdec/blogging/internal/service"
)

func newTestServices(t *testing.T) (*service.BlogService, *service.PostService) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return service.NewBlogService(db.Blogs()), service.NewPostService(db.Posts(), db.Blogs())
}

func newTestLimiter(t *testing.T, rate, burst float64) *service.TokenBucket {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return service.NewTokenBucket(ctx, rate, burst)
}

// newTestServer wires the full route table behind the production middleware.
func newTestServer(t *testing.T) (*httptest.Server, *service.BlogService, *service.PostService) {
	t.Helper()
	blogs, posts := newTestServices(t)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, blogs, posts, newTestLimiter(t, 100, 100))

	srv := httptest.NewServer(handler.Instrument(handler.SecurityHeaders(mux)))
	t.Cleanup(srv.Close)
	return srv, blogs, posts
}
