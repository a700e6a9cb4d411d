package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/msomdec/blogging/internal/domain"
	"github.com/msomdec/blogging/internal/service"
	"github.com/msomdec/blogging/internal/view"
)

// PageHandler renders the HTML pages.
type PageHandler struct {
	blogs *service.BlogService
	posts *service.PostService
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(blogs *service.BlogService, posts *service.PostService) *PageHandler {
	return &PageHandler{blogs: blogs, posts: posts}
}

// HandleHome renders the list of blogs.
func (h *PageHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogs.ListBlogs(r.Context())
	if err != nil {
		slog.Error("list blogs", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	view.HomePage(blogs).Render(r.Context(), w)
}

// HandleBlog renders a single blog with its posts.
func (h *PageHandler) HandleBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	blog, err := h.blogs.GetBlog(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.Error("get blog", "error", err, "blog_id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	view.BlogPage(blog).Render(r.Context(), w)
}

// HandlePostsFragment returns an SSE response that replaces the posts section.
func (h *PageHandler) HandlePostsFragment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	posts, err := h.posts.ListPosts(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.Error("list posts", "error", err, "blog_id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(view.PostList(posts)); err != nil {
		slog.Error("patch posts fragment", "error", err, "blog_id", id)
	}
}
