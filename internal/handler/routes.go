package handler

import (
	"net/http"

	"github.com/msomdec/blogging/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. Mutating API
// routes go through the write limiter.
func RegisterRoutes(mux *http.ServeMux, blogs *service.BlogService, posts *service.PostService, limiter *service.TokenBucket) {
	api := NewAPIHandler(blogs, posts)
	pages := NewPageHandler(blogs, posts)
	write := func(h http.HandlerFunc) http.Handler { return RateLimit(limiter, h) }

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("GET /api/blogs", api.HandleListBlogs)
	mux.Handle("POST /api/blogs", write(api.HandleCreateBlog))
	mux.HandleFunc("GET /api/blogs/{id}", api.HandleGetBlog)
	mux.Handle("PUT /api/blogs/{id}", write(api.HandleUpdateBlog))
	mux.Handle("DELETE /api/blogs/{id}", write(api.HandleDeleteBlog))
	mux.HandleFunc("GET /api/blogs/{id}/posts", api.HandleListPosts)
	mux.Handle("POST /api/blogs/{id}/posts", write(api.HandleCreatePost))
	mux.HandleFunc("GET /api/posts/{id}", api.HandleGetPost)
	mux.Handle("PUT /api/posts/{id}", write(api.HandleUpdatePost))
	mux.Handle("DELETE /api/posts/{id}", write(api.HandleDeletePost))

	mux.HandleFunc("GET /{$}", pages.HandleHome)
	mux.HandleFunc("GET /blogs/{id}", pages.HandleBlog)
	mux.HandleFunc("GET /blogs/{id}/posts", pages.HandlePostsFragment)
}
