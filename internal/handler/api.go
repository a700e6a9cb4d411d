package handler

import (
	"net/http"

	"github.com/msomdec/blogging/internal/service"
)

// APIHandler serves the JSON API over the Blogs and Posts collections.
type APIHandler struct {
	blogs *service.BlogService
	posts *service.PostService
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(blogs *service.BlogService, posts *service.PostService) *APIHandler {
	return &APIHandler{blogs: blogs, posts: posts}
}

func (h *APIHandler) HandleListBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogs.ListBlogs(r.Context())
	if err != nil {
		writeServiceError(w, err, "list blogs")
		return
	}
	writeJSON(w, http.StatusOK, toBlogSummaryDTOs(blogs))
}

func (h *APIHandler) HandleCreateBlog(w http.ResponseWriter, r *http.Request) {
	var req blogRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	blog, err := h.blogs.CreateBlog(r.Context(), req.URL)
	if err != nil {
		writeServiceError(w, err, "create blog")
		return
	}
	writeJSON(w, http.StatusCreated, toBlogDTO(blog))
}

// HandleGetBlog returns a blog with its posts.
func (h *APIHandler) HandleGetBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid blog id")
		return
	}

	blog, err := h.blogs.GetBlog(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "get blog")
		return
	}
	writeJSON(w, http.StatusOK, toBlogDTO(blog))
}

func (h *APIHandler) HandleUpdateBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid blog id")
		return
	}

	var req blogRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	blog, err := h.blogs.UpdateBlog(r.Context(), id, req.URL)
	if err != nil {
		writeServiceError(w, err, "update blog")
		return
	}
	writeJSON(w, http.StatusOK, toBlogDTO(blog))
}

func (h *APIHandler) HandleDeleteBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid blog id")
		return
	}

	if err := h.blogs.DeleteBlog(r.Context(), id); err != nil {
		writeServiceError(w, err, "delete blog")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) HandleListPosts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid blog id")
		return
	}

	posts, err := h.posts.ListPosts(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "list posts")
		return
	}
	writeJSON(w, http.StatusOK, toPostDTOs(posts))
}

func (h *APIHandler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid blog id")
		return
	}

	var req postRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	post, err := h.posts.CreatePost(r.Context(), id, req.Title, req.Content)
	if err != nil {
		writeServiceError(w, err, "create post")
		return
	}
	writeJSON(w, http.StatusCreated, toPostDTO(post))
}

func (h *APIHandler) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := h.posts.GetPost(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "get post")
		return
	}
	writeJSON(w, http.StatusOK, toPostDTO(post))
}

func (h *APIHandler) HandleUpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var req postRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	post, err := h.posts.UpdatePost(r.Context(), id, req.Title, req.Content)
	if err != nil {
		writeServiceError(w, err, "update post")
		return
	}
	writeJSON(w, http.StatusOK, toPostDTO(post))
}

func (h *APIHandler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := h.posts.DeletePost(r.Context(), id); err != nil {
		writeServiceError(w, err, "delete post")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
