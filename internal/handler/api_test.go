package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/msomdec/blogging/internal/handler"
)

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestAPI_BlogAndPostLifecycle(t *testing.T) {
	srv, _, _ := newTestServer(t)

	// 1. Create a blog.
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/blogs", map[string]string{"url": "https://go.dev/blog"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create blog: expected 201, got %d", resp.StatusCode)
	}
	blog := decode[handler.BlogDTO](t, resp)
	if blog.ID == 0 {
		t.Fatal("create blog: expected id")
	}

	// 2. Add two posts.
	for _, title := range []string{"Go 1.22", "Go 1.23"} {
		resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/blogs/%d/posts", srv.URL, blog.ID),
			map[string]string{"title": title, "content": "release notes"})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create post %q: expected 201, got %d", title, resp.StatusCode)
		}
	}

	// 3. The blog now carries both posts.
	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/blogs/%d", srv.URL, blog.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get blog: expected 200, got %d", resp.StatusCode)
	}
	got := decode[handler.BlogDTO](t, resp)
	if len(got.Posts) != 2 {
		t.Fatalf("get blog: expected 2 posts, got %d", len(got.Posts))
	}

	// 4. Update a post.
	postID := got.Posts[0].ID
	resp = doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/posts/%d", srv.URL, postID),
		map[string]string{"title": "Go 1.22 is out", "content": "loopvar"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update post: expected 200, got %d", resp.StatusCode)
	}
	if p := decode[handler.PostDTO](t, resp); p.Title != "Go 1.22 is out" {
		t.Fatalf("update post: unexpected title %q", p.Title)
	}

	// 5. List blogs omits posts.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/blogs", nil)
	list := decode[[]map[string]any](t, resp)
	if len(list) != 1 {
		t.Fatalf("list blogs: unexpected result %+v", list)
	}
	if _, ok := list[0]["posts"]; ok {
		t.Fatalf("list blogs: expected no posts key, got %+v", list[0])
	}

	// 6. Deleting the blog removes its posts.
	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/blogs/%d", srv.URL, blog.ID), nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete blog: expected 204, got %d", resp.StatusCode)
	}
	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/posts/%d", srv.URL, postID), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get deleted post: expected 404, got %d", resp.StatusCode)
	}
}

func TestAPI_GetBlog_WithoutPostsHasEmptyArray(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/blogs", map[string]string{"url": "https://empty.example.com"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create blog: expected 201, got %d", resp.StatusCode)
	}
	blog := decode[handler.BlogDTO](t, resp)

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/blogs/%d", srv.URL, blog.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get blog: expected 200, got %d", resp.StatusCode)
	}
	got := decode[map[string]json.RawMessage](t, resp)
	posts, ok := got["posts"]
	if !ok {
		t.Fatalf("get blog: missing posts key in %v", got)
	}
	if string(posts) != "[]" {
		t.Fatalf("get blog: expected posts to be [], got %s", posts)
	}
}

func TestAPI_CreateBlog_InvalidURL(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/blogs", map[string]string{"url": "not a url"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestAPI_CreateBlog_UnknownField(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/blogs", map[string]string{"uri": "https://example.com"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestAPI_CreatePost_MissingBlog(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/blogs/42/posts", map[string]string{"title": "Orphan"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestAPI_InvalidID(t *testing.T) {
	srv, _, _ := newTestServer(t)

	for _, path := range []string{"/api/blogs/abc", "/api/blogs/0", "/api/posts/-1"} {
		resp := doJSON(t, http.MethodGet, srv.URL+path, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("GET %s: expected 400, got %d", path, resp.StatusCode)
		}
	}
}
