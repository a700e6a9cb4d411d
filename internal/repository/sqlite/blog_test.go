package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/blogging/internal/domain"
)

func TestBlogRepository_Create(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	blog := &domain.Blog{URL: "https://blog.example.com"}
	if err := db.Blogs().Create(ctx, blog); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if blog.ID == 0 {
		t.Fatal("expected blog ID to be set after create")
	}
}

func TestBlogRepository_CreateWithPosts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	blog := &domain.Blog{
		URL: "https://withposts.example.com",
		Posts: []domain.Post{
			{Title: "First", Content: "one"},
			{Title: "Second", Content: "two"},
		},
	}
	if err := db.Blogs().Create(ctx, blog); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for i, p := range blog.Posts {
		if p.ID == 0 {
			t.Fatalf("post %d: expected ID to be set", i)
		}
		if p.BlogID != blog.ID {
			t.Fatalf("post %d: expected BlogID %d, got %d", i, blog.ID, p.BlogID)
		}
	}

	found, err := db.Blogs().GetByID(ctx, blog.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(found.Posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(found.Posts))
	}
	if found.Posts[0].Title != "First" || found.Posts[1].Title != "Second" {
		t.Fatalf("posts out of order: %+v", found.Posts)
	}
}

func TestBlogRepository_CreateWithPosts_RollbackLeavesPostsUntouched(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.SqlDB.ExecContext(ctx, `CREATE TRIGGER reject_post BEFORE INSERT ON Posts
		WHEN NEW.Title = 'reject' BEGIN SELECT RAISE(ABORT, 'rejected'); END`)
	if err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	blog := &domain.Blog{
		URL: "https://rollback.example.com",
		Posts: []domain.Post{
			{Title: "First", Content: "one"},
			{Title: "reject", Content: "two"},
		},
	}
	if err := db.Blogs().Create(ctx, blog); err == nil {
		t.Fatal("expected Create to fail")
	}

	if blog.ID != 0 {
		t.Fatalf("expected blog ID to stay 0, got %d", blog.ID)
	}
	for i, p := range blog.Posts {
		if p.ID != 0 || p.BlogID != 0 {
			t.Fatalf("post %d: expected no IDs after rollback, got %+v", i, p)
		}
	}

	blogs, err := db.Blogs().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(blogs) != 0 {
		t.Fatalf("expected no blogs after rollback, got %d", len(blogs))
	}
}

func TestBlogRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Blogs().GetByID(context.Background(), 99999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBlogRepository_List(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, u := range []string{"https://a.example.com", "https://b.example.com"} {
		if err := db.Blogs().Create(ctx, &domain.Blog{URL: u}); err != nil {
			t.Fatalf("Create %s: %v", u, err)
		}
	}

	blogs, err := db.Blogs().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(blogs) != 2 {
		t.Fatalf("expected 2 blogs, got %d", len(blogs))
	}
	if blogs[0].URL != "https://a.example.com" {
		t.Fatalf("expected first blog a.example.com, got %q", blogs[0].URL)
	}
}

func TestBlogRepository_Update(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	blog := &domain.Blog{URL: "https://old.example.com"}
	if err := db.Blogs().Create(ctx, blog); err != nil {
		t.Fatalf("Create: %v", err)
	}

	blog.URL = "https://new.example.com"
	if err := db.Blogs().Update(ctx, blog); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, err := db.Blogs().GetByID(ctx, blog.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.URL != "https://new.example.com" {
		t.Fatalf("expected updated URL, got %q", found.URL)
	}
}

func TestBlogRepository_Update_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Blogs().Update(context.Background(), &domain.Blog{ID: 424242, URL: "https://x.example.com"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBlogRepository_Delete_CascadesPosts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	blog := &domain.Blog{
		URL:   "https://cascade.example.com",
		Posts: []domain.Post{{Title: "Doomed"}},
	}
	if err := db.Blogs().Create(ctx, blog); err != nil {
		t.Fatalf("Create: %v", err)
	}
	postID := blog.Posts[0].ID

	if err := db.Blogs().Delete(ctx, blog.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := db.Blogs().GetByID(ctx, blog.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected blog to be gone, got %v", err)
	}
	if _, err := db.Posts().GetByID(ctx, postID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected post to be deleted by cascade, got %v", err)
	}
}

func TestBlogRepository_Delete_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Blogs().Delete(context.Background(), 99999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
