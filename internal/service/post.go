package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/msomdec/blogging/internal/domain"
)

const (
	maxTitleLength   = 200
	maxContentLength = 100000
)

// PostService handles post operations. Every post belongs to an existing blog.
type PostService struct {
	posts domain.PostRepository
	blogs domain.BlogRepository
}

// NewPostService creates a new PostService.
func NewPostService(posts domain.PostRepository, blogs domain.BlogRepository) *PostService {
	return &PostService{posts: posts, blogs: blogs}
}

// CreatePost adds a post to the given blog.
func (s *PostService) CreatePost(ctx context.Context, blogID int64, title, content string) (*domain.Post, error) {
	title, err := validatePost(title, content)
	if err != nil {
		return nil, err
	}

	if _, err := s.blogs.GetByID(ctx, blogID); err != nil {
		return nil, err
	}

	post := &domain.Post{Title: title, Content: content, BlogID: blogID}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// GetPost returns a post by its ID.
func (s *PostService) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// ListPosts returns the posts of a blog, oldest first. A missing blog is
// reported as domain.ErrNotFound rather than as an empty list.
func (s *PostService) ListPosts(ctx context.Context, blogID int64) ([]domain.Post, error) {
	if _, err := s.blogs.GetByID(ctx, blogID); err != nil {
		return nil, err
	}
	return s.posts.ListByBlog(ctx, blogID)
}

// UpdatePost replaces the title and content of a post.
func (s *PostService) UpdatePost(ctx context.Context, id int64, title, content string) (*domain.Post, error) {
	title, err := validatePost(title, content)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Title = title
	post.Content = content
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// DeletePost removes a post.
func (s *PostService) DeletePost(ctx context.Context, id int64) error {
	return s.posts.Delete(ctx, id)
}

func validatePost(title, content string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", fmt.Errorf("%w: title must be %d characters or fewer", domain.ErrInvalidInput, maxTitleLength)
	}
	if utf8.RuneCountInString(content) > maxContentLength {
		return "", fmt.Errorf("%w: content must be %d characters or fewer", domain.ErrInvalidInput, maxContentLength)
	}
	return title, nil
}
