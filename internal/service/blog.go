package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/msomdec/blogging/internal/domain"
)

const maxURLLength = 2048

// BlogService handles blog operations.
type BlogService struct {
	blogs domain.BlogRepository
}

// NewBlogService creates a new BlogService.
func NewBlogService(blogs domain.BlogRepository) *BlogService {
	return &BlogService{blogs: blogs}
}

// CreateBlog validates and stores a new blog.
func (s *BlogService) CreateBlog(ctx context.Context, rawURL string) (*domain.Blog, error) {
	u, err := normalizeBlogURL(rawURL)
	if err != nil {
		return nil, err
	}

	blog := &domain.Blog{URL: u}
	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return blog, nil
}

// GetBlog returns a blog together with its posts.
func (s *BlogService) GetBlog(ctx context.Context, id int64) (*domain.Blog, error) {
	return s.blogs.GetByID(ctx, id)
}

// ListBlogs returns all blogs without their posts.
func (s *BlogService) ListBlogs(ctx context.Context) ([]domain.Blog, error) {
	return s.blogs.List(ctx)
}

// UpdateBlog changes the URL of an existing blog.
func (s *BlogService) UpdateBlog(ctx context.Context, id int64, rawURL string) (*domain.Blog, error) {
	u, err := normalizeBlogURL(rawURL)
	if err != nil {
		return nil, err
	}

	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	blog.URL = u
	if err := s.blogs.Update(ctx, blog); err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}
	return blog, nil
}

// DeleteBlog removes a blog and all of its posts.
func (s *BlogService) DeleteBlog(ctx context.Context, id int64) error {
	return s.blogs.Delete(ctx, id)
}

func normalizeBlogURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", fmt.Errorf("%w: url is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(rawURL) > maxURLLength {
		return "", fmt.Errorf("%w: url must be %d characters or fewer", domain.ErrInvalidInput, maxURLLength)
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("%w: url must be an absolute http or https address", domain.ErrInvalidInput)
	}
	return rawURL, nil
}
