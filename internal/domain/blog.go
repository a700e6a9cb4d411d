package domain

import "context"

// Table names follow the collection names of the blogging context.
const (
	BlogsTable = "Blogs"
	PostsTable = "Posts"
)

// Blog is a weblog identified by its URL. Posts is only populated by
// BlogRepository.GetByID.
type Blog struct {
	ID    int64
	URL   string
	Posts []Post
}

// Post is a single entry belonging to exactly one Blog.
type Post struct {
	ID      int64
	Title   string
	Content string
	BlogID  int64
}

// BlogRepository defines persistence operations for blogs.
type BlogRepository interface {
	Create(ctx context.Context, blog *Blog) error
	GetByID(ctx context.Context, id int64) (*Blog, error)
	List(ctx context.Context) ([]Blog, error)
	Update(ctx context.Context, blog *Blog) error
	// Delete removes the blog and, by cascade, all of its posts.
	Delete(ctx context.Context, id int64) error
}

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	ListByBlog(ctx context.Context, blogID int64) ([]Post, error)
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id int64) error
}
