package sqlserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	mssql "github.com/microsoft/go-mssqldb"

	"github.com/msomdec/blogging/internal/domain"
)

// errForeignKeyViolation is the SQL Server error number for a conflicting
// FOREIGN KEY constraint.
const errForeignKeyViolation = 547

// PostRepository implements domain.PostRepository using SQL Server.
type PostRepository struct {
	db *sql.DB
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	id, err := insertPost(ctx, r.db, post)
	if err != nil {
		return err
	}
	post.ID = id
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	p := &domain.Post{}
	err := r.db.QueryRowContext(ctx,
		`SELECT PostId, COALESCE(Title, N''), COALESCE(Content, N''), BlogId
		 FROM Posts WHERE PostId = @p1`, id,
	).Scan(&p.ID, &p.Title, &p.Content, &p.BlogID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return p, nil
}

func (r *PostRepository) ListByBlog(ctx context.Context, blogID int64) ([]domain.Post, error) {
	return listPosts(ctx, r.db, blogID)
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE Posts SET Title = @p1, Content = @p2, BlogId = @p3 WHERE PostId = @p4",
		post.Title, post.Content, post.BlogID, post.ID,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("%w: blog %d", domain.ErrNotFound, post.BlogID)
		}
		return fmt.Errorf("update post: %w", err)
	}
	return expectAffected(result)
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM Posts WHERE PostId = @p1", id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return expectAffected(result)
}

// insertPost stores post and returns its new id. post itself is not modified.
func insertPost(ctx context.Context, db rowQuerier, post *domain.Post) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx,
		"INSERT INTO Posts (Title, Content, BlogId) OUTPUT INSERTED.PostId VALUES (@p1, @p2, @p3)",
		post.Title, post.Content, post.BlogID,
	).Scan(&id)
	if err != nil {
		if isForeignKeyError(err) {
			return 0, fmt.Errorf("%w: blog %d", domain.ErrNotFound, post.BlogID)
		}
		return 0, fmt.Errorf("insert post: %w", err)
	}
	return id, nil
}

func listPosts(ctx context.Context, db querier, blogID int64) ([]domain.Post, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT PostId, COALESCE(Title, N''), COALESCE(Content, N''), BlogId
		 FROM Posts WHERE BlogId = @p1 ORDER BY PostId`, blogID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.BlogID); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func isForeignKeyError(err error) bool {
	var sqlErr mssql.Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Number == errForeignKeyViolation
	}
	return false
}
