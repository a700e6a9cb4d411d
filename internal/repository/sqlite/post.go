package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/msomdec/blogging/internal/domain"
)

// PostRepository implements domain.PostRepository using SQLite.
type PostRepository struct {
	db *sql.DB
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
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
		`SELECT PostId, COALESCE(Title, ''), COALESCE(Content, ''), BlogId
		 FROM Posts WHERE PostId = ?`, id,
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
		"UPDATE Posts SET Title = ?, Content = ?, BlogId = ? WHERE PostId = ?",
		post.Title, post.Content, post.BlogID, post.ID,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("%w: blog %d", domain.ErrNotFound, post.BlogID)
		}
		return fmt.Errorf("update post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM Posts WHERE PostId = ?", id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// insertPost stores post and returns its new id. post itself is not modified.
func insertPost(ctx context.Context, db execer, post *domain.Post) (int64, error) {
	result, err := db.ExecContext(ctx,
		"INSERT INTO Posts (Title, Content, BlogId) VALUES (?, ?, ?)",
		post.Title, post.Content, post.BlogID,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return 0, fmt.Errorf("%w: blog %d", domain.ErrNotFound, post.BlogID)
		}
		return 0, fmt.Errorf("insert post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get post id: %w", err)
	}
	return id, nil
}

func listPosts(ctx context.Context, db querier, blogID int64) ([]domain.Post, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT PostId, COALESCE(Title, ''), COALESCE(Content, ''), BlogId
		 FROM Posts WHERE BlogId = ? ORDER BY PostId`, blogID)
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

// isForeignKeyError checks if the error is a SQLite foreign key violation,
// which for Posts means the referenced blog does not exist.
func isForeignKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
