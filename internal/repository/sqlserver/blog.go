package sqlserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/blogging/internal/domain"
)

// BlogRepository implements domain.BlogRepository using SQL Server.
type BlogRepository struct {
	db *sql.DB
}

func (r *BlogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var blogID int64
	err = tx.QueryRowContext(ctx,
		"INSERT INTO Blogs (Url) OUTPUT INSERTED.BlogId VALUES (@p1)", blog.URL,
	).Scan(&blogID)
	if err != nil {
		return fmt.Errorf("insert blog: %w", err)
	}

	postIDs := make([]int64, len(blog.Posts))
	for i := range blog.Posts {
		p := blog.Posts[i]
		p.BlogID = blogID
		id, err := insertPost(ctx, tx, &p)
		if err != nil {
			return fmt.Errorf("insert post %d: %w", i, err)
		}
		postIDs[i] = id
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	blog.ID = blogID
	for i := range blog.Posts {
		blog.Posts[i].ID = postIDs[i]
		blog.Posts[i].BlogID = blogID
	}
	return nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id int64) (*domain.Blog, error) {
	b := &domain.Blog{}
	err := r.db.QueryRowContext(ctx,
		"SELECT BlogId, COALESCE(Url, N'') FROM Blogs WHERE BlogId = @p1", id,
	).Scan(&b.ID, &b.URL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get blog: %w", err)
	}

	posts, err := listPosts(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	b.Posts = posts
	return b, nil
}

func (r *BlogRepository) List(ctx context.Context) ([]domain.Blog, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT BlogId, COALESCE(Url, N'') FROM Blogs ORDER BY BlogId")
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	var blogs []domain.Blog
	for rows.Next() {
		var b domain.Blog
		if err := rows.Scan(&b.ID, &b.URL); err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

func (r *BlogRepository) Update(ctx context.Context, blog *domain.Blog) error {
	result, err := r.db.ExecContext(ctx, "UPDATE Blogs SET Url = @p1 WHERE BlogId = @p2", blog.URL, blog.ID)
	if err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	return expectAffected(result)
}

func (r *BlogRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM Blogs WHERE BlogId = @p1", id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	return expectAffected(result)
}

func expectAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
