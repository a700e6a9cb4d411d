package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/msomdec/blogging/internal/domain"
	"github.com/msomdec/blogging/internal/migrations"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// DB wraps a SQLite connection and implements domain.Database.
type DB struct {
	SqlDB *sql.DB
	blogs *BlogRepository
	posts *PostRepository
}

// New opens a SQLite database at the given path and configures it for use.
// WAL mode and foreign keys are set through the DSN so every pooled
// connection gets them.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{
		SqlDB: db,
		blogs: &BlogRepository{db: db},
		posts: &PostRepository{db: db},
	}, nil
}

// Migrate applies the embedded SQLite migrations.
func (d *DB) Migrate(ctx context.Context) error {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	return migrations.Run(ctx, d.SqlDB, sub, migrations.SQLite)
}

func dsn(dbPath string) string {
	const pragmas = "_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"
	if !strings.HasPrefix(dbPath, "file:") {
		dbPath = "file:" + dbPath
	}
	if strings.Contains(dbPath, "?") {
		return dbPath + "&" + pragmas
	}
	return dbPath + "?" + pragmas
}

func (d *DB) Close() error {
	return d.SqlDB.Close()
}

func (d *DB) Blogs() domain.BlogRepository { return d.blogs }

func (d *DB) Posts() domain.PostRepository { return d.posts }
