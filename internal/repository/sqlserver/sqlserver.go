// Package sqlserver implements the blogging collections on Microsoft SQL
// Server, the provider the blogging context uses by default.
package sqlserver

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"time"

	mssql "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"

	"github.com/msomdec/blogging/internal/domain"
	"github.com/msomdec/blogging/internal/migrations"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const pingTimeout = 10 * time.Second

// DB wraps a SQL Server connection pool and implements domain.Database.
type DB struct {
	SqlDB *sql.DB
	blogs *BlogRepository
	posts *PostRepository
}

// ParseConnectionString validates an ADO-style or sqlserver:// connection
// string and returns the parsed settings.
func ParseConnectionString(connStr string) (msdsn.Config, error) {
	cfg, err := msdsn.Parse(connStr)
	if err != nil {
		return msdsn.Config{}, fmt.Errorf("parse connection string: %w", err)
	}
	return cfg, nil
}

// New opens a SQL Server connection pool and verifies it with a ping.
func New(ctx context.Context, connStr string) (*DB, error) {
	if _, err := ParseConnectionString(connStr); err != nil {
		return nil, err
	}

	connector, err := mssql.NewConnector(connStr)
	if err != nil {
		return nil, fmt.Errorf("create connector: %w", err)
	}
	db := sql.OpenDB(connector)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return newDB(db), nil
}

func newDB(db *sql.DB) *DB {
	return &DB{
		SqlDB: db,
		blogs: &BlogRepository{db: db},
		posts: &PostRepository{db: db},
	}
}

// Migrate applies the embedded T-SQL migrations.
func (d *DB) Migrate(ctx context.Context) error {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	return migrations.Run(ctx, d.SqlDB, sub, migrations.SQLServer)
}

func (d *DB) Close() error {
	return d.SqlDB.Close()
}

func (d *DB) Blogs() domain.BlogRepository { return d.blogs }

func (d *DB) Posts() domain.PostRepository { return d.posts }
