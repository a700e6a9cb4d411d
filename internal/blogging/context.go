// Package blogging declares the blogging schema context: the unit of work
// that owns the connection configuration and exposes the Blogs and Posts
// collections.
package blogging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/msomdec/blogging/internal/domain"
	"github.com/msomdec/blogging/internal/repository/sqlite"
	"github.com/msomdec/blogging/internal/repository/sqlserver"
)

// DefaultConnectionString targets the local development SQL Server instance.
// It applies whenever no other configuration source supplies a connection
// string.
const DefaultConnectionString = `Server=(localdb)\mssqllocaldb;Database=BloggingEFTest;Trusted_Connection=True;MultipleActiveResultSets=true;`

// DefaultSQLitePath is used when the sqlite provider is chosen without a path.
const DefaultSQLitePath = "blogging.db"

// Provider names a database backend.
type Provider string

const (
	ProviderSQLServer Provider = "sqlserver"
	ProviderSQLite    Provider = "sqlite"
)

var ErrUnknownProvider = errors.New("unknown database provider")

// Options configures a Context. The zero value selects SQL Server with
// DefaultConnectionString.
type Options struct {
	Provider         Provider
	ConnectionString string
}

// Resolved returns a copy of o with defaults filled in.
func (o Options) Resolved() Options {
	if o.Provider == "" {
		o.Provider = ProviderSQLServer
	}
	if o.ConnectionString == "" {
		switch o.Provider {
		case ProviderSQLite:
			o.ConnectionString = DefaultSQLitePath
		default:
			o.ConnectionString = DefaultConnectionString
		}
	}
	return o
}

// CollectionNames lists the collections a Context exposes, in declaration order.
func CollectionNames() []string {
	return []string{domain.BlogsTable, domain.PostsTable}
}

// Context holds the two blogging collections and the configuration used to
// open them.
type Context struct {
	Blogs domain.BlogRepository
	Posts domain.PostRepository

	db      domain.Database
	options Options
}

// New resolves opts and opens the selected provider. Driver errors are
// wrapped and returned as is.
func New(ctx context.Context, opts Options) (*Context, error) {
	opts = opts.Resolved()

	var (
		db  domain.Database
		err error
	)
	switch opts.Provider {
	case ProviderSQLServer:
		db, err = sqlserver.New(ctx, opts.ConnectionString)
	case ProviderSQLite:
		db, err = sqlite.New(opts.ConnectionString)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, opts.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", opts.Provider, err)
	}

	slog.Debug("blogging context opened", "provider", opts.Provider)
	return NewWithDatabase(db, opts), nil
}

// NewWithDatabase builds a Context around an already opened database.
func NewWithDatabase(db domain.Database, opts Options) *Context {
	return &Context{
		Blogs:   db.Blogs(),
		Posts:   db.Posts(),
		db:      db,
		options: opts.Resolved(),
	}
}

func (c *Context) Provider() Provider { return c.options.Provider }

func (c *Context) ConnectionString() string { return c.options.ConnectionString }

// Migrate brings the schema up to date for the configured provider.
func (c *Context) Migrate(ctx context.Context) error {
	return c.db.Migrate(ctx)
}

func (c *Context) Close() error {
	return c.db.Close()
}
