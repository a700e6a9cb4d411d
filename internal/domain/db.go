package domain

import "context"

// Database defines lifecycle operations for the underlying database and
// exposes its two collections. Each implementation (SQL Server, SQLite) owns
// its own migration files and strategy, ensuring the backend is swappable.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
	Blogs() BlogRepository
	Posts() PostRepository
}
