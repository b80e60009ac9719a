package util

// PageID represents a unique page identifier within a single file
type PageID uint64

// PageSize represents the standard page size (4KB)
const PageSize = 4096

// Options represents database configuration options
type Options struct {
	Path           string `toml:"path"`
	BufferPoolSize int    `toml:"buffer_pool_size"`
	InitialPages   int    `toml:"initial_pages"`
	LogLevel       string `toml:"log_level"`
}

// DefaultOptions returns default database options
func DefaultOptions() Options {
	return Options{
		Path:           "framedb.dat",
		BufferPoolSize: 1000, // 4MB default buffer pool
		InitialPages:   16,
		LogLevel:       "info",
	}
}
