// Package sources manages operator-added feed sources in SQLite. These are
// merged with the built-in feed list at pipeline start, so a deployment can
// add regional feeds without a code change.
package sources

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/agsist/agfeed/feed"
	"github.com/agsist/agfeed/news"
)

// Custom errors for source operations
var (
	ErrSourceNotFound  = errors.New("source not found")
	ErrDuplicateURL    = errors.New("source with this URL already exists")
	ErrInvalidCategory = errors.New("unknown category")
)

var validCategories = map[news.Category]bool{
	news.CategoryCommunity:  true,
	news.CategoryGovernment: true,
	news.CategoryUniversity: true,
	news.CategoryIndustry:   true,
	news.CategoryMarkets:    true,
	news.CategoryWeather:    true,
}

// Source is a stored feed source.
type Source struct {
	SourceID  uuid.UUID     `json:"source_id"`
	URL       string        `json:"url"`
	Name      string        `json:"name"`
	Category  news.Category `json:"category"`
	Community bool          `json:"community"`
	Icon      string        `json:"icon,omitempty"`
	EnabledAt *time.Time    `json:"enabled_at,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// IsEnabled returns true if the source is currently enabled.
func (s *Source) IsEnabled() bool {
	return s.EnabledAt != nil
}

// FeedSource converts a stored source to the fetcher's representation.
func (s *Source) FeedSource() feed.FeedSource {
	return feed.FeedSource{
		URL:       s.URL,
		Name:      s.Name,
		Category:  s.Category,
		Community: s.Community,
		Icon:      s.Icon,
	}
}

// SourceStore manages feed source configurations using SQLite.
type SourceStore struct {
	db *sql.DB
}

// NewSourceStore creates a new source store with the given database path.
func NewSourceStore(dbPath string) (*SourceStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SourceStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the feed_sources table if it doesn't exist.
func (s *SourceStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS feed_sources (
		source_id TEXT PRIMARY KEY,
		url TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		community INTEGER NOT NULL DEFAULT 0,
		icon TEXT,
		enabled_at TEXT,
		created_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SourceStore) Close() error {
	return s.db.Close()
}

// CreateSource adds a new enabled source.
func (s *SourceStore) CreateSource(url, name string, category news.Category, community bool, icon string) (*Source, error) {
	if !validCategories[category] {
		return nil, ErrInvalidCategory
	}

	now := time.Now()
	source := &Source{
		SourceID:  uuid.New(),
		URL:       url,
		Name:      name,
		Category:  category,
		Community: community,
		Icon:      icon,
		EnabledAt: &now,
		CreatedAt: now,
	}

	query := `
		INSERT INTO feed_sources (
			source_id, url, name, category, community, icon, enabled_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		source.SourceID.String(),
		source.URL,
		source.Name,
		string(source.Category),
		source.Community,
		source.Icon,
		formatTime(source.EnabledAt),
		formatTime(&source.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") ||
			strings.Contains(err.Error(), "unique constraint") {
			return nil, ErrDuplicateURL
		}
		return nil, fmt.Errorf("failed to insert source: %w", err)
	}

	return source, nil
}

// GetSource retrieves a source by ID.
func (s *SourceStore) GetSource(sourceID uuid.UUID) (*Source, error) {
	query := selectColumns + " WHERE source_id = ?"

	row := s.db.QueryRow(query, sourceID.String())
	source, err := scanSource(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrSourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query source: %w", err)
	}
	return source, nil
}

// ListSources lists all stored sources, newest first.
func (s *SourceStore) ListSources() ([]Source, error) {
	return s.list(selectColumns + " ORDER BY created_at DESC")
}

// ListEnabled lists only the sources that should be fetched.
func (s *SourceStore) ListEnabled() ([]Source, error) {
	return s.list(selectColumns + " WHERE enabled_at IS NOT NULL ORDER BY created_at DESC")
}

const selectColumns = `
	SELECT source_id, url, name, category, community, icon, enabled_at, created_at
	FROM feed_sources
`

func (s *SourceStore) list(query string) ([]Source, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sources: %w", err)
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		source, err := scanSource(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		sources = append(sources, *source)
	}
	return sources, rows.Err()
}

// SetEnabled enables or disables a source without deleting it.
func (s *SourceStore) SetEnabled(sourceID uuid.UUID, enabled bool) error {
	var enabledAt any
	if enabled {
		now := time.Now()
		enabledAt = formatTime(&now)
	}

	result, err := s.db.Exec(
		"UPDATE feed_sources SET enabled_at = ? WHERE source_id = ?",
		enabledAt, sourceID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update source: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrSourceNotFound
	}
	return nil
}

// DeleteSource deletes a source.
func (s *SourceStore) DeleteSource(sourceID uuid.UUID) error {
	result, err := s.db.Exec("DELETE FROM feed_sources WHERE source_id = ?", sourceID.String())
	if err != nil {
		return fmt.Errorf("failed to delete source: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrSourceNotFound
	}
	return nil
}

// MergeWithDefaults returns the built-in feed list plus all enabled stored
// sources, skipping any stored URL that shadows a built-in one.
func MergeWithDefaults(stored []Source) []feed.FeedSource {
	merged := feed.DefaultSources()
	known := make(map[string]bool, len(merged))
	for _, src := range merged {
		known[src.URL] = true
	}

	for _, src := range stored {
		if !src.IsEnabled() || known[src.URL] {
			continue
		}
		known[src.URL] = true
		merged = append(merged, src.FeedSource())
	}
	return merged
}

// scanSource parses a SQL row into a Source. It takes the row's Scan func so
// GetSource and list share the column handling.
func scanSource(scan func(dest ...any) error) (*Source, error) {
	var sourceIDStr, url, name, category, createdAtStr string
	var community bool
	var icon, enabledAtStr sql.NullString

	if err := scan(&sourceIDStr, &url, &name, &category, &community, &icon, &enabledAtStr, &createdAtStr); err != nil {
		return nil, err
	}

	sourceID, err := uuid.Parse(sourceIDStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source ID: %w", err)
	}

	source := &Source{
		SourceID:  sourceID,
		URL:       url,
		Name:      name,
		Category:  news.Category(category),
		Community: community,
		CreatedAt: parseTime(createdAtStr),
	}
	if icon.Valid {
		source.Icon = icon.String
	}
	if enabledAtStr.Valid {
		t := parseTime(enabledAtStr.String)
		source.EnabledAt = &t
	}
	return source, nil
}

// Helper functions for time formatting
func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	// Strip monotonic clock for consistent storage and comparisons
	return t.Truncate(0).Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	// Try RFC3339Nano first, fall back to RFC3339 for compatibility
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		t, _ = time.Parse(time.RFC3339, s)
	}
	// Strip monotonic clock for consistent comparisons
	return t.Truncate(0)
}
