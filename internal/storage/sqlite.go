package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/BenjaminSRussell/imgaudit/internal/types"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStorage provides queryable storage for audited pages and images
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS pages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT UNIQUE NOT NULL,
		title TEXT,
		domain TEXT,
		status_code INTEGER,
		total_images_found INTEGER,
		images_analyzed INTEGER,
		images_without_alt INTEGER,
		total_image_size INTEGER,
		crawled_at TIMESTAMP,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_pages_url ON pages(url);
	CREATE INDEX IF NOT EXISTS idx_pages_status_code ON pages(status_code);
	CREATE INDEX IF NOT EXISTS idx_pages_domain ON pages(domain);

	CREATE TABLE IF NOT EXISTS images (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		page_url TEXT NOT NULL,
		position INTEGER NOT NULL,
		image_url TEXT NOT NULL,
		alt_text TEXT,
		title_text TEXT,
		width TEXT,
		height TEXT,
		has_alt INTEGER,
		content_type TEXT,
		size_bytes INTEGER,
		status_code INTEGER,
		error TEXT,
		FOREIGN KEY (page_url) REFERENCES pages(url)
	);

	CREATE INDEX IF NOT EXISTS idx_images_page_url ON images(page_url);
	CREATE INDEX IF NOT EXISTS idx_images_content_type ON images(content_type);
	CREATE INDEX IF NOT EXISTS idx_images_has_alt ON images(has_alt);
	`

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// SavePage saves a page result and its image records in one transaction
func (s *SQLiteStorage) SavePage(result types.PageResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO pages
		(url, title, domain, status_code, total_images_found, images_analyzed,
		 images_without_alt, total_image_size, crawled_at, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.URL,
		result.Title,
		result.Domain,
		result.StatusCode,
		result.TotalImagesFound,
		result.ImagesAnalyzed,
		result.ImagesWithoutAltCount,
		result.TotalImageSize,
		result.CrawledAt,
		result.Error,
	)
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM images WHERE page_url = ?", result.URL); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO images
		(page_url, position, image_url, alt_text, title_text, width, height,
		 has_alt, content_type, size_bytes, status_code, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, img := range result.Images {
		_, err := stmt.Exec(
			result.URL,
			img.Index,
			img.ImageURL,
			img.AltText,
			img.TitleText,
			img.Width,
			img.Height,
			img.HasAlt,
			img.ContentType,
			img.SizeBytes,
			img.StatusCode,
			img.Error,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// QueryPages returns saved pages, optionally filtered by status code
func (s *SQLiteStorage) QueryPages(statusCode *int) ([]types.PageResult, error) {
	query := `SELECT url, title, domain, status_code, total_images_found,
		images_analyzed, images_without_alt, total_image_size, crawled_at, error
		FROM pages`
	args := make([]interface{}, 0)

	if statusCode != nil {
		query += " WHERE status_code = ?"
		args = append(args, *statusCode)
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]types.PageResult, 0)
	for rows.Next() {
		var result types.PageResult
		var crawledAt time.Time
		err := rows.Scan(
			&result.URL,
			&result.Title,
			&result.Domain,
			&result.StatusCode,
			&result.TotalImagesFound,
			&result.ImagesAnalyzed,
			&result.ImagesWithoutAltCount,
			&result.TotalImageSize,
			&crawledAt,
			&result.Error,
		)
		if err != nil {
			continue
		}
		result.CrawledAt = crawledAt
		results = append(results, result)
	}

	return results, rows.Err()
}

// GetStats returns aggregate audit statistics straight from the database
func (s *SQLiteStorage) GetStats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var totalPages, errorPages int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM pages").Scan(&totalPages); err != nil {
		return nil, err
	}
	stats["total_pages"] = totalPages

	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM pages WHERE status_code >= 400 OR (error IS NOT NULL AND error != '')").
		Scan(&errorPages)
	if err != nil {
		return nil, err
	}
	stats["error_pages"] = errorPages

	var totalImages, imagesWithoutAlt int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM images").Scan(&totalImages); err != nil {
		return nil, err
	}
	stats["total_images"] = totalImages

	if err := s.db.QueryRow("SELECT COUNT(*) FROM images WHERE has_alt = 0").Scan(&imagesWithoutAlt); err != nil {
		return nil, err
	}
	stats["images_without_alt"] = imagesWithoutAlt

	var totalSize sql.NullInt64
	if err := s.db.QueryRow("SELECT SUM(size_bytes) FROM images").Scan(&totalSize); err != nil {
		return nil, err
	}
	stats["total_image_size"] = totalSize.Int64

	return stats, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
