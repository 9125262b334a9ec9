package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/ytspot/internal/models"
	"github.com/desertthunder/ytspot/internal/shared"
)

const matchColumns = `id, sequence, query, source_id, catalog_id, display_name, primary_artist, created_at, updated_at`

// MatchRepository persists [models.CachedMatch] rows keyed by query.
type MatchRepository struct {
	db *sql.DB
}

// NewMatchRepository creates a new MatchRepository with the given database connection
func NewMatchRepository(db *sql.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func validateMatch(m *models.CachedMatch) error {
	if strings.TrimSpace(m.Query) == "" {
		return fmt.Errorf("%w: query is required", shared.ErrInvalidInput)
	}
	if m.CatalogID == "" {
		return fmt.Errorf("%w: catalog_id is required", shared.ErrInvalidInput)
	}
	return nil
}

// Create inserts m with a generated ID and sequence.
func (r *MatchRepository) Create(m *models.CachedMatch) error {
	if err := validateMatch(m); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "matches")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	now := time.Now().UTC()
	m.ID = shared.GenerateID()
	m.Sequence = sequence
	m.Created = now
	m.Updated = now

	_, err = r.db.Exec(`INSERT INTO matches (`+matchColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Sequence, m.Query, m.SourceID, m.CatalogID, m.DisplayName, m.PrimaryArtist, m.Created, m.Updated,
	)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}
	return nil
}

// Update rewrites the track fields of the row with m's query.
func (r *MatchRepository) Update(m *models.CachedMatch) error {
	if err := validateMatch(m); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	m.Updated = time.Now().UTC()
	result, err := r.db.Exec(`
		UPDATE matches
		SET source_id = ?, catalog_id = ?, display_name = ?, primary_artist = ?, updated_at = ?
		WHERE query = ?
	`, m.SourceID, m.CatalogID, m.DisplayName, m.PrimaryArtist, m.Updated, m.Query)
	if err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: no match for query %q", shared.ErrTrackNotFound, m.Query)
	}
	return nil
}

// Upsert creates m or updates the existing row for its query.
func (r *MatchRepository) Upsert(m *models.CachedMatch) error {
	existing, err := r.GetByQuery(m.Query)
	switch {
	case errors.Is(err, shared.ErrTrackNotFound):
		return r.Create(m)
	case err != nil:
		return err
	}

	m.ID = existing.ID
	m.Sequence = existing.Sequence
	m.Created = existing.Created
	return r.Update(m)
}

// Get retrieves a match by ID.
func (r *MatchRepository) Get(id string) (*models.CachedMatch, error) {
	return r.scan(r.db.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE id = ?`, id))
}

// GetByQuery retrieves the match recorded for query.
func (r *MatchRepository) GetByQuery(query string) (*models.CachedMatch, error) {
	return r.scan(r.db.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE query = ?`, query))
}

// List returns the most recent matches first. A limit of 0 returns every row.
func (r *MatchRepository) List(limit int) ([]*models.CachedMatch, error) {
	query := `SELECT ` + matchColumns + ` FROM matches ORDER BY sequence DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []*models.CachedMatch
	for rows.Next() {
		m, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return matches, nil
}

// Count returns the number of recorded matches.
func (r *MatchRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM matches`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return n, nil
}

// Delete removes a match by ID.
func (r *MatchRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM matches WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrTrackNotFound, id)
	}
	return nil
}

// Clear removes every match and returns how many were removed.
func (r *MatchRepository) Clear() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM matches`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear matches: %w", err)
	}
	return result.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *MatchRepository) scan(row scanner) (*models.CachedMatch, error) {
	var m models.CachedMatch
	err := row.Scan(&m.ID, &m.Sequence, &m.Query, &m.SourceID, &m.CatalogID, &m.DisplayName, &m.PrimaryArtist, &m.Created, &m.Updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: match not found", shared.ErrTrackNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan match: %w", err)
	}
	return &m, nil
}
