package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

var (
	ErrNotFound     = errors.New("storage: record not found")
	ErrAlreadyVoted = errors.New("storage: vote already recorded for this scran")
)

// Polarity is the closed like/dislike classification of a vote. The
// counter update dispatches on it to one of two static statements;
// column names are never interpolated into a query.
type Polarity string

const (
	PolarityLike    Polarity = "like"
	PolarityDislike Polarity = "dislike"
)

type Scran struct {
	ID           int64
	ImageRef     string
	Name         string
	Description  *string
	Price        float64
	LikeCount    int
	DislikeCount int
	Approved     bool
	SubmitterID  string
	CreatedAt    time.Time
}

type Storage struct {
	db *sql.DB
}

func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	// sqlite has a single writer; one connection also keeps an
	// in-memory database from splitting per connection.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	s := &Storage{db: db}
	if err = s.initSchema(); err != nil {
		return nil, fmt.Errorf("could not initialize database schema: %w", err)
	}
	log.Println("Database connection successful and schema initialized.")
	return s, nil
}

func (s *Storage) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS scrans (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			image_ref TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			price REAL NOT NULL,
			like_count INTEGER NOT NULL DEFAULT 0,
			dislike_count INTEGER NOT NULL DEFAULT 0,
			approved BOOLEAN NOT NULL DEFAULT FALSE,
			submitter_id TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,

		`CREATE TABLE IF NOT EXISTS votes (
			voter_id TEXT NOT NULL,
			scran_id INTEGER NOT NULL,
			polarity TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (voter_id, scran_id)
		);`,

		`CREATE INDEX IF NOT EXISTS idx_scrans_submitter ON scrans(submitter_id);`,
		`CREATE INDEX IF NOT EXISTS idx_scrans_approved ON scrans(approved);`,
	}
	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			if !strings.Contains(err.Error(), "already exists") {
				return fmt.Errorf("schema execution failed for query '%s': %w", query, err)
			}
		}
	}
	return nil
}

func (s *Storage) InsertScran(imageRef, name string, description *string, price float64, submitterID string) (int64, error) {
	query := `INSERT INTO scrans (image_ref, name, description, price, like_count, dislike_count, approved, submitter_id)
		VALUES (?, ?, ?, ?, 0, 0, FALSE, ?)`
	res, err := s.db.Exec(query, imageRef, name, description, price, submitterID)
	if err != nil {
		return 0, fmt.Errorf("could not insert scran: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("could not get id of inserted scran: %w", err)
	}
	return id, nil
}

func (s *Storage) GetScran(id int64) (*Scran, error) {
	query := `SELECT id, image_ref, name, description, price, like_count, dislike_count, approved, submitter_id, created_at
		FROM scrans WHERE id = ?`
	return s.scanScran(s.db.QueryRow(query, id))
}

// ListBySubmitter returns the scrans a user suggested, most recent first.
func (s *Storage) ListBySubmitter(submitterID string, limit int) ([]Scran, error) {
	query := `SELECT id, image_ref, name, description, price, like_count, dislike_count, approved, submitter_id, created_at
		FROM scrans WHERE submitter_id = ? ORDER BY id DESC LIMIT ?`
	rows, err := s.db.Query(query, submitterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectScrans(rows)
}

func (s *Storage) SetApproved(id int64) error {
	res, err := s.db.Exec(`UPDATE scrans SET approved = TRUE WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListLeastVoted returns approved scrans ordered by ascending vote sum,
// ties broken randomly.
func (s *Storage) ListLeastVoted(limit int) ([]Scran, error) {
	query := `SELECT id, image_ref, name, description, price, like_count, dislike_count, approved, submitter_id, created_at
		FROM scrans
		WHERE approved = TRUE
		ORDER BY (like_count + dislike_count) ASC, RANDOM()
		LIMIT ?`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectScrans(rows)
}

// GetRandomApproved returns a random approved scran. A non-zero
// excludeID is left out of the draw.
func (s *Storage) GetRandomApproved(excludeID int64) (*Scran, error) {
	query := `SELECT id, image_ref, name, description, price, like_count, dislike_count, approved, submitter_id, created_at
		FROM scrans
		WHERE approved = TRUE AND (? = 0 OR id != ?)
		ORDER BY RANDOM()
		LIMIT 1`
	return s.scanScran(s.db.QueryRow(query, excludeID, excludeID))
}

func (s *Storage) ListVotedScranIDs(voterID string) (map[int64]struct{}, error) {
	rows, err := s.db.Query(`SELECT scran_id FROM votes WHERE voter_id = ?`, voterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	voted := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		voted[id] = struct{}{}
	}
	return voted, rows.Err()
}

func (s *Storage) HasVoted(voterID string, scranID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM votes WHERE voter_id = ? AND scran_id = ?)`
	err := s.db.QueryRow(query, voterID, scranID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *Storage) CountApproved() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM scrans WHERE approved = TRUE`).Scan(&count)
	return count, err
}

// RecordVote inserts the vote and increments the matching counter in a
// single transaction. The primary key on (voter_id, scran_id) makes the
// duplicate check and the insert one atomic step: a second vote by the
// same voter fails on the constraint and mutates nothing.
func (s *Storage) RecordVote(voterID string, scranID int64, polarity Polarity) error {
	var update string
	switch polarity {
	case PolarityLike:
		update = `UPDATE scrans SET like_count = like_count + 1 WHERE id = ?`
	case PolarityDislike:
		update = `UPDATE scrans SET dislike_count = dislike_count + 1 WHERE id = ?`
	default:
		return fmt.Errorf("storage: unknown polarity %q", polarity)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin vote transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO votes (voter_id, scran_id, polarity) VALUES (?, ?, ?)`,
		voterID, scranID, string(polarity))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") ||
			strings.Contains(err.Error(), "constraint failed") {
			return ErrAlreadyVoted
		}
		return fmt.Errorf("could not insert vote: %w", err)
	}

	res, err := tx.Exec(update, scranID)
	if err != nil {
		return fmt.Errorf("could not update vote counter: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

func (s *Storage) Close() {
	s.db.Close()
}

func (s *Storage) scanScran(row *sql.Row) (*Scran, error) {
	var scran Scran
	var description sql.NullString
	err := row.Scan(&scran.ID, &scran.ImageRef, &scran.Name, &description, &scran.Price,
		&scran.LikeCount, &scran.DislikeCount, &scran.Approved, &scran.SubmitterID, &scran.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if description.Valid {
		scran.Description = &description.String
	}
	return &scran, nil
}

func collectScrans(rows *sql.Rows) ([]Scran, error) {
	var scrans []Scran
	for rows.Next() {
		var scran Scran
		var description sql.NullString
		if err := rows.Scan(&scran.ID, &scran.ImageRef, &scran.Name, &description, &scran.Price,
			&scran.LikeCount, &scran.DislikeCount, &scran.Approved, &scran.SubmitterID, &scran.CreatedAt); err != nil {
			return nil, err
		}
		if description.Valid {
			scran.Description = &description.String
		}
		scrans = append(scrans, scran)
	}
	return scrans, rows.Err()
}
