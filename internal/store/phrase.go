package store

import (
	"database/sql"
	"errors"
	"time"
)

// Phrase is a user-defined spoken trigger mapped onto a built-in
// command name.
type Phrase struct {
	ID        string
	Phrase    string
	Command   string
	CreatedAt time.Time
}

// PhraseRepository provides CRUD operations for custom voice phrases.
type PhraseRepository struct {
	db *sql.DB
}

// Phrases returns the phrase repository for this store.
func (s *Store) Phrases() *PhraseRepository {
	return &PhraseRepository{db: s.db}
}

// Create inserts a new phrase into the database.
func (r *PhraseRepository) Create(p *Phrase) error {
	p.CreatedAt = time.Now()
	_, err := r.db.Exec(
		`INSERT INTO voice_phrases (id, phrase, command, created_at)
		 VALUES (?, ?, ?, ?)`,
		p.ID, p.Phrase, p.Command, p.CreatedAt,
	)
	return err
}

// List returns all phrases ordered by creation time.
func (r *PhraseRepository) List() ([]*Phrase, error) {
	rows, err := r.db.Query(
		`SELECT id, phrase, command, created_at FROM voice_phrases ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var phrases []*Phrase
	for rows.Next() {
		p := &Phrase{}
		if err := rows.Scan(&p.ID, &p.Phrase, &p.Command, &p.CreatedAt); err != nil {
			return nil, err
		}
		phrases = append(phrases, p)
	}
	return phrases, rows.Err()
}

// GetByID retrieves a phrase by its ID.
func (r *PhraseRepository) GetByID(id string) (*Phrase, error) {
	p := &Phrase{}
	err := r.db.QueryRow(
		`SELECT id, phrase, command, created_at FROM voice_phrases WHERE id = ?`, id,
	).Scan(&p.ID, &p.Phrase, &p.Command, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Delete removes a phrase by ID.
func (r *PhraseRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM voice_phrases WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
