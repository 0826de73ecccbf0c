package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Profile is a named set of gesture tuning values. Durations are
// stored as milliseconds.
type Profile struct {
	ID                  string
	Name                string
	SmoothingFactor     float64
	EdgeMargin          int
	PinchThreshold      float64
	DragHoldMs          int
	ClickCooldownMs     int
	DoubleClickWindowMs int
	ShortcutCooldownMs  int
	AuthHoldMs          int
	ScrollSensitivity   float64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ProfileRepository provides CRUD operations for profiles.
type ProfileRepository struct {
	db *sql.DB
}

// Profiles returns the profile repository for this store.
func (s *Store) Profiles() *ProfileRepository {
	return &ProfileRepository{db: s.db}
}

const profileColumns = `id, name, smoothing_factor, edge_margin, pinch_threshold,
	drag_hold_ms, click_cooldown_ms, double_click_window_ms,
	shortcut_cooldown_ms, auth_hold_ms, scroll_sensitivity,
	created_at, updated_at`

func scanProfile(row interface{ Scan(...interface{}) error }) (*Profile, error) {
	p := &Profile{}
	err := row.Scan(
		&p.ID, &p.Name, &p.SmoothingFactor, &p.EdgeMargin, &p.PinchThreshold,
		&p.DragHoldMs, &p.ClickCooldownMs, &p.DoubleClickWindowMs,
		&p.ShortcutCooldownMs, &p.AuthHoldMs, &p.ScrollSensitivity,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create inserts a new profile into the database.
func (r *ProfileRepository) Create(p *Profile) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO profiles (`+profileColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.SmoothingFactor, p.EdgeMargin, p.PinchThreshold,
		p.DragHoldMs, p.ClickCooldownMs, p.DoubleClickWindowMs,
		p.ShortcutCooldownMs, p.AuthHoldMs, p.ScrollSensitivity,
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// GetByID retrieves a profile by its ID.
func (r *ProfileRepository) GetByID(id string) (*Profile, error) {
	return scanProfile(r.db.QueryRow(
		`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id,
	))
}

// GetByName retrieves a profile by its unique name.
func (r *ProfileRepository) GetByName(name string) (*Profile, error) {
	return scanProfile(r.db.QueryRow(
		`SELECT `+profileColumns+` FROM profiles WHERE name = ?`, name,
	))
}

// List returns all profiles ordered by name.
func (r *ProfileRepository) List() ([]*Profile, error) {
	rows, err := r.db.Query(`SELECT ` + profileColumns + ` FROM profiles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// Update rewrites all tuning fields of an existing profile.
func (r *ProfileRepository) Update(p *Profile) error {
	p.UpdatedAt = time.Now()

	res, err := r.db.Exec(
		`UPDATE profiles SET name = ?, smoothing_factor = ?, edge_margin = ?,
			pinch_threshold = ?, drag_hold_ms = ?, click_cooldown_ms = ?,
			double_click_window_ms = ?, shortcut_cooldown_ms = ?,
			auth_hold_ms = ?, scroll_sensitivity = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name, p.SmoothingFactor, p.EdgeMargin, p.PinchThreshold,
		p.DragHoldMs, p.ClickCooldownMs, p.DoubleClickWindowMs,
		p.ShortcutCooldownMs, p.AuthHoldMs, p.ScrollSensitivity,
		p.UpdatedAt, p.ID,
	)
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

// Delete removes a profile by ID.
func (r *ProfileRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM profiles WHERE id = ?`, id)
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
