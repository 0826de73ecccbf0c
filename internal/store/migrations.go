package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Profiles table - named sets of gesture tuning values
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			smoothing_factor REAL NOT NULL DEFAULT 6,
			edge_margin INTEGER NOT NULL DEFAULT 80,
			pinch_threshold REAL NOT NULL DEFAULT 35,
			drag_hold_ms INTEGER NOT NULL DEFAULT 250,
			click_cooldown_ms INTEGER NOT NULL DEFAULT 250,
			double_click_window_ms INTEGER NOT NULL DEFAULT 350,
			shortcut_cooldown_ms INTEGER NOT NULL DEFAULT 1800,
			auth_hold_ms INTEGER NOT NULL DEFAULT 1000,
			scroll_sensitivity REAL NOT NULL DEFAULT 2.8,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Voice phrases table - user-defined spoken triggers
		`CREATE TABLE IF NOT EXISTS voice_phrases (
			id TEXT PRIMARY KEY,
			phrase TEXT NOT NULL UNIQUE,
			command TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_profiles_name ON profiles(name)`,
		`CREATE INDEX IF NOT EXISTS idx_voice_phrases_command ON voice_phrases(command)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
