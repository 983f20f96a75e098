package database

// migrations holds ordered statement groups; the version of a group is its
// 1-based index.
var migrations = [][]string{
	// 1: form definitions and submitted entries
	{
		`CREATE TABLE forms (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			definition TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,

		`CREATE TABLE entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			form_id TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at TEXT NOT NULL,
			FOREIGN KEY (form_id) REFERENCES forms(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX idx_entries_form ON entries(form_id, created_at)`,
	},
	// 2: source page and confirmation recorded per entry
	{
		`ALTER TABLE entries ADD COLUMN source_page INTEGER NOT NULL DEFAULT 1`,
		`ALTER TABLE forms ADD COLUMN confirmation TEXT NOT NULL DEFAULT ''`,
	},
}
