package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS preferences (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			volume INTEGER NOT NULL DEFAULT 100,
			load_speed INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS recent_videos (
			path TEXT PRIMARY KEY,
			opened_at INTEGER NOT NULL,
			last_position_ms INTEGER NOT NULL DEFAULT 0,
			active_group INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_recent_videos_opened ON recent_videos(opened_at DESC);

		CREATE TABLE IF NOT EXISTS saved_groups (
			video_path TEXT NOT NULL REFERENCES recent_videos(path) ON DELETE CASCADE,
			group_index INTEGER NOT NULL,
			occupied INTEGER NOT NULL,
			saved_at INTEGER NOT NULL,
			PRIMARY KEY (video_path, group_index)
		);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
