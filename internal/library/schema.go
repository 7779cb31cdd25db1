package library

import (
	"database/sql"

	"github.com/llehouerou/synaudio/internal/db"
)

// InitSchema creates the songs and albums tables if they do not exist.
// Existing libraries are used as they are.
func InitSchema(store *db.Store) error {
	return db.WithTx(store.DB(), func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS albums (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				artist TEXT,
				name TEXT NOT NULL,
				year INTEGER NOT NULL DEFAULT 0
			);

			CREATE INDEX IF NOT EXISTS idx_albums_artist ON albums(artist, year, name);

			CREATE TABLE IF NOT EXISTS songs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				path TEXT NOT NULL UNIQUE,
				title TEXT,
				artist TEXT,
				album_artist TEXT,
				album_id INTEGER NOT NULL DEFAULT 0,
				track_number INTEGER,
				year INTEGER,
				genre TEXT
			);

			CREATE INDEX IF NOT EXISTS idx_songs_artist ON songs(artist);
			CREATE INDEX IF NOT EXISTS idx_songs_album_id ON songs(album_id);
		`)
		return err
	})
}
