// Seeds a demo library file and prints the album view of every artist.
package main

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"

	"github.com/llehouerou/synaudio/internal/db"
	"github.com/llehouerou/synaudio/internal/library"
)

type demoAlbum struct {
	id     int64
	artist string
	name   string
	year   int
}

type demoSong struct {
	path    string
	title   string
	artist  string
	albumID int64
	track   int
}

var (
	albums = []demoAlbum{
		{1, "David Bowie", "Hunky Dory", 1971},
		{2, "David Bowie", "Low", 1977},
		{3, "David Bowie", "Heroes", 1977},
		{4, "Brian Eno", "Another Green World", 1975},
	}
	songs = []demoSong{
		{"/David Bowie/Hunky Dory/01 Changes.flac", "Changes", "David Bowie", 1, 1},
		{"/David Bowie/Low/01 Speed of Life.flac", "Speed of Life", "David Bowie", 2, 1},
		{"/David Bowie/Heroes/03 Heroes.flac", "Heroes", "David Bowie", 3, 3},
		{"/David Bowie/Singles/Space Oddity.mp3", "Space Oddity", "David Bowie", 0, 0},
		{"/Brian Eno/Another Green World/01 Sky Saw.flac", "Sky Saw", "Brian Eno", 4, 1},
		{"/Unsorted/track01.mp3", "", "", 0, 0},
	}
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <library.db>", filepath.Base(os.Args[0]))
	}
	path := os.Args[1]

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	store, err := db.Open(path)
	if err != nil {
		log.Fatalf("Failed to open library: %v", err)
	}
	defer store.Close()

	if err := library.InitSchema(store); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	err = db.WithTx(store.DB(), func(tx *sql.Tx) error {
		for _, a := range albums {
			if _, err := tx.Exec(`INSERT OR REPLACE INTO albums (id, artist, name, year) VALUES (?, ?, ?, ?)`,
				a.id, a.artist, a.name, a.year); err != nil {
				return err
			}
		}
		for _, s := range songs {
			if _, err := tx.Exec(`
				INSERT OR REPLACE INTO songs (path, title, artist, album_id, track_number)
				VALUES (?, ?, NULLIF(?, ''), ?, NULLIF(?, 0))
			`, s.path, s.title, s.artist, s.albumID, s.track); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to seed library: %v", err)
	}
	log.Printf("Seeded %d albums and %d songs into %s", len(albums), len(songs), path)

	lib := library.New(store)
	artists, err := lib.Artists()
	if err != nil {
		log.Fatalf("Failed to list artists: %v", err)
	}
	for _, artist := range artists {
		view, err := lib.GetAlbums(artist)
		if err != nil {
			log.Fatalf("Failed to load albums for %q: %v", artist, err)
		}
		log.Printf("%q:", artist)
		for _, a := range view {
			log.Printf("  [%d] %q %d", a.ID, a.Name, a.Year)
		}
	}
}
