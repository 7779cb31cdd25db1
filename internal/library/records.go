package library

import (
	"github.com/llehouerou/synaudio/internal/schema"
)

// Sentinel identities outside the normal id space.
const (
	// AllSongsID identifies the synthetic "All songs" album entry.
	AllSongsID int64 = -1
	// UnassignedAlbumID is the album id of songs with no album.
	UnassignedAlbumID int64 = 0
)

// AllSongsName is the display name of the "All songs" entry.
const AllSongsName = "All songs"

type Song struct {
	ID          int64 `db:"id,identity"`
	Path        string
	Title       string
	Artist      string
	AlbumArtist string
	AlbumID     int64 `db:"album_id"`
	TrackNumber int
	Year        int
	Genre       string
}

type Album struct {
	ID     int64 `db:"id,identity"`
	Artist string
	Name   string
	Year   int
}

// IsAllSongs reports whether a is the synthetic "All songs" entry.
func (a Album) IsAllSongs() bool {
	return a.ID == AllSongsID
}

// IsPlaceholder reports whether a is the synthetic entry grouping songs
// without an album.
func (a Album) IsPlaceholder() bool {
	return a.ID == UnassignedAlbumID && a.Name == "" && a.Artist == ""
}

var (
	songSchema  = schema.Register[Song]()
	albumSchema = schema.Register[Album]()
)
