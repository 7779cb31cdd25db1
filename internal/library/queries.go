package library

import (
	"github.com/llehouerou/synaudio/internal/db"
	"github.com/llehouerou/synaudio/internal/dberr"
	"github.com/llehouerou/synaudio/internal/query"
)

// Artists returns all distinct song artists, case-insensitively sorted.
// Songs without an artist are reported as "".
func (l *Library) Artists() ([]string, error) {
	col, err := songSchema.Column("Artist")
	if err != nil {
		return nil, err
	}

	var artists []string
	err = l.store.WithSession(func(s *db.Session) error {
		artists, err = s.Strings(`
			SELECT DISTINCT COALESCE(` + col + `, '') AS artist
			FROM ` + songSchema.Table + `
			ORDER BY artist COLLATE NOCASE
		`)
		return err
	})
	if err != nil {
		return nil, err
	}
	return artists, nil
}

// Songs returns the songs shown for an album view entry. albumID may be
// AllSongsID (every song of the artist) or UnassignedAlbumID (the artist's
// songs with no album); any other id lists that album's songs.
func (l *Library) Songs(artist string, albumID int64) ([]Song, error) {
	l.log.Debug("Songs", "artist", artist, "album_id", albumID)

	cols, err := songSchema.Columns("AlbumID", "Year", "TrackNumber", "Title")
	if err != nil {
		return nil, err
	}
	albumCol, yearCol, trackCol, titleCol := cols[0], cols[1], cols[2], cols[3]

	var where query.Fragment
	order := []query.Order{query.Asc(trackCol), query.Asc(titleCol)}
	switch albumID {
	case AllSongsID:
		if where, err = songArtistMatch(artist); err != nil {
			return nil, err
		}
		order = append([]query.Order{query.Asc(yearCol), query.Asc(albumCol)}, order...)
	case UnassignedAlbumID:
		match, err := songArtistMatch(artist)
		if err != nil {
			return nil, err
		}
		where = query.And(match, query.Eq(albumCol, UnassignedAlbumID))
	default:
		where = query.Eq(albumCol, albumID)
	}

	var songs []Song
	err = l.store.WithSession(func(s *db.Session) error {
		songs, err = db.SelectWhere[Song](s, where, order...)
		return err
	})
	if err != nil {
		return nil, err
	}
	return songs, nil
}

// SongCount returns the total number of songs in the library.
func (l *Library) SongCount() (int, error) {
	var count int
	err := l.store.WithSession(func(s *db.Session) error {
		v, err := s.Scalar(`SELECT COUNT(*) FROM ` + songSchema.Table)
		if err != nil {
			return err
		}
		count, err = countOf(v)
		return err
	})
	return count, err
}

func countOf(v db.Value) (int, error) {
	n, ok := v.Int64()
	if !ok {
		return 0, dberr.SchemaMapping("song count", "COUNT(*) returned %T, want int64", v.V)
	}
	return int(n), nil
}
