package library

import (
	"strings"

	"github.com/llehouerou/synaudio/internal/db"
	"github.com/llehouerou/synaudio/internal/query"
)

// GetAlbum returns the album with the given id, or nil if there is none.
func (l *Library) GetAlbum(id int64) (*Album, error) {
	l.log.Debug("GetAlbum", "id", id)

	var album *Album
	err := l.store.WithSession(func(s *db.Session) error {
		var err error
		album, err = db.SelectByID[Album](s, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return album, nil
}

// GetAlbums returns the album view for an artist:
//
//  1. the "All songs" entry (id -1) for the artist,
//  2. an empty placeholder entry if any of the artist's songs has no album,
//  3. the artist's albums by year, then name.
//
// An empty or blank artist is the unknown artist: the placeholder check
// selects songs with neither artist nor album artist, and albums are
// matched on an empty artist. The "All songs" entry keeps the artist as
// given. The result is never empty and must not be re-sorted by the caller.
func (l *Library) GetAlbums(artist string) ([]Album, error) {
	l.log.Debug("GetAlbums", "artist", artist)

	result := []Album{{
		ID:     AllSongsID,
		Artist: artist,
		Name:   AllSongsName,
	}}

	err := l.store.WithSession(func(s *db.Session) error {
		match, err := songArtistMatch(artist)
		if err != nil {
			return err
		}
		albumCol, err := songSchema.Column("AlbumID")
		if err != nil {
			return err
		}

		unassigned, err := s.Exists(songSchema.Table, query.And(match, query.Eq(albumCol, UnassignedAlbumID)))
		if err != nil {
			return err
		}
		if unassigned {
			result = append(result, Album{})
		}

		cols, err := albumSchema.Columns("Artist", "Year", "Name")
		if err != nil {
			return err
		}
		albumArtist := artist
		if isUnknownArtist(artist) {
			albumArtist = ""
		}
		albums, err := db.SelectWhere[Album](s,
			query.Eq(cols[0], albumArtist),
			query.Asc(cols[1]), query.Asc(cols[2]))
		if err != nil {
			return err
		}
		result = append(result, albums...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// songArtistMatch selects songs by artist. A blank artist matches songs
// whose artist and album artist are both empty or NULL.
func songArtistMatch(artist string) (query.Fragment, error) {
	cols, err := songSchema.Columns("Artist", "AlbumArtist")
	if err != nil {
		return query.Fragment{}, err
	}
	if isUnknownArtist(artist) {
		return query.And(query.IsEmpty(cols[0]), query.IsEmpty(cols[1])), nil
	}
	return query.Eq(cols[0], artist), nil
}

func isUnknownArtist(artist string) bool {
	return strings.TrimSpace(artist) == ""
}
