package library

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/llehouerou/synaudio/internal/db"
)

func setupTestLibrary(t *testing.T) (*Library, *db.Store) {
	t.Helper()
	store, err := db.Open(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := InitSchema(store); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	return New(store), store
}

func mustExec(t *testing.T, store *db.Store, query string, args ...any) {
	t.Helper()
	if _, err := store.DB().Exec(query, args...); err != nil {
		t.Fatalf("exec failed: %v", err)
	}
}

func assertNoSessionsInUse(t *testing.T, store *db.Store) {
	t.Helper()
	if n := store.InUse(); n != 0 {
		t.Errorf("%d sessions still in use", n)
	}
}

func TestGetAlbums_BowieScenario(t *testing.T) {
	lib, store := setupTestLibrary(t)

	mustExec(t, store, `
		INSERT INTO albums (id, artist, name, year) VALUES (5, 'Bowie', 'Heroes', 1977);
		INSERT INTO songs (path, title, artist, album_id) VALUES
			('/bowie/loose.mp3', 'Loose', 'Bowie', 0),
			('/bowie/heroes.mp3', 'Heroes', 'Bowie', 5);
	`)

	albums, err := lib.GetAlbums("Bowie")
	if err != nil {
		t.Fatalf("GetAlbums failed: %v", err)
	}

	expected := []Album{
		{ID: -1, Name: "All songs", Artist: "Bowie"},
		{Name: "", Artist: ""},
		{ID: 5, Name: "Heroes", Artist: "Bowie", Year: 1977},
	}
	if !reflect.DeepEqual(albums, expected) {
		t.Errorf("GetAlbums(Bowie) = %+v, want %+v", albums, expected)
	}
	if !albums[0].IsAllSongs() || !albums[1].IsPlaceholder() {
		t.Errorf("unexpected synthetic entries: %+v", albums[:2])
	}
	assertNoSessionsInUse(t, store)
}

func TestGetAlbums_EmptyArtistWithoutUnknownSongs(t *testing.T) {
	lib, store := setupTestLibrary(t)

	mustExec(t, store, `
		INSERT INTO albums (id, artist, name, year) VALUES (5, 'Bowie', 'Heroes', 1977);
		INSERT INTO songs (path, artist, album_artist, album_id) VALUES
			('/a.mp3', 'Bowie', 'Bowie', 0),
			('/b.mp3', '', 'Bowie', 0),
			('/c.mp3', 'Bowie', NULL, 0);
	`)

	albums, err := lib.GetAlbums("")
	if err != nil {
		t.Fatalf("GetAlbums failed: %v", err)
	}

	expected := []Album{{ID: AllSongsID, Name: AllSongsName, Artist: ""}}
	if !reflect.DeepEqual(albums, expected) {
		t.Errorf("GetAlbums(\"\") = %+v, want %+v", albums, expected)
	}
}

func TestGetAlbums_EmptyArtistWithUnknownSongs(t *testing.T) {
	tests := []struct {
		name   string
		artist string
		insert string
	}{
		{"empty strings", "", `INSERT INTO songs (path, artist, album_artist, album_id) VALUES ('/x.mp3', '', '', 0)`},
		{"nulls", "", `INSERT INTO songs (path, artist, album_artist, album_id) VALUES ('/x.mp3', NULL, NULL, 0)`},
		{"mixed", "", `INSERT INTO songs (path, artist, album_artist, album_id) VALUES ('/x.mp3', NULL, '', 0)`},
		{"whitespace filter", "   ", `INSERT INTO songs (path, artist, album_artist, album_id) VALUES ('/x.mp3', NULL, NULL, 0)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib, store := setupTestLibrary(t)
			mustExec(t, store, tt.insert)

			albums, err := lib.GetAlbums(tt.artist)
			if err != nil {
				t.Fatalf("GetAlbums failed: %v", err)
			}
			if len(albums) != 2 {
				t.Fatalf("expected 2 entries, got %+v", albums)
			}
			if albums[0].ID != AllSongsID || albums[0].Artist != tt.artist {
				t.Errorf("first entry = %+v, want All songs for %q", albums[0], tt.artist)
			}
			if !albums[1].IsPlaceholder() {
				t.Errorf("second entry = %+v, want placeholder", albums[1])
			}
		})
	}
}

func TestGetAlbums_UnknownSongWithAlbumDoesNotAddPlaceholder(t *testing.T) {
	lib, store := setupTestLibrary(t)

	mustExec(t, store, `
		INSERT INTO songs (path, artist, album_artist, album_id) VALUES ('/x.mp3', NULL, NULL, 3)
	`)

	albums, err := lib.GetAlbums("")
	if err != nil {
		t.Fatalf("GetAlbums failed: %v", err)
	}
	if len(albums) != 1 {
		t.Errorf("expected only All songs entry, got %+v", albums)
	}
}

func TestGetAlbums_OtherArtistSongsIgnored(t *testing.T) {
	lib, store := setupTestLibrary(t)

	mustExec(t, store, `
		INSERT INTO albums (artist, name, year) VALUES ('Eno', 'Another Green World', 1975);
		INSERT INTO songs (path, artist, album_id) VALUES ('/eno.mp3', 'Eno', 0);
	`)

	albums, err := lib.GetAlbums("Bowie")
	if err != nil {
		t.Fatalf("GetAlbums failed: %v", err)
	}
	expected := []Album{{ID: AllSongsID, Name: AllSongsName, Artist: "Bowie"}}
	if !reflect.DeepEqual(albums, expected) {
		t.Errorf("GetAlbums(Bowie) = %+v, want %+v", albums, expected)
	}
}

func TestGetAlbums_OrderedByYearThenName(t *testing.T) {
	lib, store := setupTestLibrary(t)

	mustExec(t, store, `
		INSERT INTO albums (artist, name, year) VALUES
			('Bowie', 'Lodger', 1979),
			('Bowie', 'Low', 1977),
			('Bowie', 'Heroes', 1977),
			('Bowie', 'Hunky Dory', 1971),
			('Bowie', 'Outtakes', 0),
			('Eno', 'Before and After Science', 1977);
	`)

	albums, err := lib.GetAlbums("Bowie")
	if err != nil {
		t.Fatalf("GetAlbums failed: %v", err)
	}

	// No unassigned songs, so real albums start right after All songs.
	expected := []struct {
		name string
		year int
	}{
		{"All songs", 0},
		{"Outtakes", 0},
		{"Hunky Dory", 1971},
		{"Heroes", 1977},
		{"Low", 1977},
		{"Lodger", 1979},
	}
	if len(albums) != len(expected) {
		t.Fatalf("expected %d entries, got %d: %+v", len(expected), len(albums), albums)
	}
	for i, a := range albums {
		if a.Name != expected[i].name || a.Year != expected[i].year {
			t.Errorf("album[%d] = %s (%d), expected %s (%d)", i, a.Name, a.Year, expected[i].name, expected[i].year)
		}
	}

	for i := 2; i < len(albums); i++ {
		prev, cur := albums[i-1], albums[i]
		if prev.Year > cur.Year || (prev.Year == cur.Year && prev.Name > cur.Name) {
			t.Errorf("albums not ordered at %d: %+v before %+v", i, prev, cur)
		}
	}
}

func TestGetAlbums_EmptyStore(t *testing.T) {
	lib, store := setupTestLibrary(t)

	for _, artist := range []string{"", "Bowie", " "} {
		albums, err := lib.GetAlbums(artist)
		if err != nil {
			t.Fatalf("GetAlbums(%q) failed: %v", artist, err)
		}
		if len(albums) != 1 || albums[0].ID != AllSongsID || albums[0].Artist != artist {
			t.Errorf("GetAlbums(%q) = %+v, want only All songs", artist, albums)
		}
	}
	assertNoSessionsInUse(t, store)
}

func TestGetAlbums_BlankArtistMatchesEmptyArtist(t *testing.T) {
	lib, store := setupTestLibrary(t)

	mustExec(t, store, `
		INSERT INTO albums (id, artist, name, year) VALUES (7, '', 'Compilation', 1990);
		INSERT INTO songs (path, title, artist, album_id) VALUES ('/misc/a.mp3', 'A', '', 7);
	`)

	empty, err := lib.GetAlbums("")
	if err != nil {
		t.Fatalf("GetAlbums(\"\") failed: %v", err)
	}
	blank, err := lib.GetAlbums("  ")
	if err != nil {
		t.Fatalf("GetAlbums(blank) failed: %v", err)
	}

	want := Album{ID: 7, Name: "Compilation", Year: 1990}
	if len(empty) != 2 || empty[1] != want {
		t.Errorf("GetAlbums(\"\") = %+v, want All songs then %+v", empty, want)
	}
	if len(blank) != len(empty) {
		t.Fatalf("GetAlbums(blank) = %+v, want %d entries", blank, len(empty))
	}
	if blank[0].Artist != "  " {
		t.Errorf("All songs artist = %q, want filter as given", blank[0].Artist)
	}
	if blank[1] != want {
		t.Errorf("GetAlbums(blank)[1] = %+v, want %+v", blank[1], want)
	}
	assertNoSessionsInUse(t, store)
}

func TestGetAlbum(t *testing.T) {
	lib, store := setupTestLibrary(t)

	mustExec(t, store, `INSERT INTO albums (id, artist, name, year) VALUES (5, 'Bowie', 'Heroes', 1977)`)

	album, err := lib.GetAlbum(5)
	if err != nil {
		t.Fatalf("GetAlbum failed: %v", err)
	}
	if album == nil {
		t.Fatal("expected album, got nil")
	}
	if *album != (Album{ID: 5, Artist: "Bowie", Name: "Heroes", Year: 1977}) {
		t.Errorf("GetAlbum(5) = %+v", *album)
	}

	for _, id := range []int64{999, AllSongsID, UnassignedAlbumID} {
		missing, err := lib.GetAlbum(id)
		if err != nil {
			t.Fatalf("GetAlbum(%d) should not fail: %v", id, err)
		}
		if missing != nil {
			t.Errorf("GetAlbum(%d) = %+v, want nil", id, *missing)
		}
	}
	assertNoSessionsInUse(t, store)
}

func TestGetAlbums_StoreErrorPropagates(t *testing.T) {
	store, err := db.Open(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()
	lib := New(store)

	// No schema: the existence check fails and the session is released.
	if _, err := lib.GetAlbums("Bowie"); err == nil {
		t.Fatal("expected error on missing tables")
	}
	assertNoSessionsInUse(t, store)
}
