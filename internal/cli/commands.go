package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/llehouerou/synaudio/internal/errmsg"
	"github.com/llehouerou/synaudio/internal/library"
)

// NewInitCommand creates the library file and its tables.
func NewInitCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the library file and tables if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(filepath.Dir(opts.cfg.LibraryFile), 0o755); err != nil {
				return userError(errmsg.Format(errmsg.OpLibraryInit, err), err)
			}
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := library.InitSchema(store); err != nil {
				return userError(errmsg.Format(errmsg.OpLibraryInit, err), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "library ready: %s\n", opts.cfg.LibraryFile)
			return nil
		},
	}
}

// NewAlbumsCommand lists the album view for an artist.
func NewAlbumsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "albums [artist]",
		Short: "Show the album view of an artist (no artist: unknown artist)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			artist := ""
			if len(args) == 1 {
				artist = args[0]
			}
			return opts.withLibrary(func(lib *library.Library) error {
				albums, err := lib.GetAlbums(artist)
				if err != nil {
					return userError(errmsg.FormatWith(errmsg.OpAlbumLoad, artist, err), err)
				}
				renderAlbums(cmd.OutOrStdout(), albums)
				return nil
			})
		},
	}
}

// NewAlbumCommand shows a single album.
func NewAlbumCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "album <id>",
		Short: "Show one album by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid album id %q", args[0])
			}
			return opts.withLibrary(func(lib *library.Library) error {
				album, err := lib.GetAlbum(id)
				if err != nil {
					return userError(errmsg.FormatWith(errmsg.OpAlbumGet, args[0], err), err)
				}
				if album == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "no album with id %d\n", id)
					return nil
				}
				renderAlbums(cmd.OutOrStdout(), []library.Album{*album})
				return nil
			})
		},
	}
}

// NewArtistsCommand lists every artist.
func NewArtistsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "artists",
		Short: "List artists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withLibrary(func(lib *library.Library) error {
				artists, err := lib.Artists()
				if err != nil {
					return userError(errmsg.Format(errmsg.OpArtistLoad, err), err)
				}
				renderArtists(cmd.OutOrStdout(), artists)
				return nil
			})
		},
	}
}

// NewSongsCommand lists the songs of an album view entry.
func NewSongsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "songs <artist> [album-id]",
		Short: "List songs of an artist (omit album-id for all songs, 0 for songs without album)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			albumID := library.AllSongsID
			if len(args) == 2 {
				id, err := strconv.ParseInt(args[1], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid album id %q", args[1])
				}
				albumID = id
			}
			return opts.withLibrary(func(lib *library.Library) error {
				songs, err := lib.Songs(args[0], albumID)
				if err != nil {
					return userError(errmsg.FormatWith(errmsg.OpSongLoad, args[0], err), err)
				}
				renderSongs(cmd.OutOrStdout(), songs, opts.cfg.MediaPath)
				return nil
			})
		},
	}
}
