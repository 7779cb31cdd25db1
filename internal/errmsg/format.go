// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"fmt"

	"github.com/llehouerou/synaudio/internal/dberr"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Library operations
	OpLibraryOpen Op = "open library"
	OpLibraryInit Op = "initialize library"
	OpLibraryLoad Op = "load library"

	// Album view
	OpAlbumLoad  Op = "load albums"
	OpAlbumGet   Op = "load album"
	OpArtistLoad Op = "load artists"
	OpSongLoad   Op = "load songs"

	// Initialization
	OpConfigLoad Op = "load configuration"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v%s", op, err, hint(err))
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v%s", op, context, err, hint(err))
}

func hint(err error) string {
	switch dberr.KindOf(err) {
	case dberr.KindStoreConnection:
		return " (check library_file in config)"
	case dberr.KindSchemaMapping, dberr.KindQueryExecution:
		return " (library schema may be outdated; run 'synaudio init')"
	}
	return ""
}
