package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/llehouerou/synaudio/internal/library"
)

// UserError carries a formatted message for the terminal while keeping the
// underlying error for errors.Is checks.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string { return e.Message }

func (e *UserError) Unwrap() error { return e.Err }

func userError(message string, err error) error {
	return &UserError{Message: message, Err: err}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	idStyle     = lipgloss.NewStyle().Width(6).Align(lipgloss.Right)
)

const noAlbumLabel = "(no album)"

func renderAlbums(w io.Writer, albums []library.Album) {
	for _, a := range albums {
		switch {
		case a.IsAllSongs():
			fmt.Fprintf(w, "%s  %s\n", idStyle.Render(fmt.Sprint(a.ID)), headerStyle.Render(a.Name))
		case a.IsPlaceholder():
			fmt.Fprintf(w, "%s  %s\n", idStyle.Render(fmt.Sprint(a.ID)), mutedStyle.Render(noAlbumLabel))
		default:
			year := ""
			if a.Year > 0 {
				year = fmt.Sprintf(" (%d)", a.Year)
			}
			fmt.Fprintf(w, "%s  %s%s\n", idStyle.Render(fmt.Sprint(a.ID)), a.Name, mutedStyle.Render(year))
		}
	}
}

func renderArtists(w io.Writer, artists []string) {
	for _, a := range artists {
		if a == "" {
			fmt.Fprintln(w, mutedStyle.Render("(unknown artist)"))
			continue
		}
		fmt.Fprintln(w, a)
	}
}

func renderSongs(w io.Writer, songs []library.Song, resolve func(string) string) {
	for _, s := range songs {
		track := ""
		if s.TrackNumber > 0 {
			track = fmt.Sprintf("%02d ", s.TrackNumber)
		}
		title := s.Title
		if title == "" {
			title = s.Path
		}
		fmt.Fprintf(w, "%s%s  %s\n", track, title, mutedStyle.Render(resolve(s.Path)))
	}
}

// writeStats prints the executor counters gathered from reg.
func writeStats(w io.Writer, reg *prometheus.Registry) error {
	if reg == nil {
		return nil
	}
	families, err := reg.Gather()
	if err != nil {
		return err
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			c := m.GetCounter()
			if c == nil {
				continue
			}
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g", mf.GetName(), strings.Join(labels, ","), c.GetValue()))
		}
	}
	sort.Strings(lines)

	fmt.Fprintln(w, headerStyle.Render("query stats"))
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	return nil
}
