package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{" _____ _        _____            _____          ", "#818cf8"},
	{"|_   _(_) ___  |_   _|_ _  ___  |_   _|__   ___ ", "#a78bfa"},
	{"  | | | |/ __|   | |/ _` |/ __|   | |/ _ \\ / _ \\", "#c084fc"},
	{"  | | | | (__    | | (_| | (__    | | (_) |  __/", "#e879f9"},
	{"  |_| |_|\\___|   |_|\\__,_|\\___|   |_|\\___/ \\___|", "#f472b6"},
}

// PrintBanner writes the ASCII art title to w.
func PrintBanner(w io.Writer) {
	PrintBannerWithProfile(w, termenv.ColorProfile())
}

// PrintBannerWithProfile is PrintBanner with an explicit color profile.
func PrintBannerWithProfile(w io.Writer, p termenv.Profile) {
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
