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
	{`    _   _             _                       `, "#fbbf24"},
	{`   /_\ | |__  ___ _ _| |_ ___ _  _ ___ _ _ `, "#f59e0b"},
	{`  / _ \| '_ \/ -_) ' \  _/ -_) || / -_) '_|`, "#f97316"},
	{` /_/ \_\_.__/\___|_||_\__\___|\_,_\___|_|  `, "#ef4444"},
}

// PrintBanner writes the Abenteuer ASCII art banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()

	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Faint renders s in the terminal's faint style, used for hints.
func Faint(s string) string {
	return termenv.String(s).Faint().String()
}

// Highlight renders s bold in the accent color, used for feedback.
func Highlight(s string) string {
	p := termenv.ColorProfile()
	return termenv.String(s).Bold().Foreground(p.Color("#22c55e")).String()
}
