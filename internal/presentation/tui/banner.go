package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the libstate banner to w, colored when w is a terminal.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{" _ _ _         _        _       ", "#818cf8"},
		{"| (_) |__  ___| |_ __ _| |_ ___ ", "#a78bfa"},
		{"| | | '_ \\/ __| __/ _` | __/ _ \\", "#c084fc"},
		{"| | | |_) \\__ \\ || (_| | ||  __/", "#e879f9"},
		{"|_|_|_.__/|___/\\__\\__,_|\\__\\___|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
