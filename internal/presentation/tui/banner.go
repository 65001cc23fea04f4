package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the intake welcome banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.EnvColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"  ___       _        _        ", "#34d399"},
		{" |_ _|_ __ | |_ __ _| | _____ ", "#2dd4bf"},
		{"  | || '_ \\| __/ _` | |/ / _ \\", "#22d3ee"},
		{"  | || | | | || (_| |   <  __/", "#38bdf8"},
		{" |___|_| |_|\\__\\__,_|_|\\_\\___|", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, termenv.String("Welcome to the property intake assistant.").Bold())
	fmt.Fprintln(w)
}

// PrintFarewell writes the closing line shown after a run.
func PrintFarewell(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, termenv.String("Thanks for chatting with us. Goodbye!").Faint())
}
