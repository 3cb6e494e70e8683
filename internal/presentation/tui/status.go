package tui

import (
	"io"

	"github.com/muesli/termenv"
)

// Status colors msg for w: green when ok, red otherwise. Writers that are
// not terminals get msg unchanged.
func Status(w io.Writer, ok bool, msg string) string {
	out := termenv.NewOutput(w)
	color := "#22c55e"
	if !ok {
		color = "#ef4444"
	}
	return out.String(msg).Foreground(out.Color(color)).String()
}
