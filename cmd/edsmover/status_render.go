package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusOK statusKind = iota
	statusWarn
	statusError
)

type statusStyle struct {
	badge string
	ansi  string
}

var statusStyles = map[statusKind]statusStyle{
	statusOK:    {badge: "OK", ansi: "\x1b[32m"},
	statusWarn:  {badge: "WARN", ansi: "\x1b[33m"},
	statusError: {badge: "FAIL", ansi: "\x1b[31m"},
}

const (
	ansiReset  = "\x1b[0m"
	checkWidth = 18
	badgeWidth = 4
)

// statusPrinter writes one aligned line per check. Only the badge is
// coloured, and only when the writer is a terminal.
type statusPrinter struct {
	w     io.Writer
	color bool
}

func newStatusPrinter(w io.Writer) statusPrinter {
	return statusPrinter{w: w, color: isTerminal(w)}
}

func (p statusPrinter) line(check string, kind statusKind, detail string) {
	fmt.Fprintln(p.w, formatStatus(check, kind, detail, p.color))
}

func formatStatus(check string, kind statusKind, detail string, color bool) string {
	style, ok := statusStyles[kind]
	if !ok {
		style = statusStyles[statusError]
	}
	badge := fmt.Sprintf("%-*s", badgeWidth, style.badge)
	if color {
		badge = style.ansi + badge + ansiReset
	}
	line := fmt.Sprintf("  %s  %-*s", badge, checkWidth, check)
	if detail != "" {
		line += " " + detail
	}
	return line
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
