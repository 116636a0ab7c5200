package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes the colored, localized status lines of a run
type Printer struct {
	out io.Writer
	loc *Localization

	red    *color.Color
	green  *color.Color
	yellow *color.Color
	cyan   *color.Color
}

// NewPrinter creates a printer writing to out
func NewPrinter(out io.Writer, loc *Localization) *Printer {
	if loc == nil {
		loc = NewLocalization()
	}
	return &Printer{
		out:    out,
		loc:    loc,
		red:    color.New(color.FgRed),
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		cyan:   color.New(color.FgCyan),
	}
}

func (p *Printer) println(c *color.Color, key string, args ...any) {
	fmt.Fprintln(p.out, c.Sprintf(p.loc.GetText(key), args...))
}

// Starting announces the requested URL
func (p *Printer) Starting(url string) {
	p.println(p.cyan, KeyStartingURL, p.green.Sprint(url))
}

// OutputDirectory announces the destination directory
func (p *Printer) OutputDirectory(dir string) {
	p.println(p.cyan, KeyOutputDirectory, p.green.Sprint(dir))
}

// PlaylistPreparing announces a collection before any file check
func (p *Printer) PlaylistPreparing(title string) {
	p.println(p.yellow, KeyPreparingPlaylist, p.cyan.Sprint(title))
}

// DirectoryCreated reports a newly created playlist directory
func (p *Printer) DirectoryCreated(dir string) {
	p.println(p.green, KeyCreatedSubdirectory, dir)
}

// FileExists reports an item skipped because its output is present
func (p *Printer) FileExists(path string) {
	fmt.Fprintln(p.out, p.red.Sprintf(p.loc.GetText(KeyFileExists), p.yellow.Sprint(path))+" "+p.red.Sprint(p.loc.GetText(KeySkipping)))
}

// ItemStarting announces a playlist entry download
func (p *Printer) ItemStarting(index int, path string) {
	p.println(p.yellow, KeyStartingVideo, index, p.cyan.Sprint(path))
}

// SingleStarting announces a single item download
func (p *Printer) SingleStarting(path string) {
	p.println(p.yellow, KeyStartingSingle, p.cyan.Sprint(path))
}

// ItemFailed reports a failed playlist entry
func (p *Printer) ItemFailed(path string, err error) {
	p.println(p.red, KeyItemError, path, err)
}

// Interrupted reports a user interrupt on a fresh line
func (p *Printer) Interrupted() {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.red.Sprint(p.loc.GetText(KeyInterrupted)))
}

// Error reports a failure that ended the run
func (p *Printer) Error(err error) {
	p.println(p.red, KeyGenericError, err)
}

// Usage prints the invocation synopsis
func (p *Printer) Usage() {
	fmt.Fprintln(p.out, p.red.Sprint(p.loc.GetText(KeyUsage)))
}
