package ui

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"

	"github.com/ytget/ytmp4/internal/model"
)

// BytesToMB converts bytes to binary megabytes rounded to two decimals
func BytesToMB(bytes int64) float64 {
	return roundMB(float64(bytes))
}

// SpeedToMbps converts a byte rate to megabits per second, 0 when unknown
func SpeedToMbps(bytesPerSecond float64) float64 {
	if bytesPerSecond <= 0 {
		return 0
	}
	return roundMB(bytesPerSecond) * BitsPerByte
}

func roundMB(bytes float64) float64 {
	return math.Round(bytes/BytesPerMB*100) / 100
}

// RenderBar draws a BarWidth wide bar for fraction in [0, 1]
func RenderBar(fraction float64) string {
	filled := int(fraction * BarWidth)
	filled = max(0, min(filled, BarWidth))
	return strings.Repeat(BarFilled, filled) + strings.Repeat(BarEmpty, BarWidth-filled)
}

// ProgressReporter renders progress events as a single rewritten line
type ProgressReporter struct {
	out io.Writer
	loc *Localization

	bar   *color.Color
	done  *color.Color
	total *color.Color
}

// NewProgressReporter creates a reporter writing to out
func NewProgressReporter(out io.Writer, loc *Localization) *ProgressReporter {
	if loc == nil {
		loc = NewLocalization()
	}
	return &ProgressReporter{
		out:   out,
		loc:   loc,
		bar:   color.New(color.FgCyan),
		done:  color.New(color.FgGreen),
		total: color.New(color.FgYellow),
	}
}

// Handle renders one event; it matches model.ProgressFunc
func (r *ProgressReporter) Handle(ev model.ProgressEvent) {
	switch ev.Status {
	case model.ProgressDownloading:
		r.downloading(ev)
	case model.ProgressFinished:
		r.finished(ev)
	}
}

func (r *ProgressReporter) downloading(ev model.ProgressEvent) {
	downloaded := fmt.Sprintf(SizeFormat, BytesToMB(ev.DownloadedBytes))
	if ev.HasTotal() {
		fmt.Fprint(r.out, CarriageReturn+
			r.bar.Sprint("["+RenderBar(ev.Fraction())+"]")+" "+
			r.done.Sprint(downloaded+" ")+"/ "+
			r.total.Sprintf(SizeFormat, BytesToMB(ev.TotalBytes)))
		return
	}
	fmt.Fprint(r.out, CarriageReturn+
		r.bar.Sprint(r.loc.GetText(KeyDownloading))+" "+
		r.done.Sprint(downloaded+" / "+UnknownTotalText))
}

func (r *ProgressReporter) finished(ev model.ProgressEvent) {
	fmt.Fprint(r.out, CarriageReturn+strings.Repeat(" ", ClearWidth)+CarriageReturn)
	fmt.Fprintln(r.out, r.done.Sprintf(r.loc.GetText(KeyDownloadFinished), BytesToMB(ev.DownloadedBytes), SpeedToMbps(ev.Speed)))
}
