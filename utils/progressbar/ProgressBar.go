// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gosuri/uilive"
)

// ProgressBar implements progress bar functionality that must be
// manually managed. That is, Display() must be called whenever an
// updated progress bar should be printed. Each call to Display()
// overwrites the previously printed bar.
//
// ProgressBar does not use concurrency.
type ProgressBar struct {
	width           float64
	maxProgress     float64
	currentProgress float64
	bar             strings.Builder
	startTime       time.Time
	writer          *uilive.Writer
}

// New returns a new ProgressBar that is width characters wide,
// reaches 100% after max calls to Increment() and prints to out
func New(width, max int, out io.Writer) *ProgressBar {
	writer := uilive.New()
	writer.Out = out

	return &ProgressBar{
		width:       float64(width),
		maxProgress: float64(max),
		startTime:   time.Now(),
		writer:      writer,
	}
}

// Increment increments the interal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ProgressBar) Increment() {
	p.Add(1)
}

// Add adds n to the internal progress counter, saturating at the
// maximum progress
func (p *ProgressBar) Add(n int) {
	p.currentProgress += float64(n)
	if p.currentProgress > p.maxProgress {
		p.currentProgress = p.maxProgress
	}
}

// Progress returns the fraction of progress completed
func (p *ProgressBar) Progress() float64 {
	if p.maxProgress <= 0 {
		return 1
	}
	return p.currentProgress / p.maxProgress
}

// Display prints the progress bar, replacing the last printed bar
func (p *ProgressBar) Display() error {
	p.bar.Reset()
	p.bar.WriteString("|")

	currentProg := p.Progress() * p.width
	for i := 0.0; i < currentProg; i++ {
		p.bar.WriteString("█")
	}
	for i := currentProg; i < p.width; i++ {
		p.bar.WriteString(" ")
	}
	p.bar.WriteString(fmt.Sprintf("| [%.2f%% | elapsed: %v]",
		p.Progress()*100, time.Since(p.startTime).Truncate(time.Second)))

	fmt.Fprintln(p.writer, p.bar.String())
	return p.writer.Flush()
}
