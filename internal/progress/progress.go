// Package progress renders transient stderr activity for the scan and
// parse phases. Indicators clear themselves on Done so they never mix
// into the formatted result output.
package progress

import (
	"os"

	"github.com/schollz/progressbar/v3"
)

// Indicator is a clearing progress display: a counting bar when the
// total is known up front, a spinner when it is not.
type Indicator struct {
	bar *progressbar.ProgressBar
}

// NewBar creates a determinate bar over total items.
func NewBar(label string, total int) *Indicator {
	return &Indicator{bar: progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)}
}

// NewSpinner creates an indeterminate spinner for the directory walk,
// counting items as they are found.
func NewSpinner(label string) *Indicator {
	return &Indicator{bar: progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
	)}
}

// Tick advances the indicator by one item. Safe for concurrent use.
func (i *Indicator) Tick() {
	i.bar.Add(1)
}

// Done finishes and clears the indicator.
func (i *Indicator) Done() {
	i.bar.Finish()
	i.bar.Clear()
}
