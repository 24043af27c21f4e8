package cli

import (
	"os"

	"github.com/schollz/progressbar/v3"
)

// newProgressBar returns an indeterminate spinner-style bar for the `build`
// command rather than a count-based bar; the pipeline doesn't know the
// final chunk count until extraction finishes.
func newProgressBar(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(100),
		progressbar.OptionClearOnFinish(),
	)
}
