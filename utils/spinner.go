package utils

import (
	"time"

	"github.com/briandowns/spinner"
)

var activeSpinner *spinner.Spinner

// StartSpinner begins an indeterminate progress indicator for a long-running
// scan. Stopping an already-stopped spinner is a no-op.
func StartSpinner(suffix string) {
	StopSpinner()
	activeSpinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	activeSpinner.Suffix = " " + suffix
	activeSpinner.Start()
}

// StopSpinner halts the active spinner, if any.
func StopSpinner() {
	if activeSpinner != nil {
		activeSpinner.Stop()
		activeSpinner = nil
	}
}
