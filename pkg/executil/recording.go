package executil

import "context"

// RecordingCapturer captures commands for testing.
// Configure Results and Errors maps to control return values.
type RecordingCapturer struct {
	Commands []string

	// Results maps command strings to the capture they should produce.
	Results map[string]Result

	// Errors maps command strings to a spawn error.
	Errors map[string]error
}

// Capture records the command and returns the configured result/error.
func (e *RecordingCapturer) Capture(ctx context.Context, cmd string) (Result, error) {
	e.Commands = append(e.Commands, cmd)

	if e.Errors != nil {
		if err := e.Errors[cmd]; err != nil {
			return Result{}, err
		}
	}

	var res Result
	if e.Results != nil {
		res = e.Results[cmd]
	}

	return res, nil
}

// Reset clears recorded commands.
func (e *RecordingCapturer) Reset() {
	e.Commands = nil
}
