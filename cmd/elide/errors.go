package main

import "errors"

// silentError signals failure after the command already printed everything
// worth saying, e.g. per-file diagnostics.
type silentError struct{ msg string }

func (e silentError) Error() string { return e.msg }

func isSilent(err error) bool {
	var s silentError
	return errors.As(err, &s)
}
