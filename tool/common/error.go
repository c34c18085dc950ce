package common

import (
	"github.com/gravitational/detrsa/lib/utils"

	"github.com/gravitational/trace"
)

// ProcessRunError looks at the error that happened during a CLI command
// execution and converts it to a user-friendly format
func ProcessRunError(runErr error) error {
	if runErr == nil {
		return nil
	}
	switch err := trace.Unwrap(runErr).(type) {
	case *utils.ArithmeticError, *utils.EncodingError:
		return trace.Errorf("%v. This is a bug, rerun with --debug and "+
			"report the output", err)
	}
	return runErr
}
