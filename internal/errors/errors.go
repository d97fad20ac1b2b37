package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/fitlife/internal/logger"
)

// userErrors are validation failures the user caused. They are reported but
// not logged.
var userErrors []error

// RegisterUserError marks err (and anything wrapping it) as a validation error.
func RegisterUserError(errs ...error) {
	userErrors = append(userErrors, errs...)
}

// IsUserError reports whether err wraps a registered validation error.
func IsUserError(err error) bool {
	for _, target := range userErrors {
		if stderrors.Is(err, target) {
			return true
		}
	}
	return false
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Report logs err unless it is a validation error and returns the message
// shown to the user.
func Report(err error) string {
	if err == nil {
		return ""
	}
	if !IsUserError(err) {
		logger.Error("Command execution failed", "error", err)
	}
	return Format(err)
}

// Fatal reports err on stderr and exits with status 1.
func Fatal(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", Report(err))
		os.Exit(1)
	}
}

func Fatalf(format string, args ...interface{}) {
	Fatal(fmt.Errorf(format, args...))
}
