// Package except contains assertion and error logging helpers.
package except

import (
	"fmt"
	"log/slog"
)

// Must panics with the formatted message when pred is false. It is reserved for conditions which
// can only fail because of a programming error.
func Must(pred bool, msg string, args ...any) {
	if !pred {
		panic(fmt.Sprintf(msg, args...))
	}
}

// Require panics if err is non-nil.
func Require(err error) {
	Must(err == nil, "unexpected error: %v", err)
}

const logErrKey = "err"

// LogErrAttr wraps an error into a loggable attribute.
func LogErrAttr(err error) slog.Attr {
	if err == nil {
		return slog.Group(logErrKey)
	}
	return slog.String(logErrKey, err.Error())
}

const logDataKey = "data"

// LogDataAttrs groups attributes under a common key, keeping log records' top-level keys stable.
func LogDataAttrs(attrs ...slog.Attr) slog.Attr {
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = any(attr)
	}
	return slog.Group(logDataKey, args...)
}
