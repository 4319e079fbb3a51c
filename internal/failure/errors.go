package failure

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidPath   = errors.New("invalid path")
	ErrEmptyInput    = errors.New("no usable images")
	ErrDecode        = errors.New("decode error")
	ErrWrite         = errors.New("write error")
	ErrConfiguration = errors.New("configuration error")
	ErrExternalTool  = errors.New("external tool error")
)

// Pipeline stage names used in error details and log fields.
const (
	StageCollect  = "collect"
	StageSequence = "sequence"
	StageRender   = "render"
	StageWrite    = "write"
)

// Error carries the marker plus the stage context it was raised in.
type Error struct {
	Marker    error
	Stage     string
	Operation string
	Message   string
	Err       error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Marker.Error())
	b.WriteString(": ")
	b.WriteString(buildDetail(e.Stage, e.Operation, e.Message))
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Marker}
	}
	return []error{e.Marker, e.Err}
}

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	if marker == nil {
		marker = ErrExternalTool
	}
	return &Error{
		Marker:    marker,
		Stage:     strings.TrimSpace(stage),
		Operation: strings.TrimSpace(operation),
		Message:   strings.TrimSpace(message),
		Err:       err,
	}
}

// Details is the structured view of a wrapped error.
type Details struct {
	Stage     string
	Operation string
	Message   string
}

// DetailsOf returns the outermost stage details found in err's chain.
func DetailsOf(err error) Details {
	var target *Error
	if !errors.As(err, &target) {
		return Details{}
	}
	return Details{Stage: target.Stage, Operation: target.Operation, Message: target.Message}
}

// StageOf reports the stage that raised err, or "" when unknown.
func StageOf(err error) string {
	return DetailsOf(err).Stage
}

// Fatal reports whether err must abort the run. Per-image decode failures are
// recoverable; everything else is not.
func Fatal(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrDecode)
}

// ExitCode maps a run error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage != "" {
		parts = append(parts, stage)
	}
	if operation != "" {
		parts = append(parts, operation)
	}
	if message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
