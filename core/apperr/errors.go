package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a fatal generator failure.
type Kind string

const (
	// KindSourceRead indicates an input file is missing or unreadable.
	KindSourceRead Kind = "source_read"
	// KindParse indicates a structured input is malformed.
	KindParse Kind = "parse"
	// KindConfiguration indicates a run-time parameter is unset or invalid.
	KindConfiguration Kind = "configuration"
)

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrSourceRead    = errors.New("source read error")
	ErrParse         = errors.New("parse error")
	ErrConfiguration = errors.New("configuration error")
)

// Error is a classified failure. Path names the offending file or parameter.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.sentinel(), e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.sentinel(), e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	return target == e.sentinel()
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindSourceRead:
		return ErrSourceRead
	case KindParse:
		return ErrParse
	case KindConfiguration:
		return ErrConfiguration
	default:
		return errors.New(string(e.Kind))
	}
}

// SourceRead wraps err as a source read failure for path.
func SourceRead(path string, err error) error {
	return &Error{Kind: KindSourceRead, Path: path, Err: err}
}

// Parse wraps err as a parse failure for path.
func Parse(path string, err error) error {
	return &Error{Kind: KindParse, Path: path, Err: err}
}

// Parsef builds a parse failure from a format string.
func Parsef(path, format string, args ...any) error {
	return &Error{Kind: KindParse, Path: path, Err: fmt.Errorf(format, args...)}
}

// Configuration builds a configuration failure for the named parameter.
func Configuration(param, format string, args ...any) error {
	return &Error{Kind: KindConfiguration, Path: param, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
