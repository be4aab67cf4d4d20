package service

import (
	"errors"
	"fmt"
)

// ErrNoPhrases is reported when a lesson is started on a module with no content
var ErrNoPhrases = errors.New("module has no phrases")

// ErrNoActiveSession is reported when input arrives with no lesson or game running
var ErrNoActiveSession = errors.New("no active session")

// FormatError reports a malformed import payload. The message names the
// offending index or field so the user can fix the file.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string {
	return e.Msg
}

func formatErrorf(format string, args ...interface{}) *FormatError {
	return &FormatError{Msg: fmt.Sprintf(format, args...)}
}

// IsFormatError reports whether err is a FormatError
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// ErrGamesLocked is reported when a gated game is started before the
// unlock threshold is reached
var ErrGamesLocked = errors.New("games are locked")

// InsufficientContentError reports a game that cannot be built from the
// learner's current mastery or the content pool
type InsufficientContentError struct {
	Game     string
	Required int
	Have     int
}

func (e *InsufficientContentError) Error() string {
	return fmt.Sprintf("%s needs at least %d suitable items, have %d", e.Game, e.Required, e.Have)
}

// IsInsufficientContent reports whether err is an InsufficientContentError
func IsInsufficientContent(err error) bool {
	var ice *InsufficientContentError
	return errors.As(err, &ice)
}

// NotFoundError reports a missing module or phrase
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}
