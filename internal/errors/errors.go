package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a pipeline failure so callers can react to the class of
// error without parsing messages.
type Kind string

const (
	UnknownDistribution Kind = "unknown distribution"
	FetchError          Kind = "fetch error"
	NoCandidateFound    Kind = "no candidate found"
	VersionNotFound     Kind = "version not found"
	DownloadFailed      Kind = "download failed"
	ProvisionFailed     Kind = "provision failed"
	LaunchFailed        Kind = "launch failed"
	MissingPrerequisite Kind = "missing prerequisite"
)

type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("operation %q failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("operation %q failed: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func E(op string, kind Kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// IsKind reports whether any error in the chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		var e *Error
		if !stderrors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}
