package homebrew

import (
	"errors"
	"fmt"

	"github.com/bimmel1231/homebrew/selection"
)

// Sentinel errors for common selection failures.
var (
	// ErrNoCompatibleCompiler indicates no installed compiler survived the failure rules.
	ErrNoCompatibleCompiler = selection.ErrNoCompatibleCompiler

	// ErrUnrecognizedStandard indicates a package requires a standard with no registered rules.
	ErrUnrecognizedStandard = selection.ErrUnrecognizedStandard

	// ErrUnknownDefaultCompiler indicates the host reported an unsupported default compiler.
	ErrUnknownDefaultCompiler = selection.ErrUnknownDefaultCompiler

	// ErrVersionKindMismatch indicates a compiler was installed with the wrong kind of version.
	ErrVersionKindMismatch = selection.ErrVersionKindMismatch

	// ErrInvalidManifest indicates a compiler manifest could not be interpreted.
	ErrInvalidManifest = errors.New("invalid manifest")
)

// ManifestError reports a problem with one statement of a compiler manifest.
type ManifestError struct {
	Line    int
	Message string
}

func (e *ManifestError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("manifest line %d: %s", e.Line, e.Message)
	}
	return "manifest: " + e.Message
}

func (e *ManifestError) Unwrap() error {
	return ErrInvalidManifest
}
