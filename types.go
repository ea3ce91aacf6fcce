package homebrew

import (
	"fmt"

	"github.com/bimmel1231/homebrew/selection"
	"github.com/bimmel1231/homebrew/selection/version"
)

// Package describes the compiler requirements of one package to build.
type Package struct {
	// Name identifies the package in errors and logs.
	Name string `json:"name"`

	// Standards lists the standards the package requires, e.g. "cxx11".
	// Each contributes its registered failure rules.
	Standards []string `json:"standards,omitempty"`

	// Failures are package-specific rules in addition to the standards'.
	Failures []selection.FailureRule `json:"-"`
}

// CompilerFailures returns every failure rule that applies to the package:
// the rules of each required standard followed by the package's own.
func (p *Package) CompilerFailures() ([]selection.FailureRule, error) {
	return p.compilerFailures(nil)
}

func (p *Package) compilerFailures(extraStandards []string) ([]selection.FailureRule, error) {
	var failures []selection.FailureRule
	seen := make(map[string]bool)
	for _, std := range append(append([]string(nil), p.Standards...), extraStandards...) {
		if seen[std] {
			continue
		}
		seen[std] = true

		rules, err := selection.RulesForStandard(std)
		if err != nil {
			return nil, fmt.Errorf("package %s: %w", p.Name, err)
		}
		failures = append(failures, rules...)
	}
	return append(failures, p.Failures...), nil
}

// Host describes the build machine: its default compiler family and the
// compiler versions installed on it.
type Host interface {
	selection.VersionLookup
	DefaultCompiler() selection.Family
}

// StaticHost is a Host backed by fixed data.
//
// A nil *StaticHost reports an Unknown default compiler and nothing installed.
type StaticHost struct {
	Default  selection.Family
	Versions selection.StaticVersions
}

// DefaultCompiler implements Host.
func (h *StaticHost) DefaultCompiler() selection.Family {
	if h == nil {
		return selection.Unknown
	}
	return h.Default
}

// GCCVersion implements selection.VersionLookup.
func (h *StaticHost) GCCVersion(c selection.Compiler) (version.Version, bool) {
	if h == nil {
		return version.Version{}, false
	}
	return h.Versions.GCCVersion(c)
}

// BuildVersion implements selection.VersionLookup.
func (h *StaticHost) BuildVersion(c selection.Compiler) (version.Version, bool) {
	if h == nil {
		return version.Version{}, false
	}
	return h.Versions.BuildVersion(c)
}

// Install records a compiler as installed at v. GNU GCC 4.x takes a dotted
// release and every other compiler a build number; a version of the wrong
// kind is rejected with ErrVersionKindMismatch.
func (h *StaticHost) Install(c selection.Compiler, v version.Version) error {
	if err := c.CheckVersion(v); err != nil {
		return err
	}
	if h.Versions == nil {
		h.Versions = make(selection.StaticVersions)
	}
	h.Versions[c] = v
	return nil
}

// Manifest is the parsed content of a compiler manifest file.
type Manifest struct {
	Package *Package
	Host    *StaticHost
}
