package selection

import (
	"fmt"
	"slices"
	"sort"

	"github.com/bimmel1231/homebrew/selection/version"
)

// FailureRule records that a compiler at or below a version is known to fail.
//
// For vendor compilers the version is a build number; Build is provided as an
// alias of Version for those rules.
type FailureRule struct {
	compiler Compiler
	version  version.Version
	cause    string
}

// RuleOptions configures a rule under construction.
type RuleOptions struct {
	// Cause is a human-readable reason for the failure.
	Cause string

	// Build, when set, bounds a vendor compiler rule to builds at or below
	// this number instead of failing every build.
	Build *int
}

// RuleSpec is the declarative shape of a rule: either a bare family name,
// or a GCC family with a release series such as "4.8".
type RuleSpec struct {
	Name   string
	Series string
}

// Compiler returns the compiler the rule applies to.
func (r FailureRule) Compiler() Compiler { return r.compiler }

// Version returns the highest failing version.
func (r FailureRule) Version() version.Version { return r.version }

// Build returns the highest failing build number for vendor compilers.
// It is the same value as Version.
func (r FailureRule) Build() version.Version { return r.version }

// Cause returns the failure reason, which may be empty.
func (r FailureRule) Cause() string { return r.cause }

func (r FailureRule) String() string {
	s := r.compiler.String()
	switch r.version.Kind() {
	case version.KindBuild:
		s += " build " + r.version.String()
	case version.KindDotted:
		s += " " + r.version.String()
	}
	if r.cause != "" {
		s += ": " + r.cause
	}
	return s
}

// Matches reports whether c is excluded by the rule: the compilers are the same
// and c's version is at or below the rule's version.
//
// A candidate whose version cannot be ordered against the rule's (a build
// number against a dotted release) is treated as excluded.
func (r FailureRule) Matches(c Candidate) bool {
	if r.compiler != c.Compiler {
		return false
	}
	cmp, ok := version.Compare(r.version, c.Version)
	return !ok || cmp >= 0
}

// NewRule builds a rule that fails every version of a concrete family, or
// every build up to opts.Build for build-versioned families.
func NewRule(family Family, opts RuleOptions) (FailureRule, error) {
	if family == Unknown || family == GNU || family == GNUGCC {
		return FailureRule{}, fmt.Errorf("cannot create failure rule for %s", family)
	}

	rule := FailureRule{
		compiler: Compiler{Family: family},
		version:  version.Unbounded(),
		cause:    opts.Cause,
	}
	if opts.Build != nil {
		if !family.BuildVersioned() {
			return FailureRule{}, fmt.Errorf("%s is not versioned by build number", family)
		}
		rule.version = version.BuildNumber(*opts.Build)
	}
	return rule, nil
}

// NewSeriesRule builds a rule failing every patch release of a GNU GCC
// series: NewSeriesRule(GCC, "4.8", ...) excludes gcc-4.8 up to 4.8.999.
func NewSeriesRule(family Family, series string, opts RuleOptions) (FailureRule, error) {
	if family != GCC {
		return FailureRule{}, fmt.Errorf("release series rules are only supported for gcc, got %s", family)
	}
	compiler, err := ParseCompiler("gcc-" + series)
	if err != nil || !compiler.IsGNU() {
		return FailureRule{}, fmt.Errorf("unsupported gcc series %q", series)
	}
	if opts.Build != nil {
		return FailureRule{}, fmt.Errorf("gcc-%s is not versioned by build number", series)
	}

	ceiling, err := version.SeriesCeiling(series)
	if err != nil {
		return FailureRule{}, err
	}
	return FailureRule{compiler: compiler, version: ceiling, cause: opts.Cause}, nil
}

// CreateRule builds a rule from either declarative shape.
func CreateRule(spec RuleSpec, opts RuleOptions) (FailureRule, error) {
	family, err := ParseFamily(spec.Name)
	if err != nil {
		return FailureRule{}, err
	}
	if spec.Series != "" {
		return NewSeriesRule(family, spec.Series, opts)
	}
	return NewRule(family, opts)
}

func mustRule(r FailureRule, err error) FailureRule {
	if err != nil {
		panic(err)
	}
	return r
}

func buildRef(n int) *int { return &n }

// standardRules is populated once at package initialization and never mutated.
var standardRules = map[string][]FailureRule{
	"cxx11": {
		mustRule(NewRule(GCC40, RuleOptions{})),
		mustRule(NewRule(GCC, RuleOptions{})),
		mustRule(NewRule(LLVM, RuleOptions{})),
		mustRule(NewRule(Clang, RuleOptions{Build: buildRef(425)})),
		mustRule(NewSeriesRule(GCC, "4.3", RuleOptions{})),
		mustRule(NewSeriesRule(GCC, "4.4", RuleOptions{})),
		mustRule(NewSeriesRule(GCC, "4.5", RuleOptions{})),
		mustRule(NewSeriesRule(GCC, "4.6", RuleOptions{})),
	},
	"openmp": {
		mustRule(NewRule(Clang, RuleOptions{})),
		mustRule(NewRule(LLVM, RuleOptions{})),
	},
}

// RulesForStandard returns the registered failure rules for a standard.
// The returned slice is a copy.
func RulesForStandard(standard string) ([]FailureRule, error) {
	rules, ok := standardRules[standard]
	if !ok {
		return nil, &UnrecognizedStandardError{Standard: standard}
	}
	return slices.Clone(rules), nil
}

// Standards returns the registered standard ids, sorted.
func Standards() []string {
	ids := make([]string, 0, len(standardRules))
	for id := range standardRules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
