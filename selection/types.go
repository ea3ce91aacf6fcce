package selection

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bimmel1231/homebrew/selection/version"
)

// Family is a closed set of compiler families known to the selector.
type Family int

const (
	// Unknown is the zero Family.
	Unknown Family = iota
	// Clang is the vendor clang, versioned by build number.
	Clang
	// GCC is the vendor GCC 4.2, versioned by build number.
	GCC
	// LLVM is llvm-gcc, versioned by build number.
	LLVM
	// GCC40 is the legacy vendor gcc-4.0, versioned by build number.
	GCC40
	// GNU is the placeholder for "every GNU GCC 4.x, newest first".
	// It only appears in priority lists and is never a concrete compiler.
	GNU
	// GNUGCC is one concrete GNU GCC 4.x release series, such as gcc-4.9.
	GNUGCC
)

// GNU GCC minor versions tried when expanding the GNU placeholder.
const (
	GNUMinMinor = 3
	GNUMaxMinor = 9
)

var gnuGCCPattern = regexp.MustCompile(`^gcc-(4\.[3-9])$`)

var familyNames = map[Family]string{
	Clang: "clang",
	GCC:   "gcc",
	LLVM:  "llvm",
	GCC40: "gcc-4.0",
	GNU:   "gnu",
}

// String returns the family identifier.
func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	if f == GNUGCC {
		return "gcc-4.x"
	}
	return "unknown"
}

// BuildVersioned reports whether the family reports vendor build numbers.
func (f Family) BuildVersioned() bool {
	switch f {
	case Clang, GCC, LLVM, GCC40:
		return true
	default:
		return false
	}
}

// ParseFamily parses a family identifier. The GNU placeholder is accepted;
// concrete gcc-4.x identifiers are not, use ParseCompiler for those.
func ParseFamily(s string) (Family, error) {
	switch s {
	case "clang":
		return Clang, nil
	case "gcc":
		return GCC, nil
	case "llvm":
		return LLVM, nil
	case "gcc-4.0", "gcc_4_0":
		return GCC40, nil
	case "gnu":
		return GNU, nil
	}
	return Unknown, fmt.Errorf("unknown compiler family %q", s)
}

// Compiler names one concrete compiler identifier, such as "clang" or "gcc-4.9".
// Minor is only set for GNUGCC.
type Compiler struct {
	Family Family
	Minor  int
}

// GNUCompiler returns the concrete GNU GCC 4.minor compiler.
func GNUCompiler(minor int) Compiler {
	return Compiler{Family: GNUGCC, Minor: minor}
}

// String returns the identifier, e.g. "gcc-4.9".
func (c Compiler) String() string {
	if c.Family == GNUGCC {
		return "gcc-4." + strconv.Itoa(c.Minor)
	}
	return c.Family.String()
}

// IsGNU reports whether the identifier is a GNU GCC 4.x release series.
func (c Compiler) IsGNU() bool {
	return gnuGCCPattern.MatchString(c.String())
}

// ParseCompiler parses a concrete compiler identifier.
func ParseCompiler(s string) (Compiler, error) {
	if m := gnuGCCPattern.FindStringSubmatch(s); m != nil {
		minor, _ := strconv.Atoi(strings.TrimPrefix(m[1], "4."))
		return GNUCompiler(minor), nil
	}
	f, err := ParseFamily(s)
	if err != nil {
		return Compiler{}, err
	}
	if f == GNU {
		return Compiler{}, fmt.Errorf("%q is a placeholder, not a concrete compiler", s)
	}
	return Compiler{Family: f}, nil
}

// VersionKind returns the kind of version the compiler reports: dotted
// releases for GNU GCC 4.x, vendor build numbers for everything else.
func (c Compiler) VersionKind() version.Kind {
	if c.IsGNU() {
		return version.KindDotted
	}
	return version.KindBuild
}

// CheckVersion returns an error wrapping ErrVersionKindMismatch when v is not
// the kind of version c reports.
func (c Compiler) CheckVersion(v version.Version) error {
	if want := c.VersionKind(); v.Kind() != want {
		return fmt.Errorf("%w: %s reports %s versions, got %s %q", ErrVersionKindMismatch, c, want, v.Kind(), v)
	}
	return nil
}

// Candidate is a compiler considered during selection, with its installed
// version. A zero Version means the compiler is not installed.
type Candidate struct {
	Compiler Compiler
	Version  version.Version
}

func (c Candidate) String() string {
	if c.Version.IsZero() {
		return c.Compiler.String() + " (not installed)"
	}
	return c.Compiler.String() + " " + c.Version.String()
}

// Sentinel errors for selection failures.
var (
	// ErrUnrecognizedStandard indicates a standard id with no registered rules.
	ErrUnrecognizedStandard = errors.New("unrecognized standard")

	// ErrNoCompatibleCompiler indicates every candidate was missing or excluded.
	ErrNoCompatibleCompiler = errors.New("no compatible compiler")

	// ErrUnknownDefaultCompiler indicates a host default family with no priority list.
	ErrUnknownDefaultCompiler = errors.New("unknown default compiler")

	// ErrVersionKindMismatch indicates a version of the wrong kind for a compiler.
	ErrVersionKindMismatch = errors.New("version kind mismatch")
)

// UnrecognizedStandardError is returned by RulesForStandard for unknown ids.
type UnrecognizedStandardError struct {
	Standard string
}

func (e *UnrecognizedStandardError) Error() string {
	return fmt.Sprintf("%q is not a recognized standard", e.Standard)
}

func (e *UnrecognizedStandardError) Unwrap() error {
	return ErrUnrecognizedStandard
}

// SelectionError is returned when no candidate survives the priority walk.
type SelectionError struct {
	Package string
}

func (e *SelectionError) Error() string {
	return e.Package + " cannot be built with any available compilers"
}

func (e *SelectionError) Unwrap() error {
	return ErrNoCompatibleCompiler
}

// ConfigError reports a host default compiler outside the supported set.
type ConfigError struct {
	Family Family
}

func (e *ConfigError) Error() string {
	return "no compiler priority list for default compiler " + e.Family.String()
}

func (e *ConfigError) Unwrap() error {
	return ErrUnknownDefaultCompiler
}
