// Package version implements compiler version values and their comparison.
//
// Compilers report one of two version shapes:
//   - Dotted: a release such as "4.8.3" (GNU GCC and most toolchains)
//   - Build: a single vendor build number such as 425 (Apple's clang, gcc and llvm-gcc)
//
// A third kind, Unbounded, is a sentinel that compares higher than any real
// version of either shape. It is what an unconditional failure rule records.
//
// Values of different real kinds are not comparable: Compare reports ok=false
// for them instead of guessing an ordering.
package version

import (
	"cmp"
	"regexp"
	"strconv"
	"strings"
)

// Kind discriminates how a Version is interpreted.
type Kind int

const (
	// KindAbsent is the zero Kind, used for "not installed".
	KindAbsent Kind = iota
	KindDotted
	KindBuild
	KindUnbounded
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDotted:
		return "dotted"
	case KindBuild:
		return "build"
	case KindUnbounded:
		return "unbounded"
	default:
		return "absent"
	}
}

var dottedPattern = regexp.MustCompile(`^[0-9]+(?:\.[0-9]+)*$`)

// SeriesPatch is the patch component used for series ceilings: "4.8" becomes "4.8.999".
const SeriesPatch = 999

// Version is a compiler version value. The zero Version is Absent.
type Version struct {
	kind     Kind
	segments []uint64
	build    int
}

// ParseError represents a version parsing error.
type ParseError struct {
	Version string
	Message string
}

func (e *ParseError) Error() string {
	return "bad version " + strconv.Quote(e.Version) + ": " + e.Message
}

// ParseDotted parses a dot-separated numeric version such as "4.8.3".
func ParseDotted(s string) (Version, error) {
	if !dottedPattern.MatchString(s) {
		return Version{}, &ParseError{Version: s, Message: "does not match dotted version pattern"}
	}

	parts := strings.Split(s, ".")
	segments := make([]uint64, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return Version{}, &ParseError{Version: s, Message: err.Error()}
		}
		segments = append(segments, n)
	}
	return Version{kind: KindDotted, segments: segments}, nil
}

// MustParseDotted is like ParseDotted but panics on error.
// It is intended for compiled-in tables and tests.
func MustParseDotted(s string) Version {
	v, err := ParseDotted(s)
	if err != nil {
		panic(err)
	}
	return v
}

// BuildNumber returns a vendor build-number version.
func BuildNumber(n int) Version {
	return Version{kind: KindBuild, build: n}
}

// ParseBuild parses a vendor build number such as "425".
func ParseBuild(s string) (Version, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return Version{}, &ParseError{Version: s, Message: "not a build number"}
	}
	return BuildNumber(n), nil
}

// Unbounded returns the sentinel that compares higher than every real version.
func Unbounded() Version {
	return Version{kind: KindUnbounded}
}

// SeriesCeiling returns the highest version of a release series, so that
// "4.8" yields "4.8.999" and every 4.8.x patch release compares at or below it.
func SeriesCeiling(series string) (Version, error) {
	v, err := ParseDotted(series)
	if err != nil {
		return Version{}, err
	}
	v.segments = append(v.segments, SeriesPatch)
	return v, nil
}

// Kind returns the version kind.
func (v Version) Kind() Kind {
	return v.kind
}

// IsZero reports whether v is the Absent version.
func (v Version) IsZero() bool {
	return v.kind == KindAbsent
}

// Segments returns a copy of the dotted segments. Nil for other kinds.
func (v Version) Segments() []uint64 {
	if v.kind != KindDotted {
		return nil
	}
	return append([]uint64(nil), v.segments...)
}

// BuildValue returns the build number. Zero for other kinds.
func (v Version) BuildValue() int {
	return v.build
}

func (v Version) String() string {
	switch v.kind {
	case KindDotted:
		parts := make([]string, len(v.segments))
		for i, s := range v.segments {
			parts[i] = strconv.FormatUint(s, 10)
		}
		return strings.Join(parts, ".")
	case KindBuild:
		return strconv.Itoa(v.build)
	case KindUnbounded:
		return "any"
	default:
		return ""
	}
}

// Equal reports whether a and b are the same version.
func Equal(a, b Version) bool {
	c, ok := Compare(a, b)
	return ok && c == 0
}

// Compare compares two versions.
// Returns -1 if a < b, 0 if a == b, 1 if a > b. ok is false when the
// versions cannot be ordered against each other.
//
// Order:
//  1. Unbounded compares higher than everything except another Unbounded
//  2. Absent compares lower than everything except another Absent
//  3. Dotted against Dotted compares segments numerically, missing
//     trailing segments count as zero
//  4. Build against Build compares the numbers
//  5. Dotted against Build is not comparable
func Compare(a, b Version) (int, bool) {
	if a.kind == KindUnbounded || b.kind == KindUnbounded {
		return cmp.Compare(boolInt(a.kind == KindUnbounded), boolInt(b.kind == KindUnbounded)), true
	}
	if a.kind == KindAbsent || b.kind == KindAbsent {
		return cmp.Compare(boolInt(a.kind != KindAbsent), boolInt(b.kind != KindAbsent)), true
	}
	if a.kind != b.kind {
		return 0, false
	}

	if a.kind == KindBuild {
		return cmp.Compare(a.build, b.build), true
	}
	return compareSegments(a.segments, b.segments), true
}

func compareSegments(a, b []uint64) int {
	n := max(len(a), len(b))
	for i := range n {
		var x, y uint64
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		if c := cmp.Compare(x, y); c != 0 {
			return c
		}
	}
	return 0
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
