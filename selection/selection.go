package selection

import (
	"slices"

	"github.com/bimmel1231/homebrew/selection/version"
)

// VersionLookup reports installed compiler versions on a host.
// Both methods return ok=false when the compiler is not installed.
type VersionLookup interface {
	// GCCVersion is consulted for GNU GCC 4.x identifiers such as gcc-4.9.
	GCCVersion(c Compiler) (version.Version, bool)

	// BuildVersion is consulted for every other compiler.
	BuildVersion(c Compiler) (version.Version, bool)
}

// StaticVersions is a VersionLookup backed by a fixed table.
type StaticVersions map[Compiler]version.Version

// GCCVersion implements VersionLookup.
func (s StaticVersions) GCCVersion(c Compiler) (version.Version, bool) {
	if !c.IsGNU() {
		return version.Version{}, false
	}
	return s.lookup(c)
}

// BuildVersion implements VersionLookup.
func (s StaticVersions) BuildVersion(c Compiler) (version.Version, bool) {
	if c.IsGNU() {
		return version.Version{}, false
	}
	return s.lookup(c)
}

func (s StaticVersions) lookup(c Compiler) (version.Version, bool) {
	v, ok := s[c]
	if !ok || v.IsZero() {
		return version.Version{}, false
	}
	return v, true
}

// LookupFuncs adapts a pair of functions to VersionLookup.
// A nil function reports every compiler as not installed.
type LookupFuncs struct {
	GCC   func(Compiler) (version.Version, bool)
	Build func(Compiler) (version.Version, bool)
}

// GCCVersion implements VersionLookup.
func (l LookupFuncs) GCCVersion(c Compiler) (version.Version, bool) {
	if l.GCC == nil {
		return version.Version{}, false
	}
	return l.GCC(c)
}

// BuildVersion implements VersionLookup.
func (l LookupFuncs) BuildVersion(c Compiler) (version.Version, bool) {
	if l.Build == nil {
		return version.Version{}, false
	}
	return l.Build(c)
}

// PriorityList is an ordered list of compiler families to try, most
// preferred first. It may contain the GNU placeholder.
type PriorityList []Family

var defaultPriorities = map[Family]PriorityList{
	Clang: {Clang, GCC, LLVM, GNU, GCC40},
	GCC:   {GCC, LLVM, GNU, Clang, GCC40},
	LLVM:  {LLVM, GCC, GNU, Clang, GCC40},
	GCC40: {GCC40, GCC, LLVM, GNU, Clang},
}

// DefaultPriorityList returns the priority list for a host whose default
// compiler is the given family.
func DefaultPriorityList(hostDefault Family) (PriorityList, error) {
	list, ok := defaultPriorities[hostDefault]
	if !ok {
		return nil, &ConfigError{Family: hostDefault}
	}
	return slices.Clone(list), nil
}

// Expand returns the concrete compilers in walk order. The GNU placeholder
// becomes gcc-4.9 down to gcc-4.3.
func (p PriorityList) Expand() []Compiler {
	var out []Compiler
	for _, f := range p {
		if f != GNU {
			out = append(out, Compiler{Family: f})
			continue
		}
		for minor := GNUMaxMinor; minor >= GNUMinMinor; minor-- {
			out = append(out, GNUCompiler(minor))
		}
	}
	return out
}

// Decision records how one candidate fared during the walk.
type Decision struct {
	Candidate Candidate

	// Installed is false when the lookup found no version; rules are not consulted.
	Installed bool

	// ExcludedBy is the first rule matching the candidate, nil if none did.
	ExcludedBy *FailureRule
}

// Selected reports whether this candidate was chosen.
func (d Decision) Selected() bool {
	return d.Installed && d.ExcludedBy == nil
}

// Select returns the first compiler in priority order that is installed and
// not excluded by any failure rule.
//
// A *SelectionError naming pkg is returned when no candidate survives.
func Select(pkg string, failures []FailureRule, priority PriorityList, lookup VersionLookup) (Compiler, error) {
	c, _, err := SelectWithDecisions(pkg, failures, priority, lookup)
	return c, err
}

// SelectWithDecisions is Select that also returns the Decision recorded for
// each compiler visited, so callers can report the walk without repeating it.
// The decisions are returned on error as well.
func SelectWithDecisions(pkg string, failures []FailureRule, priority PriorityList, lookup VersionLookup) (Compiler, []Decision, error) {
	decisions := Explain(failures, priority, lookup)
	if n := len(decisions); n > 0 && decisions[n-1].Selected() {
		return decisions[n-1].Candidate.Compiler, decisions, nil
	}
	return Compiler{}, decisions, &SelectionError{Package: pkg}
}

// Explain walks the candidates like Select and records a Decision for each
// compiler visited. The walk stops after the first selected candidate.
func Explain(failures []FailureRule, priority PriorityList, lookup VersionLookup) []Decision {
	var decisions []Decision
	for _, c := range priority.Expand() {
		v, ok := compilerVersion(lookup, c)
		d := Decision{Candidate: Candidate{Compiler: c, Version: v}, Installed: ok}
		if ok {
			d.ExcludedBy = firstFailure(failures, d.Candidate)
		}
		decisions = append(decisions, d)
		if d.Selected() {
			break
		}
	}
	return decisions
}

// Candidates returns the installed candidates in walk order without
// applying any failure rule.
func Candidates(priority PriorityList, lookup VersionLookup) []Candidate {
	var out []Candidate
	for _, c := range priority.Expand() {
		if v, ok := compilerVersion(lookup, c); ok {
			out = append(out, Candidate{Compiler: c, Version: v})
		}
	}
	return out
}

func compilerVersion(lookup VersionLookup, c Compiler) (version.Version, bool) {
	var (
		v  version.Version
		ok bool
	)
	if c.IsGNU() {
		v, ok = lookup.GCCVersion(c)
	} else {
		v, ok = lookup.BuildVersion(c)
	}
	if !ok || v.IsZero() {
		return version.Version{}, false
	}
	return v, true
}

func firstFailure(failures []FailureRule, c Candidate) *FailureRule {
	for i := range failures {
		if failures[i].Matches(c) {
			r := failures[i]
			return &r
		}
	}
	return nil
}
