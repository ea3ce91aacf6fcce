// Package selection picks a compiler for building a package.
//
// # Failure Rules
//
// A FailureRule states that a compiler at or below some version is known to
// fail. Rules come in two shapes:
//
//   - A bare family, e.g. NewRule(LLVM, ...): every version fails. The rule
//     records an unbounded version that compares above any real one.
//   - A GCC release series, e.g. NewSeriesRule(GCC, "4.8", ...): the rule
//     applies to gcc-4.8 and records 4.8.999, so every 4.8.x patch release
//     fails but 4.9 does not.
//
// Vendor compilers (clang, gcc, llvm, gcc-4.0) report build numbers instead
// of dotted versions. A bare-family rule may be bounded by a build number via
// RuleOptions.Build, in which case only builds at or below it fail.
//
// A rule matches a candidate when the compilers are identical and the rule's
// version is greater than or equal to the candidate's. Note the direction:
// rules describe versions "up to and including X" as broken.
//
// Rules shared by many packages are registered per standard (for example
// "cxx11") and retrieved with RulesForStandard. The registry is built once at
// package initialization and is never modified.
//
// # Selection
//
// Select walks a PriorityList in order. Each family is looked up through a
// VersionLookup; the GNU placeholder expands to gcc-4.9 down to gcc-4.3 so the
// newest GNU release is preferred within its slot. Candidates that are not
// installed are skipped without consulting any rule. The first installed
// candidate that no rule matches is returned. Position in the priority list
// wins over recency: an old GNU GCC ahead of clang in the list is chosen
// before clang.
//
// When every candidate is missing or excluded Select returns a
// *SelectionError naming the package.
//
// # Concurrency
//
// Nothing here holds mutable state. Select may be called concurrently for
// independent packages; lookups within one call run sequentially.
package selection
