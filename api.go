// Package homebrew selects a compiler for building a package on a host.
//
// A package declares the compilers it is known to fail with, either through
// the standards it requires (see selection.RulesForStandard) or through its
// own failure rules. The host reports its default compiler family and the
// versions of the compilers it has installed. SelectCompiler walks the
// host's priority list and returns the first installed compiler that no
// failure rule excludes.
//
// # Quick Start
//
//	pkg := &homebrew.Package{Name: "libfoo", Standards: []string{"cxx11"}}
//	host := &homebrew.StaticHost{Default: selection.Clang}
//	host.Install(selection.Compiler{Family: selection.Clang}, version.BuildNumber(600))
//
//	c, err := homebrew.SelectCompiler(pkg, host)
//
// # Manifests
//
// ParseManifestFile reads a Starlark manifest describing a package and a host,
// which is convenient for tooling and fixtures:
//
//	package(name = "libfoo", standards = ["cxx11"])
//	fails_with(gcc = "4.8", cause = "internal compiler error")
//
//	host(default_compiler = "clang")
//	installed("clang", build = 600)
//
// # Thread Safety
//
// SelectCompiler keeps no state between calls. It is safe to call
// concurrently for independent packages as long as the Host is.
package homebrew

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bimmel1231/homebrew/selection"
)

// SelectCompiler returns the compiler to build pkg with on host.
//
// Errors:
//   - ErrUnrecognizedStandard if pkg requires an unregistered standard
//   - ErrUnknownDefaultCompiler if the host default has no priority list
//   - ErrNoCompatibleCompiler (as *selection.SelectionError) if nothing usable is installed
func SelectCompiler(pkg *Package, host Host, opts ...Option) (selection.Compiler, error) {
	c, _, err := SelectCompilerWithDecisions(pkg, host, opts...)
	return c, err
}

// SelectCompilerWithDecisions is SelectCompiler that also returns the
// per-candidate decisions of the walk. On a *selection.SelectionError the
// decisions explain why every candidate was rejected.
func SelectCompilerWithDecisions(pkg *Package, host Host, opts ...Option) (selection.Compiler, []selection.Decision, error) {
	cfg, failures, priority, err := prepare(pkg, host, opts)
	if err != nil {
		return selection.Compiler{}, nil, err
	}
	log := cfg.log().With("package", pkg.Name)

	c, decisions, err := selection.SelectWithDecisions(pkg.Name, failures, priority, host)
	for _, d := range decisions {
		logDecision(log, d)
	}
	if err != nil {
		log.Warn("no compatible compiler", "priority", priorityString(priority))
		return c, decisions, err
	}
	log.Info("selected compiler", "compiler", c.String())
	return c, decisions, nil
}

// Explain returns the per-candidate decisions SelectCompiler would make, in
// walk order, ending at the selected compiler if there is one. Running out
// of candidates is not an error here.
func Explain(pkg *Package, host Host, opts ...Option) ([]selection.Decision, error) {
	_, decisions, err := SelectCompilerWithDecisions(pkg, host, opts...)
	var se *selection.SelectionError
	if errors.As(err, &se) {
		return decisions, nil
	}
	return decisions, err
}

// SelectFromManifest parses a manifest file and selects a compiler for the
// package it declares on the host it declares.
func SelectFromManifest(filename string, opts ...Option) (selection.Compiler, error) {
	m, err := ParseManifestFile(filename)
	if err != nil {
		return selection.Compiler{}, fmt.Errorf("parse manifest: %w", err)
	}
	return SelectCompiler(m.Package, m.Host, opts...)
}

func prepare(pkg *Package, host Host, opts []Option) (*selectConfig, []selection.FailureRule, selection.PriorityList, error) {
	if pkg == nil || host == nil {
		return nil, nil, nil, errors.New("package and host are required")
	}

	cfg, err := newSelectConfig(opts...)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid options: %w", err)
	}

	failures, err := pkg.compilerFailures(cfg.standards)
	if err != nil {
		return nil, nil, nil, err
	}

	priority := cfg.priority
	if priority == nil {
		family := host.DefaultCompiler()
		if cfg.defaultFromOpt {
			family = cfg.defaultFamily
		}
		priority, err = selection.DefaultPriorityList(family)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	cfg.log().Debug("compiler selection prepared",
		"package", pkg.Name,
		"failures", len(failures),
		"priority", priorityString(priority))
	return cfg, failures, priority, nil
}

func logDecision(log *slog.Logger, d selection.Decision) {
	switch {
	case !d.Installed:
		log.Debug("compiler not installed", "compiler", d.Candidate.Compiler.String())
	case d.ExcludedBy != nil:
		log.Debug("compiler excluded",
			"compiler", d.Candidate.Compiler.String(),
			"version", d.Candidate.Version.String(),
			"rule", d.ExcludedBy.String())
	default:
		log.Debug("compiler usable",
			"compiler", d.Candidate.Compiler.String(),
			"version", d.Candidate.Version.String())
	}
}

func priorityString(p selection.PriorityList) string {
	names := make([]string, len(p))
	for i, f := range p {
		names[i] = f.String()
	}
	return strings.Join(names, ",")
}
