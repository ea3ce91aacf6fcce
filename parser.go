package homebrew

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/bazelbuild/buildtools/build"

	"github.com/bimmel1231/homebrew/internal/buildutil"
	"github.com/bimmel1231/homebrew/selection"
	"github.com/bimmel1231/homebrew/selection/version"
)

// ParseManifestFile reads and parses a compiler manifest from disk.
func ParseManifestFile(filename string) (*Manifest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	return ParseManifestContent(string(data))
}

// ParseManifestContent parses the content of a compiler manifest.
//
// Recognized statements:
//
//	package(name = "foo", standards = ["cxx11"])
//	fails_with("clang", build = 425, cause = "...")
//	fails_with(gcc = "4.8", cause = "...")
//	host(default_compiler = "clang")
//	installed("clang", build = 600)
//	installed("gcc-4.9", version = "4.9.2")
func ParseManifestContent(content string) (*Manifest, error) {
	f, err := build.ParseDefault("COMPILERS.bzl", []byte(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	return extractManifest(f)
}

// extractManifest builds a Manifest from the parsed file.
func extractManifest(f *build.File) (*Manifest, error) {
	m := &Manifest{Host: &StaticHost{Versions: make(selection.StaticVersions)}}
	sawPackage := false

	for _, stmt := range f.Stmt {
		call, ok := stmt.(*build.CallExpr)
		if !ok {
			continue
		}
		line := buildutil.Line(call)

		switch name := buildutil.FuncName(call); name {
		case "package":
			if sawPackage {
				return nil, &ManifestError{Line: line, Message: "package() declared more than once"}
			}
			sawPackage = true
			m.Package = &Package{
				Name:      buildutil.String(call, "name"),
				Standards: buildutil.StringList(call, "standards"),
			}
			if m.Package.Name == "" {
				return nil, &ManifestError{Line: line, Message: "package() requires a name"}
			}

		case "fails_with":
			rule, err := parseFailsWith(call)
			if err != nil {
				return nil, &ManifestError{Line: line, Message: err.Error()}
			}
			if m.Package == nil {
				return nil, &ManifestError{Line: line, Message: "fails_with() before package()"}
			}
			m.Package.Failures = append(m.Package.Failures, rule)

		case "host":
			family, err := selection.ParseFamily(buildutil.String(call, "default_compiler"))
			if err != nil || family == selection.GNU {
				return nil, &ManifestError{Line: line, Message: fmt.Sprintf("invalid default_compiler %q", buildutil.String(call, "default_compiler"))}
			}
			m.Host.Default = family

		case "installed":
			c, v, err := parseInstalled(call)
			if err != nil {
				return nil, &ManifestError{Line: line, Message: err.Error()}
			}
			if err := m.Host.Install(c, v); err != nil {
				return nil, &ManifestError{Line: line, Message: err.Error()}
			}

		default:
			return nil, &ManifestError{Line: line, Message: fmt.Sprintf("unknown statement %q", name)}
		}
	}

	if m.Package == nil {
		return nil, &ManifestError{Message: "missing package() declaration"}
	}
	return m, nil
}

// parseFailsWith handles both rule shapes: a positional family name, or a
// gcc = "4.x" series keyword.
func parseFailsWith(call *build.CallExpr) (selection.FailureRule, error) {
	for _, kw := range buildutil.Keywords(call) {
		if !slices.Contains([]string{"build", "cause", "gcc"}, kw) {
			return selection.FailureRule{}, fmt.Errorf("fails_with() does not accept %q", kw)
		}
	}

	opts := selection.RuleOptions{Cause: buildutil.String(call, "cause")}
	if n, ok := buildutil.Int(call, "build"); ok {
		opts.Build = &n
	} else if buildutil.Lookup(call, "build") != nil {
		return selection.FailureRule{}, errors.New("fails_with() build must be an integer")
	}

	spec := selection.RuleSpec{Name: buildutil.String(call, "")}
	if series := buildutil.String(call, "gcc"); series != "" {
		if spec.Name != "" {
			return selection.FailureRule{}, errors.New("fails_with() takes a compiler name or gcc = series, not both")
		}
		spec = selection.RuleSpec{Name: "gcc", Series: series}
	}
	if spec.Name == "" {
		return selection.FailureRule{}, errors.New("fails_with() requires a compiler")
	}

	return selection.CreateRule(spec, opts)
}

func parseInstalled(call *build.CallExpr) (selection.Compiler, version.Version, error) {
	c, err := selection.ParseCompiler(buildutil.String(call, ""))
	if err != nil {
		return selection.Compiler{}, version.Version{}, fmt.Errorf("installed(): %w", err)
	}

	n, hasBuild := buildutil.Int(call, "build")
	dotted := buildutil.String(call, "version")
	switch {
	case hasBuild && dotted != "":
		return c, version.Version{}, fmt.Errorf("installed(%s) takes build or version, not both", c)
	case hasBuild:
		if c.VersionKind() != version.KindBuild {
			return c, version.Version{}, fmt.Errorf("installed(%s) takes version, not build", c)
		}
		return c, version.BuildNumber(n), nil
	case dotted != "":
		if c.VersionKind() != version.KindDotted {
			return c, version.Version{}, fmt.Errorf("installed(%s) takes build, not version", c)
		}
		v, err := version.ParseDotted(dotted)
		if err != nil {
			return c, version.Version{}, err
		}
		return c, v, nil
	default:
		return c, version.Version{}, fmt.Errorf("installed(%s) requires build or version", c)
	}
}
