package homebrew

import (
	"errors"
	"testing"

	"github.com/bimmel1231/homebrew/selection"
	"github.com/bimmel1231/homebrew/selection/version"
)

func TestParseManifestContent(t *testing.T) {
	content := `
# Compiler manifest for libfoo.
package(
    name = "libfoo",
    standards = ["cxx11", "openmp"],
)

fails_with("llvm", cause = "miscompiles vector code")
fails_with("clang", build = 318)
fails_with(gcc = "4.8", cause = "internal compiler error")

host(default_compiler = "gcc")
installed("gcc", build = 5666)
installed("gcc-4.9", version = "4.9.2")
`
	m, err := ParseManifestContent(content)
	if err != nil {
		t.Fatalf("ParseManifestContent() error = %v", err)
	}

	if m.Package.Name != "libfoo" {
		t.Errorf("Package.Name = %q, want libfoo", m.Package.Name)
	}
	if len(m.Package.Standards) != 2 || m.Package.Standards[0] != "cxx11" || m.Package.Standards[1] != "openmp" {
		t.Errorf("Package.Standards = %v, want [cxx11 openmp]", m.Package.Standards)
	}

	rules := m.Package.Failures
	if len(rules) != 3 {
		t.Fatalf("len(Failures) = %d, want 3", len(rules))
	}
	if rules[0].Compiler().Family != selection.LLVM || rules[0].Version().Kind() != version.KindUnbounded {
		t.Errorf("Failures[0] = %v, want unconditional llvm", rules[0])
	}
	if rules[0].Cause() != "miscompiles vector code" {
		t.Errorf("Failures[0].Cause() = %q", rules[0].Cause())
	}
	if rules[1].Build().Kind() != version.KindBuild || rules[1].Build().BuildValue() != 318 {
		t.Errorf("Failures[1] = %v, want clang build 318", rules[1])
	}
	if rules[2].Compiler() != selection.GNUCompiler(8) || rules[2].Version().String() != "4.8.999" {
		t.Errorf("Failures[2] = %v, want gcc-4.8 4.8.999", rules[2])
	}

	if m.Host.DefaultCompiler() != selection.GCC {
		t.Errorf("Host.DefaultCompiler() = %s, want gcc", m.Host.DefaultCompiler())
	}
	if v, ok := m.Host.BuildVersion(selection.Compiler{Family: selection.GCC}); !ok || v.BuildValue() != 5666 {
		t.Errorf("gcc build = %v, %v; want 5666", v, ok)
	}
	if v, ok := m.Host.GCCVersion(selection.GNUCompiler(9)); !ok || v.String() != "4.9.2" {
		t.Errorf("gcc-4.9 version = %v, %v; want 4.9.2", v, ok)
	}
}

func TestParseManifestContentErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantLine int
	}{
		{"missing package", `host(default_compiler = "clang")`, 0},
		{"package without name", `package()`, 1},
		{"duplicate package", "package(name = \"a\")\npackage(name = \"b\")", 2},
		{"fails_with before package", `fails_with("clang")`, 1},
		{"unknown statement", "package(name = \"a\")\nfoo()", 2},
		{"unknown compiler", "package(name = \"a\")\nfails_with(\"icc\")", 2},
		{"unknown keyword", "package(name = \"a\")\nfails_with(\"clang\", version = \"1\")", 2},
		{"non-integer build", "package(name = \"a\")\nfails_with(\"clang\", build = \"425\")", 2},
		{"name and series", "package(name = \"a\")\nfails_with(\"clang\", gcc = \"4.8\")", 2},
		{"unsupported series", "package(name = \"a\")\nfails_with(gcc = \"5.1\")", 2},
		{"build on gnu gcc", "package(name = \"a\")\nfails_with(gcc = \"4.8\", build = 1)", 2},
		{"placeholder default", "package(name = \"a\")\nhost(default_compiler = \"gnu\")", 2},
		{"installed without version", "package(name = \"a\")\ninstalled(\"clang\")", 2},
		{"installed with both", "package(name = \"a\")\ninstalled(\"clang\", build = 1, version = \"1.0\")", 2},
		{"installed bad version", "package(name = \"a\")\ninstalled(\"gcc-4.9\", version = \"4.9-rc1\")", 2},
		{"installed gnu gcc with build", "package(name = \"a\")\ninstalled(\"gcc-4.8\", build = 5)", 2},
		{"installed clang with version", "package(name = \"a\")\ninstalled(\"clang\", version = \"400\")", 2},
		{"installed placeholder", "package(name = \"a\")\ninstalled(\"gnu\", build = 1)", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifestContent(tt.content)
			if err == nil {
				t.Fatal("ParseManifestContent() expected error")
			}
			var me *ManifestError
			if !errors.As(err, &me) {
				t.Fatalf("error type = %T (%v), want *ManifestError", err, err)
			}
			if me.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d (%v)", me.Line, tt.wantLine, err)
			}
			if !errors.Is(err, ErrInvalidManifest) {
				t.Error("error should wrap ErrInvalidManifest")
			}
		})
	}
}

func TestParseManifestSyntaxError(t *testing.T) {
	if _, err := ParseManifestContent(`package(name = `); err == nil {
		t.Error("ParseManifestContent() expected syntax error")
	}
}

func TestParseManifestFileMissing(t *testing.T) {
	if _, err := ParseManifestFile("/nonexistent/COMPILERS.bzl"); err == nil {
		t.Error("ParseManifestFile() expected error")
	}
}
