package version

import (
	"errors"
	"testing"
)

func TestParseDotted(t *testing.T) {
	tests := []struct {
		input    string
		wantSegs []uint64
		wantErr  bool
	}{
		{"4.8.3", []uint64{4, 8, 3}, false},
		{"4.9", []uint64{4, 9}, false},
		{"5", []uint64{5}, false},
		{"4.2.1.5666", []uint64{4, 2, 1, 5666}, false},

		{"", nil, true},
		{"4.8-rc1", nil, true},
		{"4..8", nil, true},
		{"v4.8", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := ParseDotted(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDotted(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				var pe *ParseError
				if !errors.As(err, &pe) {
					t.Errorf("ParseDotted(%q) error type = %T, want *ParseError", tt.input, err)
				}
				return
			}
			if v.Kind() != KindDotted {
				t.Errorf("Kind() = %v, want dotted", v.Kind())
			}
			got := v.Segments()
			if len(got) != len(tt.wantSegs) {
				t.Fatalf("Segments() = %v, want %v", got, tt.wantSegs)
			}
			for i := range got {
				if got[i] != tt.wantSegs[i] {
					t.Errorf("Segments()[%d] = %d, want %d", i, got[i], tt.wantSegs[i])
				}
			}
			if v.String() != tt.input {
				t.Errorf("String() = %q, want %q", v.String(), tt.input)
			}
		})
	}
}

func TestParseBuild(t *testing.T) {
	v, err := ParseBuild("425")
	if err != nil {
		t.Fatalf("ParseBuild() error = %v", err)
	}
	if v.Kind() != KindBuild || v.BuildValue() != 425 {
		t.Errorf("ParseBuild(425) = %v (%v), want build 425", v, v.Kind())
	}

	for _, bad := range []string{"", "4.2", "-1", "abc"} {
		if _, err := ParseBuild(bad); err == nil {
			t.Errorf("ParseBuild(%q) expected error", bad)
		}
	}
}

func TestSeriesCeiling(t *testing.T) {
	v, err := SeriesCeiling("4.8")
	if err != nil {
		t.Fatalf("SeriesCeiling() error = %v", err)
	}
	if v.String() != "4.8.999" {
		t.Errorf("SeriesCeiling(4.8) = %q, want 4.8.999", v.String())
	}

	if _, err := SeriesCeiling("four"); err == nil {
		t.Error("SeriesCeiling(four) expected error")
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Version
		want   int
		wantOK bool
	}{
		{"dotted less", MustParseDotted("4.8.3"), MustParseDotted("4.9.0"), -1, true},
		{"dotted greater", MustParseDotted("4.10"), MustParseDotted("4.9.2"), 1, true},
		{"dotted numeric not lexical", MustParseDotted("4.10.0"), MustParseDotted("4.9.0"), 1, true},
		{"dotted trailing zero", MustParseDotted("4.8"), MustParseDotted("4.8.0"), 0, true},
		{"series ceiling above patch", MustParseDotted("4.8.999"), MustParseDotted("4.8.3"), 1, true},
		{"series ceiling below next minor", MustParseDotted("4.8.999"), MustParseDotted("4.9.0"), -1, true},

		{"build less", BuildNumber(318), BuildNumber(425), -1, true},
		{"build equal", BuildNumber(425), BuildNumber(425), 0, true},

		{"unbounded over build", Unbounded(), BuildNumber(999999), 1, true},
		{"unbounded over dotted", Unbounded(), MustParseDotted("99.99.99"), 1, true},
		{"dotted under unbounded", MustParseDotted("1"), Unbounded(), -1, true},
		{"unbounded equal", Unbounded(), Unbounded(), 0, true},

		{"absent lowest", Version{}, BuildNumber(0), -1, true},
		{"absent equal", Version{}, Version{}, 0, true},
		{"unbounded over absent", Unbounded(), Version{}, 1, true},

		{"kind mismatch", BuildNumber(425), MustParseDotted("4.2.1"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Compare(tt.a, tt.b)
			if ok != tt.wantOK {
				t.Fatalf("Compare(%v, %v) ok = %v, want %v", tt.a, tt.b, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	if !Equal(MustParseDotted("4.9"), MustParseDotted("4.9.0")) {
		t.Error("4.9 should equal 4.9.0")
	}
	if Equal(BuildNumber(5), MustParseDotted("5")) {
		t.Error("build 5 should not equal dotted 5")
	}
}

func TestZeroValue(t *testing.T) {
	var v Version
	if !v.IsZero() {
		t.Error("zero Version should report IsZero")
	}
	if v.Kind() != KindAbsent {
		t.Errorf("zero Version kind = %v, want absent", v.Kind())
	}
	if v.String() != "" {
		t.Errorf("zero Version String() = %q, want empty", v.String())
	}
}

func TestKindOfConstructors(t *testing.T) {
	tests := []struct {
		name string
		v    Version
		want Kind
	}{
		{"absent", Version{}, KindAbsent},
		{"dotted", MustParseDotted("4.8.3"), KindDotted},
		{"build", BuildNumber(425), KindBuild},
		{"unbounded", Unbounded(), KindUnbounded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
			if got := tt.v.Kind().String(); got != tt.name {
				t.Errorf("Kind().String() = %q, want %q", got, tt.name)
			}
		})
	}
}
